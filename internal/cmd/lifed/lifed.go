// Package lifed parses daemon command flags and starts the headless runtime.
package lifed

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/conway.space/internal/app/server"
	"github.com/louisbranch/conway.space/internal/life/pattern"
	entrypoint "github.com/louisbranch/conway.space/internal/platform/cmd"
	"github.com/louisbranch/conway.space/internal/platform/id"
	"github.com/louisbranch/conway.space/internal/sim"
	"github.com/louisbranch/conway.space/internal/storage/sqlite"
	"github.com/louisbranch/conway.space/internal/telemetry"
)

// Config holds lifed command configuration.
type Config struct {
	Port     int           `env:"CONWAY_SPACE_LIFED_PORT" envDefault:"8030"`
	Addr     string        `env:"CONWAY_SPACE_LIFED_ADDR"`
	Width    int           `env:"CONWAY_SPACE_LIFED_WIDTH" envDefault:"32"`
	Height   int           `env:"CONWAY_SPACE_LIFED_HEIGHT" envDefault:"24"`
	Interval time.Duration `env:"CONWAY_SPACE_LIFED_INTERVAL" envDefault:"250ms"`
	Pattern  string        `env:"CONWAY_SPACE_LIFED_PATTERN" envDefault:"glider"`
	DBPath   string        `env:"CONWAY_SPACE_LIFED_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The daemon rpc port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The daemon listen address (overrides -port)")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "The board width in cells")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "The board height in cells")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "The delay between generations")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "The seed pattern name (empty for a blank board)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The step journal SQLite path (empty disables journaling)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the headless simulation daemon.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLifed, func(context.Context) error {
		board, err := pattern.Seed(cfg.Width, cfg.Height, cfg.Pattern)
		if err != nil {
			return fmt.Errorf("seed board: %w", err)
		}
		runner := sim.NewRunner(board, cfg.Interval)

		addr := cfg.Addr
		if addr == "" {
			addr = fmt.Sprintf(":%d", cfg.Port)
		}
		srv, err := server.New(runner, addr)
		if err != nil {
			return err
		}

		eg, ctx := errgroup.WithContext(ctx)

		if cfg.DBPath != "" {
			store, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Printf("close journal: %v", err)
				}
			}()

			runID, err := id.NewID()
			if err != nil {
				return fmt.Errorf("assign run id: %w", err)
			}
			log.Printf("journaling run %s to %s", runID, cfg.DBPath)

			emitter := telemetry.NewEmitter(store)
			events := runner.Events()
			eg.Go(func() error {
				telemetry.Record(ctx, runID, events, emitter)
				return nil
			})
		}

		eg.Go(func() error {
			return srv.Serve(ctx)
		})
		return eg.Wait()
	})
}
