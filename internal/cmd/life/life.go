// Package life parses life command flags and starts the desktop runtime.
package life

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	conway "github.com/louisbranch/conway.space/internal/life"
	"github.com/louisbranch/conway.space/internal/life/pattern"
	entrypoint "github.com/louisbranch/conway.space/internal/platform/cmd"
	"github.com/louisbranch/conway.space/internal/sim"
	"github.com/louisbranch/conway.space/internal/ui/sdlui"
)

// Config holds life command configuration.
type Config struct {
	Width    int           `env:"CONWAY_SPACE_LIFE_WIDTH" envDefault:"32"`
	Height   int           `env:"CONWAY_SPACE_LIFE_HEIGHT" envDefault:"24"`
	CellSize int           `env:"CONWAY_SPACE_LIFE_CELL_SIZE" envDefault:"25"`
	Interval time.Duration `env:"CONWAY_SPACE_LIFE_INTERVAL" envDefault:"250ms"`
	Pattern  string        `env:"CONWAY_SPACE_LIFE_PATTERN" envDefault:"glider"`
	Title    string        `env:"CONWAY_SPACE_LIFE_TITLE" envDefault:"conway.space"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Width, "width", cfg.Width, "The board width in cells")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "The board height in cells")
	fs.IntVar(&cfg.CellSize, "cell-size", cfg.CellSize, "The cell edge length in pixels")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "The delay between generations")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "The seed pattern name (empty for a blank board)")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "The window title")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the interactive window backed by a ticking runner. It must be
// called from the main goroutine so SDL keeps its thread.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLife, func(context.Context) error {
		seed := func() (conway.Automaton, error) {
			board, err := pattern.Seed(cfg.Width, cfg.Height, cfg.Pattern)
			if err != nil {
				return nil, err
			}
			return board, nil
		}

		board, err := seed()
		if err != nil {
			return fmt.Errorf("seed board: %w", err)
		}
		runner := sim.NewRunner(board, cfg.Interval)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			return runner.Run(ctx)
		})
		eg.Go(func() error {
			logEvents(runner.Events())
			return nil
		})

		// The window owns the calling goroutine; closing it stops the group.
		uiErr := sdlui.Run(ctx, runner, sdlui.Config{
			CellSize: cfg.CellSize,
			Title:    cfg.Title,
			Seed:     seed,
		})
		cancel()
		if err := eg.Wait(); err != nil {
			return err
		}
		return uiErr
	})
}

func logEvents(events <-chan sim.Event) {
	for e := range events {
		if done, ok := e.(sim.GenerationComplete); ok {
			log.Printf("generation %d population %d computed in %s",
				done.Generation, done.Population, done.Elapsed)
		}
	}
}
