// Package lifectl implements the operator command for a running lifed
// daemon: one rpc round trip per invocation, output on the given writer.
package lifectl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"strconv"
	"time"

	"github.com/louisbranch/conway.space/internal/life"
	"github.com/louisbranch/conway.space/internal/platform/config"
	"github.com/louisbranch/conway.space/internal/render"
	transportrpc "github.com/louisbranch/conway.space/internal/transport/rpc"
)

const usage = "usage: lifectl [flags] status|snapshot|toggle <x> <y>|step [n]|pause|resume|reset <width> <height> [pattern]"

var commands = map[string]bool{
	"status":   true,
	"snapshot": true,
	"toggle":   true,
	"step":     true,
	"pause":    true,
	"resume":   true,
	"reset":    true,
}

// Config holds lifectl command configuration. The daemon address shares
// the lifed env var so one export covers both sides.
type Config struct {
	Addr    string        `env:"CONWAY_SPACE_LIFED_ADDR" envDefault:"localhost:8030"`
	Timeout time.Duration `env:"CONWAY_SPACE_LIFECTL_TIMEOUT" envDefault:"5s"`

	Command string
	Args    []string
}

// ParseConfig parses environment and flags into a Config. Whatever follows
// the flags becomes the subcommand and its arguments.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The lifed rpc address")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "The dial timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}
	return cfg, nil
}

// Run executes cfg.Command against the daemon at cfg.Addr.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.Command == "" {
		return fmt.Errorf("missing command; %s", usage)
	}
	if !commands[cfg.Command] {
		return fmt.Errorf("unknown command %q; %s", cfg.Command, usage)
	}

	conn, err := net.DialTimeout("tcp", cfg.Addr, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.Addr, err)
	}
	client := rpc.NewClient(conn)
	defer func() {
		_ = client.Close()
	}()

	switch cfg.Command {
	case "status":
		return status(ctx, client, out)
	case "snapshot":
		return snapshot(ctx, client, out)
	case "toggle":
		return toggle(ctx, client, out, cfg.Args)
	case "step":
		return step(ctx, client, out, cfg.Args)
	case "pause":
		var reply transportrpc.PauseReply
		if err := call(ctx, client, transportrpc.MethodPause, transportrpc.PauseArgs{}, &reply); err != nil {
			return err
		}
		return printStatus(out, reply.Status)
	case "resume":
		var reply transportrpc.ResumeReply
		if err := call(ctx, client, transportrpc.MethodResume, transportrpc.ResumeArgs{}, &reply); err != nil {
			return err
		}
		return printStatus(out, reply.Status)
	case "reset":
		return reset(ctx, client, out, cfg.Args)
	}
	return nil
}

// call runs one rpc round trip, honoring ctx cancellation.
func call(ctx context.Context, client *rpc.Client, method string, args, reply any) error {
	done := client.Go(method, args, reply, make(chan *rpc.Call, 1)).Done
	select {
	case <-ctx.Done():
		return ctx.Err()
	case finished := <-done:
		return finished.Error
	}
}

func status(ctx context.Context, client *rpc.Client, out io.Writer) error {
	var reply transportrpc.StatusReply
	if err := call(ctx, client, transportrpc.MethodStatus, transportrpc.StatusArgs{}, &reply); err != nil {
		return err
	}
	return printStatus(out, reply.Status)
}

func snapshot(ctx context.Context, client *rpc.Client, out io.Writer) error {
	var reply transportrpc.SnapshotReply
	if err := call(ctx, client, transportrpc.MethodSnapshot, transportrpc.SnapshotArgs{}, &reply); err != nil {
		return err
	}
	board, err := life.FromGrid(reply.Grid)
	if err != nil {
		return fmt.Errorf("rebuild snapshot: %w", err)
	}
	if err := render.Text(out, board); err != nil {
		return err
	}
	return printStatus(out, reply.Status)
}

func toggle(ctx context.Context, client *rpc.Client, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("toggle requires <x> <y>")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parse y: %w", err)
	}
	var reply transportrpc.ToggleReply
	if err := call(ctx, client, transportrpc.MethodToggle, transportrpc.ToggleArgs{X: x, Y: y}, &reply); err != nil {
		return err
	}
	return printStatus(out, reply.Status)
}

func step(ctx context.Context, client *rpc.Client, out io.Writer, args []string) error {
	if len(args) > 1 {
		return errors.New("step takes at most one turn count")
	}
	turns := 1
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse turns: %w", err)
		}
		turns = parsed
	}
	var reply transportrpc.StepReply
	if err := call(ctx, client, transportrpc.MethodStep, transportrpc.StepArgs{Turns: turns}, &reply); err != nil {
		return err
	}
	return printStatus(out, reply.Status)
}

func reset(ctx context.Context, client *rpc.Client, out io.Writer, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("reset requires <width> <height> with an optional pattern")
	}
	width, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parse width: %w", err)
	}
	height, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parse height: %w", err)
	}
	name := ""
	if len(args) == 3 {
		name = args[2]
	}
	var reply transportrpc.ResetReply
	if err := call(ctx, client, transportrpc.MethodReset, transportrpc.ResetArgs{Width: width, Height: height, Pattern: name}, &reply); err != nil {
		return err
	}
	return printStatus(out, reply.Status)
}

func printStatus(out io.Writer, st transportrpc.Status) error {
	_, err := fmt.Fprintf(out, "state=%s generation=%d population=%d board=%dx%d\n",
		st.State, st.Generation, st.Population, st.Width, st.Height)
	return err
}
