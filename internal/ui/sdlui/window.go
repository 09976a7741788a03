// Package sdlui renders a running simulation in a desktop window and maps
// mouse and keyboard input onto runner controls.
package sdlui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/louisbranch/conway.space/internal/life"
	"github.com/louisbranch/conway.space/internal/sim"
)

// frameDelay caps the redraw loop near sixty frames per second.
const frameDelay = 16 // milliseconds

var (
	// ErrNilRunner indicates Run was given no simulation to display.
	ErrNilRunner = errors.New("nil runner")
	// ErrInvalidCellSize indicates a cell size of zero or fewer pixels.
	ErrInvalidCellSize = errors.New("cell size must be positive")
)

// Config holds the window parameters. Cell size and title come from the
// binary's configuration rather than package constants, so the same window
// serves any board geometry.
type Config struct {
	// CellSize is the width and height of one cell in pixels.
	CellSize int
	// Title is the base window title; generation and population are
	// appended to it every frame.
	Title string
	// Seed builds a fresh board for the reset key. When nil the key is
	// ignored.
	Seed func() (life.Automaton, error)
}

// Run opens a window sized to the runner's board and blocks until the
// window closes, a quit key arrives, or ctx ends. SDL requires a single
// OS thread, so Run must be called from the main goroutine; the runner's
// own Run loop belongs on another goroutine.
func Run(ctx context.Context, runner *sim.Runner, cfg Config) error {
	if runner == nil {
		return ErrNilRunner
	}
	if cfg.CellSize <= 0 {
		return fmt.Errorf("cell size %d: %w", cfg.CellSize, ErrInvalidCellSize)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initialize sdl: %w", err)
	}
	defer sdl.Quit()

	cell := int32(cfg.CellSize)
	status := runner.Status()

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(status.Width)*cell, int32(status.Height)*cell,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	lastTitle := ""
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		quit, err := pumpEvents(runner, cfg)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		grid, status := runner.Snapshot()
		if title := frameTitle(cfg.Title, status); title != lastTitle {
			window.SetTitle(title)
			lastTitle = title
		}
		if err := drawFrame(renderer, grid, cell); err != nil {
			return err
		}

		sdl.Delay(frameDelay)
	}
}

// pumpEvents drains the SDL event queue, translating input into runner
// calls. It reports whether the user asked to quit.
func pumpEvents(runner *sim.Runner, cfg Config) (bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true, nil
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			quit, err := handleKey(runner, cfg, e.Keysym.Sym)
			if quit || err != nil {
				return quit, err
			}
		case *sdl.MouseButtonEvent:
			if e.Type != sdl.MOUSEBUTTONDOWN || e.Button != sdl.BUTTON_LEFT {
				continue
			}
			x := int(e.X) / cfg.CellSize
			y := int(e.Y) / cfg.CellSize
			if err := runner.Toggle(x, y); err != nil {
				log.Printf("toggle cell (%d, %d): %v", x, y, err)
			}
		}
	}

	return false, nil
}

func handleKey(runner *sim.Runner, cfg Config, key sdl.Keycode) (bool, error) {
	switch key {
	case sdl.K_q, sdl.K_ESCAPE:
		return true, nil
	case sdl.K_SPACE, sdl.K_p:
		if runner.Status().State == sim.StatePaused {
			runner.Resume()
		} else {
			runner.Pause()
		}
	case sdl.K_n:
		if _, err := runner.StepN(1); err != nil {
			log.Printf("advance generation: %v", err)
		}
	case sdl.K_r:
		if cfg.Seed == nil {
			return false, nil
		}
		board, err := cfg.Seed()
		if err != nil {
			return false, fmt.Errorf("seed board: %w", err)
		}
		if _, err := runner.Reset(board); err != nil {
			return false, fmt.Errorf("reset simulation: %w", err)
		}
	}

	return false, nil
}

// drawFrame paints live cells as filled squares over a dark background.
func drawFrame(renderer *sdl.Renderer, grid [][]bool, cell int32) error {
	if err := renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("set background color: %w", err)
	}
	if err := renderer.Clear(); err != nil {
		return fmt.Errorf("clear frame: %w", err)
	}
	if err := renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return fmt.Errorf("set cell color: %w", err)
	}

	for y, row := range grid {
		for x, alive := range row {
			if !alive {
				continue
			}
			rect := sdl.Rect{X: int32(x) * cell, Y: int32(y) * cell, W: cell, H: cell}
			if err := renderer.FillRect(&rect); err != nil {
				return fmt.Errorf("draw cell (%d, %d): %w", x, y, err)
			}
		}
	}
	renderer.Present()

	return nil
}

func frameTitle(base string, st sim.Status) string {
	return fmt.Sprintf("%s  generation %d  population %d  [%s]", base, st.Generation, st.Population, st.State)
}
