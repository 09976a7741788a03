package server

import (
	"context"
	"net/rpc"
	"testing"
	"time"

	"github.com/louisbranch/conway.space/internal/life"
	"github.com/louisbranch/conway.space/internal/life/pattern"
	"github.com/louisbranch/conway.space/internal/sim"
	transportrpc "github.com/louisbranch/conway.space/internal/transport/rpc"
)

// startTestServer serves a blinker simulation on a loopback port. The tick
// interval is an hour so generations only advance through explicit calls.
func startTestServer(t *testing.T) (addr string, cancel context.CancelFunc, serveErr chan error) {
	t.Helper()

	board, err := pattern.Seed(5, 5, "blinker")
	if err != nil {
		t.Fatalf("seed board: %v", err)
	}
	runner := sim.NewRunner(board, time.Hour)

	srv, err := New(runner, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serveErr = make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ctx)
	}()

	return srv.Addr().String(), cancel, serveErr
}

func dialTestServer(t *testing.T, addr string) *rpc.Client {
	t.Helper()

	client, err := rpc.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial server: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestServeRoundTrip(t *testing.T) {
	addr, cancel, serveErr := startTestServer(t)
	defer cancel()

	client := dialTestServer(t, addr)

	var status transportrpc.StatusReply
	if err := client.Call(transportrpc.MethodStatus, transportrpc.StatusArgs{}, &status); err != nil {
		t.Fatalf("call status: %v", err)
	}
	if status.Status.Population != 3 {
		t.Fatalf("population = %d, want 3", status.Status.Population)
	}

	var step transportrpc.StepReply
	if err := client.Call(transportrpc.MethodStep, transportrpc.StepArgs{Turns: 1}, &step); err != nil {
		t.Fatalf("call step: %v", err)
	}
	if step.Status.Generation != 1 {
		t.Fatalf("generation = %d, want 1", step.Status.Generation)
	}

	var snapshot transportrpc.SnapshotReply
	if err := client.Call(transportrpc.MethodSnapshot, transportrpc.SnapshotArgs{}, &snapshot); err != nil {
		t.Fatalf("call snapshot: %v", err)
	}
	// One step turns the centered horizontal blinker vertical.
	for y := 1; y <= 3; y++ {
		if !snapshot.Grid[y][2] {
			t.Errorf("cell (2, %d) dead, want live", y)
		}
	}

	var reset transportrpc.ResetReply
	if err := client.Call(transportrpc.MethodReset, transportrpc.ResetArgs{Width: 10, Height: 10, Pattern: "glider"}, &reset); err != nil {
		t.Fatalf("call reset: %v", err)
	}
	if reset.Status.Generation != 0 {
		t.Fatalf("generation after reset = %d, want 0", reset.Status.Generation)
	}
	if reset.Status.Width != 10 || reset.Status.Height != 10 {
		t.Fatalf("extents after reset = %dx%d, want 10x10", reset.Status.Width, reset.Status.Height)
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop in time")
	}
}

func TestServeSurfacesCoreErrors(t *testing.T) {
	addr, cancel, _ := startTestServer(t)
	defer cancel()

	client := dialTestServer(t, addr)

	var reply transportrpc.ToggleReply
	err := client.Call(transportrpc.MethodToggle, transportrpc.ToggleArgs{X: 50, Y: 50}, &reply)
	if err == nil {
		t.Fatal("expected out of bounds error")
	}
	// net/rpc flattens errors to strings; the message must survive intact.
	if err.Error() != life.ErrOutOfBounds.Error() {
		t.Fatalf("error = %q, want %q", err.Error(), life.ErrOutOfBounds.Error())
	}
}

func TestServePauseGatesTicks(t *testing.T) {
	addr, cancel, _ := startTestServer(t)
	defer cancel()

	client := dialTestServer(t, addr)

	var pause transportrpc.PauseReply
	if err := client.Call(transportrpc.MethodPause, transportrpc.PauseArgs{}, &pause); err != nil {
		t.Fatalf("call pause: %v", err)
	}
	if pause.Status.State != "paused" {
		t.Fatalf("state = %q, want paused", pause.Status.State)
	}

	// Stepping works while paused.
	var step transportrpc.StepReply
	if err := client.Call(transportrpc.MethodStep, transportrpc.StepArgs{Turns: 2}, &step); err != nil {
		t.Fatalf("call step: %v", err)
	}
	if step.Status.Generation != 2 {
		t.Fatalf("generation = %d, want 2", step.Status.Generation)
	}
	if step.Status.State != "paused" {
		t.Fatalf("state = %q, want paused", step.Status.State)
	}

	var resume transportrpc.ResumeReply
	if err := client.Call(transportrpc.MethodResume, transportrpc.ResumeArgs{}, &resume); err != nil {
		t.Fatalf("call resume: %v", err)
	}
	if resume.Status.State != "running" {
		t.Fatalf("state = %q, want running", resume.Status.State)
	}
}

func TestServeReturnsOnCancel(t *testing.T) {
	_, cancel, serveErr := startTestServer(t)

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("server did not stop on cancel")
	}
}

func TestServeClosesConnectionsOnShutdown(t *testing.T) {
	addr, cancel, serveErr := startTestServer(t)

	client := dialTestServer(t, addr)
	var status transportrpc.StatusReply
	if err := client.Call(transportrpc.MethodStatus, transportrpc.StatusArgs{}, &status); err != nil {
		t.Fatalf("call status: %v", err)
	}

	// An open client connection must not hold up shutdown.
	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop with an open connection")
	}
}

func TestServeReturnsErrorOnClosedListener(t *testing.T) {
	board, err := life.New(5, 5)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	srv, err := New(sim.NewRunner(board, time.Hour), "127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := srv.listener.Close(); err != nil {
		t.Fatalf("close listener: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := srv.Serve(ctx); err == nil {
		t.Fatal("expected serve error after closing listener")
	}
}

func TestNewRequiresRunner(t *testing.T) {
	if _, err := New(nil, "127.0.0.1:0"); err == nil {
		t.Fatal("expected missing runner error")
	}
}

func TestNewRejectsBusyAddress(t *testing.T) {
	board, err := life.New(3, 3)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	first, err := New(sim.NewRunner(board, time.Hour), "127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer first.listener.Close()

	second, err := life.New(3, 3)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	if _, err := New(sim.NewRunner(second, time.Hour), first.Addr().String()); err == nil {
		t.Fatal("expected error when address is already in use")
	}
}
