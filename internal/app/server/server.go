// Package server hosts the life daemon runtime: the simulation runner and
// the net/rpc control plane that drives it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/rpc"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/conway.space/internal/sim"
	transportrpc "github.com/louisbranch/conway.space/internal/transport/rpc"
)

// Server couples a runner with the rpc listener exposing its controls.
type Server struct {
	listener  net.Listener
	rpcServer *rpc.Server
	runner    *sim.Runner
}

// New creates a server for runner listening on addr.
func New(runner *sim.Runner, addr string) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner is required")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	rpcServer := rpc.NewServer()
	if err := rpcServer.RegisterName(transportrpc.ServiceName, transportrpc.NewLife(runner)); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("register rpc handler: %w", err)
	}

	return &Server{
		listener:  listener,
		rpcServer: rpcServer,
		runner:    runner,
	}, nil
}

// Addr reports the listener address, useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve ticks the simulation and accepts control connections until ctx
// ends, then stops both and waits for open connections to drain.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log.Printf("control plane listening at %v", s.listener.Addr())

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.runner.Run(ctx)
	})
	eg.Go(func() error {
		<-ctx.Done()
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("close listener: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept connection: %w", err)
			}
			eg.Go(func() error {
				s.serveConn(ctx, conn)
				return nil
			})
		}
	})

	return eg.Wait()
}

// serveConn dispatches rpc calls on conn until the client hangs up or the
// server shuts down.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	s.rpcServer.ServeConn(conn)
	close(done)
	_ = conn.Close()
}
