package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	lifecmd "github.com/louisbranch/conway.space/internal/cmd/life"
)

func main() {
	cfg, err := lifecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[LIFE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := lifecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
