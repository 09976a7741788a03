package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	lifedcmd "github.com/louisbranch/conway.space/internal/cmd/lifed"
)

func main() {
	cfg, err := lifedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[LIFED] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := lifedcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
