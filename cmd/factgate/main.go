package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	factgatecmd "github.com/factgate/factgate/internal/cmd/factgate"
)

// main starts the MCP gateway on stdio or HTTP.
func main() {
	cfg, err := factgatecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[FACTGATE] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := factgatecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve gateway: %v", err)
	}
}
