package main

import (
	"context"
	"flag"
	"os"

	"github.com/factgate/factgate/internal/platform/config"
	factsimporter "github.com/factgate/factgate/internal/tools/importer/facts"
)

func main() {
	cfg, err := factsimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := factsimporter.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
