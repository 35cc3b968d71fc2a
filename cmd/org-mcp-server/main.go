// Command org-mcp-server exposes an org-mode notes directory over MCP
// (Model Context Protocol), speaking JSON-RPC on stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jra3/orgmind/internal/config"
	"github.com/jra3/orgmind/internal/engine"
	"github.com/jra3/orgmind/internal/logging"
	"github.com/jra3/orgmind/internal/mcpserver"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	rootDirectory := flag.String("root-directory", "", "root directory containing org-mode files (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if *rootDirectory != "" {
		if err := cfg.ApplyOverrides(*rootDirectory); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer logger.Sync()

	eng := engine.New(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("org-mcp-server starting over stdio")
	if err := mcpserver.Run(ctx, eng); err != nil {
		logger.Error("server terminated: " + err.Error())
		os.Exit(1)
	}
}
