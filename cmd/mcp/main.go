// MCP server for the project planner.
//
// Speaks MCP over stdin/stdout and exposes one tool,
// generate_project_plan. Logs go to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mfateev/project-planner/internal/config"
	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/mcpserver"
	"github.com/mfateev/project-planner/internal/planner"
)

var version = "dev"

func main() {
	model := flag.String("model", "", "LLM model to use (default: $OPENAI_MODEL_NAME or gpt-4o-mini)")
	temporalHost := flag.String("temporal-host", "", "Temporal server address (temporal executor only)")
	flag.Parse()

	if err := run(*model, *temporalHost); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(model, temporalHost string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings, err := config.LoadSettings(ctx)
	if err != nil {
		return err
	}
	if model != "" {
		settings.Model = model
	}

	logger := log.New("mcp", settings.Verbose)
	ctx = log.IntoContext(ctx, logger)
	slog.SetDefault(logger)

	pl, closePlanner, err := planner.FromSettings(settings, temporalHost, logger, nil)
	if err != nil {
		return err
	}
	defer closePlanner()

	return mcpserver.Serve(ctx, mcpserver.NewServer(pl, version))
}
