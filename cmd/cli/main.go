// Terminal front end for the project planner.
//
// Shows the five project fields pre-filled with example values and a
// "Generate Project Plan" button. The plan is produced in-process, or by a
// Temporal worker when PLANNER_EXECUTOR=temporal.
//
// Usage:
//
//	cli                              Open the form
//	cli --model claude-sonnet-4-5    Use a specific model
//	cli --steps                      Also show each step's output
//	cli --log-file planner.log       Write logs to a file
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/mfateev/project-planner/internal/cli"
	"github.com/mfateev/project-planner/internal/config"
	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/planner"
)

func main() {
	model := flag.String("model", "", "LLM model to use (default: $OPENAI_MODEL_NAME or gpt-4o-mini)")
	temporalHost := flag.String("temporal-host", "", "Temporal server address (temporal executor only)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	steps := flag.Bool("steps", false, "Show the output of every step")
	logFile := flag.String("log-file", "", "Write logs to this file (default: discard)")
	flag.Parse()

	if err := run(*model, *temporalHost, *noColor, *steps, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(model, temporalHost string, noColor, steps bool, logFile string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings, err := config.LoadSettings(ctx)
	if err != nil {
		return err
	}
	if model != "" {
		settings.Model = model
	}

	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(log.NewHandlerTo(logOut, "cli", settings.Verbose))
	ctx = log.IntoContext(ctx, logger)

	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	app := cli.NewApp(cli.Config{
		Input:     models.DefaultPipelineInput(),
		Width:     width,
		NoColor:   noColor,
		ShowSteps: steps || settings.Verbose,
	})

	pl, closePlanner, err := planner.FromSettings(settings, temporalHost, logger, app.ReportStatus)
	if err != nil {
		return err
	}
	defer closePlanner()
	app.SetPlanner(pl)

	return app.Run(ctx)
}
