// HTTP front end for the project planner.
//
// Serves the project form on PLANNER_LISTEN_ADDR (default 127.0.0.1:8501).
// Each submission runs the planner synchronously and renders the task and
// milestone tables on the same page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfateev/project-planner/internal/config"
	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/planner"
	"github.com/mfateev/project-planner/internal/web"
	"github.com/mfateev/project-planner/internal/web/pages"
)

func main() {
	addr := flag.String("addr", "", "Listen address (default: $PLANNER_LISTEN_ADDR)")
	model := flag.String("model", "", "LLM model to use (default: $OPENAI_MODEL_NAME or gpt-4o-mini)")
	temporalHost := flag.String("temporal-host", "", "Temporal server address (temporal executor only)")
	flag.Parse()

	if err := run(*addr, *model, *temporalHost); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, model, temporalHost string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.LoadSettings(ctx)
	if err != nil {
		return err
	}
	if addr != "" {
		settings.ListenAddr = addr
	}
	if model != "" {
		settings.Model = model
	}

	logger := log.New("web", settings.Verbose)

	pl, closePlanner, err := planner.FromSettings(settings, temporalHost, log.SubLogger(logger, settings.Executor), nil)
	if err != nil {
		return err
	}
	defer closePlanner()

	p, err := pages.NewPages()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           web.Router(logger, pl, p, settings.Verbose),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", settings.ListenAddr, "executor", settings.Executor, "model", settings.Model)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
