// Temporal worker for the project planner.
//
// Registers ProjectPlanWorkflow and the RunStep activity on
// PLANNER_TASK_QUEUE. Model credentials are read here and never leave the
// worker process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.temporal.io/sdk/worker"

	"github.com/mfateev/project-planner/internal/activities"
	"github.com/mfateev/project-planner/internal/config"
	"github.com/mfateev/project-planner/internal/llm"
	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/planner"
	"github.com/mfateev/project-planner/internal/workflow"
)

func main() {
	temporalHost := flag.String("temporal-host", "", "Temporal server address (default: from TEMPORAL_ADDRESS or localhost:7233)")
	flag.Parse()

	if err := run(*temporalHost); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(temporalHost string) error {
	settings, err := config.LoadSettings(context.Background())
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := settings.ValidateAnyCredential(); err != nil {
		return err
	}

	logger := log.New("worker", settings.Verbose)

	c, err := planner.DialTemporal(temporalHost, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	w := worker.New(c, settings.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflow.ProjectPlanWorkflow)
	w.RegisterActivity(activities.NewStepActivities(llm.NewMultiProviderClient(settings.Credentials())))

	logger.Info("worker started", "task_queue", settings.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	return nil
}
