package planner

import (
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalenv "go.temporal.io/sdk/contrib/envconfig"
	tlog "go.temporal.io/sdk/log"

	"github.com/mfateev/project-planner/internal/config"
	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/llm"
)

// DialTemporal connects using the standard TEMPORAL_* environment and config
// file. A non-empty hostPort overrides the address.
func DialTemporal(hostPort string, logger *slog.Logger) (client.Client, error) {
	opts, err := temporalenv.LoadClientOptions(temporalenv.LoadClientOptionsRequest{})
	if err != nil {
		return nil, fmt.Errorf("load temporal client options: %w", err)
	}
	if hostPort != "" {
		opts.HostPort = hostPort
	}
	opts.Logger = tlog.NewStructuredLogger(logger)

	c, err := client.Dial(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Temporal: %w", err)
	}
	return c, nil
}

// FromSettings assembles the crew and the executor named by
// settings.Executor. The returned func releases the Temporal connection, if
// any. onStatus may be nil.
func FromSettings(settings *config.Settings, temporalHost string, logger *slog.Logger, onStatus crew.Observer) (Planner, func(), error) {
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}
	cr, err := crew.Load(settings.AgentsConfig, settings.TasksConfig)
	if err != nil {
		return nil, nil, err
	}

	switch settings.Executor {
	case config.ExecutorTemporal:
		c, err := DialTemporal(temporalHost, logger)
		if err != nil {
			return nil, nil, err
		}
		t := NewTemporal(c, settings.TaskQueue, cr, settings.ModelConfig(), settings.StepTimeout)
		t.OnStatus = onStatus
		return t, c.Close, nil

	default:
		if err := settings.ValidateCredentials(); err != nil {
			return nil, nil, err
		}
		return &Local{
			Crew:        cr,
			Client:      llm.NewMultiProviderClient(settings.Credentials()),
			Model:       settings.ModelConfig(),
			StepTimeout: settings.StepTimeout,
			OnStatus:    onStatus,
		}, func() {}, nil
	}
}
