package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/mfateev/project-planner/internal/models"
)

// Executor names.
const (
	ExecutorLocal    = "local"
	ExecutorTemporal = "temporal"
)

// Settings is read once from the environment at process start.
type Settings struct {
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	Model           string        `env:"OPENAI_MODEL_NAME, default=gpt-4o-mini"`
	Provider        string        `env:"PLANNER_PROVIDER"`
	Temperature     float64       `env:"PLANNER_TEMPERATURE, default=0"`
	MaxTokens       int           `env:"PLANNER_MAX_TOKENS, default=4096"`
	AgentsConfig    string        `env:"PLANNER_AGENTS_CONFIG"`
	TasksConfig     string        `env:"PLANNER_TASKS_CONFIG"`
	ListenAddr      string        `env:"PLANNER_LISTEN_ADDR, default=127.0.0.1:8501"`
	Executor        string        `env:"PLANNER_EXECUTOR, default=local"`
	TaskQueue       string        `env:"PLANNER_TASK_QUEUE, default=project-planner"`
	StepTimeout     time.Duration `env:"PLANNER_STEP_TIMEOUT, default=5m"`
	Verbose         bool          `env:"PLANNER_VERBOSE, default=false"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings(ctx context.Context) (*Settings, error) {
	return LoadSettingsFrom(ctx, envconfig.OsLookuper())
}

// LoadSettingsFrom reads Settings through an arbitrary lookuper.
func LoadSettingsFrom(ctx context.Context, l envconfig.Lookuper) (*Settings, error) {
	var s Settings
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: l,
	}); err != nil {
		return nil, &models.ConfigError{Path: "environment", Err: err}
	}
	return &s, nil
}

// Validate checks the settings every entry point needs.
func (s *Settings) Validate() error {
	switch s.Executor {
	case ExecutorLocal, ExecutorTemporal:
	default:
		return &models.ConfigError{Path: "environment", Key: "PLANNER_EXECUTOR",
			Err: fmt.Errorf("unsupported executor %q (supported: local, temporal)", s.Executor)}
	}
	switch s.Provider {
	case "", models.ProviderOpenAI, models.ProviderAnthropic:
	default:
		return &models.ConfigError{Path: "environment", Key: "PLANNER_PROVIDER",
			Err: fmt.Errorf("unsupported provider %q (supported: openai, anthropic)", s.Provider)}
	}
	if s.Model == "" {
		return &models.ConfigError{Path: "environment", Key: "OPENAI_MODEL_NAME", Err: fmt.Errorf("model must be set")}
	}
	if s.StepTimeout <= 0 {
		return &models.ConfigError{Path: "environment", Key: "PLANNER_STEP_TIMEOUT", Err: fmt.Errorf("must be positive")}
	}
	if s.MaxTokens < 0 {
		return &models.ConfigError{Path: "environment", Key: "PLANNER_MAX_TOKENS", Err: fmt.Errorf("must not be negative")}
	}
	return nil
}

// ValidateCredentials checks that the key for the configured provider is
// present. Only processes that call the model need it.
func (s *Settings) ValidateCredentials() error {
	switch s.ModelConfig().ResolvedProvider() {
	case models.ProviderAnthropic:
		if s.AnthropicAPIKey == "" {
			return &models.ConfigError{Path: "environment", Key: "ANTHROPIC_API_KEY", Err: fmt.Errorf("required for model %s", s.Model)}
		}
	default:
		if s.OpenAIAPIKey == "" {
			return &models.ConfigError{Path: "environment", Key: "OPENAI_API_KEY", Err: fmt.Errorf("required for model %s", s.Model)}
		}
	}
	return nil
}

// ValidateAnyCredential requires at least one provider key. The key for a
// run's own provider is checked per request by llm.MultiProviderClient.
func (s *Settings) ValidateAnyCredential() error {
	if s.OpenAIAPIKey == "" && s.AnthropicAPIKey == "" {
		return &models.ConfigError{Path: "environment", Key: "OPENAI_API_KEY", Err: fmt.Errorf("at least one of OPENAI_API_KEY or ANTHROPIC_API_KEY is required")}
	}
	return nil
}

// ModelConfig returns the model selection passed to every step.
func (s *Settings) ModelConfig() models.ModelConfig {
	return models.ModelConfig{
		Provider:    s.Provider,
		Model:       s.Model,
		Temperature: s.Temperature,
		MaxTokens:   s.MaxTokens,
	}
}

// Credentials returns the API keys as an explicit value.
func (s *Settings) Credentials() models.Credentials {
	return models.Credentials{
		OpenAIAPIKey:    s.OpenAIAPIKey,
		AnthropicAPIKey: s.AnthropicAPIKey,
	}
}
