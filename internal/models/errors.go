package models

import (
	"fmt"
	"strings"
)

// Application error type names used across the Temporal workflow boundary.
const (
	ErrTypeConfig           = "ConfigError"
	ErrTypeUpstreamService  = "UpstreamServiceError"
	ErrTypeSchemaValidation = "SchemaValidationError"
)

// ConfigError reports a malformed or incomplete configuration document.
// It is fatal at startup.
type ConfigError struct {
	Path string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, " [%s]", e.Key)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UpstreamKind classifies a failed model call.
type UpstreamKind string

const (
	UpstreamAuth            UpstreamKind = "auth"
	UpstreamRateLimit       UpstreamKind = "rate_limit"
	UpstreamTransient       UpstreamKind = "transient"
	UpstreamContextOverflow UpstreamKind = "context_overflow"
	UpstreamFatal           UpstreamKind = "fatal"
)

// UpstreamServiceError reports a failed call to the AI service. It is never
// retried by this system.
type UpstreamServiceError struct {
	Step       string
	Kind       UpstreamKind
	StatusCode int
	Err        error
}

func (e *UpstreamServiceError) Error() string {
	var b strings.Builder
	b.WriteString("upstream service error")
	if e.Step != "" {
		fmt.Fprintf(&b, " in step %s", e.Step)
	}
	fmt.Fprintf(&b, " (%s", e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ", status %d", e.StatusCode)
	}
	b.WriteString(")")
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }

// SchemaValidationError reports terminal output that could not be coerced
// into a ProjectPlan. Raw keeps the offending text for diagnosis.
type SchemaValidationError struct {
	Raw string
	Err error
}

func (e *SchemaValidationError) Error() string {
	if e.Err == nil {
		return "schema validation failed"
	}
	return "schema validation failed: " + e.Err.Error()
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }
