package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_Default(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestIntoContext_RoundTrip(t *testing.T) {
	l := New("planner", false)
	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

// TestNewHandlerTo_Prefix verifies records carry the prefix and level filtering applies.
func TestNewHandlerTo_Prefix(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandlerTo(&buf, "web", false))

	l.Debug("hidden")
	l.Info("Plan requested", "project", "Website")

	out := buf.String()
	assert.Contains(t, out, "web")
	assert.Contains(t, out, "Plan requested")
	assert.Contains(t, out, "Website")
	assert.NotContains(t, out, "hidden")
}

func TestSubLogger_ExtendsPrefix(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(NewHandlerTo(&buf, "planner", true))

	SubLogger(base, "temporal").Info("connected")

	assert.Contains(t, buf.String(), "planner/temporal")
}
