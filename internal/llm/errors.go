package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"

	"github.com/mfateev/project-planner/internal/models"
)

// contextOverflowMarkers are error substrings providers use when the prompt
// does not fit the model's context window.
var contextOverflowMarkers = []string{
	"context length",
	"context_length_exceeded",
	"maximum context",
	"prompt is too long",
}

// classifyError converts a provider error into *models.UpstreamServiceError.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if isContextOverflow(err) {
		return &models.UpstreamServiceError{Kind: models.UpstreamContextOverflow, Err: err}
	}

	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return classifyByStatusCode(oaErr.StatusCode, err)
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return classifyByStatusCode(anErr.StatusCode, err)
	}

	if errors.Is(err, context.Canceled) {
		return &models.UpstreamServiceError{Kind: models.UpstreamFatal, Err: err}
	}
	// Network errors, deadlines and anything unrecognised.
	return &models.UpstreamServiceError{Kind: models.UpstreamTransient, Err: err}
}

// classifyByStatusCode maps an HTTP status code onto an upstream error kind.
func classifyByStatusCode(statusCode int, err error) *models.UpstreamServiceError {
	kind := models.UpstreamFatal
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		kind = models.UpstreamAuth
	case statusCode == http.StatusTooManyRequests:
		kind = models.UpstreamRateLimit
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusConflict:
		kind = models.UpstreamTransient
	case statusCode >= 500:
		kind = models.UpstreamTransient
	}
	return &models.UpstreamServiceError{Kind: kind, StatusCode: statusCode, Err: err}
}

func isContextOverflow(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range contextOverflowMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
