package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: domain.ErrAuthFailed},
		{name: "forbidden", status: http.StatusForbidden, want: domain.ErrAuthFailed},
		{name: "request timeout", status: http.StatusRequestTimeout, want: domain.ErrProviderUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, want: domain.ErrProviderUnavailable},
		{name: "server error", status: http.StatusInternalServerError, want: domain.ErrProviderUnavailable},
		{name: "bad gateway", status: http.StatusBadGateway, want: domain.ErrProviderUnavailable},
		{name: "bad request", status: http.StatusBadRequest, want: domain.ErrBadRequest},
		{name: "not found", status: http.StatusNotFound, want: domain.ErrBadRequest},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, want: domain.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyStatus("groq", tt.status, "detail")

			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "groq")
		})
	}
}

func TestClassifyStatus_RetryDecision(t *testing.T) {
	assert.True(t, domain.IsTransient(ClassifyStatus("openai", http.StatusTooManyRequests, "")))
	assert.False(t, domain.IsTransient(ClassifyStatus("openai", http.StatusUnauthorized, "")))
	assert.False(t, domain.IsTransient(ClassifyStatus("openai", http.StatusBadRequest, "")))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransport_Timeout(t *testing.T) {
	err := ClassifyTransport("ollama", timeoutErr{})

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "timed out")
}

func TestClassifyTransport_CancellationPassesThrough(t *testing.T) {
	err := ClassifyTransport("ollama", context.Canceled)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, domain.IsTransient(err))
}

func TestClassifyTransport_GenericFailure(t *testing.T) {
	err := ClassifyTransport("google", errors.New("connection refused"))

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}
