package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestAnnotate_Success(t *testing.T) {
	var gotReq generateRequest
	var gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]string{{"text": "gemini "}, {"text": "annotation"}},
				}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "AIza-test", BaseURL: server.URL})
	require.NoError(t, err)

	annotation, err := svc.Annotate(context.Background(), "be scholarly", "a poem", driven.GenerateOptions{
		MaxTokens:   512,
		Temperature: 0.3,
	})

	require.NoError(t, err)
	// Multi-part candidates are concatenated.
	assert.Equal(t, "gemini annotation", annotation)
	assert.Equal(t, "AIza-test", gotKey)

	require.NotNil(t, gotReq.SystemInstruction)
	require.Len(t, gotReq.SystemInstruction.Parts, 1)
	assert.Equal(t, "be scholarly", gotReq.SystemInstruction.Parts[0].Text)

	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "user", gotReq.Contents[0].Role)
	assert.Equal(t, "a poem", gotReq.Contents[0].Parts[0].Text)

	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, 512, gotReq.GenerationConfig.MaxOutputTokens)
	assert.InDelta(t, 0.3, gotReq.GenerationConfig.Temperature, 1e-9)
}

func TestAnnotate_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Annotate(context.Background(), "sys", "text", driven.GenerateOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestAnnotate_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Annotate(context.Background(), "sys", "text", driven.GenerateOptions{})

	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
}

func TestAnnotate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Annotate(context.Background(), "sys", "text", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(context.Background()))
}
