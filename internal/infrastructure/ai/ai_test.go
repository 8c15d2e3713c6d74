package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gemini
// ──────────────────────────────────────────────────────────────────────────────

func TestGemini_ExtraeCampos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		body, _ := io.ReadAll(r.Body)
		var req geminiRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "calle 10")

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"name\":\" Ana \",\"phone\":\"300\",\"address\":\"calle 10\",\"cleanNote\":\"2 rosas\"}"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("k", "gemini-test").WithBaseURL(srv.URL)
	got, err := svc.ExtractOrder(context.Background(), "Ana 300 calle 10, 2 rosas")
	require.NoError(t, err)
	assert.Equal(t, &dto.ExtractedOrder{Name: "Ana", Phone: "300", Address: "calle 10", Note: "2 rosas"}, got)
}

func TestGemini_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).ExtractOrder(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestGemini_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "m").ExtractOrder(context.Background(), "x")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anthropic
// ──────────────────────────────────────────────────────────────────────────────

func TestAnthropic_ExtraeJSONEnvueltoEnMarkdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		resp := map[string]any{"content": []map[string]string{{
			"type": "text",
			"text": "Aquí está:\n```json\n{\"name\":\"Luis\",\"phone\":\"311\",\"address\":\"cra 5\",\"cleanNote\":\"\"}\n```",
		}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	got, err := NewAnthropicService("k", "m").WithURL(srv.URL).ExtractOrder(context.Background(), "Luis 311 cra 5")
	require.NoError(t, err)
	assert.Equal(t, "Luis", got.Name)
	assert.Equal(t, "cra 5", got.Address)
	assert.Empty(t, got.Note)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`texto previo {"a":1} fin`))
	assert.Empty(t, extractJSON("sin json"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Throttle
// ──────────────────────────────────────────────────────────────────────────────

type countingExtractor struct{ calls atomic.Int32 }

func (c *countingExtractor) ExtractOrder(context.Context, string) (*dto.ExtractedOrder, error) {
	c.calls.Add(1)
	return &dto.ExtractedOrder{Name: "x"}, nil
}

func TestThrottledExtractor_RespetaContexto(t *testing.T) {
	inner := &countingExtractor{}
	th := NewThrottledExtractor(inner, 1) // 1 por minuto

	_, err := th.ExtractOrder(context.Background(), "a")
	require.NoError(t, err, "la primera llamada usa la ráfaga")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = th.ExtractOrder(ctx, "b")
	require.Error(t, err, "la segunda no alcanza turno antes del timeout")
	assert.True(t, strings.HasPrefix(err.Error(), "AI:"))
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestThrottledExtractor_SinLimite(t *testing.T) {
	inner := &countingExtractor{}
	th := NewThrottledExtractor(inner, 0)
	for i := 0; i < 5; i++ {
		_, err := th.ExtractOrder(context.Background(), "a")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(5), inner.calls.Load())
}
