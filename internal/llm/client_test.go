package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

func generateBody(text string) string {
	return `{"modelVersion":"gemini-3-flash-preview","candidates":[{"content":{"parts":[{"text":` +
		mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user prompt", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "system prompt", req.SystemInstruction.Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(generateBody(`{"CLIENT_NOM":"Joan Marc"}`)))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskSuggestValues,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"CLIENT_NOM":"Joan Marc"}`, resp.Text)
	assert.Equal(t, "gemini-3-flash-preview", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestGeminiClient_Generate_JSONMimeType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		w.Write([]byte(generateBody(`{}`)))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskSuggestValues,
		UserPrompt:   "test",
		JSONResponse: true,
	})
	require.NoError(t, err)
}

func TestGeminiClient_Generate_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSummary,
		UserPrompt: "test",
	})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestGeminiClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskSummary: {Temperature: 0.6, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSummary,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGeminiClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSummary,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeminiClient_Generate_RetryOnTransientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(generateBody("ok")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewGeminiClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSummary,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, attempts)
}

func TestGeminiClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0

	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSummary,
		UserPrompt: "test",
	})
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnCallComplete(e CallEvent) { r.events = append(r.events, e) }

func TestGeminiClient_ObserverReceivesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(generateBody("ok")))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewGeminiClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSuggestChapters,
		UserPrompt: "test",
	})
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, TaskSuggestChapters, obs.events[0].Task)
}
