package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func openAIChatHandler(t *testing.T, content string, finish openai.FinishReason) http.HandlerFunc {
	return openAIChatRecorder(t, content, finish, nil)
}

// openAIChatRecorder replies like openAIChatHandler and sends each decoded
// request body to bodies.
func openAIChatRecorder(t *testing.T, content string, finish openai.FinishReason, bodies chan<- map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		if bodies != nil {
			bodies <- body
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": finish,
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIChatHandler(t, `{"score":95,"strengths":["Builds editorial teams"]}`, openai.FinishReasonStop))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a talent acquisition leader.",
		Messages:  []Message{{Role: RoleUser, Content: "Review this résumé."}},
		Schema:    feedbackSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, 65, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
	assert.JSONEq(t, `{"score":95,"strengths":["Builds editorial teams"]}`, string(resp.Content))
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIChatHandler(t, `{"strengths":"one"}`, openai.FinishReasonStop))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Review this résumé."}},
		Schema:    feedbackSchema(),
		MaxTokens: 256,
	})
	var fe *FeedbackError
	require.True(t, errors.As(err, &fe), "expected FeedbackError, got %v", err)
	assert.JSONEq(t, `{"strengths":"one"}`, string(fe.Content))
}

func TestOpenAIProvider_TruncatedFeedback(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIChatHandler(t, `{"score":95,"stren`, openai.FinishReasonLength))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Review this résumé."}},
		Schema:    feedbackSchema(),
		MaxTokens: 8,
	})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestOpenAIProvider_SendsSchema(t *testing.T) {
	bodies := make(chan map[string]any, 1)
	p := newTestOpenAIProvider(t, openAIChatRecorder(t, string(okFeedback), openai.FinishReasonStop, bodies))

	_, err := p.Generate(context.Background(), Request{
		System:   "recruiter",
		Messages: []Message{{Role: RoleUser, Content: "Review this résumé."}},
		Schema:   feedbackSchema(),
	})
	require.NoError(t, err)

	body := <-bodies
	msgs, _ := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])

	format, _ := body["response_format"].(map[string]any)
	require.NotNil(t, format)
	assert.Equal(t, "json_schema", format["type"])
	js, _ := format["json_schema"].(map[string]any)
	assert.Equal(t, "test-feedback", js["name"])
	assert.Equal(t, "Recruiter-facing review of a résumé", js["description"])
}

func TestOpenAIProvider_ErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "server_error", "message": "nope"},
				})
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			var pe *ProviderError
			require.True(t, errors.As(err, &pe), "unexpected error type %T (%v)", err, err)
			assert.Equal(t, "openai", pe.Provider)
			assert.Equal(t, status, pe.Status)
			assert.Equal(t, status == http.StatusTooManyRequests, pe.RateLimited())
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	require.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: "http://localhost:1/v1"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o", p.ModelID())
}

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{})
	require.Error(t, err)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "or-key", Model: "google/gemini-2.5-flash"})
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())
	assert.Equal(t, "google/gemini-2.5-flash", p.ModelID())
}
