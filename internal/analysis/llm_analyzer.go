package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rajvimal/scorecard/internal/llm"
	"github.com/rajvimal/scorecard/internal/resume"
)

// Config controls the LLM request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended request settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// LLMAnalyzer implements Analyzer with an llm.Provider.
type LLMAnalyzer struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMAnalyzer.
func New(provider llm.Provider, cfg Config) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider, config: cfg}
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, r *resume.Resume) (*Feedback, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReview)

	userMsg, err := buildUserMessage(r)
	if err != nil {
		return nil, err
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      FeedbackSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	return decodeFeedback(resp.Content)
}

func decodeFeedback(raw json.RawMessage) (*Feedback, error) {
	var fb Feedback
	if err := json.Unmarshal(raw, &fb); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	fb.normalize()
	return &fb, nil
}
