package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajvimal/scorecard/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with request
// logging and bounded by cfg.Timeout. eventRepo may be nil, in which case
// requests are only logged to logger.
//
// A failed request is returned as is. Nothing here retries: a failed review
// is shown to the user, who decides whether to run it again.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger zerolog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return decorate(base, cfg, eventRepo, logger), nil
}

// decorate applies the middleware chain: caller → logging → timeout → base.
func decorate(base Provider, cfg Config, eventRepo store.EventRepo, logger zerolog.Logger) Provider {
	return WithLogging(withTimeout(base, cfg.Timeout), eventRepo, logger)
}

type boundedProvider struct {
	Provider
	limit time.Duration
}

// withTimeout caps each Generate call at limit. A zero limit returns p.
func withTimeout(p Provider, limit time.Duration) Provider {
	if limit <= 0 {
		return p
	}
	return &boundedProvider{Provider: p, limit: limit}
}

func (b *boundedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, b.limit)
	defer cancel()
	return b.Provider.Generate(ctx, req)
}
