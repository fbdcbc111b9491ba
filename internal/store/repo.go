package store

import (
	"context"
	"time"
)

// Flag names persisted across launches.
const (
	FlagIntroSeen    = "intro_seen_v1"
	FlagTutorialSeen = "has_visited_v1"
)

// FlagRepo stores presence-only boolean flags.
type FlagRepo interface {
	// IsSet reports whether the flag has been set.
	IsSet(ctx context.Context, name string) (bool, error)

	// Set marks the flag. Setting an already set flag keeps the original time.
	Set(ctx context.Context, name string) error

	// Clear removes the flag. Clearing an unset flag is not an error.
	Clear(ctx context.Context, name string) error

	// ClearAll removes every flag.
	ClearAll(ctx context.Context) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
}
