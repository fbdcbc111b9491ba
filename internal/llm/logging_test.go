package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajvimal/scorecard/internal/store"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLogging_RecordsSuccess(t *testing.T) {
	st := openTestStore(t)
	var buf bytes.Buffer
	mock := NewMockProvider(MockResponse{
		Content: okFeedback,
		Usage:   Usage{InputTokens: 120, OutputTokens: 40},
	})
	p := WithLogging(mock, st.EventRepo(), zerolog.New(&buf))

	ctx := WithPurpose(context.Background(), PurposeReview)
	_, err := p.Generate(ctx, Request{
		System:   "recruiter",
		Messages: []Message{{Role: RoleUser, Content: "Review Raj"}},
		Schema:   feedbackSchema(),
	})
	require.NoError(t, err)

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, PurposeReview, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 120, ev.InputTokens)
	assert.Contains(t, ev.RequestBody, "[system]\nrecruiter")
	assert.Contains(t, ev.RequestBody, "[schema: test-feedback]")
	assert.JSONEq(t, string(okFeedback), ev.ResponseBody)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "llm request", line["message"])
	assert.Equal(t, "review", line["purpose"])
}

func TestLogging_RecordsFailure(t *testing.T) {
	st := openTestStore(t)
	mock := NewMockProvider(MockResponse{Err: errors.New("quota exhausted")})
	p := WithLogging(mock, st.EventRepo(), nopLogger())

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, "quota exhausted", events[0].ErrorMessage)
	assert.Equal(t, "unknown", events[0].Purpose)
}

func TestLogging_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: okFeedback}), nil, nopLogger())
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.Name())
}
