package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scorecard.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.FlagRepo().Set(context.Background(), FlagIntroSeen))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	set, err := s2.FlagRepo().IsSet(context.Background(), FlagIntroSeen)
	require.NoError(t, err)
	assert.True(t, set, "flag should survive reopen")
}

func TestFlags(t *testing.T) {
	s := openTestStore(t)
	repo := s.FlagRepo()
	ctx := context.Background()

	set, err := repo.IsSet(ctx, FlagTutorialSeen)
	require.NoError(t, err)
	assert.False(t, set)

	require.NoError(t, repo.Set(ctx, FlagTutorialSeen))
	require.NoError(t, repo.Set(ctx, FlagTutorialSeen), "setting twice is not an error")

	set, err = repo.IsSet(ctx, FlagTutorialSeen)
	require.NoError(t, err)
	assert.True(t, set)

	set, err = repo.IsSet(ctx, FlagIntroSeen)
	require.NoError(t, err)
	assert.False(t, set, "flags are independent")

	require.NoError(t, repo.Clear(ctx, FlagTutorialSeen))
	require.NoError(t, repo.Clear(ctx, FlagTutorialSeen), "clearing twice is not an error")

	set, err = repo.IsSet(ctx, FlagTutorialSeen)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestFlagsClearAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.FlagRepo()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, FlagIntroSeen))
	require.NoError(t, repo.Set(ctx, FlagTutorialSeen))
	require.NoError(t, repo.ClearAll(ctx))

	for _, name := range []string{FlagIntroSeen, FlagTutorialSeen} {
		set, err := repo.IsSet(ctx, name)
		require.NoError(t, err)
		assert.False(t, set, name)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := range 3 {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      fmt.Sprintf("resume-review-%d", i),
			InputTokens:  100 + i,
			OutputTokens: 50,
			LatencyMs:    int64(200 * i),
			Success:      i != 1,
			ErrorMessage: map[bool]string{true: "", false: "boom"}[i != 1],
		})
		require.NoError(t, err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first.
	assert.Equal(t, "resume-review-2", events[0].Purpose)
	assert.Equal(t, "resume-review-0", events[2].Purpose)
	assert.False(t, events[1].Success)
	assert.Equal(t, "boom", events[1].ErrorMessage)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)

	got, err := repo.GetLLMEvent(ctx, events[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 100, got.InputTokens)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
