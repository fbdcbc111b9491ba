package cmd

import (
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajvimal/scorecard/internal/review"
)

func TestObserverDoesNotDropEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		events := make(chan review.Event, 1)
		done := make(chan struct{})
		observe := observer(events, done)

		kinds := []review.EventKind{review.EventStage, review.EventStage, review.EventResult}
		go func() {
			for _, k := range kinds {
				observe(review.Event{Kind: k})
			}
		}()

		var got []review.EventKind
		for range kinds {
			got = append(got, (<-events).Kind)
		}
		assert.Equal(t, kinds, got)
	})
}

func TestObserverReleasedByDone(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		events := make(chan review.Event)
		done := make(chan struct{})
		observe := observer(events, done)

		returned := make(chan struct{})
		go func() {
			observe(review.Event{Kind: review.EventClosed})
			close(returned)
		}()

		synctest.Wait()
		select {
		case <-returned:
			t.Fatal("observer returned without a reader")
		default:
		}

		close(done)
		synctest.Wait()
		select {
		case <-returned:
		default:
			require.Fail(t, "observer still blocked after done")
		}
	})
}
