// ABOUTME: Tests for folding invocation event streams into terminal snapshots
// ABOUTME: Covers terminal stop, error short-circuit, and stream exhaustion

package tools

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

// sliceEvents replays a fixed event sequence and then reports the given
// terminal error (io.EOF for a clean end).
type sliceEvents struct {
	events []platform.InvocationEvent
	final  error
	closed bool
}

func (s *sliceEvents) Next() (*platform.InvocationEvent, error) {
	if len(s.events) == 0 {
		if s.final != nil {
			return nil, s.final
		}
		return nil, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return &ev, nil
}

func (s *sliceEvents) Close() error {
	s.closed = true
	return nil
}

func stateEvent(id string, status platform.InvocationStatus, output string) platform.InvocationEvent {
	return platform.InvocationEvent{
		Type: platform.EventInvocationState,
		Invocation: &platform.Invocation{
			ID:     id,
			Status: status,
			Output: output,
		},
	}
}

func TestFollowInvocation(t *testing.T) {
	start := &platform.Invocation{ID: "inv-1", Status: platform.InvocationQueued}

	t.Run("stops at the first terminal state", func(t *testing.T) {
		src := &sliceEvents{events: []platform.InvocationEvent{
			stateEvent("inv-1", platform.InvocationRunning, ""),
			stateEvent("inv-1", platform.InvocationSucceeded, "done"),
			stateEvent("inv-1", platform.InvocationFailed, "never read"),
		}}

		got := followInvocation(start, src, slog.Default())
		assert.Equal(t, platform.InvocationSucceeded, got.Status)
		assert.Equal(t, "done", got.Output)
		assert.True(t, src.closed)
		assert.Len(t, src.events, 1, "terminal state should stop consumption")
	})

	t.Run("error event short-circuits with the original id", func(t *testing.T) {
		src := &sliceEvents{events: []platform.InvocationEvent{
			stateEvent("inv-1", platform.InvocationRunning, ""),
			{Type: platform.EventError, Message: "action crashed"},
		}}

		got := followInvocation(start, src, slog.Default())
		assert.Equal(t, "inv-1", got.ID)
		assert.Equal(t, "action crashed", got.Error)
	})

	t.Run("exhausted stream returns the last snapshot even when non-terminal", func(t *testing.T) {
		src := &sliceEvents{events: []platform.InvocationEvent{
			stateEvent("inv-1", platform.InvocationRunning, "partial"),
		}}

		got := followInvocation(start, src, slog.Default())
		assert.Equal(t, platform.InvocationRunning, got.Status)
		assert.Equal(t, "partial", got.Output)
		assert.Empty(t, got.Error)
	})

	t.Run("empty stream returns the starting snapshot", func(t *testing.T) {
		src := &sliceEvents{}
		got := followInvocation(start, src, slog.Default())
		assert.Equal(t, platform.InvocationQueued, got.Status)
		assert.Equal(t, "inv-1", got.ID)
	})

	t.Run("abnormal stream end still returns the last snapshot", func(t *testing.T) {
		src := &sliceEvents{
			events: []platform.InvocationEvent{stateEvent("inv-1", platform.InvocationRunning, "")},
			final:  errors.New("connection reset"),
		}
		got := followInvocation(start, src, slog.Default())
		assert.Equal(t, platform.InvocationRunning, got.Status)
	})

	t.Run("state event without a snapshot is skipped", func(t *testing.T) {
		src := &sliceEvents{events: []platform.InvocationEvent{
			{Type: platform.EventInvocationState},
			stateEvent("inv-1", platform.InvocationSucceeded, "ok"),
		}}
		got := followInvocation(start, src, slog.Default())
		assert.Equal(t, platform.InvocationSucceeded, got.Status)
	})

	t.Run("snapshot missing an id inherits the tracked one", func(t *testing.T) {
		src := &sliceEvents{events: []platform.InvocationEvent{
			stateEvent("", platform.InvocationSucceeded, "ok"),
		}}
		got := followInvocation(start, src, slog.Default())
		assert.Equal(t, "inv-1", got.ID)
	})
}
