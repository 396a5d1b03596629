// ABOUTME: Reduces an async invocation's event stream to a terminal snapshot
// ABOUTME: Error events short-circuit; exhaustion returns the last snapshot as-is

package tools

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

// eventSource is the finite, consume-once event sequence the follower folds.
type eventSource interface {
	Next() (*platform.InvocationEvent, error)
	Close() error
}

// followInvocation consumes the event stream until a terminal invocation
// state or exhaustion.
//
// An error event returns immediately with the error payload attached to the
// original invocation id. An invocation_state event replaces the tracked
// snapshot, and the fold stops once the snapshot's status is terminal.
//
// If the stream ends without ever reaching a terminal status, the last seen
// snapshot is returned as-is, even when still running: no error event was
// observed, so this is success-shaped output. Callers can see a "running"
// status on a call the tool otherwise treats as complete.
func followInvocation(start *platform.Invocation, events eventSource, logger *slog.Logger) *platform.Invocation {
	defer func() {
		_ = events.Close()
	}()

	last := *start
	for {
		ev, err := events.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn("invocation event stream ended abnormally",
					"invocation_id", last.ID,
					"error", err,
				)
			}
			return &last
		}

		switch ev.Type {
		case platform.EventError:
			last.Error = ev.Message
			return &last

		case platform.EventInvocationState:
			if ev.Invocation == nil {
				continue
			}
			snapshot := *ev.Invocation
			if snapshot.ID == "" {
				snapshot.ID = last.ID
			}
			last = snapshot
			if last.Status.IsTerminal() {
				return &last
			}

		default:
			// Unknown event types are skipped, not fatal.
		}
	}
}
