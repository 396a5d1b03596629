// ABOUTME: Server-sent event stream consumption for async invocations
// ABOUTME: Parses SSE frames into tagged invocation events, consumed once

package platform

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Event type names on the invocation stream.
const (
	EventInvocationState = "invocation_state"
	EventError           = "error"
)

// InvocationEvent is one tagged event from an invocation stream.
type InvocationEvent struct {
	Type       string
	Invocation *Invocation // populated for invocation_state events
	Message    string      // populated for error events
}

// InvocationEventStream is a finite, non-restartable sequence of invocation
// events. Callers iterate it once with Next and must Close it.
type InvocationEventStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

// FollowInvocationEvents opens the event stream for an invocation created
// in asynchronous mode.
func (c *Client) FollowInvocationEvents(ctx context.Context, invocationID string) (*InvocationEventStream, error) {
	resp, err := c.send(ctx, http.MethodGet, "/invocations/"+url.PathEscape(invocationID)+"/events", nil, nil, "text/event-stream")
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	return &InvocationEventStream{body: resp.Body, scanner: scanner}, nil
}

// Next returns the next event, or io.EOF when the stream ends. The stream
// ending without a terminal invocation state is not an error here; the
// follower decides what an exhausted stream means.
func (s *InvocationEventStream) Next() (*InvocationEvent, error) {
	eventType := ""
	var data strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			// Frame boundary: dispatch if we accumulated anything.
			if eventType == "" && data.Len() == 0 {
				continue
			}
			return parseEvent(eventType, data.String())
		}
		switch {
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case strings.HasPrefix(line, ":"):
			// Comment line, keep-alive. Ignored.
		}
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading event stream: %w", err)
	}
	// A final unterminated frame still counts.
	if eventType != "" || data.Len() > 0 {
		return parseEvent(eventType, data.String())
	}
	return nil, io.EOF
}

// Close releases the underlying connection.
func (s *InvocationEventStream) Close() error {
	return s.body.Close()
}

// parseEvent decodes one SSE frame into a tagged event.
func parseEvent(eventType, data string) (*InvocationEvent, error) {
	switch eventType {
	case EventInvocationState:
		var inv Invocation
		if err := json.Unmarshal([]byte(data), &inv); err != nil {
			return nil, fmt.Errorf("decoding invocation_state event: %w", err)
		}
		return &InvocationEvent{Type: EventInvocationState, Invocation: &inv}, nil

	case EventError:
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil || payload.Message == "" {
			// Error payloads without the expected shape still carry signal.
			payload.Message = data
		}
		return &InvocationEvent{Type: EventError, Message: payload.Message}, nil

	default:
		// Unknown event types flow through untyped; the follower skips them.
		return &InvocationEvent{Type: eventType, Message: data}, nil
	}
}
