// ABOUTME: Uniform success/error envelope returned by every tool operation
// ABOUTME: Content items are text or base64 images; failures are error-flagged text

package tools

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Content item types.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

// Content is one item in a result envelope.
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`     // base64-encoded image bytes
	MimeType string `json:"mimeType,omitempty"` // image mime type
}

// TextContent builds a text content item.
func TextContent(text string) Content {
	return Content{Type: ContentTypeText, Text: text}
}

// ImageContent builds an image content item from raw bytes.
func ImageContent(data []byte, mimeType string) Content {
	return Content{
		Type:     ContentTypeImage,
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}
}

// Result is the envelope every tool handler returns. Handler failures are
// rendered inside it rather than thrown past the dispatcher boundary.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// NewTextResult builds a success envelope with one formatted text item.
func NewTextResult(format string, args ...any) *Result {
	return &Result{Content: []Content{TextContent(fmt.Sprintf(format, args...))}}
}

// NewErrorResult builds an error envelope with one formatted text item.
// Used for expected user input mistakes and upstream failures alike.
func NewErrorResult(format string, args ...any) *Result {
	return &Result{
		Content: []Content{TextContent(fmt.Sprintf(format, args...))},
		IsError: true,
	}
}

// NewJSONResult renders v as indented JSON inside a text item.
func NewJSONResult(v any) *Result {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return NewErrorResult("encoding result: %v", err)
	}
	return &Result{Content: []Content{TextContent(string(data))}}
}

// upstreamError shapes a platform failure into an error envelope naming the
// failing tool and action. Retrying is a caller decision, never automatic.
func upstreamError(tool, action string, err error) *Result {
	return NewErrorResult("%s: %s: %v", tool, action, err)
}
