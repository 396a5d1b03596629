// ABOUTME: Static prompt catalogue and the prompts/list, prompts/get handlers
// ABOUTME: Prompts are declarative workflow guides, no argument substitution

package mcp

import (
	"encoding/json"
	"net/http"
)

// Prompt is one static workflow prompt.
type Prompt struct {
	Name        string
	Description string
	Text        string
}

// PromptInfo is the wire shape for prompts/list entries.
type PromptInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListPromptsResult is the result for prompts/list.
type ListPromptsResult struct {
	Prompts []PromptInfo `json:"prompts"`
}

// GetPromptParams are the params for prompts/get.
type GetPromptParams struct {
	Name string `json:"name"`
}

// PromptMessage is one message in a prompts/get result.
type PromptMessage struct {
	Role    string        `json:"role"`
	Content PromptContent `json:"content"`
}

// PromptContent is the text content of a prompt message.
type PromptContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// GetPromptResult is the result for prompts/get.
type GetPromptResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}

// DefaultPrompts returns the built-in workflow prompts.
func DefaultPrompts() []Prompt {
	return []Prompt{
		{
			Name:        "automate_website",
			Description: "Walk through automating a website with a remote browser.",
			Text: "Automate a website task step by step. Start by creating a browser " +
				"session with manage_browsers (use a profile if the site needs a login " +
				"that should persist). Then drive the page with execute_playwright_code, " +
				"passing the session_id so the session survives between runs. Use " +
				"computer_action for anything Playwright cannot reach, such as native " +
				"dialogs. Delete the session when the task is done.",
		},
		{
			Name:        "persistent_login",
			Description: "Set up a reusable logged-in browser profile.",
			Text: "Create a persistent login. First run manage_profiles with action " +
				"setup to register a named profile. Launch a browser with " +
				"manage_browsers passing profile_name, log into the site with " +
				"execute_playwright_code or computer_action, then delete the browser. " +
				"Future sessions launched with the same profile_name start already " +
				"logged in.",
		},
		{
			Name:        "scale_with_pools",
			Description: "Run many short automation tasks against a warm pool.",
			Text: "For many short tasks, avoid cold starts with a browser pool. Create " +
				"one with manage_browser_pools, then for each task acquire a session, " +
				"run your code against it, and release it back. Flush the pool if " +
				"sessions accumulate bad state, and delete it when the workload ends.",
		},
	}
}

// handlePromptsList handles prompts/list requests.
func (s *Server) handlePromptsList(w http.ResponseWriter, req JSONRPCRequest) {
	result := ListPromptsResult{Prompts: make([]PromptInfo, len(s.prompts))}
	for i, p := range s.prompts {
		result.Prompts[i] = PromptInfo{Name: p.Name, Description: p.Description}
	}
	s.sendJSONRPCResult(w, req.ID, result)
}

// handlePromptsGet handles prompts/get requests.
func (s *Server) handlePromptsGet(w http.ResponseWriter, req JSONRPCRequest) {
	var params GetPromptParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "invalid params", nil)
			return
		}
	}
	if params.Name == "" {
		s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "prompt name is required", nil)
		return
	}

	for _, p := range s.prompts {
		if p.Name == params.Name {
			s.sendJSONRPCResult(w, req.ID, GetPromptResult{
				Description: p.Description,
				Messages: []PromptMessage{{
					Role:    "user",
					Content: PromptContent{Type: "text", Text: p.Text},
				}},
			})
			return
		}
	}
	s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "prompt not found", nil)
}
