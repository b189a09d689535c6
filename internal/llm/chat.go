package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Chat is the harness-facing conversation capability: send a prompt, get a
// text or structured response. It holds a system prompt and the running
// message history so follow-up prompts carry context.
type Chat struct {
	provider Provider
	system   string
	model    string
	history  []Message
}

// ChatOption configures a Chat.
type ChatOption func(*Chat)

// WithSystem sets the system prompt.
func WithSystem(system string) ChatOption {
	return func(c *Chat) { c.system = system }
}

// WithModel overrides the provider's default model.
func WithModel(model string) ChatOption {
	return func(c *Chat) { c.model = model }
}

// NewChat creates a conversation over the given provider.
func NewChat(provider Provider, opts ...ChatOption) *Chat {
	c := &Chat{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Communicate sends a prompt and returns the assistant's text reply. Both
// turns are appended to the history.
func (c *Chat) Communicate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.send(ctx, prompt, false)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// CommunicateStructured sends a prompt with a response schema hint and
// decodes the reply as a JSON object. The schema is advisory text (field
// names and types) appended to the prompt; providers with a native JSON mode
// additionally enforce JSON output.
func (c *Chat) CommunicateStructured(ctx context.Context, prompt, schema string) (map[string]any, error) {
	full := prompt
	if schema != "" {
		full += "\n\nRespond as a JSON object with this shape:\n" + schema
	}

	resp, err := c.sendJSON(ctx, full)
	if err != nil {
		return nil, err
	}

	raw := stripCodeFences(strings.TrimSpace(resp.Content))

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("structured response is not valid JSON: %w", err)
	}
	return out, nil
}

// History returns a copy of the conversation so far.
func (c *Chat) History() []Message {
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}

// Len reports the number of turns exchanged.
func (c *Chat) Len() int { return len(c.history) }

func (c *Chat) send(ctx context.Context, prompt string, jsonMode bool) (*Response, error) {
	messages := append(c.History(), Message{Role: RoleUser, Content: prompt})

	resp, err := c.provider.Generate(ctx, &Request{
		Model:    c.model,
		System:   c.system,
		Messages: messages,
		JSON:     jsonMode,
	})
	if err != nil {
		return nil, fmt.Errorf("communicate: %w", err)
	}

	c.history = append(c.history,
		Message{Role: RoleUser, Content: prompt},
		Message{Role: RoleAssistant, Content: resp.Content},
	)
	return resp, nil
}

func (c *Chat) sendJSON(ctx context.Context, prompt string) (*Response, error) {
	return c.send(ctx, prompt, true)
}

// stripCodeFences removes a surrounding markdown code fence, which models
// wrap around JSON despite instructions.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
