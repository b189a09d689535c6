package exercise

import (
	"context"
	"errors"
	"fmt"

	"github.com/drillhq/drill/internal/llm"
	"github.com/drillhq/drill/internal/sandbox"
)

// ClientImportPath is the import path under which the session is exposed to
// sandboxed submissions.
const ClientImportPath = "drill/ai"

// Session is the per-attempt bridge between a sandboxed submission and the
// AI-client collaborator. It counts client and tool activity for grading and
// records client faults so the exercise can tell a broken grader apart from a
// wrong submission.
type Session struct {
	ctx       context.Context
	chat      *llm.Chat
	tools     map[string]func(string) (string, error)
	calls     int
	toolCalls int
	clientErr error
}

// NewSession creates a session around an optional chat. A nil chat means the
// exercise runs offline; any client call then fails.
func NewSession(chat *llm.Chat) *Session {
	return &Session{
		chat:  chat,
		tools: make(map[string]func(string) (string, error)),
	}
}

// Bind attaches the attempt context used for client calls made from inside
// the sandbox, where learner code has no context of its own.
func (s *Session) Bind(ctx context.Context) { s.ctx = ctx }

// Communicate sends a prompt and returns the text reply.
func (s *Session) Communicate(prompt string) (string, error) {
	s.calls++
	if s.chat == nil {
		s.clientErr = errors.New("no AI client configured")
		return "", s.clientErr
	}
	reply, err := s.chat.Communicate(s.context(), prompt)
	if err != nil {
		s.clientErr = err
		return "", err
	}
	return reply, nil
}

// CommunicateStructured sends a prompt with a schema hint and returns the
// decoded JSON object.
func (s *Session) CommunicateStructured(prompt, schema string) (map[string]any, error) {
	s.calls++
	if s.chat == nil {
		s.clientErr = errors.New("no AI client configured")
		return nil, s.clientErr
	}
	out, err := s.chat.CommunicateStructured(s.context(), prompt, schema)
	if err != nil {
		s.clientErr = err
		return nil, err
	}
	return out, nil
}

// RegisterTool makes a named function available for CallTool.
func (s *Session) RegisterTool(name string, fn func(string) (string, error)) {
	s.tools[name] = fn
}

// CallTool invokes a previously registered tool.
func (s *Session) CallTool(name, input string) (string, error) {
	fn, ok := s.tools[name]
	if !ok {
		return "", fmt.Errorf("tool not registered: %s", name)
	}
	s.toolCalls++
	return fn(input)
}

// Calls reports how many client calls the submission made.
func (s *Session) Calls() int { return s.calls }

// ToolCalls reports how many tool invocations the submission made.
func (s *Session) ToolCalls() int { return s.toolCalls }

// ToolsRegistered reports how many tools the submission registered.
func (s *Session) ToolsRegistered() int { return len(s.tools) }

// ClientErr returns the first client fault seen during the attempt, if any.
func (s *Session) ClientErr() error { return s.clientErr }

// Symbols exposes the session as the drill/ai package for the sandbox.
func (s *Session) Symbols() sandbox.Symbols {
	return sandbox.Package(ClientImportPath, "ai", map[string]any{
		"Communicate":           s.Communicate,
		"CommunicateStructured": s.CommunicateStructured,
		"RegisterTool":          s.RegisterTool,
		"CallTool":              s.CallTool,
	})
}

func (s *Session) context() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}
