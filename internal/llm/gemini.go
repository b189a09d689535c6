package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider talks to Google's Gemini API through the official SDK.
type GeminiProvider struct {
	apiKey string
	model  string
}

// GeminiConfig holds settings for the Gemini provider.
type GeminiConfig struct {
	APIKey string
	Model  string // default: gemini-1.5-flash
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	return &GeminiProvider{apiKey: cfg.APIKey, model: cfg.Model}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	if p.apiKey == "" {
		return nil, errors.New("gemini: API key is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	defer cl.Close()

	modelName := req.Model
	if modelName == "" {
		modelName = p.model
	}
	m := cl.GenerativeModel(modelName)

	cfg := genai.GenerationConfig{}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		tokens := int32(req.MaxTokens)
		cfg.MaxOutputTokens = &tokens
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	m.GenerationConfig = cfg

	if req.System != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	// Gemini takes prior turns as chat history and the last turn as the
	// prompt.
	if len(req.Messages) == 0 {
		return nil, errors.New("gemini: empty request")
	}

	chat := m.StartChat()
	for _, msg := range req.Messages[:len(req.Messages)-1] {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	last := req.Messages[len(req.Messages)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	content := firstText(resp)
	if content == "" {
		return nil, errors.New("gemini: empty response")
	}

	out := &Response{Content: content, FinishReason: "stop"}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
