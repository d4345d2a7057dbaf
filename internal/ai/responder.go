// Package ai produces the assistant replies behind /api/ai-response.
package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Responder turns a user message into an assistant reply.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Canned is the default responder. It echoes the message back with a fixed
// placeholder wrapper and never fails.
type Canned struct{}

// Reply implements Responder.
func (Canned) Reply(_ context.Context, message string) (string, error) {
	return fmt.Sprintf("I received your message: %s. This is a placeholder response from the backend.", message), nil
}

const geminiSystemPrompt = "You are a helpful personal finance assistant. " +
	"Answer the user's question in a short, plain-text reply. " +
	"Do not use Markdown."

// Gemini answers through the Gemini API. It is only wired in when an API
// key is configured; callers fall back to Canned when a reply fails.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a responder using the given API key and model name.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Reply implements Responder.
func (g *Gemini) Reply(ctx context.Context, message string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: geminiSystemPrompt + "\n\nUser message:\n" + message},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

var _ Responder = Canned{}
var _ Responder = (*Gemini)(nil)
