package summary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/scholarpath/scholarpath/internal/domain"
)

const (
	// DefaultModel handles general text tasks well at low latency.
	DefaultModel = "gemini-2.5-flash"

	// DefaultInstruction is prepended when the caller supplies none.
	DefaultInstruction = "Summarize this information concisely:"

	temperature     = 0.7
	maxOutputTokens = 150
)

// Summarizer is the collaborator contract: free-text context plus an
// instruction in, a short synopsis out. A failure surfaces as
// ErrExternalService and is never retried here.
type Summarizer interface {
	Summarize(ctx context.Context, contextText, instruction string) (string, error)
}

// Gemini summarizes through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed summarizer.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// Summarize runs a single generation attempt.
func (g *Gemini) Summarize(ctx context.Context, contextText, instruction string) (string, error) {
	if instruction == "" {
		instruction = DefaultInstruction
	}
	prompt := instruction + "\n\n" + contextText

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](temperature),
			MaxOutputTokens: maxOutputTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrExternalService)
	}

	return text, nil
}
