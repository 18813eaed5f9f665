package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAnswerer answers questions through the Google Gemini API.
type GeminiAnswerer struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

var _ Answerer = (*GeminiAnswerer)(nil)

// NewGeminiAnswerer creates a Gemini-backed Answerer for the given model name.
func NewGeminiAnswerer(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiAnswerer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiAnswerer{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
	}, nil
}

func (g *GeminiAnswerer) Answer(ctx context.Context, question, documentText string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(question, documentText)))
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	if content == "" {
		return "", errors.New("no response generated")
	}
	return content, nil
}

// Close releases the underlying API client.
func (g *GeminiAnswerer) Close() error {
	return g.client.Close()
}
