package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIAnswerer answers questions through an OpenAI-compatible chat
// completion endpoint. BaseURL may point at any compatible server,
// including local ones.
type OpenAIAnswerer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

var _ Answerer = (*OpenAIAnswerer)(nil)

// NewOpenAIAnswerer creates an Answerer backed by the given endpoint and model.
func NewOpenAIAnswerer(baseURL, apiKey, model string, timeout time.Duration) *OpenAIAnswerer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIAnswerer{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: timeout,
	}
}

func (o *OpenAIAnswerer) Answer(ctx context.Context, question, documentText string) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(question, documentText),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}
