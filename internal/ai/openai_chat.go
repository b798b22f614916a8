package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"go.uber.org/zap"
)

// AzureChatProvider implements Generation against an Azure OpenAI chat
// deployment.
type AzureChatProvider struct {
	client     *openai.Client
	deployment string
}

// NewAzureChatProvider creates a Generation provider backed by an Azure
// OpenAI deployment. The endpoint and API key are validated here: a broken
// generation backend is a startup failure, not a per-request one.
func NewAzureChatProvider(endpoint, apiKey, deployment string) (*AzureChatProvider, error) {
	if endpoint == "" || apiKey == "" {
		return nil, errors.New("azure openai endpoint and api key are required")
	}
	if deployment == "" {
		return nil, errors.New("azure openai deployment is required")
	}

	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	cfg.AzureModelMapperFunc = func(model string) string {
		return deployment
	}

	return &AzureChatProvider{
		client:     openai.NewClientWithConfig(cfg),
		deployment: deployment,
	}, nil
}

// Complete issues a single chat completion and returns the assistant text.
func (p *AzureChatProvider) Complete(ctx context.Context, systemPrompt, userText string, maxTokens int, temperature float32) (string, error) {
	if userText == "" {
		return "", errors.New("user text is empty")
	}

	req := openai.ChatCompletionRequest{
		Model: p.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	const maxRetries = 3
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
				return "", errors.New("chat completion returned an empty message")
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		shouldRetry, waitTime := classifyOpenAIError(err)
		if !shouldRetry {
			return "", fmt.Errorf("chat completion API error: %w", err)
		}

		logger.Get().Warn("chat completion API error, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
		)

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(waitTime * time.Duration(i+1)):
			}
		}
	}

	return "", fmt.Errorf("chat completion API: exhausted %d retries: %w", maxRetries, lastErr)
}

// classifyOpenAIError determines whether an OpenAI API error is retryable.
func classifyOpenAIError(err error) (shouldRetry bool, waitTime time.Duration) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 429:
			return true, 2 * time.Second
		case 500, 502, 503:
			return true, 2 * time.Second
		default:
			return false, 0
		}
	}
	return false, 0
}
