package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator generates text with OpenAI chat completions
type OpenAIGenerator struct {
	apiKey      string
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIGenerator creates a new OpenAI chat backend
func NewOpenAIGenerator(config *Config) (*OpenAIGenerator, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIGenerator{
		apiKey:      config.OpenAIKey,
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
	}, nil
}

// Generate sends prompt as a single user message
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the backend name
func (g *OpenAIGenerator) Name() string {
	return "openai/" + g.model
}
