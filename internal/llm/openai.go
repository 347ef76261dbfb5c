package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/deputes/internal/model"
)

// OpenAIProvider implements Provider over the OpenAI Chat Completions API.
type OpenAIProvider struct {
	client *openai.Client
	config model.LLMConfig
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Summarize generates the summary via chat completion.
func (p *OpenAIProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Report)
	}

	llmModel := req.Model
	if llmModel == "" {
		llmModel = p.config.Model
	}
	if llmModel == "" {
		llmModel = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 600
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: llmModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize parliamentary roster statistics. Restate only the numbers you are given.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return &SummarizeResponse{
		Summary:    strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      llmModel,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
