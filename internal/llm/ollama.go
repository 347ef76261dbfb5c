package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/deputes/internal/model"
)

// OllamaProvider implements Provider against a local Ollama server.
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	config     model.LLMConfig
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	System  string        `json:"system,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count,omitempty"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// NewOllamaProvider creates an Ollama provider. Default endpoint is the
// standard local server.
func NewOllamaProvider(cfg model.LLMConfig) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // local models can be slow
	}

	return &OllamaProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Summarize generates the summary via the Ollama generate API.
func (p *OllamaProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Report)
	}

	llmModel := req.Model
	if llmModel == "" {
		llmModel = p.config.Model
	}
	if llmModel == "" {
		llmModel = "llama3.2"
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 600
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  llmModel,
		Prompt: prompt,
		Stream: false,
		System: "You summarize parliamentary roster statistics. Restate only the numbers you are given.",
		Options: ollamaOptions{
			Temperature: 0.3,
			NumPredict:  maxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ollamaError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("ollama error: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("ollama status: %d", resp.StatusCode)
	}

	var out ollamaResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &SummarizeResponse{
		Summary:    strings.TrimSpace(out.Response),
		Model:      out.Model,
		TokensUsed: out.EvalCount,
	}, nil
}
