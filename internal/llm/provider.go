// Package llm generates an optional natural-language summary of the roster
// statistics. It never touches the data artifacts.
package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/deputes/internal/analyze"
	"github.com/ppiankov/deputes/internal/model"
)

// Provider is one LLM backend.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a short prose summary of the statistics
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest is the input for summarization.
type SummarizeRequest struct {
	Report analyze.Report

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model overrides the configured model when non-empty
	Model string

	MaxTokens int
}

// SummarizeResponse is the provider's output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// BuildPrompt renders the default prompt from the statistics. The model is
// told to restate only the provided numbers, never to add outside facts.
func BuildPrompt(r analyze.Report) string {
	prompt := fmt.Sprintf(`You are summarizing descriptive statistics about the French National Assembly roster.

RULES:
1. Only restate the numbers given below. Do not add outside knowledge.
2. If a section is empty, skip it silently.
3. Write 3-4 plain sentences, no bullet points.

Statistics:
- Deputies: %d (%d fields per record)
`, r.RecordCount, r.FieldCount)

	if len(r.Parties) > 0 {
		prompt += "- Largest parties:"
		for i, p := range r.Parties {
			if i >= 3 {
				break
			}
			prompt += fmt.Sprintf(" %s (%d, %.1f%%);", p.Value, p.Count, p.Percent)
		}
		prompt += "\n"
	}

	for _, s := range r.Sexes {
		prompt += fmt.Sprintf("- Sex %s: %d (%.1f%%)\n", s.Value, s.Count, s.Percent)
	}

	if r.HasAge {
		prompt += fmt.Sprintf("- Age: mean %.1f, median %.0f, range %.0f-%.0f\n",
			r.Age.Mean, r.Age.Median, r.Age.Min, r.Age.Max)
	}

	return prompt
}

// ErrNoProvider is returned when summarization is requested without a
// configured provider.
var ErrNoProvider = fmt.Errorf("no LLM provider configured")

// NewProvider creates a provider from configuration. An empty provider name
// means the feature is disabled (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}
