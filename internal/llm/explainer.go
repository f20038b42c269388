package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/fbxlint/internal/model"
)

// Explainer wraps a provider and produces the report's optional
// LLMExplanation block
type Explainer struct {
	provider Provider
	config   Config
}

// NewExplainer creates a new explainer from configuration. An empty
// provider name yields a disabled explainer, not an error.
func NewExplainer(config Config) (*Explainer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	return &Explainer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (e *Explainer) IsEnabled() bool {
	return e.provider != nil
}

// ProviderName returns the configured provider's name, or ""
func (e *Explainer) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// Explain generates the explanation block for a report. A disabled
// explainer returns nil without error; provider failures are returned so
// the caller can degrade them to warnings.
func (e *Explainer) Explain(ctx context.Context, report model.Report) (*model.LLMExplanation, error) {
	if e.provider == nil {
		return nil, nil
	}

	if !e.provider.IsAvailable(ctx) {
		return &model.LLMExplanation{
			Enabled:  true,
			Provider: e.provider.Name(),
			Model:    e.config.Model,
			Warnings: []string{"provider unavailable; explanation skipped"},
		}, nil
	}

	resp, err := e.provider.Explain(ctx, ExplainRequest{
		Report:    report,
		Model:     e.config.Model,
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	return &model.LLMExplanation{
		Enabled:   true,
		Provider:  e.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Explanation,
	}, nil
}
