// Package llm turns a finished lint report into a short plain-language
// explanation for the artist who exported the file. It is strictly
// additive: explanations never affect findings, and any failure here
// degrades to a warning on the report.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/fbxlint/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Explain generates a plain-language explanation of the report's findings
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest contains the input for LLM explanation
type ExplainRequest struct {
	// Report is the lint report to explain
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExplainResponse contains the LLM's explanation output
type ExplainResponse struct {
	// Explanation is the generated markdown text
	Explanation string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}

// BuildPrompt assembles the default explanation prompt from a report.
func BuildPrompt(report model.Report) string {
	var b strings.Builder

	b.WriteString("You are helping a 3D artist fix an FBX export problem.\n")
	b.WriteString("Explain the lint findings below in two or three plain sentences ")
	b.WriteString("and say which export settings to change. Do not invent findings ")
	b.WriteString("that are not listed.\n\n")

	fmt.Fprintf(&b, "File: %s\n", report.File)
	fmt.Fprintf(&b, "Authoring application: %s\n", report.Application)
	fmt.Fprintf(&b, "Container: %s", report.FileMeta.Format)
	if report.FileMeta.FBXVersion > 0 {
		fmt.Fprintf(&b, " version %d", report.FileMeta.FBXVersion)
	}
	b.WriteString("\n\nFindings:\n")

	if len(report.Findings) == 0 {
		b.WriteString("- none (all checks passed)\n")
	}
	for _, f := range report.Findings {
		fmt.Fprintf(&b, "- [%s/%s] %s\n", f.Check, f.Severity, f.Message)
	}
	for _, c := range report.Checks {
		if c.Error != "" {
			fmt.Fprintf(&b, "- check %s could not run: %s\n", c.Name, c.Error)
		}
	}

	return b.String()
}
