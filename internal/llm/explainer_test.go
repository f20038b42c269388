package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/fbxlint/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *ExplainResponse
	err       error
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func failedReport() model.Report {
	return model.Report{
		File:        "assets/crate.fbx",
		Application: "Max",
		FileMeta:    model.FileMeta{Format: "binary", FBXVersion: 7400},
		Findings: []model.Finding{
			{
				Check:    "coordinate-axis",
				Severity: model.SeverityCritical,
				Message:  "File has incorrect coordinate axis. Expected Front:-Y,Up:+Z,Coord:+X actual Front:+Z,Up:+Y,Coord:+X. Application: Max",
			},
		},
		Checks:  []model.CheckStatus{{Name: "coordinate-axis", Status: model.StatusFail}},
		Summary: model.Summary{Checks: 1, Failed: 1},
	}
}

func TestNewExplainer_DisabledProvider(t *testing.T) {
	explainer, err := NewExplainer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if explainer.provider != nil {
		t.Error("Expected provider to be nil when disabled")
	}
	if explainer.IsEnabled() {
		t.Error("Expected explainer to be disabled")
	}
	if explainer.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}
}

func TestNewExplainer_UnknownProvider(t *testing.T) {
	if _, err := NewExplainer(Config{Provider: "clippy"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestExplainer_Explain_Disabled(t *testing.T) {
	explainer := &Explainer{provider: nil, config: Config{}}

	explanation, err := explainer.Explain(context.Background(), failedReport())
	if err != nil {
		t.Errorf("Expected no error when disabled, got %v", err)
	}
	if explanation != nil {
		t.Error("Expected nil explanation when provider disabled")
	}
}

func TestExplainer_Explain_ProviderUnavailable(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: false,
	}

	explainer := &Explainer{provider: mockProvider, config: Config{}}

	explanation, err := explainer.Explain(context.Background(), failedReport())
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if explanation == nil {
		t.Fatal("Expected explanation block with warnings")
	}
	if explanation.SummaryMD != "" {
		t.Error("Expected no summary from unavailable provider")
	}

	found := false
	for _, warning := range explanation.Warnings {
		if strings.Contains(warning, "unavailable") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected warning to mention provider unavailability")
	}
}

func TestExplainer_Explain_Success(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: true,
		response: &ExplainResponse{
			Explanation: "The file declares Y-up but 3ds Max scenes expect Z-up.",
			Model:       "test-model",
			TokensUsed:  150,
		},
	}

	explainer := &Explainer{provider: mockProvider, config: Config{Model: "test-model", MaxTokens: 500}}

	explanation, err := explainer.Explain(context.Background(), failedReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if explanation == nil {
		t.Fatal("Expected explanation")
	}
	if !explanation.Enabled {
		t.Error("Expected explanation to be marked enabled")
	}
	if explanation.Provider != "test-provider" {
		t.Errorf("Provider: got %q", explanation.Provider)
	}
	if explanation.Model != "test-model" {
		t.Errorf("Model: got %q", explanation.Model)
	}
	if explanation.SummaryMD == "" {
		t.Error("Expected a summary")
	}
}

func TestExplainer_Explain_ProviderError(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: true,
		err:       errors.New("rate limited"),
	}

	explainer := &Explainer{provider: mockProvider, config: Config{}}

	if _, err := explainer.Explain(context.Background(), failedReport()); err == nil {
		t.Error("Expected provider error to surface")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(failedReport())

	for _, want := range []string{
		"File: assets/crate.fbx",
		"Authoring application: Max",
		"version 7400",
		"Expected Front:-Y,Up:+Z,Coord:+X",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	clean := model.Report{
		File:     "assets/crate.fbx",
		FileMeta: model.FileMeta{Format: "ascii"},
		Checks:   []model.CheckStatus{{Name: "coordinate-axis", Status: model.StatusPass}},
		Summary:  model.Summary{Checks: 1, Passed: 1},
	}
	prompt = BuildPrompt(clean)
	if !strings.Contains(prompt, "none (all checks passed)") {
		t.Errorf("prompt missing clean marker: %q", prompt)
	}

	errored := model.Report{
		File:     "assets/crate.fbx",
		FileMeta: model.FileMeta{Format: "ascii"},
		Checks: []model.CheckStatus{
			{Name: "coordinate-axis", Status: model.StatusError, Error: "could not find coordinate axis"},
		},
		Summary: model.Summary{Checks: 1, Errors: 1},
	}
	prompt = BuildPrompt(errored)
	if !strings.Contains(prompt, "could not run: could not find coordinate axis") {
		t.Errorf("prompt missing check error: %q", prompt)
	}
}

func TestNewProvider_Factory(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when disabled")
	}

	if _, err := NewProvider(Config{Provider: "smoke-signals"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	provider, err = NewProvider(Config{Provider: "ollama", BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider == nil || provider.Name() != "ollama" {
		t.Errorf("Expected ollama provider, got %v", provider)
	}
}
