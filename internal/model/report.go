package model

import "time"

// Report is the complete result of linting one file
type Report struct {
	File        string    `json:"file"`        // Path that was checked
	CheckedAt   time.Time `json:"checked_at"`  // When the check ran
	FileMeta    FileMeta  `json:"file_meta"`   // Container metadata
	Application string    `json:"application"` // Identified authoring tool

	Findings []Finding     `json:"findings"` // Issues the checks raised
	Checks   []CheckStatus `json:"checks"`   // Per-check outcomes

	Summary Summary `json:"summary"` // Aggregated outcome counts

	LLM *LLMExplanation `json:"llm,omitempty"` // Optional LLM explanation (separate, never affects findings)
}

// FileMeta describes the checked container file
type FileMeta struct {
	SizeBytes  int64     `json:"size_bytes"`
	ModTime    time.Time `json:"mod_time"`
	Format     string    `json:"format"`      // "binary" or "ascii"
	FBXVersion int       `json:"fbx_version"` // e.g. 7400; 0 if undeclared
}

// Finding is a single issue a check raised against the file
type Finding struct {
	Check    string   `json:"check"`    // Registry name of the check
	Severity Severity `json:"severity"` // info, warning, critical
	Message  string   `json:"message"`  // Human-readable diagnostic
}

// Severity indicates the importance of a finding
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// CheckStatus records the outcome of one check run
type CheckStatus struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"` // Set when Status is StatusError
}

// Status classifies a check outcome
type Status string

const (
	StatusPass  Status = "pass"  // Ran, no findings
	StatusFail  Status = "fail"  // Ran, produced findings
	StatusError Status = "error" // Could not complete (e.g. missing data)
)

// Summary aggregates check outcomes for quick triage
type Summary struct {
	Checks int `json:"checks"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Errors int `json:"errors"`
}

// Clean reports whether the file passed every check that could run
func (r *Report) Clean() bool {
	return r.Summary.Failed == 0 && r.Summary.Errors == 0
}

// LLMExplanation contains an optional LLM-generated explanation of findings
// CRITICAL: This never affects check results and is clearly separated
type LLMExplanation struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"` // openai, anthropic, ollama
	Model     string   `json:"model,omitempty"`    // Model name
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"` // Issues while generating
}
