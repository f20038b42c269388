package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/fbxlint/internal/model"
)

// Renderer renders reports for terminals and files
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to the given path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-oriented report to the given path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# fbxlint report: %s\n\n", report.File)
	fmt.Fprintf(&b, "- Checked: %s\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Format: %s", report.FileMeta.Format)
	if report.FileMeta.FBXVersion > 0 {
		fmt.Fprintf(&b, " (version %d)", report.FileMeta.FBXVersion)
	}
	fmt.Fprintf(&b, "\n- Size: %d bytes\n", report.FileMeta.SizeBytes)
	fmt.Fprintf(&b, "- Application: %s\n\n", report.Application)

	fmt.Fprintf(&b, "## Checks\n\n")
	fmt.Fprintf(&b, "| Check | Status |\n|---|---|\n")
	for _, c := range report.Checks {
		status := string(c.Status)
		if c.Error != "" {
			status = fmt.Sprintf("%s (%s)", c.Status, c.Error)
		}
		fmt.Fprintf(&b, "| %s | %s |\n", c.Name, status)
	}
	fmt.Fprintf(&b, "\n")

	if len(report.Findings) > 0 {
		fmt.Fprintf(&b, "## Findings\n\n")
		for _, f := range report.Findings {
			fmt.Fprintf(&b, "- **%s** [%s]: %s\n", f.Check, f.Severity, f.Message)
		}
		fmt.Fprintf(&b, "\n")
	} else {
		fmt.Fprintf(&b, "No findings.\n\n")
	}

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "## Explanation (%s/%s)\n\n", report.LLM.Provider, report.LLM.Model)
		fmt.Fprintf(&b, "%s\n\n", report.LLM.SummaryMD)
		for _, w := range report.LLM.Warnings {
			fmt.Fprintf(&b, "> Warning: %s\n", w)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\nGenerated by fbxlint. Checks cover declared scene conventions; they do not validate geometry.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderTerminal writes a compact summary of the report to w
func (r *Renderer) RenderTerminal(report *model.Report, w io.Writer) {
	if report.Clean() {
		fmt.Fprintf(w, "✓ %s [%s, %s]\n", report.File, report.Application, report.FileMeta.Format)
		return
	}

	fmt.Fprintf(w, "✗ %s [%s, %s]\n", report.File, report.Application, report.FileMeta.Format)
	for _, c := range report.Checks {
		if c.Status == model.StatusError {
			fmt.Fprintf(w, "  ! %s: %s\n", c.Name, c.Error)
		}
	}
	for _, f := range report.Findings {
		fmt.Fprintf(w, "  - [%s] %s\n", f.Severity, f.Message)
	}
}
