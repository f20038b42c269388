package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/fbxlint/internal/cache"
	"github.com/ppiankov/fbxlint/internal/checks"
	"github.com/ppiankov/fbxlint/internal/fbx"
	"github.com/ppiankov/fbxlint/internal/llm"
	"github.com/ppiankov/fbxlint/internal/model"
)

// Pipeline orchestrates the complete check process for one file
type Pipeline struct {
	loader    *Loader
	checks    []checks.Check
	cache     cache.Cache    // nil when caching is disabled
	explainer *llm.Explainer // Optional LLM explainer (nil if disabled)
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	registry, err := checks.Registry(&cfg.Checks)
	if err != nil {
		return nil, fmt.Errorf("configure checks: %w", err)
	}

	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			reportCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			reportCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	// Create the LLM explainer if configured
	var explainer *llm.Explainer
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExplainer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			explainer = e
		}
	}

	return &Pipeline{
		loader:    NewLoader(cfg.Parser.MaxFileBytes),
		checks:    registry,
		cache:     reportCache,
		explainer: explainer,
		config:    cfg,
	}, nil
}

// Result contains the complete check result for one file
type Result struct {
	Path   string
	Report *model.Report
	Cached bool
}

// CheckFile lints a single file and produces its report. Unchanged files
// are served from the report cache when it is enabled.
func (p *Pipeline) CheckFile(ctx context.Context, path string) (*Result, error) {
	var key string
	if p.cache != nil {
		if meta, err := p.loader.Stat(path); err == nil {
			key = cache.Key(path, meta.SizeBytes, meta.ModTime)
			if data, found := p.cache.Get(key); found {
				var report model.Report
				if err := json.Unmarshal(data, &report); err == nil {
					return &Result{Path: path, Report: &report, Cached: true}, nil
				}
			}
		}
	}

	// 1. Load the raw container
	loaded, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	// 2. Parse it into a document
	doc, err := fbx.Parse(loaded.Data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	loaded.Meta.FBXVersion = doc.Version

	// 3. Identify the authoring application
	app := fbx.IdentifyApplication(doc)

	// 4. Run the checks
	report := &model.Report{
		File:        path,
		CheckedAt:   time.Now().UTC(),
		FileMeta:    loaded.Meta,
		Application: app.String(),
	}
	for _, check := range p.checks {
		status := model.CheckStatus{Name: check.Name(), Status: model.StatusPass}

		findings, err := check.Run(doc)
		switch {
		case err != nil:
			status.Status = model.StatusError
			status.Error = err.Error()
			report.Summary.Errors++
		case len(findings) > 0:
			status.Status = model.StatusFail
			report.Summary.Failed++
			for _, msg := range findings {
				report.Findings = append(report.Findings, model.Finding{
					Check:    check.Name(),
					Severity: model.SeverityCritical,
					Message:  msg,
				})
			}
		default:
			report.Summary.Passed++
		}

		report.Checks = append(report.Checks, status)
		report.Summary.Checks++
	}

	// 5. Generate the LLM explanation if enabled (AFTER the checks, never
	// affects findings)
	if p.explainer != nil && p.explainer.IsEnabled() {
		explanation, err := p.explainer.Explain(ctx, *report)
		if err != nil {
			// Don't fail the check, just warn
			fmt.Printf("Warning: LLM explanation failed: %v\n", err)
		} else if explanation != nil {
			report.LLM = explanation
		}
	}

	// 6. Store in the cache
	if p.cache != nil && key != "" {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	return &Result{Path: path, Report: report}, nil
}
