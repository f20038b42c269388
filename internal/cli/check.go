package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/fbxlint/internal/model"
	"github.com/ppiankov/fbxlint/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON      string
	outMD        string
	checkTimeout time.Duration
	maxBytes     int64
	noCache      bool
	cacheDir     string
	noFooter     bool
	exitZero     bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.fbx>",
	Short: "Check a single FBX file for convention issues",
	Long: `Check parses a single FBX file (binary or ASCII) and verifies its
declared scene conventions:
- Coordinate-axis convention vs. the authoring application's expected export

The command exits non-zero when findings exist, so it slots into CI and
asset-pipeline hooks.

Example:
  fbxlint check model.fbx
  fbxlint check model.fbx --json report.json --md report.md
  fbxlint check model.fbx --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&exitZero, "exit-zero", false, "exit 0 even when findings exist")

	// Parser flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 512_000_000, "max file bytes to accept")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh check)")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist reports under this directory")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM explanation of findings")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.CheckFile(ctx, path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	report := result.Report

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	renderer.RenderTerminal(report, os.Stdout)
	if verbose && result.Cached {
		fmt.Fprintf(os.Stderr, "(report served from cache)\n")
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("write Markdown report: %w", err)
		}
	}

	if !report.Clean() && !exitZero {
		return fmt.Errorf("%d finding(s), %d check error(s)", report.Summary.Failed, report.Summary.Errors)
	}
	return nil
}

// buildConfig assembles the effective configuration: defaults, then the
// config file's checks section, then flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Per-application expected-basis overrides live in the config file.
	if viper.IsSet("checks") {
		if err := viper.UnmarshalKey("checks", &cfg.Checks); err != nil {
			return nil, fmt.Errorf("parse checks config: %w", err)
		}
	}

	cfg.Parser.MaxFileBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// configureLLM fills the LLM section from flags and environment.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
