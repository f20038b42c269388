package model

import "time"

// Config is the complete fbxlint configuration
type Config struct {
	Parser       ParserConfig      `json:"parser" yaml:"parser"`
	Cache        CacheConfig       `json:"cache" yaml:"cache"`
	Concurrency  ConcurrencyConfig `json:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitConfig   `json:"rate_limiting" yaml:"rate_limiting"`
	Output       OutputConfig      `json:"output" yaml:"output"`
	Checks       ChecksConfig      `json:"checks" yaml:"checks"`
	LLM          LLMConfig         `json:"llm" yaml:"llm"`
}

// ParserConfig bounds what the container parser will accept
type ParserConfig struct {
	MaxFileBytes int64 `json:"max_file_bytes" yaml:"max_file_bytes"` // Refuse files larger than this
}

// CacheConfig controls the layered report cache
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Dir       string        `json:"dir" yaml:"dir"`               // Disk cache directory ("" = memory only)
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl"` // TTL for the in-memory layer
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl"`     // TTL for the on-disk layer
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers"` // Concurrent file checks in batch mode
}

// RateLimitConfig throttles batch file reads (useful on network mounts)
type RateLimitConfig struct {
	FilesPerSecond float64 `json:"files_per_second" yaml:"files_per_second"` // 0 = unlimited
	BurstSize      int     `json:"burst_size" yaml:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer"`
}

// ChecksConfig enables checks and carries per-check settings
type ChecksConfig struct {
	CoordinateAxis CoordinateAxisConfig `json:"coordinate_axis" yaml:"coordinate_axis" mapstructure:"coordinate_axis"`
}

// CoordinateAxisConfig configures the coordinate-axis convention check.
// Overrides replace the expected basis for one application; keys are the
// application names (Max, Blender, Maya, MotionBuilder, Unknown).
type CoordinateAxisConfig struct {
	Disabled  bool                     `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
	Overrides map[string]BasisOverride `json:"overrides,omitempty" yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// BasisOverride spells an expected basis with signed axis letters (+X..-Z)
type BasisOverride struct {
	Up    string `json:"up" yaml:"up" mapstructure:"up"`
	Front string `json:"front" yaml:"front" mapstructure:"front"`
	Coord string `json:"coord" yaml:"coord" mapstructure:"coord"`
}

// LLMConfig configures the optional finding explainer
// CRITICAL: the explainer never affects findings and is clearly separated
type LLMConfig struct {
	Provider  string `json:"provider,omitempty" yaml:"provider"` // openai, anthropic, ollama, "" = disabled
	Model     string `json:"model,omitempty" yaml:"model"`
	APIKey    string `json:"-" yaml:"-"` // Never persisted; from env only
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url"`
	Timeout   int    `json:"timeout,omitempty" yaml:"timeout"` // seconds
	MaxTokens int    `json:"max_tokens,omitempty" yaml:"max_tokens"`
}

// DefaultConfig returns the standard fbxlint configuration
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxFileBytes: 512_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			FilesPerSecond: 0,
			BurstSize:      5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Checks: ChecksConfig{},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
	}
}
