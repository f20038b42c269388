package worker

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/fbxlint/internal/model"
	"github.com/ppiankov/fbxlint/internal/pipeline"
)

// Checker defines the interface for linting one file
type Checker interface {
	CheckFile(ctx context.Context, path string) (*pipeline.Result, error)
}

// CheckJob represents one file check
type CheckJob struct {
	Path    string
	Checker Checker
	Limiter *Limiter
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Path); err != nil {
			return &CheckResult{Path: j.Path, Error: err}
		}
	}

	result, err := j.Checker.CheckFile(ctx, j.Path)
	if err != nil {
		return &CheckResult{Path: j.Path, Error: err}
	}
	return &CheckResult{
		Path:   j.Path,
		Report: result.Report,
		Cached: result.Cached,
	}
}

// CheckResult represents the result of a check job
type CheckResult struct {
	Path   string
	Report *model.Report
	Cached bool
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor lints multiple files concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. filesPerSecond <= 0
// disables rate limiting.
func NewBatchProcessor(checker Checker, concurrency int, filesPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if filesPerSecond > 0 {
		limiter = NewLimiter(filesPerSecond, burst)
	}

	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessPaths lints multiple files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		<-ctx.Done()
		pool.Shutdown()
	}()

	for _, path := range paths {
		pool.Submit(&CheckJob{
			Path:    path,
			Checker: b.checker,
			Limiter: b.limiter,
		})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}

	return checkResults
}

// ProcessTarget resolves a batch target — a directory to walk or a list
// file of paths — and lints everything it names.
func (b *BatchProcessor) ProcessTarget(ctx context.Context, target string) ([]*CheckResult, error) {
	paths, err := ResolveTarget(target)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ResolveTarget expands a batch target into file paths: directories are
// walked for .fbx files, anything else is read as a list file.
func ResolveTarget(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}
	if info.IsDir() {
		return CollectFBXFiles(target)
	}
	if strings.EqualFold(filepath.Ext(target), ".fbx") {
		return []string{target}, nil
	}
	return ReadPathsFromFile(target)
}

// CollectFBXFiles walks a directory tree and returns every .fbx file in it.
func CollectFBXFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".fbx") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return paths, nil
}

// ReadPathsFromFile reads file paths from a list file (one per line)
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
