package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/fbxlint/internal/fbx"
	"github.com/ppiankov/fbxlint/internal/model"
)

// Loader reads container files from disk with a size cap. Truncating a
// container corrupts it, so an oversized file is refused rather than
// partially read.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a new Loader with the given size cap
func NewLoader(maxBytes int64) *Loader {
	return &Loader{maxBytes: maxBytes}
}

// LoadResult contains the raw file contents and its metadata
type LoadResult struct {
	Data []byte
	Meta model.FileMeta
}

// Load reads the file and captures its metadata. The format field of the
// metadata is filled in by sniffing the leading bytes.
func (l *Loader) Load(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if l.maxBytes > 0 && info.Size() > l.maxBytes {
		return nil, fmt.Errorf("file is %d bytes, limit is %d", info.Size(), l.maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Cap the read even if the file grew between stat and open.
	var reader io.Reader = f
	if l.maxBytes > 0 {
		reader = io.LimitReader(f, l.maxBytes)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	meta := model.FileMeta{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}
	if format, err := fbx.DetectFormat(data); err == nil {
		meta.Format = string(format)
	}

	return &LoadResult{Data: data, Meta: meta}, nil
}

// Stat captures a file's identity without reading it, for cache lookups.
func (l *Loader) Stat(path string) (model.FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.FileMeta{}, fmt.Errorf("stat: %w", err)
	}
	return model.FileMeta{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
