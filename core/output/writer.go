// Package output writes rendered topics to disk as <topic><ext>, e.g.
// largest-cities.md, under one output directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <name><ext> in the output directory and returns the
// path written.
func (w *Writer) Write(name string, data []byte, ext string) (string, error) {
	base := sanitize(name)
	if strings.Trim(base, "_") == "" {
		base = "index"
	}
	path := filepath.Join(w.OutputDir, base+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// sanitize replaces everything but letters, digits, '-' and '.' with
// underscores. A leading dot is replaced too.
func sanitize(s string) string {
	var b strings.Builder
	for i, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-':
			b.WriteRune(ch)
		case ch == '.' && i > 0:
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
