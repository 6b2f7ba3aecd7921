package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options describes where and how the service logs.
type Options struct {
	Enabled bool
	File    string
	Level   string
	Format  string
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Open builds a logger from opts. The returned closer releases the log file
// and must be called on shutdown; it is a no-op for stdout or discarded output.
func Open(opts Options) (*Logger, io.Closer, error) {
	if !opts.Enabled {
		return Discard(), nopCloser{io.Discard}, nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.WriteCloser = nopCloser{os.Stdout}
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		out = f
	}

	return NewWithConfig(Config{Level: level, Output: out, Format: opts.Format}), out, nil
}
