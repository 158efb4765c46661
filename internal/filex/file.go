// Package filex has small file helpers used by the CLI.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrTooLarge = errors.New("file too large")

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadLimited reads the whole file at path, failing with ErrTooLarge when it
// holds more than limit bytes.
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", path, ErrTooLarge, limit)
	}
	return data, nil
}
