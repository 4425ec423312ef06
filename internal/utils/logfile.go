package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// OpenLogger opens (or creates) the log file at path for appending and
// returns a logger writing to it together with the file to close on exit.
// Missing parent directories are created.
func OpenLogger(path string) (*log.Logger, *os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), f, nil
}
