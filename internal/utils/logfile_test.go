package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLoggerCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "boxoffice.log")
	logger, f, err := OpenLogger(path)
	require.NoError(t, err)
	logger.Printf("boxoffice: started")
	require.NoError(t, f.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(content), "boxoffice: started\n"))
}

func TestOpenLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.log")
	for _, msg := range []string{"one", "two"} {
		logger, f, err := OpenLogger(path)
		require.NoError(t, err)
		logger.Print(msg)
		require.NoError(t, f.Close())
	}
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "\n"))
}

func TestOpenLoggerUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	_, _, err := OpenLogger(filepath.Join(blocker, "x.log"))
	assert.Error(t, err)
}
