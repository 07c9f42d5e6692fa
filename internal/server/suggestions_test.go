package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSuggestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.yaml")
	content := "about: Ask about products.\nqueries:\n  - What is in stock?\n  - How much does it cost?\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSuggestions(path)
	require.NoError(t, err)
	assert.Equal(t, "Ask about products.", s.About)
	assert.Equal(t, []string{"What is in stock?", "How much does it cost?"}, s.Queries)
}

func TestLoadSuggestionsMissingFile(t *testing.T) {
	_, err := LoadSuggestions(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSuggestionsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queries: {not: [a, list"), 0o644))

	_, err := LoadSuggestions(path)
	assert.Error(t, err)
}
