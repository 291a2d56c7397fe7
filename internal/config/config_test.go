package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsEmptyOptions(t *testing.T) {
	file, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, file.Options)
	assert.NotNil(t, file.Options)
}

func TestLoad_ParsesOptionsBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `options:
  watch: true
  pointsForJane: 5
  pointsForJohn: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, true, file.Options["watch"])
	assert.Equal(t, 5, file.Options["pointsForJane"])
	assert.Equal(t, 3, file.Options["pointsForJohn"])
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("options: [not: a: map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	saved := &File{Options: map[string]any{
		"pointsForJane": 20,
		"pointsForJohn": 15,
	}}
	require.NoError(t, Save(path, saved))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.Options["pointsForJane"])
	assert.Equal(t, 15, loaded.Options["pointsForJohn"])
}
