// Package store provides the host-side ContextStore implementations that
// persist plugin state across runs. The persistence format belongs to the
// host, not the plugin; plugins only see Get and Set.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

// FileStore persists plugin state as a JSON file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a store persisting to the given path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.Named("store"),
	}
}

// Get loads the persisted state. A missing file means no state has been
// persisted yet and returns nil.
func (s *FileStore) Get() (*sourcebit.PluginState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state sourcebit.PluginState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	s.logger.Debug("Loaded state file",
		zap.String("path", s.path),
		zap.Int("entries", len(state.Entries)))
	return &state, nil
}

// Set writes the state atomically: marshal to a temp file in the same
// directory, then rename over the target.
func (s *FileStore) Set(state *sourcebit.PluginState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	s.logger.Debug("Wrote state file",
		zap.String("path", s.path),
		zap.Int("entries", len(state.Entries)))
	return nil
}
