// Package config loads and saves the project-level plugin configuration
// file. The file carries one options block per plugin; this sample only ever
// reads and writes its own block.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration shape.
type File struct {
	Options map[string]any `yaml:"options"`
}

// Load reads the configuration file at path. A missing file is not an
// error; it returns an empty configuration so every option falls through to
// its next source.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Options: map[string]any{}}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if file.Options == nil {
		file.Options = map[string]any{}
	}
	return &file, nil
}

// Save writes the configuration file at path. Callers are expected to have
// filtered private options out first.
func Save(path string, file *File) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
