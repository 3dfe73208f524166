package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluxbio/sbmlio/internal/reader"
)

// ReadConfig is the YAML read-options file accepted by --config.
type ReadConfig struct {
	// Severities names the diagnostic levels treated as fatal when
	// opening a document. Empty means the default {Fatal, Error}.
	Severities []string `yaml:"severities,omitempty"`

	// GenerateMetaID assigns a fresh metaid to converted models that
	// have none.
	GenerateMetaID bool `yaml:"generate_metaid,omitempty"`
}

// LoadReadConfig parses a read-options file. Unknown fields are rejected
// so typos fail loudly instead of silently changing nothing.
func LoadReadConfig(path string) (*ReadConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg ReadConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// readerOptions resolves the effective reader options for a command.
func readerOptions(opts *RootOptions) (*reader.Options, *ReadConfig, error) {
	if opts.Config == "" {
		return nil, &ReadConfig{}, nil
	}
	cfg, err := LoadReadConfig(opts.Config)
	if err != nil {
		return nil, nil, err
	}
	ro := &reader.Options{}
	if len(cfg.Severities) > 0 {
		ro.Severities = cfg.Severities
	}
	return ro, cfg, nil
}
