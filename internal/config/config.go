// Package config loads the embedding model registry used by the CLI.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the embedding model registry: a directory of model files plus
// named entries pointing at them.
type Config struct {
	// ModelsDir is the directory (blob store root) holding model files.
	ModelsDir string `yaml:"models_dir"`

	// DefaultEmbedding is the entry used when no model id is given.
	DefaultEmbedding string `yaml:"default_embedding"`

	// Embeddings maps model ids to file names inside ModelsDir.
	Embeddings map[string]string `yaml:"embeddings"`
}

// Load reads a config file from path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a YAML config from r and validates it.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{
		ModelsDir: ".",
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Embeddings) == 0 {
		return nil, fmt.Errorf("config defines no embeddings")
	}

	if cfg.DefaultEmbedding == "" {
		if len(cfg.Embeddings) == 1 {
			for id := range cfg.Embeddings {
				cfg.DefaultEmbedding = id
			}
		} else {
			return nil, fmt.Errorf("config defines multiple embeddings but no default_embedding")
		}
	}

	if _, ok := cfg.Embeddings[cfg.DefaultEmbedding]; !ok {
		return nil, fmt.Errorf("default_embedding %q is not a defined embedding", cfg.DefaultEmbedding)
	}

	return cfg, nil
}

// Resolve returns the model file name for the given id. An empty id
// resolves to the default embedding.
func (c *Config) Resolve(id string) (string, error) {
	if id == "" {
		id = c.DefaultEmbedding
	}

	name, ok := c.Embeddings[id]
	if !ok {
		return "", fmt.Errorf("unknown embedding %q", id)
	}
	return name, nil
}
