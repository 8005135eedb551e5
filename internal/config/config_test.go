package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(`
models_dir: /data/models
default_embedding: all
embeddings:
  all: w2v-all.bin.gz
  novels: w2v-novels.bin
`))
		require.NoError(t, err)

		assert.Equal(t, "/data/models", cfg.ModelsDir)
		assert.Equal(t, "all", cfg.DefaultEmbedding)
		assert.Len(t, cfg.Embeddings, 2)
	})

	t.Run("single embedding becomes the default", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(`
embeddings:
  all: w2v.bin
`))
		require.NoError(t, err)

		assert.Equal(t, "all", cfg.DefaultEmbedding)
		assert.Equal(t, ".", cfg.ModelsDir)
	})

	t.Run("no embeddings", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`models_dir: /data`))
		require.Error(t, err)
	})

	t.Run("multiple embeddings without default", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
embeddings:
  a: a.bin
  b: b.bin
`))
		require.Error(t, err)
	})

	t.Run("default references unknown embedding", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
default_embedding: missing
embeddings:
  all: w2v.bin
`))
		require.Error(t, err)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
embedings:
  all: w2v.bin
`))
		require.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
default_embedding: all
embeddings:
  all: w2v-all.bin
  novels: w2v-novels.bin
`))
	require.NoError(t, err)

	name, err := cfg.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "w2v-all.bin", name)

	name, err = cfg.Resolve("novels")
	require.NoError(t, err)
	assert.Equal(t, "w2v-novels.bin", name)

	_, err = cfg.Resolve("ghost")
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embeddings:\n  all: w2v.bin\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "all", cfg.DefaultEmbedding)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
