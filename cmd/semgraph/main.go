// Package main provides the semgraph CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hupe1980/semgraph"
	"github.com/hupe1980/semgraph/blobstore"
	"github.com/hupe1980/semgraph/embedding"
	"github.com/hupe1980/semgraph/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configPath string
	modelsDir  string
	modelID    string
	verbose    bool
	jsonLogs   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "semgraph",
	Short: "Build semantic neighbor graphs from word embeddings",
	Long: `semgraph builds undirected graphs of semantically related words by
expanding outward from seed words through a word embedding model and
densifying the result with mutual nearest-neighbor edges.

Models are listed in a YAML registry (semgraph.yaml by default):

  models_dir: /data/models
  default_embedding: all
  embeddings:
    all: w2v-all.bin.gz`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "semgraph.yaml", "Path to the model registry")
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "", "Override the model directory from the registry")
	rootCmd.PersistentFlags().StringVarP(&modelID, "model", "m", "", "Embedding model id (registry default when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
	rootCmd.Version = Version
}

func newLogger() *semgraph.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if jsonLogs {
		return semgraph.NewJSONLogger(level)
	}
	return semgraph.NewTextLogger(level)
}

// openWrapper resolves the requested model through the registry and
// returns a lazily loading embedding wrapper.
func openWrapper(logger *semgraph.Logger) (*embedding.Wrapper, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}

	name, err := cfg.Resolve(modelID)
	if err != nil {
		return nil, err
	}

	dir := cfg.ModelsDir
	if modelsDir != "" {
		dir = modelsDir
	}

	store := blobstore.NewLocalStore(dir)

	return embedding.NewWrapper(store, name, func(o *embedding.Options) {
		o.Logger = logger.Logger
	}), nil
}
