package main

import (
	"github.com/hupe1980/semgraph/embedding"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <output.gob>",
	Short: "Convert a model to a fast-loading snapshot",
	Long: `Parse the selected embedding model and write it back as a gob snapshot.
Snapshots skip word2vec parsing and vector normalization on load, which
makes startup much faster for large models.

Example:
  semgraph snapshot -m all w2v-all.gob`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	wrapper, err := openWrapper(logger)
	if err != nil {
		return err
	}
	if err := wrapper.Load(cmd.Context()); err != nil {
		return err
	}

	kv := wrapper.KeyedVectors()

	logger.Info("writing snapshot", "path", args[0], "vocabulary", kv.Len(), "dimension", kv.Dim())

	return embedding.SaveKeyedVectorsFile(args[0], kv)
}
