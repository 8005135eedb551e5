package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	neighborsK       int
	neighborsIgnores []string
)

func init() {
	neighborsCmd.Flags().IntVarP(&neighborsK, "neighbors", "k", 10, "Number of neighbors to show")
	neighborsCmd.Flags().StringSliceVar(&neighborsIgnores, "ignore", nil, "Words to exclude from the results")
	rootCmd.AddCommand(neighborsCmd)
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <word>",
	Short: "Show the nearest neighbors of a word",
	Long: `Show the most similar words to a word under the selected embedding model.

Examples:
  semgraph neighbors famine
  semgraph neighbors -k 20 --ignore war,battle conflict`,
	Args: cobra.ExactArgs(1),
	RunE: runNeighbors,
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	wrapper, err := openWrapper(logger)
	if err != nil {
		return err
	}
	if err := wrapper.Load(cmd.Context()); err != nil {
		return err
	}

	word := args[0]
	if !wrapper.InVocab(word) {
		return fmt.Errorf("word %q is not in the model vocabulary", word)
	}

	neighbors := wrapper.Get(word, neighborsK, neighborsIgnores)
	for _, n := range neighbors {
		fmt.Println(n)
	}

	return nil
}
