package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/semgraph"
	"github.com/hupe1980/semgraph/embedding"
	"github.com/hupe1980/semgraph/export/cytoscape"
	"github.com/hupe1980/semgraph/export/gexf"
	"github.com/hupe1980/semgraph/export/visjs"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	networkK       int
	networkHops    int
	networkOut     string
	networkFormats []string
	lexiconPath    string
	useReference   bool
)

func init() {
	networkCmd.Flags().IntVarP(&networkK, "neighbors", "k", 10, "Number of neighbors per word")
	networkCmd.Flags().IntVarP(&networkHops, "hops", "n", 1, "Number of expansion hops")
	networkCmd.Flags().StringVarP(&networkOut, "out", "o", "words", "Output path without extension")
	networkCmd.Flags().StringSliceVarP(&networkFormats, "format", "f", []string{"gexf"}, "Output formats: gexf, cytoscape, visjs")
	networkCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "Restrict neighbors to the words in this file")
	networkCmd.Flags().BoolVar(&useReference, "reference", false, "Use the baseline build algorithm")
	rootCmd.AddCommand(networkCmd)
}

var networkCmd = &cobra.Command{
	Use:   "network <word>...",
	Short: "Build a semantic network from seed words",
	Long: `Build a semantic network from one or more seed words and write it in
one or more output formats.

Examples:
  semgraph network famine
  semgraph network -k 5 -n 2 -o disease -f gexf,cytoscape contagion disease`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	wrapper, err := openWrapper(logger)
	if err != nil {
		return err
	}
	if err := wrapper.Load(ctx); err != nil {
		return err
	}

	if lexiconPath != "" {
		if err := applyLexicon(wrapper, logger); err != nil {
			return err
		}
	}

	builder := semgraph.New(wrapper, semgraph.WithLogger(logger))

	logger.Info("building network", "seeds", args, "k", networkK, "hops", networkHops)

	build := builder.Build
	if useReference {
		build = builder.BuildReference
	}

	graph, err := build(ctx, args, networkK, networkHops)
	if err != nil {
		if errors.Is(err, semgraph.ErrNoValidSeeds) {
			return fmt.Errorf("no results: none of the seed words are in the model vocabulary")
		}
		return err
	}

	logger.Info("built network", "nodes", len(graph.Nodes), "edges", len(graph.Edges))

	// Write all requested formats concurrently.
	g := new(errgroup.Group)
	for _, format := range networkFormats {
		g.Go(func() error {
			return writeFormat(graph, strings.ToLower(strings.TrimSpace(format)), logger)
		})
	}

	return g.Wait()
}

func writeFormat(graph *semgraph.SemanticGraph, format string, logger *semgraph.Logger) error {
	var (
		ext   string
		write func(f *os.File) error
	)

	switch format {
	case "gexf":
		ext, write = ".gexf", func(f *os.File) error { return gexf.Write(f, graph) }
	case "cytoscape":
		ext, write = ".json", func(f *os.File) error { return cytoscape.Write(f, graph) }
	case "visjs":
		ext, write = ".js", func(f *os.File) error { return visjs.Write(f, graph) }
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	path := networkOut + ext

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("wrote network", "format", format, "path", path)
	return nil
}

func applyLexicon(wrapper *embedding.Wrapper, logger *semgraph.Logger) error {
	f, err := os.Open(lexiconPath)
	if err != nil {
		return fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	allow, missing, err := embedding.LoadLexicon(f, wrapper.KeyedVectors())
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}

	logger.Info("loaded lexicon", "words", allow.GetCardinality(), "missing", missing)
	wrapper.SetAllow(allow)

	return nil
}
