// Package semgraph builds semantic neighbor graphs from word embeddings.
//
// Starting from one or more seed words, the builder expands outward through
// the embedding space in breadth-first hops, connecting each word to its
// top-k nearest neighbors, then densifies the graph with edges between
// mutual nearest neighbors. The result is an undirected, unweighted graph
// whose nodes carry their minimum hop distance from the seeds.
//
// Basic usage:
//
//	wrapper := embedding.NewWrapper(store, "model.bin")
//	builder := semgraph.New(wrapper)
//
//	graph, err := builder.Build(ctx, []string{"famine"}, 10, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(len(graph.Nodes), len(graph.Edges))
package semgraph
