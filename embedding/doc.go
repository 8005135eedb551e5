// Package embedding provides word embedding storage, similarity queries,
// and a caching wrapper for repeated top-k neighbor lookups.
//
// Models are loaded from a blobstore in word2vec binary or text format,
// or from a pre-parsed gob snapshot. Vectors are unit-normalized at load
// time so that similarity reduces to a dot product.
package embedding
