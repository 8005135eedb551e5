package embedding

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrUnsupportedSnapshot is returned when a gob snapshot has an
// incompatible format version.
var ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")

// snapshotVersion is the gob snapshot format version.
// Increment on breaking changes to kvSnapshot.
const snapshotVersion = 1

type kvSnapshot struct {
	Version int
	Dim     int
	Words   []string
	Vectors []float32
}

// SaveKeyedVectors writes a gob snapshot of the model. Snapshots load much
// faster than re-parsing a word2vec file, since vectors are stored already
// normalized in their flat layout.
func SaveKeyedVectors(w io.Writer, kv *KeyedVectors) error {
	snap := kvSnapshot{
		Version: snapshotVersion,
		Dim:     kv.dim,
		Words:   kv.words,
		Vectors: kv.vectors,
	}
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// SaveKeyedVectorsFile writes a gob snapshot to path atomically by writing
// to a temp file and renaming it into place.
func SaveKeyedVectorsFile(path string, kv *KeyedVectors) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := SaveKeyedVectors(f, kv); err != nil {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}

	return nil
}

// LoadKeyedVectors reads a gob snapshot written by SaveKeyedVectors.
func LoadKeyedVectors(r io.Reader) (*KeyedVectors, error) {
	var snap kvSnapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, snap.Version)
	}
	if snap.Dim <= 0 || len(snap.Vectors) != len(snap.Words)*snap.Dim {
		return nil, fmt.Errorf("corrupt snapshot: %d words, %d values, dim %d", len(snap.Words), len(snap.Vectors), snap.Dim)
	}

	index := make(map[string]int, len(snap.Words))
	for i, w := range snap.Words {
		index[w] = i
	}

	return &KeyedVectors{
		dim:     snap.Dim,
		words:   snap.Words,
		index:   index,
		vectors: snap.Vectors,
	}, nil
}

// LoadKeyedVectorsFile reads a gob snapshot from path.
func LoadKeyedVectorsFile(path string) (*KeyedVectors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadKeyedVectors(f)
}
