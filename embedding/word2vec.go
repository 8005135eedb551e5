package embedding

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/semgraph/blobstore"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// maxDimension bounds the header dimension to reject corrupt files early.
const maxDimension = 1 << 16

// Open loads an embedding model from a blobstore. The format is picked from
// the blob name: a ".gz", ".zst" or ".lz4" suffix selects the decompressor,
// and the remaining extension selects the parser (".txt" or ".vec" for the
// word2vec text format, ".gob" for a snapshot, anything else for the
// word2vec binary format).
func Open(ctx context.Context, store blobstore.BlobStore, name string) (*KeyedVectors, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	var r io.Reader = bufio.NewReaderSize(blob, 1<<20)

	base := name
	switch ext := strings.ToLower(filepath.Ext(base)); ext {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip %q: %w", name, err)
		}
		defer gz.Close()
		r, base = gz, strings.TrimSuffix(base, ext)
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd %q: %w", name, err)
		}
		defer zr.Close()
		r, base = zr, strings.TrimSuffix(base, ext)
	case ".lz4":
		r, base = lz4.NewReader(r), strings.TrimSuffix(base, ext)
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".txt", ".vec":
		return LoadWord2VecText(r)
	case ".gob":
		return LoadKeyedVectors(r)
	default:
		return LoadWord2VecBinary(r)
	}
}

// OpenPath loads an embedding model from a file on the local file system.
func OpenPath(ctx context.Context, path string) (*KeyedVectors, error) {
	return Open(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path))
}

// LoadWord2VecBinary parses a model in the word2vec binary format:
// an ASCII "vocab dim\n" header followed by, for each entry, the word,
// a single space, and dim little-endian float32 values.
func LoadWord2VecBinary(r io.Reader) (*KeyedVectors, error) {
	br := bufio.NewReader(r)

	vocab, dim, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	kv, err := NewKeyedVectors(dim)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, dim*4)
	vec := make([]float32, dim)

	for i := 0; i < vocab; i++ {
		word, err := readBinaryWord(br)
		if err != nil {
			return nil, fmt.Errorf("read word %d: %w", i, err)
		}

		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("read vector for %q: %w", word, err)
		}
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[j*4:]))
		}

		if err := kv.Add(word, vec); err != nil {
			return nil, err
		}
	}

	return kv, nil
}

// LoadWord2VecText parses a model in the word2vec text format:
// an ASCII "vocab dim\n" header followed by one "word v1 ... vdim" line
// per entry.
func LoadWord2VecText(r io.Reader) (*KeyedVectors, error) {
	br := bufio.NewReader(r)

	vocab, dim, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	kv, err := NewKeyedVectors(dim)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	vec := make([]float32, dim)

	for i := 0; i < vocab; i++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("truncated model: expected %d entries, got %d", vocab, i)
		}

		fields := strings.Fields(sc.Text())
		if len(fields) != dim+1 {
			return nil, fmt.Errorf("entry %d: expected %d fields, got %d", i, dim+1, len(fields))
		}

		for j, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("entry %d (%q): %w", i, fields[0], err)
			}
			vec[j] = float32(v)
		}

		if err := kv.Add(fields[0], vec); err != nil {
			return nil, err
		}
	}

	return kv, nil
}

func readHeader(br *bufio.Reader) (vocab, dim int, err error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed header: %q", strings.TrimSpace(line))
	}

	vocab, err = strconv.Atoi(fields[0])
	if err != nil || vocab < 0 {
		return 0, 0, fmt.Errorf("malformed vocabulary size: %q", fields[0])
	}

	dim, err = strconv.Atoi(fields[1])
	if err != nil || dim <= 0 || dim > maxDimension {
		return 0, 0, fmt.Errorf("malformed dimension: %q", fields[1])
	}

	return vocab, dim, nil
}

// readBinaryWord reads the next space-terminated word, skipping the newline
// some writers emit between entries.
func readBinaryWord(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == ' ' {
			return sb.String(), nil
		}
		if b == '\n' && sb.Len() == 0 {
			continue
		}
		sb.WriteByte(b)
	}
}
