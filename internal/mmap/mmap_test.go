package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(path, []byte("hello mmap"), 0o644))

	m, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, int64(10), m.Size())
	assert.Equal(t, []byte("hello mmap"), m.Bytes())

	buf := make([]byte, 4)
	n, err := m.ReadAt(buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "mmap", string(buf[:n]))

	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())

	// Close is idempotent.
	require.NoError(t, m.Close())
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Size())
	require.NoError(t, m.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
