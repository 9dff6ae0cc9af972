package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStoreFile(t *testing.T) {
	assert.True(t, IsStoreFile("CURRENT"))
	assert.True(t, IsStoreFile("MANIFEST-000001"))
	assert.True(t, IsStoreFile("000003.log"))
	assert.True(t, IsStoreFile("000005.ldb"))
	assert.True(t, IsStoreFile("000007.sst"))
	assert.True(t, IsStoreFile("LOG"))
	assert.True(t, IsStoreFile("LOG.old"))

	assert.False(t, IsStoreFile("LOCK"))
	assert.False(t, IsStoreFile("notes.txt"))
	assert.False(t, IsStoreFile(".DS_Store"))
}

func TestCopyStore(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{"CURRENT", "MANIFEST-000001", "000003.log", "LOCK", "junk.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte(name), 0o644))
	}
	dst := filepath.Join(t.TempDir(), "copy")

	n, err := CopyStore(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	dents, err := os.ReadDir(dst)
	require.NoError(t, err)
	var names []string
	for _, d := range dents {
		names = append(names, d.Name())
	}
	assert.ElementsMatch(t, []string{"CURRENT", "MANIFEST-000001", "000003.log"}, names)

	data, err := os.ReadFile(filepath.Join(dst, "CURRENT"))
	require.NoError(t, err)
	assert.Equal(t, []byte("CURRENT"), data)
}

func TestCopyStoreRefusesOverwrite(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "CURRENT"), []byte("x"), 0o644))
	dst := t.TempDir() // already exists

	_, err := CopyStore(src, dst)
	assert.Error(t, err)
}

func TestCopyStoreEmptySource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "copy")
	_, err := CopyStore(t.TempDir(), dst)
	assert.Error(t, err)
}
