package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bahrom04-lab/element-desktop-leveldb/elemeta_errors"
)

// writeFixture builds a throwaway store the extractor will only ever
// read. Tests stand in for the operator's working-copy step.
func writeFixture(t *testing.T, kvs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	db, err := pebble.Open(dir, &pebble.Options{})
	require.NoError(t, err)
	for k, v := range kvs {
		require.NoError(t, db.Set([]byte(k), []byte(v), pebble.Sync))
	}
	require.NoError(t, db.Close())
	return dir
}

func TestOpenNotFound(t *testing.T) {
	_, err := Open(t.TempDir(), nil) // empty dir, no engine files
	assert.ErrorIs(t, err, elemeta_errors.ErrNotFound)

	_, err = Open("/no/such/path", nil)
	assert.ErrorIs(t, err, elemeta_errors.ErrNotFound)
	assert.NotErrorIs(t, err, elemeta_errors.ErrCorrupt)
}

func TestOpenCorrupt(t *testing.T) {
	dir := writeFixture(t, map[string]string{"k": "v"})
	// a trashed CURRENT leaves the manifest unreachable
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CURRENT"), []byte("garbage\n"), 0o644))

	_, err := Open(dir, nil)
	assert.ErrorIs(t, err, elemeta_errors.ErrCorrupt)
	assert.NotErrorIs(t, err, elemeta_errors.ErrNotFound)
}

func TestScanOrderAndRestart(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"b": "2",
		"a": "1",
		"c": "3",
	})
	st, err := Open(dir, nil)
	require.NoError(t, err)
	defer st.Close()

	var keys []string
	err = st.Scan(func(k, v []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	// a second scan starts over from the first entry
	keys = keys[:0]
	err = st.Scan(func(k, v []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestScanAbort(t *testing.T) {
	dir := writeFixture(t, map[string]string{"a": "1", "b": "2"})
	st, err := Open(dir, nil)
	require.NoError(t, err)
	defer st.Close()

	boom := assert.AnError
	n := 0
	err = st.Scan(func(k, v []byte) error {
		n++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
}

func TestGet(t *testing.T) {
	dir := writeFixture(t, map[string]string{"k1": "v1"})
	st, err := Open(dir, nil)
	require.NoError(t, err)
	defer st.Close()

	v, err := st.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	// second read comes from the lookup cache
	v, err = st.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	_, err = st.Get([]byte("absent"))
	assert.ErrorIs(t, err, elemeta_errors.ErrKeyMissing)
}

func TestClosed(t *testing.T) {
	dir := writeFixture(t, map[string]string{"k": "v"})
	st, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	err = st.Scan(func(k, v []byte) error { return nil })
	assert.ErrorIs(t, err, elemeta_errors.ErrClosed)
	_, err = st.Get([]byte("k"))
	assert.ErrorIs(t, err, elemeta_errors.ErrClosed)
	assert.NoError(t, st.Close()) // idempotent
}
