// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	diskDB, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer diskDB.Close()

	memDB, err := NewMem()
	require.NoError(t, err)
	defer memDB.Close()

	for _, db := range []*LevelDB{diskDB, memDB} {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBulkIsAtomic(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("gone"), []byte("x")))

	b := db.Bulk()
	require.NoError(t, b.Put([]byte("a"), []byte("1")))
	require.NoError(t, b.Delete([]byte("gone")))
	assert.Equal(t, 2, b.Len())

	// nothing visible before Write
	_, err = db.Get([]byte("a"))
	assert.True(t, db.IsNotFound(err))

	require.NoError(t, b.Write())
	assert.Equal(t, 0, b.Len())

	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	has, err := db.Has([]byte("gone"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSnapshot(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("k"), []byte("old")))
	snap := db.Snapshot()
	defer snap.Release()
	require.NoError(t, db.Put([]byte("k"), []byte("new")))

	v, err := snap.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), v)
}
