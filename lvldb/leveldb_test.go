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

	"github.com/vechain/tokenomy/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		invalidKey = []byte("abc")
	)

	fileDB, err := New(filepath.Join(t.TempDir(), "main.db"), Options{16, 16})
	require.NoError(t, err)
	defer fileDB.Close()

	memDB, err := NewMem()
	require.NoError(t, err)
	defer memDB.Close()

	for _, db := range []*LevelDB{fileDB, memDB} {
		assert.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(invalidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		assert.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBulk(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	b := db.Bulk()
	assert.NoError(t, b.Put([]byte("a"), []byte("1")))
	assert.NoError(t, b.Put([]byte("b"), []byte("2")))
	assert.NoError(t, b.Delete([]byte("a")))
	assert.Equal(t, 3, b.Len())

	// not visible before write
	has, _ := db.Has([]byte("b"))
	assert.False(t, has)

	assert.NoError(t, b.Write())
	got, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	has, _ = db.Has([]byte("a"))
	assert.False(t, has)
}

func TestBucket(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := kv.Bucket("s").NewStore(db)
	assert.NoError(t, store.Put([]byte("k"), []byte("v")))

	raw, err := db.Get([]byte("sk"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), raw)

	b := store.Bulk()
	assert.NoError(t, b.Put([]byte("x"), []byte("y")))
	assert.NoError(t, b.Write())
	has, err := db.Has([]byte("sx"))
	assert.NoError(t, err)
	assert.True(t, has)

	_, err = store.Get([]byte("missing"))
	assert.True(t, store.IsNotFound(err))
}
