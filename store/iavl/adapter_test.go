package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cs, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, cs.LoadLatestVersion())

	cache := cs.CacheWrap()
	require.NoError(t, cache.Set([]byte("alice"), []byte("100")))
	require.NoError(t, cache.Set([]byte("bob"), []byte("5")))
	require.NoError(t, cache.Write())

	id, err := cs.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	// a discarded wrap does not change the state hash
	cache = cs.CacheWrap()
	require.NoError(t, cache.Delete([]byte("alice")))
	cache.Discard()
	latest, err := cs.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)

	val, err := cs.Get([]byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte("100"), val)
}

func TestAdapterIterators(t *testing.T) {
	cs := MockCommitStore()
	kv := cs.Adapter()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, kv.Set([]byte(k), []byte(k+k)))
	}

	it, err := kv.Iterator([]byte("a"), []byte("c"))
	require.NoError(t, err)
	all, err := store.ReadAll(it)
	require.NoError(t, err)
	assert.Equal(t, []store.Model{
		store.Pair([]byte("a"), []byte("aa")),
		store.Pair([]byte("b"), []byte("bb")),
	}, all)

	it, err = kv.ReverseIterator(nil, nil)
	require.NoError(t, err)
	all, err = store.ReadAll(it)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []byte("c"), all[0].Key)
}
