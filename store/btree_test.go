package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole, just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// layer another btree on top and make sure that we get base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assertGetHas(t, c3, k, nil, false)
	require.NoError(t, c3.Write())
	assertGetHas(t, base, k, nil, false)
	assertGetHas(t, base, k2, v2, true)

	// a discarded wrap never reaches the backing store
	c4 := base.CacheWrap()
	require.NoError(t, c4.Set(k3, v3))
	c4.Discard()
	require.NoError(t, c4.Write())
	assertGetHas(t, base, k3, nil, false)
}

func TestCacheWrapIterators(t *testing.T) {
	Convey("Given a base store with committed data", t, func() {
		base := MemStore()
		for _, k := range []string{"a", "c", "e", "g"} {
			So(base.Set([]byte(k), []byte("base-"+k)), ShouldBeNil)
		}

		Convey("A cache wrap merges its writes with the parent", func() {
			cache := base.CacheWrap()
			So(cache.Set([]byte("b"), []byte("new-b")), ShouldBeNil)
			So(cache.Set([]byte("c"), []byte("new-c")), ShouldBeNil)
			So(cache.Delete([]byte("e")), ShouldBeNil)

			it, err := cache.Iterator(nil, nil)
			So(err, ShouldBeNil)
			all, err := ReadAll(it)
			So(err, ShouldBeNil)
			So(all, ShouldResemble, []Model{
				Pair([]byte("a"), []byte("base-a")),
				Pair([]byte("b"), []byte("new-b")),
				Pair([]byte("c"), []byte("new-c")),
				Pair([]byte("g"), []byte("base-g")),
			})

			Convey("Ranges are respected with an exclusive end", func() {
				it, err := cache.Iterator([]byte("b"), []byte("g"))
				So(err, ShouldBeNil)
				all, err := ReadAll(it)
				So(err, ShouldBeNil)
				So(all, ShouldResemble, []Model{
					Pair([]byte("b"), []byte("new-b")),
					Pair([]byte("c"), []byte("new-c")),
				})
			})

			Convey("Reverse iteration returns descending keys", func() {
				it, err := cache.ReverseIterator(nil, nil)
				So(err, ShouldBeNil)
				all, err := ReadAll(it)
				So(err, ShouldBeNil)
				So(all, ShouldResemble, []Model{
					Pair([]byte("g"), []byte("base-g")),
					Pair([]byte("c"), []byte("new-c")),
					Pair([]byte("b"), []byte("new-b")),
					Pair([]byte("a"), []byte("base-a")),
				})
			})

			Convey("Discarding leaves the parent untouched", func() {
				cache.Discard()
				it, err := base.Iterator(nil, nil)
				So(err, ShouldBeNil)
				all, err := ReadAll(it)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 4)
				So(all[1], ShouldResemble, Pair([]byte("c"), []byte("base-c")))
			})
		})

		Convey("Deleting everything yields an empty iterator", func() {
			cache := base.CacheWrap()
			for _, k := range []string{"a", "c", "e", "g"} {
				So(cache.Delete([]byte(k)), ShouldBeNil)
			}
			it, err := cache.ReverseIterator(nil, nil)
			So(err, ShouldBeNil)
			all, err := ReadAll(it)
			So(err, ShouldBeNil)
			So(all, ShouldBeEmpty)
		})
	})
}

func TestBatchShowOps(t *testing.T) {
	b := NewNonAtomicBatch(EmptyKVStore{})
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("k")))
	assert.Equal(t, []Op{SetOp([]byte("k"), []byte("v")), DelOp([]byte("k"))}, b.ShowOps())
	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
}
