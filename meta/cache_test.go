package meta_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propgraph/meta"
)

type cachedThing struct {
	Label string
	Count int
}

func TestCacheReturnsSameInstance(t *testing.T) {
	cache := meta.NewCache()

	a := cache.For(reflect.TypeOf(cachedThing{}))
	b := cache.For(reflect.TypeOf(cachedThing{}))
	c := cache.For(reflect.TypeOf(&cachedThing{}))

	assert.Same(t, a, b)
	assert.Same(t, a, c, "pointer type shares the element type entry")
}

func TestUncachedRebuildsEveryTime(t *testing.T) {
	cache := meta.NewUncached()

	a := cache.For(reflect.TypeOf(cachedThing{}))
	b := cache.For(reflect.TypeOf(cachedThing{}))

	assert.NotSame(t, a, b)
	assert.Equal(t, a.GetterNames(), b.GetterNames())
}

func TestCacheConcurrentResolution(t *testing.T) {
	type fresh struct {
		A, B, C string
		N       int
	}

	cache := meta.NewCache()

	const workers = 16

	results := make([]*meta.TypeMeta, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = cache.For(reflect.TypeOf(fresh{}))
		}()
	}

	wg.Wait()

	first := results[0]
	require.NotNil(t, first)

	for i, m := range results {
		assert.Same(t, first, m, "worker %d observed a different entry", i)
		assert.ElementsMatch(t, []string{"a", "b", "c", "n"}, m.GetterNames())
	}
}
