package resolver_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mehrshadshams/reactive/pkg/resolver"
)

func TestMapResolverLookupSeeded(t *testing.T) {
	r := resolver.NewMapResolver(map[string]float64{"k": 40})
	v, ok := r.Lookup("k")
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestMapResolverSetOverwritesAndDeleteUnbinds(t *testing.T) {
	r := resolver.NewMapResolver(nil)
	r.Set("k", 1)
	v, ok := r.Lookup("k")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	r.Set("k", 2)
	v, _ = r.Lookup("k")
	assert.Equal(t, 2.0, v)

	r.Delete("k")
	_, ok = r.Lookup("k")
	assert.False(t, ok)
}

func TestMapResolverSnapshotIsACopy(t *testing.T) {
	r := resolver.NewMapResolver(map[string]float64{"k": 1})
	snap := r.Snapshot()
	snap["k"] = 99
	v, _ := r.Lookup("k")
	assert.Equal(t, 1.0, v)
}

func TestMapResolverConcurrentAccess(t *testing.T) {
	r := resolver.NewMapResolver(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.Set("k", float64(i))
		}(i)
		go func() {
			defer wg.Done()
			r.Lookup("k")
		}()
	}
	wg.Wait()
}
