package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	b := m.Get("x")
	assert.Same(t, a, b)
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMap_RangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Int("b").Store(2)
	r.Int("a").Store(1)
	r.Int("c").Store(3)

	var keys []string
	r.Ints.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestAtomicFloat_ConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400.0, f.Get())
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Int(SimTicks).Add(3)
	r.Float(AudioVolume).Set(0.6)
	r.Bool(SessionPaused).Store(true)

	snap := r.Snapshot()
	assert.Equal(t, int64(3), snap[SimTicks])
	assert.Equal(t, 0.6, snap[AudioVolume])
	assert.Equal(t, true, snap[SessionPaused])
	assert.Equal(t, 3, r.TotalCount())
}
