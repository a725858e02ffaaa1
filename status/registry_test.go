package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapCachesPointer(t *testing.T) {
	m := NewMetricMap[Gauge]()
	a := m.Get("x")
	b := m.Get("x")
	assert.Same(t, a, b)
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[Label]()
	m.Get("c").Set("3")
	m.Get("a").Set("1")
	m.Get("b").Set("2")

	var keys []string
	m.Range(func(k string, v *Label) {
		keys = append(keys, k)
	})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get(KeyFrames).Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(5000), r.Ints.Get(KeyFrames).Load())
}

func TestRegistryHUD(t *testing.T) {
	r := NewRegistry()
	r.Floats.Get(KeyFPS).Set(49.96)
	r.Labels.Get(KeyBand).Set("500-1000mm")
	r.Labels.Get(KeyMirror).Set("off")
	r.Labels.Get(KeyBackground).Set("depth")
	r.Ints.Get(KeyBalls).Store(12)
	r.Ints.Get(KeyObstacles).Store(3)

	assert.Equal(t, "fps 50.0 | band 500-1000mm | mirror off | bg depth | balls 12 | obstacles 3", r.HUD())
}

func TestRegistryFields(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeySpawned).Store(4)
	r.Floats.Get(KeyFPS).Set(1.5)
	r.Labels.Get(KeyBand).Set("x")
	assert.Len(t, r.Fields(), 3)
	assert.Equal(t, 3, r.TotalCount())
}

func TestGaugeAndLabelZeroValue(t *testing.T) {
	var g Gauge
	var l Label
	assert.Zero(t, g.Get())
	assert.Empty(t, l.Get())
}
