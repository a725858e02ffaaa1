// Package status exposes loop metrics as atomics for the HUD and the log
package status

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// Metric keys written by the loop
const (
	KeyFrames     = "frames"
	KeyBalls      = "balls"
	KeyObstacles  = "obstacles"
	KeySpawned    = "spawned"
	KeyCulled     = "culled"
	KeyCaptures   = "captures"
	KeyFPS        = "fps"
	KeyBand       = "band"
	KeyMirror     = "mirror"
	KeyBackground = "background"
	KeySteps      = "steps"
	KeyShapes     = "shapes"
)

// Registry is the central metrics facade
// The loop caches pointers at construction; readers may sample from any goroutine
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Gauge]
	Labels *MetricMap[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Gauge](),
		Labels: NewMetricMap[Label](),
	}
}

// TotalCount returns the number of registered metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Labels.Count()
}

// HUD formats the one-line overlay shown under the scene
func (r *Registry) HUD() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fps %4.1f", r.Floats.Get(KeyFPS).Get())
	fmt.Fprintf(&b, " | band %s", r.Labels.Get(KeyBand).Get())
	fmt.Fprintf(&b, " | mirror %s", r.Labels.Get(KeyMirror).Get())
	fmt.Fprintf(&b, " | bg %s", r.Labels.Get(KeyBackground).Get())
	fmt.Fprintf(&b, " | balls %d", r.Ints.Get(KeyBalls).Load())
	fmt.Fprintf(&b, " | obstacles %d", r.Ints.Get(KeyObstacles).Load())
	return b.String()
}

// Fields returns every metric as zap fields in sorted order, for the exit summary
func (r *Registry) Fields() []zap.Field {
	fields := make([]zap.Field, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		fields = append(fields, zap.Int64(k, v.Load()))
	})
	r.Floats.Range(func(k string, v *Gauge) {
		fields = append(fields, zap.Float64(k, v.Get()))
	})
	r.Labels.Range(func(k string, v *Label) {
		fields = append(fields, zap.String(k, v.Get()))
	})
	return fields
}
