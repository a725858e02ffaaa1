package status

import (
	"math"
	"sync/atomic"
)

// Gauge is an atomic float64, zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Label is an atomic short string, zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

func (l *Label) Set(v string) {
	l.ptr.Store(&v)
}

func (l *Label) Get() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
