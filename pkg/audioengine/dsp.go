package audioengine

import (
	"math"
	"sync/atomic"
)

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// liveValue is a float the render thread reads every block while control
// calls write it from any goroutine.
type liveValue struct {
	bits atomic.Uint64
}

func newLiveValue(v float64) *liveValue {
	l := &liveValue{}
	l.Store(v)
	return l
}

func (l *liveValue) Store(v float64) { l.bits.Store(math.Float64bits(v)) }
func (l *liveValue) Load() float64   { return math.Float64frombits(l.bits.Load()) }
