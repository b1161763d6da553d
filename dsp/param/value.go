package param

import (
	"math"
	"sync/atomic"
)

// Value is a float64 handed from a single writer to a single reader.
// The zero Value holds 0 at generation 0.
//
// Every Store bumps a generation counter, so the reader can tell a fresh
// publish from an old one even when both carry the same number.
type Value struct {
	bits atomic.Uint64
	gen  atomic.Uint64
}

// NewValue returns a Value holding v.
func NewValue(v float64) *Value {
	p := &Value{}
	p.Store(v)
	return p
}

// Store publishes v. Safe to call from any goroutine.
func (p *Value) Store(v float64) {
	p.bits.Store(math.Float64bits(v))
	p.gen.Add(1)
}

// Load returns the most recently stored value.
func (p *Value) Load() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Generation returns the number of Store calls so far.
func (p *Value) Generation() uint64 {
	return p.gen.Load()
}

// LoadSince returns the current value and generation when a Store happened
// after generation seen. The value is at least as new as the returned
// generation.
func (p *Value) LoadSince(seen uint64) (v float64, gen uint64, ok bool) {
	gen = p.gen.Load()
	if gen == seen {
		return 0, seen, false
	}

	return p.Load(), gen, true
}
