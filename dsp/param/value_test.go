package param

import (
	"math"
	"sync"
	"testing"
)

func TestValueStoreLoad(t *testing.T) {
	var v Value
	if got := v.Load(); got != 0 {
		t.Fatalf("zero Value = %g, want 0", got)
	}

	p := NewValue(440)
	if got := p.Load(); got != 440 {
		t.Fatalf("Load() = %g, want 440", got)
	}

	p.Store(math.Inf(-1))
	if got := p.Load(); !math.IsInf(got, -1) {
		t.Fatalf("Load() = %g, want -Inf", got)
	}
}

func TestValueGenerationCountsRepublish(t *testing.T) {
	var v Value

	seen := v.Generation()
	if _, _, ok := v.LoadSince(seen); ok {
		t.Fatal("LoadSince reported a change before any Store")
	}

	v.Store(500)
	got, gen, ok := v.LoadSince(seen)
	if !ok || got != 500 || gen != 1 {
		t.Fatalf("LoadSince() = %g, %d, %t; want 500, 1, true", got, gen, ok)
	}
	seen = gen

	if _, _, ok := v.LoadSince(seen); ok {
		t.Fatal("LoadSince reported a change without a new Store")
	}

	v.Store(500)
	got, gen, ok = v.LoadSince(seen)
	if !ok || got != 500 || gen != 2 {
		t.Fatalf("same-value Store not reported: %g, %d, %t", got, gen, ok)
	}
}

func TestValueConcurrentHandoff(t *testing.T) {
	p := NewValue(0)

	const writes = 10000

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for i := 1; i <= writes; i++ {
			p.Store(float64(i))
		}
	}()

	last := 0.0
	for last < writes {
		v := p.Load()
		if v < last {
			t.Fatalf("reader saw %g after %g", v, last)
		}
		last = v
	}

	wg.Wait()
}
