package onepole

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-onepole/internal/testutil"
)

func TestMagnitudeResponseMatchesResponse(t *testing.T) {
	f := mustNew(t, 48000, WithCutoffHz(2500), WithMode(ModeHighShelf), WithGainDB(-9))

	freqs := []float64{10, 100, 1000, 2500, 8000, 16000, 23999}
	got := make([]float64, len(freqs))

	if err := f.MagnitudeResponse(got, freqs); err != nil {
		t.Fatalf("MagnitudeResponse() error = %v", err)
	}

	for i, hz := range freqs {
		want := cmplx.Abs(f.Response(hz))
		if math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("%g Hz: |H| = %g, want %g", hz, got[i], want)
		}
	}

	if err := f.MagnitudeResponse(make([]float64, 2), freqs); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestShelfResponse(t *testing.T) {
	const boostDB = 6.0

	low := mustNew(t, 48000, WithCutoffHz(100), WithMode(ModeLowShelf), WithGainDB(boostDB))
	testutil.RequireLevelDB(t, "low shelf DC", low.MagnitudeDB(0), boostDB, 1e-9)
	testutil.RequireLevelDB(t, "low shelf 20 kHz", low.MagnitudeDB(20000), 0, 0.1)

	high := mustNew(t, 48000, WithCutoffHz(100), WithMode(ModeHighShelf), WithGainDB(boostDB))
	testutil.RequireLevelDB(t, "high shelf DC", high.MagnitudeDB(0), 0, 1e-9)
	testutil.RequireLevelDB(t, "high shelf 20 kHz", high.MagnitudeDB(20000), boostDB, 0.1)
}

func TestHighpassResponse(t *testing.T) {
	f := mustNew(t, 48000, WithCutoffHz(100), WithMode(ModeHighpass))

	if got := cmplx.Abs(f.Response(0)); got > 1e-12 {
		t.Fatalf("highpass DC |H| = %g, want 0", got)
	}
	testutil.RequireLevelDB(t, "highpass Nyquist", f.MagnitudeDB(24000), 0, 0.1)
}

func TestAllpassStyleUnityAtDC(t *testing.T) {
	f := mustNew(t, 48000, WithCutoffHz(700), WithMode(ModeAllpass))

	testutil.RequireLevelDB(t, "allpass DC", f.MagnitudeDB(0), 0, 1e-9)
	if got := f.Phase(0); math.Abs(got) > 1e-12 {
		t.Fatalf("allpass DC phase = %g, want 0", got)
	}
}

func TestImpulseResponseClosedForm(t *testing.T) {
	f := mustNew(t, 48000, WithCutoffHz(1200))
	f.ProcessSample(0, 0.4)
	saved := f.State()

	ir := f.ImpulseResponse(64)
	a := f.Coefficient().A

	for n, got := range ir {
		want := a * math.Pow(1-a, float64(n))
		if math.Abs(got-want) > 1e-14 {
			t.Fatalf("ir[%d] = %g, want %g", n, got, want)
		}
	}

	if st := f.State(); st[0] != saved[0] || st[1] != saved[1] {
		t.Fatalf("state modified: %v, want %v", st, saved)
	}

	if f.ImpulseResponse(0) != nil {
		t.Fatal("expected nil for n=0")
	}
}
