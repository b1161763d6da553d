package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t at the first index where got and want
// differ by more than eps, or if their lengths differ. eps 0 demands
// bit-identical processing paths.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireLevelDB fails t unless the level got lies within tolDB of want.
// Both are in dB; matching infinities (true silence) compare equal. what
// names the measured point in the failure message.
func RequireLevelDB(t testing.TB, what string, got, want, tolDB float64) {
	t.Helper()

	if math.IsInf(want, 0) && got == want {
		return
	}

	if math.IsNaN(got) || math.Abs(got-want) > tolDB {
		t.Fatalf("%s: got %.9f dB, want %.9f dB (tol %g dB)", what, got, want, tolDB)
	}
}
