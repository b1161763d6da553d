package onepole

import (
	"math"

	"github.com/cwbudde/algo-onepole/dsp/core"
)

const (
	// MinCutoffHz is the lower clamp applied to every cutoff.
	MinCutoffHz = 1e-3

	// nyquistMargin keeps the clamped cutoff a fraction of the sample rate
	// below Nyquist, where tan() diverges.
	nyquistMargin = 1e-6
)

// Coefficient is the per-sample integrator gain derived from a cutoff.
//
// A is the feedback coefficient used by the recurrence and G the prewarped
// analog gain tan(pi*fc/fs) it was derived from.
//
// A is chosen so that |H| of y += A*(x-y) is exactly -3 dB at the cutoff:
//
//	A = 2G*(sqrt(1+2G^2) - G) / (1+G^2)
//
// For fc << fs this tends to 2*pi*fc/fs, the sampled analog RC pole. At
// Nyquist it saturates at 2*(sqrt(2)-1).
type Coefficient struct {
	A float64
	G float64
}

// DeriveCoefficient maps a cutoff frequency to a stable one-pole coefficient.
//
// Out-of-range input is clamped, never rejected: cutoff is limited to
// [MinCutoffHz, fs/2 - fs*1e-6] and a non-positive or non-finite sample
// rate is replaced by core.FallbackSampleRate. The returned A lies strictly
// inside (0, 1) and increases monotonically with cutoffHz.
func DeriveCoefficient(cutoffHz, sampleRateHz float64) Coefficient {
	fs := sanitizeSampleRate(sampleRateHz)
	fc := ClampCutoff(cutoffHz, fs)

	g := math.Tan(math.Pi * fc / fs)
	a := 2 * g * (math.Sqrt(1+2*g*g) - g) / (1 + g*g)

	return Coefficient{A: a, G: g}
}

// ClampCutoff limits cutoffHz to the usable range for sampleRateHz.
// NaN maps to MinCutoffHz.
func ClampCutoff(cutoffHz, sampleRateHz float64) float64 {
	fs := sanitizeSampleRate(sampleRateHz)
	if math.IsNaN(cutoffHz) {
		return MinCutoffHz
	}

	return core.Clamp(cutoffHz, MinCutoffHz, fs*(0.5-nyquistMargin))
}

// CutoffForCoefficient returns the -3 dB frequency of the recurrence for
// coefficient a. Coefficients at or above the Nyquist limit 2*(sqrt(2)-1)
// report fs/2.
func CutoffForCoefficient(a, sampleRateHz float64) float64 {
	fs := sanitizeSampleRate(sampleRateHz)

	if !(a > 0) {
		return 0
	}

	b := 1 - a
	if b <= 0 {
		return fs / 2
	}

	cosW := 2 - (1+b*b)/(2*b)
	if cosW <= -1 {
		return fs / 2
	}

	return math.Acos(math.Min(cosW, 1)) * fs / (2 * math.Pi)
}

func sanitizeSampleRate(sampleRateHz float64) float64 {
	if !core.IsFinite(sampleRateHz) || sampleRateHz <= 0 {
		return core.FallbackSampleRate
	}

	return sampleRateHz
}
