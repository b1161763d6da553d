package onepole

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// lowpassResponse evaluates a/(1 - (1-a)e^{-jw}).
func lowpassResponse(a, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	zInv := cmplx.Exp(complex(0, -w))

	return complex(a, 0) / (1 - complex(1-a, 0)*zInv)
}

// Response computes the complex frequency response H(e^jw) of the current
// mode at freqHz.
func (f *Filter) Response(freqHz float64) complex128 {
	hlp := lowpassResponse(f.coeff.A, freqHz, f.sampleRate)
	return complex(f.out.dry, 0) + complex(f.out.wet, 0)*hlp
}

// MagnitudeDB returns 20*log10(|H(f)|) for the current mode.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz)))
}

// Phase returns the phase response in radians at freqHz.
func (f *Filter) Phase(freqHz float64) float64 {
	return cmplx.Phase(f.Response(freqHz))
}

// MagnitudeResponse writes |H(f)| for every frequency in freqs into dst.
// Both slices must have the same length.
func (f *Filter) MagnitudeResponse(dst, freqs []float64) error {
	if len(dst) != len(freqs) {
		return fmt.Errorf("onepole: dst length %d != freqs length %d", len(dst), len(freqs))
	}

	if len(freqs) == 0 {
		return nil
	}

	re := make([]float64, len(freqs))
	im := make([]float64, len(freqs))

	for i, hz := range freqs {
		h := f.Response(hz)
		re[i] = real(h)
		im[i] = imag(h)
	}

	vecmath.Magnitude(dst, re, im)

	return nil
}

// ImpulseResponse computes n samples of the impulse response of channel 0.
// The filter state is saved and restored so this method does not modify
// the filter.
func (f *Filter) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := f.state[0]
	f.state[0] = 0

	ir := make([]float64, n)
	ir[0] = 1
	f.ProcessBlock(0, ir)

	f.state[0] = saved

	return ir
}
