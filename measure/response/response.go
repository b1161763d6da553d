package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-onepole/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrFFTSize is returned for FFT sizes that are not a power of two >= 2.
var ErrFFTSize = errors.New("response: fft size must be a power of two >= 2")

// Processor filters a mono buffer in place.
type Processor interface {
	ProcessInPlace(buf []float64)
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(buf []float64)

// ProcessInPlace calls f(buf).
func (f ProcessorFunc) ProcessInPlace(buf []float64) { f(buf) }

// Result holds a measured magnitude response over bins [0..Nyquist].
type Result struct {
	SampleRate  float64
	FFTSize     int
	Magnitude   []float64
	MagnitudeDB []float64
}

// BinHz returns the center frequency of bin k.
func (r *Result) BinHz(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// At returns the magnitude in dB at freqHz, linearly interpolated between
// neighboring bins. Frequencies outside [0, Nyquist] are clamped.
func (r *Result) At(freqHz float64) float64 {
	if len(r.MagnitudeDB) == 0 {
		return math.Inf(-1)
	}

	last := len(r.MagnitudeDB) - 1
	pos := core.Clamp(freqHz*float64(r.FFTSize)/r.SampleRate, 0, float64(last))

	k := int(pos)
	if k >= last {
		return r.MagnitudeDB[last]
	}

	frac := pos - float64(k)

	return r.MagnitudeDB[k] + frac*(r.MagnitudeDB[k+1]-r.MagnitudeDB[k])
}

// Measure feeds a unit impulse of fftSize samples through p in blocks of
// the configured block size and returns the magnitude of its spectrum.
// Only the sample rate and block size of opts are used.
func Measure(p Processor, fftSize int, opts ...core.ProcessorOption) (*Result, error) {
	if p == nil {
		return nil, errors.New("response: nil processor")
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, fftSize)
	}

	cfg := core.ApplyProcessorOptions(opts...)

	ir := make([]float64, fftSize)
	ir[0] = 1

	for start := 0; start < fftSize; start += cfg.BlockSize {
		end := min(start+cfg.BlockSize, fftSize)
		p.ProcessInPlace(ir[start:end])
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	db := make([]float64, bins)
	for k, m := range mag {
		db[k] = core.LinearToDB(m)
	}

	return &Result{
		SampleRate:  cfg.SampleRate,
		FFTSize:     fftSize,
		Magnitude:   mag,
		MagnitudeDB: db,
	}, nil
}
