package onepole

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-onepole/dsp/core"
)

const (
	defaultCutoffHz = 1000.0
	defaultChannels = 2
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cutoffHz float64
	mode     Mode
	gainDB   float64
	channels int
}

func defaultConfig() config {
	return config{
		cutoffHz: defaultCutoffHz,
		mode:     ModeLowpass,
		channels: defaultChannels,
	}
}

// WithCutoffHz sets cutoff in Hz. Must be finite and > 0; the Nyquist bound
// is checked by New once the sample rate is known.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(cutoffHz) || cutoffHz <= 0 {
			return fmt.Errorf("onepole: cutoff must be > 0 and finite: %f", cutoffHz)
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithMode selects the output readout.
func WithMode(mode Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("onepole: invalid mode: %d", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithGainDB sets the shelf gain in dB. Ignored by the non-shelving modes.
func WithGainDB(gainDB float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(gainDB) {
			return fmt.Errorf("onepole: gain must be finite: %f", gainDB)
		}

		cfg.gainDB = gainDB

		return nil
	}
}

// WithChannels sets the number of independent channel states.
func WithChannels(channels int) Option {
	return func(cfg *config) error {
		if channels < 1 || channels > core.MaxChannels {
			return fmt.Errorf("onepole: channels must be in [1, %d]: %d", core.MaxChannels, channels)
		}

		cfg.channels = channels

		return nil
	}
}

// Filter is a multichannel one-pole filter with stereo-linked cutoff.
//
// Each channel owns one integrator state, indexed by channel number.
// A Filter is not safe for concurrent use; it belongs to the audio thread.
type Filter struct {
	sampleRate float64
	cutoffHz   float64
	mode       Mode
	gainDB     float64

	coeff Coefficient
	out   readout

	state []float64
}

// New constructs a one-pole filter.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("onepole: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if nyquist := sampleRate / 2; cfg.cutoffHz >= nyquist {
		return nil, fmt.Errorf("onepole: cutoff must be < Nyquist (%f Hz): %f", nyquist, cfg.cutoffHz)
	}

	f := &Filter{
		sampleRate: sampleRate,
		cutoffHz:   cfg.cutoffHz,
		mode:       cfg.mode,
		gainDB:     cfg.gainDB,
		state:      make([]float64, cfg.channels),
	}
	f.coeff = DeriveCoefficient(f.cutoffHz, f.sampleRate)
	f.out = newReadout(f.mode, core.DBToLinear(f.gainDB))

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the effective (clamped) cutoff frequency in Hz.
func (f *Filter) CutoffHz() float64 { return ClampCutoff(f.cutoffHz, f.sampleRate) }

// Mode returns the output readout mode.
func (f *Filter) Mode() Mode { return f.mode }

// GainDB returns the shelf gain in dB.
func (f *Filter) GainDB() float64 { return f.gainDB }

// Coefficient returns the cached coefficient.
func (f *Filter) Coefficient() Coefficient { return f.coeff }

// Channels returns the number of channel states.
func (f *Filter) Channels() int { return len(f.state) }

// SetSampleRate updates the sample rate, rederives the coefficient and
// clears all channel state.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("onepole: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.coeff = DeriveCoefficient(f.cutoffHz, sampleRate)
	f.Reset()

	return nil
}

// SetChannels resizes the channel state. All state is cleared.
func (f *Filter) SetChannels(channels int) error {
	if channels < 1 || channels > core.MaxChannels {
		return fmt.Errorf("onepole: channels must be in [1, %d]: %d", core.MaxChannels, channels)
	}

	if cap(f.state) >= channels {
		f.state = f.state[:channels]
	} else {
		f.state = make([]float64, channels)
	}

	f.Reset()

	return nil
}

// SetCutoffHz rederives the coefficient for cutoffHz, clamped into the
// usable range. The requested value is kept so a later sample-rate change
// can restore it. Unchanged values skip the tan() evaluation.
func (f *Filter) SetCutoffHz(cutoffHz float64) {
	if math.IsNaN(cutoffHz) || cutoffHz == f.cutoffHz {
		return
	}

	f.cutoffHz = cutoffHz
	f.coeff = DeriveCoefficient(cutoffHz, f.sampleRate)
}

// SetCoefficient installs a raw coefficient, bypassing the cutoff mapping.
// A is clamped to [0, 1]; A == 0 freezes every channel at its current state.
func (f *Filter) SetCoefficient(a float64) {
	if math.IsNaN(a) {
		a = 0
	}

	a = core.Clamp(a, 0, 1)
	fc := CutoffForCoefficient(a, f.sampleRate)

	f.coeff = Coefficient{A: a, G: math.Tan(math.Pi * fc / f.sampleRate)}
	f.cutoffHz = fc
}

// SetMode switches the output readout. The integrator state is untouched.
// It reports false and keeps the current mode when mode is unknown.
func (f *Filter) SetMode(mode Mode) bool {
	if !mode.Valid() {
		return false
	}

	f.mode = mode
	f.out = newReadout(mode, core.DBToLinear(f.gainDB))

	return true
}

// SetGainDB sets the shelf gain. Non-finite values are ignored.
func (f *Filter) SetGainDB(gainDB float64) {
	if !core.IsFinite(gainDB) || gainDB == f.gainDB {
		return
	}

	f.gainDB = gainDB
	f.out = newReadout(f.mode, core.DBToLinear(gainDB))
}

// Reset clears every channel state to zero.
func (f *Filter) Reset() {
	core.Zero(f.state)
}

// State returns a copy of the per-channel integrator state.
func (f *Filter) State() []float64 {
	return append([]float64(nil), f.state...)
}

// SetState restores a previously saved per-channel state.
func (f *Filter) SetState(state []float64) error {
	if len(state) != len(f.state) {
		return fmt.Errorf("onepole: state has %d channels, want %d", len(state), len(f.state))
	}

	for i, v := range state {
		if !core.IsFinite(v) {
			return fmt.Errorf("onepole: state[%d] is not finite: %f", i, v)
		}
	}

	copy(f.state, state)

	return nil
}

// Lowpass returns the integrator output (state) of channel ch.
func (f *Filter) Lowpass(ch int) float64 {
	if ch < 0 || ch >= len(f.state) {
		return 0
	}

	return f.state[ch]
}

// Step advances a single integrator state s by one input sample x with
// coefficient a and returns the new state, which is also the lowpass output.
func Step(s, x, a float64) float64 {
	return core.FlushDenormals(s + a*(x-s))
}

// ProcessSample filters one sample of channel ch. Out-of-range channels
// pass the input through. Non-finite input is treated as silence.
func (f *Filter) ProcessSample(ch int, x float64) float64 {
	if ch < 0 || ch >= len(f.state) {
		return x
	}

	if !core.IsFinite(x) {
		x = 0
	}

	y := Step(f.state[ch], x, f.coeff.A)
	f.state[ch] = y

	return f.out.apply(x, y)
}

// ProcessBlock filters buf of channel ch in place. Zero-alloc.
func (f *Filter) ProcessBlock(ch int, buf []float64) {
	if ch < 0 || ch >= len(f.state) {
		return
	}

	a := f.coeff.A
	out := f.out
	s := f.state[ch]

	for i, x := range buf {
		if !core.IsFinite(x) {
			x = 0
		}

		s = Step(s, x, a)
		buf[i] = out.apply(x, s)
	}

	f.state[ch] = s
}

// ProcessTo filters src into dst for channel ch. Both slices must have the
// same length.
func (f *Filter) ProcessTo(ch int, dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]
	copy(dst, src)
	f.ProcessBlock(ch, dst[:n])
}

// ProcessInPlace filters a mono buffer using channel 0.
func (f *Filter) ProcessInPlace(buf []float64) {
	f.ProcessBlock(0, buf)
}

// ProcessFrames filters one buffer per channel in place. Buffers beyond
// Channels() are left untouched.
func (f *Filter) ProcessFrames(bufs [][]float64) {
	for ch, buf := range bufs {
		if ch >= len(f.state) {
			return
		}

		f.ProcessBlock(ch, buf)
	}
}
