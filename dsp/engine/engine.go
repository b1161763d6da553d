package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-onepole/dsp/core"
	"github.com/cwbudde/algo-onepole/dsp/filter/onepole"
	"github.com/cwbudde/algo-onepole/dsp/param"
)

// ErrNotPrepared is returned by calls that need Prepare to have run.
var ErrNotPrepared = errors.New("engine: processor not prepared")

// Option mutates constructor configuration.
type Option func(*settings) error

type settings struct {
	cfg      core.ProcessorConfig
	cutoffHz float64
	gainDB   float64
	mode     onepole.Mode
	logger   *slog.Logger
}

// WithConfig applies processor config options (sample rate, channels,
// smoothing time).
func WithConfig(opts ...core.ProcessorOption) Option {
	return func(s *settings) error {
		for _, opt := range opts {
			if opt != nil {
				opt(&s.cfg)
			}
		}

		return nil
	}
}

// WithCutoffHz sets the initial cutoff.
func WithCutoffHz(hz float64) Option {
	return func(s *settings) error {
		if !core.IsFinite(hz) || hz <= 0 {
			return fmt.Errorf("engine: cutoff must be > 0 and finite: %f", hz)
		}

		s.cutoffHz = hz

		return nil
	}
}

// WithGainDB sets the initial shelf gain, in [param.MinGainDB, param.MaxGainDB].
func WithGainDB(db float64) Option {
	return func(s *settings) error {
		if !core.IsFinite(db) || db < param.MinGainDB || db > param.MaxGainDB {
			return fmt.Errorf("engine: gain must be in [%g, %g] dB: %f", param.MinGainDB, param.MaxGainDB, db)
		}

		s.gainDB = db

		return nil
	}
}

// WithMode sets the initial filter mode.
func WithMode(mode onepole.Mode) Option {
	return func(s *settings) error {
		if !mode.Valid() {
			return fmt.Errorf("engine: invalid mode: %d", mode)
		}

		s.mode = mode

		return nil
	}
}

// WithLogger routes control-path diagnostics to logger. Process never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger != nil {
			s.logger = logger
		}

		return nil
	}
}

// Snapshot is the parameter set the audio thread is currently rendering.
type Snapshot struct {
	CutoffHz float64
	GainDB   float64
	Mode     onepole.Mode
}

// Processor runs a one-pole filter over host buffers with sample-accurate
// automation.
//
// The Set* methods may be called from any goroutine; their values are
// latched at the start of the next Process call. Prepare, Reset and Process
// belong to the audio thread.
type Processor struct {
	cfg    core.ProcessorConfig
	logger *slog.Logger

	filter *onepole.Filter

	cutoff param.Value
	gain   param.Value
	mode   param.Value

	// Generations of the published values last picked up.
	cutoffGen uint64
	gainGen   uint64
	modeGen   uint64

	// Cutoff ramps in log-Hz so sweeps are perceptually even.
	logCutoff param.Smoother
	targetHz  float64
	gainDB    param.Smoother

	prepared bool
}

// New constructs a Processor. It must be prepared before it processes audio.
func New(opts ...Option) (*Processor, error) {
	s := settings{
		cfg:      core.DefaultProcessorConfig(),
		cutoffHz: param.DefaultCutoffHz,
		mode:     onepole.ModeLowpass,
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&s); err != nil {
			return nil, err
		}
	}

	f, err := onepole.New(s.cfg.SampleRate,
		onepole.WithCutoffHz(onepole.ClampCutoff(s.cutoffHz, s.cfg.SampleRate)),
		onepole.WithGainDB(s.gainDB),
		onepole.WithMode(s.mode),
		onepole.WithChannels(s.cfg.Channels),
	)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	p := &Processor{
		cfg:    s.cfg,
		logger: s.logger,
		filter: f,
	}

	p.cutoff.Store(s.cutoffHz)
	p.gain.Store(s.gainDB)
	p.mode.Store(float64(s.mode))

	return p, nil
}

// Prepare sizes channel state for a stream and clears it. It is the only
// call that may allocate. A non-positive or non-finite sample rate is
// replaced by core.FallbackSampleRate.
func (p *Processor) Prepare(sampleRate float64, channels int) error {
	if channels < 1 || channels > core.MaxChannels {
		return fmt.Errorf("engine: channels must be in [1, %d]: %d", core.MaxChannels, channels)
	}

	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		p.logger.Warn("invalid sample rate, using fallback",
			"sample_rate", sampleRate, "fallback", core.FallbackSampleRate)

		sampleRate = core.FallbackSampleRate
	}

	if err := p.filter.SetChannels(channels); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if err := p.filter.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	p.cfg.SampleRate = sampleRate
	p.cfg.Channels = channels

	ramp := p.cfg.SmoothingSamples()
	p.logCutoff.SetLength(ramp)
	p.gainDB.SetLength(ramp)

	p.prepared = true
	p.snap()

	p.logger.Info("prepared",
		"sample_rate", sampleRate, "channels", channels, "ramp_samples", ramp)

	return nil
}

// Reset clears channel state and settles parameter ramps at their targets.
// Values applied by host events are kept; publishes not yet latched are
// picked up by the next Process call.
func (p *Processor) Reset() error {
	if !p.prepared {
		return ErrNotPrepared
	}

	p.filter.Reset()

	p.logCutoff.Reset(p.logCutoff.Target())
	p.filter.SetCutoffHz(p.targetHz)

	p.gainDB.Reset(p.gainDB.Target())
	p.filter.SetGainDB(p.gainDB.Current())

	p.logger.Debug("reset")

	return nil
}

// Prepared reports whether Prepare has succeeded.
func (p *Processor) Prepared() bool { return p.prepared }

// Config returns the active processor configuration.
func (p *Processor) Config() core.ProcessorConfig { return p.cfg }

// SetCutoffHz publishes a new cutoff. Safe from any goroutine.
func (p *Processor) SetCutoffHz(hz float64) { p.cutoff.Store(hz) }

// SetGainDB publishes a new shelf gain. Safe from any goroutine.
func (p *Processor) SetGainDB(db float64) { p.gain.Store(db) }

// SetMode publishes a new mode. Safe from any goroutine.
func (p *Processor) SetMode(mode onepole.Mode) { p.mode.Store(float64(mode)) }

// Snapshot returns the parameters currently applied by the audio thread.
func (p *Processor) Snapshot() Snapshot {
	return Snapshot{
		CutoffHz: p.filter.CutoffHz(),
		GainDB:   p.filter.GainDB(),
		Mode:     p.filter.Mode(),
	}
}

// State returns a copy of the per-channel integrator state.
func (p *Processor) State() []float64 { return p.filter.State() }

// snap latches the published values and jumps straight to them.
func (p *Processor) snap() {
	p.cutoffGen = p.cutoff.Generation()
	p.gainGen = p.gain.Generation()
	p.modeGen = p.mode.Generation()

	hz := sanitizeCutoff(p.cutoff.Load(), p.filter.CutoffHz())
	db := sanitizeGain(p.gain.Load(), p.filter.GainDB())

	p.targetHz = hz
	p.logCutoff.Reset(math.Log(hz))
	p.gainDB.Reset(db)

	p.filter.SetCutoffHz(hz)
	p.filter.SetGainDB(db)

	if mode, ok := modeFrom(p.mode.Load()); ok {
		p.filter.SetMode(mode)
	}
}

// latch picks up every Store since the previous block, including one that
// republishes the last value. Parameters nobody published keep whatever
// host events set.
func (p *Processor) latch() {
	if v, gen, ok := p.cutoff.LoadSince(p.cutoffGen); ok {
		p.cutoffGen = gen
		p.apply(param.Event{ID: param.Cutoff, Value: v})
	}

	if v, gen, ok := p.gain.LoadSince(p.gainGen); ok {
		p.gainGen = gen
		p.apply(param.Event{ID: param.Gain, Value: v})
	}

	if v, gen, ok := p.mode.LoadSince(p.modeGen); ok {
		p.modeGen = gen
		p.apply(param.Event{ID: param.Mode, Value: v})
	}
}

// apply retargets one parameter. Mode switches are immediate; cutoff and
// gain ramp when smoothing is enabled.
func (p *Processor) apply(ev param.Event) {
	switch ev.ID {
	case param.Cutoff:
		if !core.IsFinite(ev.Value) {
			return
		}

		hz := sanitizeCutoff(ev.Value, p.filter.CutoffHz())
		p.targetHz = hz
		p.logCutoff.SetTarget(math.Log(hz))

		if !p.logCutoff.Active() {
			p.filter.SetCutoffHz(hz)
		}
	case param.Gain:
		if !core.IsFinite(ev.Value) {
			return
		}

		p.gainDB.SetTarget(param.ClampGainDB(ev.Value))

		if !p.gainDB.Active() {
			p.filter.SetGainDB(p.gainDB.Current())
		}
	case param.Mode:
		if mode, ok := modeFrom(ev.Value); ok {
			p.filter.SetMode(mode)
		}
	}
}

// Process filters bufs in place, one buffer per channel, applying events at
// their sample offsets. Events are sorted in place if needed; offsets are
// clamped into the buffer, so late events take effect at the end of it.
// Buffers beyond the prepared channel count pass through. Before Prepare,
// all buffers pass through.
func (p *Processor) Process(bufs [][]float64, events param.Events) {
	if !p.prepared || len(bufs) == 0 {
		return
	}

	if len(bufs) > p.filter.Channels() {
		bufs = bufs[:p.filter.Channels()]
	}

	n := core.MinLen(bufs)

	p.latch()

	if !events.Sorted() {
		events.Sort()
	}

	pos := 0
	for _, ev := range events {
		at := min(max(ev.Offset, 0), n)
		if at > pos {
			p.render(bufs, pos, at)
			pos = at
		}

		p.apply(ev)
	}

	if pos < n {
		p.render(bufs, pos, n)
	}
}

// render filters frames [from, to). While a ramp is active the coefficient
// is rederived every frame; once settled the rest runs as a block.
func (p *Processor) render(bufs [][]float64, from, to int) {
	for from < to && (p.logCutoff.Active() || p.gainDB.Active()) {
		if p.logCutoff.Active() {
			hz := math.Exp(p.logCutoff.Next())
			if !p.logCutoff.Active() {
				hz = p.targetHz
			}

			p.filter.SetCutoffHz(hz)
		}

		if p.gainDB.Active() {
			p.filter.SetGainDB(p.gainDB.Next())
		}

		for ch, buf := range bufs {
			buf[from] = p.filter.ProcessSample(ch, buf[from])
		}

		from++
	}

	if from >= to {
		return
	}

	for ch, buf := range bufs {
		p.filter.ProcessBlock(ch, buf[from:to])
	}
}

func modeFrom(v float64) (onepole.Mode, bool) {
	if !core.IsFinite(v) {
		return 0, false
	}

	mode := onepole.Mode(math.Round(v))

	return mode, mode.Valid()
}

func sanitizeCutoff(hz, fallback float64) float64 {
	if !core.IsFinite(hz) {
		hz = fallback
	}

	return math.Max(hz, onepole.MinCutoffHz)
}

func sanitizeGain(db, fallback float64) float64 {
	if !core.IsFinite(db) {
		return fallback
	}

	return param.ClampGainDB(db)
}
