package core

// FallbackSampleRate is substituted wherever a host supplies a sample rate
// that is zero, negative or non-finite.
const FallbackSampleRate = 48000.0

// MaxChannels bounds the number of independent channel states a processor
// will allocate.
const MaxChannels = 64

// ProcessorConfig defines common processing settings for streaming use.
type ProcessorConfig struct {
	SampleRate  float64
	BlockSize   int
	Channels    int
	SmoothingMs float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns stereo defaults with a short parameter ramp.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:  FallbackSampleRate,
		BlockSize:   512,
		Channels:    2,
		SmoothingMs: 5,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsFinite(sampleRate) && sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithChannels sets the number of audio channels, in [1, MaxChannels].
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 && channels <= MaxChannels {
			cfg.Channels = channels
		}
	}
}

// WithSmoothingMs sets the parameter ramp time. Zero disables smoothing.
func WithSmoothingMs(ms float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsFinite(ms) && ms >= 0 {
			cfg.SmoothingMs = ms
		}
	}
}

// SmoothingSamples converts SmoothingMs to a ramp length in samples.
func (cfg ProcessorConfig) SmoothingSamples() int {
	if cfg.SmoothingMs <= 0 || cfg.SampleRate <= 0 {
		return 0
	}

	return int(cfg.SampleRate*cfg.SmoothingMs/1000 + 0.5)
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
