package param

import "github.com/cwbudde/algo-onepole/dsp/core"

// Host-facing ranges. The normalized cutoff control spans MinCutoffHz to
// MaxCutoffHz exponentially; hosts typically display DisplayMinHz to
// DisplayMaxHz.
const (
	MinCutoffHz     = 13.0
	MaxCutoffHz     = 21000.0
	DisplayMinHz    = 20.0
	DisplayMaxHz    = 20000.0
	DefaultCutoffHz = 1000.0

	MinGainDB = -30.0
	MaxGainDB = 30.0
)

// CutoffFromNormalized maps v in [0, 1] to MinCutoffHz*(MaxCutoffHz/MinCutoffHz)^v.
func CutoffFromNormalized(v float64) float64 {
	v = core.Clamp(v, 0, 1)
	return MinCutoffHz * expFn(v*logFn(MaxCutoffHz/MinCutoffHz))
}

// NormalizedFromCutoff inverts CutoffFromNormalized.
func NormalizedFromCutoff(hz float64) float64 {
	hz = core.Clamp(hz, MinCutoffHz, MaxCutoffHz)
	return logFn(hz/MinCutoffHz) / logFn(MaxCutoffHz/MinCutoffHz)
}

// ClampGainDB limits a shelf gain to [MinGainDB, MaxGainDB].
func ClampGainDB(db float64) float64 {
	return core.Clamp(db, MinGainDB, MaxGainDB)
}

// GainFromNormalized maps v in [0, 1] linearly onto the dB range.
func GainFromNormalized(v float64) float64 {
	return MinGainDB + core.Clamp(v, 0, 1)*(MaxGainDB-MinGainDB)
}
