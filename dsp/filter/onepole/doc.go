// Package onepole provides a linear one-pole filter modelled on an analog
// RC integrator stage.
//
// A single integrator state per channel is advanced by
//
//	y[n] = y[n-1] + a*(x[n] - y[n-1])
//
// where a is derived from the prewarped gain g = tan(pi*fc/fs) such that
// the response is exactly -3 dB at fc (see DeriveCoefficient). The audible
// output is a linear combination of the input and the integrator output,
// selected by Mode:
//
//   - ModeLowpass:   y
//   - ModeHighpass:  x - y
//   - ModeAllpass:   2y - x
//   - ModeLowShelf:  gain*y + (x - y)
//   - ModeHighShelf: y + gain*(x - y)
//
// The state update does not depend on the mode, so switching modes never
// disturbs the integrator. All channels share one coefficient.
//
// Audio-path setters clamp instead of failing. Only construction,
// channel/sample-rate reconfiguration and state restore return errors.
package onepole
