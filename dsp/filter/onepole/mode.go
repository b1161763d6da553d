package onepole

import (
	"fmt"
	"strings"
)

// Mode selects which combination of input and integrator output is emitted.
type Mode int

const (
	// ModeLowpass emits the integrator output.
	ModeLowpass Mode = iota
	// ModeHighpass emits the complement x - y.
	ModeHighpass
	// ModeAllpass emits 2y - x: the same recurrence read out as a
	// phase-colouring stage.
	ModeAllpass
	// ModeLowShelf scales the lowpass band by the shelf gain.
	ModeLowShelf
	// ModeHighShelf scales the highpass band by the shelf gain.
	ModeHighShelf

	modeCount
)

// Modes lists every valid mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeLowpass, ModeHighpass, ModeAllpass, ModeLowShelf, ModeHighShelf}
}

func (m Mode) String() string {
	switch m {
	case ModeLowpass:
		return "lowpass"
	case ModeHighpass:
		return "highpass"
	case ModeAllpass:
		return "allpass"
	case ModeLowShelf:
		return "lowshelf"
	case ModeHighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < modeCount
}

// ParseMode resolves a mode by name, ignoring case.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range Modes() {
		if m.String() == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("onepole: unknown mode: %q", name)
}

// readout holds the output mix out = dry*x + wet*y. It is rebuilt when the
// mode or shelf gain changes, never per sample.
type readout struct {
	dry float64
	wet float64
}

func newReadout(m Mode, gain float64) readout {
	switch m {
	case ModeHighpass:
		return readout{dry: 1, wet: -1}
	case ModeAllpass:
		return readout{dry: -1, wet: 2}
	case ModeLowShelf:
		return readout{dry: 1, wet: gain - 1}
	case ModeHighShelf:
		return readout{dry: gain, wet: 1 - gain}
	default:
		return readout{dry: 0, wet: 1}
	}
}

func (r readout) apply(x, y float64) float64 {
	return r.dry*x + r.wet*y
}
