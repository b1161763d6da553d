package param

import (
	"cmp"
	"slices"
)

// ID identifies an automatable parameter.
type ID uint8

const (
	// Cutoff carries a cutoff frequency in Hz.
	Cutoff ID = iota
	// Gain carries a shelf gain in dB.
	Gain
	// Mode carries a filter mode index.
	Mode
)

func (id ID) String() string {
	switch id {
	case Cutoff:
		return "cutoff"
	case Gain:
		return "gain"
	case Mode:
		return "mode"
	default:
		return "unknown"
	}
}

// Event is one parameter change at a sample offset within the current
// buffer. Value is a plain (denormalized) value: Hz, dB or mode index.
type Event struct {
	Offset int
	ID     ID
	Value  float64
}

// Events is the host-supplied change list for one buffer.
//
// The processing engine sorts an unsorted list in place, so after Process
// returns the slice order may differ from the order the host wrote. Hosts
// that rely on their own order must pass a copy.
type Events []Event

func byOffset(a, b Event) int {
	return cmp.Compare(a.Offset, b.Offset)
}

// Sorted reports whether events are in non-decreasing offset order.
func (e Events) Sorted() bool {
	return slices.IsSortedFunc(e, byOffset)
}

// Sort orders events by offset in place. Events sharing an offset keep
// their relative order so the last one wins.
func (e Events) Sort() {
	slices.SortStableFunc(e, byOffset)
}
