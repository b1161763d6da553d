// Package engine is the processing engine a host loop drives once per audio
// buffer.
//
// A Processor owns a multichannel one-pole filter and the parameter intake
// around it: values published from other goroutines through atomic
// handoffs, host automation events applied at their exact sample offset,
// and optional linear ramps for cutoff (in log-frequency) and shelf gain.
// Process filters the host buffers in place and does not allocate.
package engine
