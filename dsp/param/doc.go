// Package param carries parameter changes from control threads into the
// audio thread without locks.
//
// A Value is written by one goroutine (UI, automation reader) and read by
// the audio goroutine with atomic loads. Host automation for the current
// buffer arrives as Events carrying a sample offset, which the processing
// engine applies at that exact sample. A Smoother ramps a latched target
// over a fixed number of samples and is owned solely by the audio thread.
package param
