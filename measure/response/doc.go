// Package response measures the magnitude response of a block processor by
// driving it with a unit impulse and transforming the captured output.
//
// It is the empirical counterpart of the analytic Response methods on the
// filters: both should agree to within FFT truncation error once the
// impulse response has decayed inside the capture window.
package response
