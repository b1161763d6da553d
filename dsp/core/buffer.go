package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// MinLen returns the shortest length among bufs, or 0 for no buffers.
func MinLen(bufs [][]float64) int {
	if len(bufs) == 0 {
		return 0
	}

	n := len(bufs[0])
	for _, b := range bufs[1:] {
		if len(b) < n {
			n = len(b)
		}
	}

	return n
}
