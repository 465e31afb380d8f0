package buffer

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

// CopyInto copies src into dst unless both already share memory, and
// returns the number of samples in dst that now hold src.
func CopyInto(dst, src []float64) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}
	if &dst[0] != &src[0] {
		copy(dst[:n], src[:n])
	}
	return n
}
