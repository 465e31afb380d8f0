package buffer

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// FullScale returns the positive full-scale magnitude of signed PCM at the
// given bit depth. Unknown depths fall back to 16 bit.
func FullScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 1 << 7
	case 24:
		return 1 << 23
	case 32:
		return 1 << 31
	default:
		return 1 << 15
	}
}

// DeinterleaveFloat64 splits frames of interleaved src into dst's channels.
// The channel count is taken from dst; src must hold frames*channels samples.
func DeinterleaveFloat64(dst *Planar, src []float64, frames int) {
	channels := dst.Channels()
	for c := range channels {
		ch := dst.Channel(c)[:frames]
		for i := range ch {
			ch[i] = src[i*channels+c]
		}
	}
}

// InterleaveFloat64 writes frames of dst's channels into interleaved out.
func InterleaveFloat64(out []float64, src *Planar, frames int) {
	channels := src.Channels()
	for c := range channels {
		ch := src.Channel(c)[:frames]
		for i, x := range ch {
			out[i*channels+c] = x
		}
	}
}

// DeinterleaveInt converts interleaved signed PCM into normalized float
// channels in [-1, 1).
func DeinterleaveInt(dst *Planar, src []int, frames, bitDepth int) {
	channels := dst.Channels()
	scale := 1 / FullScale(bitDepth)
	for c := range channels {
		ch := dst.Channel(c)[:frames]
		for i := range ch {
			ch[i] = float64(src[i*channels+c])
		}
		f64.Scale(ch, ch, scale)
	}
}

// InterleaveInt converts normalized float channels back to interleaved
// signed PCM, clipping at full scale. The channel samples are rescaled in
// place, so src holds PCM-scaled values afterwards.
func InterleaveInt(out []int, src *Planar, frames, bitDepth int) {
	channels := src.Channels()
	full := FullScale(bitDepth)
	hi, lo := full-1, -full
	for c := range channels {
		ch := src.Channel(c)[:frames]
		f64.Scale(ch, ch, full)
		for i, x := range ch {
			switch {
			case x >= hi:
				x = hi
			case x <= lo:
				x = lo
			}
			out[i*channels+c] = int(math.Round(x))
		}
	}
}

