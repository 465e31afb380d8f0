package buffer

import "errors"

// ErrShape is returned when a view does not match the configured channel
// count or frame budget. The cycle is degraded, never aborted with a panic.
var ErrShape = errors.New("buffer: view does not match configured shape")

// View is a non-owning description of one render cycle's input and output
// sample buffers. In[c] and Out[c] may alias for in-place processing.
type View struct {
	In     [][]float64
	Out    [][]float64
	Frames int
}

// Channels returns the number of channels described by the view.
func (v View) Channels() int {
	if len(v.Out) < len(v.In) {
		return len(v.Out)
	}

	return len(v.In)
}

// InPlace reports whether channel c reads and writes the same memory.
func (v View) InPlace(c int) bool {
	in, out := v.In[c], v.Out[c]
	if len(in) == 0 || len(out) == 0 {
		return len(in) == len(out)
	}

	return &in[0] == &out[0]
}

// Validate checks the view against the configured shape. It does not allocate.
func (v View) Validate(channels, maxFrames int) error {
	if v.Frames < 0 || v.Frames > maxFrames {
		return ErrShape
	}

	if len(v.In) < channels || len(v.Out) < channels {
		return ErrShape
	}

	for c := range channels {
		if len(v.In[c]) < v.Frames || len(v.Out[c]) < v.Frames {
			return ErrShape
		}
	}

	return nil
}

// Span returns the input and output subslices of channel c for [from, to).
func (v View) Span(c, from, to int) (in, out []float64) {
	return v.In[c][from:to], v.Out[c][from:to]
}

// Silence zeroes the first frames of every output channel that is long
// enough to hold them. It is used when a cycle has to be dropped.
func (v View) Silence(frames int) {
	for _, out := range v.Out {
		n := frames
		if n > len(out) {
			n = len(out)
		}
		Zero(out[:max(n, 0)])
	}
}
