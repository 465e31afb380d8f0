package buffer

// Planar is owned per-channel sample storage. All channels share one
// backing array so a single allocation covers the whole bus.
type Planar struct {
	backing  []float64
	channels [][]float64
	frames   int
}

// NewPlanar returns zero-filled storage for channels × frames samples.
// Negative sizes are treated as zero.
func NewPlanar(channels, frames int) *Planar {
	p := &Planar{}
	p.Resize(channels, frames)
	return p
}

// Resize reshapes the storage, reusing the backing array when it is large
// enough. Contents are zeroed. Resize allocates and belongs to the control plane.
func (p *Planar) Resize(channels, frames int) {
	channels = max(channels, 0)
	frames = max(frames, 0)

	p.backing = EnsureLen(p.backing, channels*frames)
	Zero(p.backing)

	if cap(p.channels) >= channels {
		p.channels = p.channels[:channels]
	} else {
		p.channels = make([][]float64, channels)
	}
	for c := range p.channels {
		p.channels[c] = p.backing[c*frames : (c+1)*frames : (c+1)*frames]
	}

	p.frames = frames
}

// Release drops the backing storage.
func (p *Planar) Release() {
	p.backing = nil
	p.channels = nil
	p.frames = 0
}

// Channel returns the samples of channel c.
func (p *Planar) Channel(c int) []float64 {
	return p.channels[c]
}

// Channels returns the channel count.
func (p *Planar) Channels() int {
	return len(p.channels)
}

// Frames returns the per-channel capacity in frames.
func (p *Planar) Frames() int {
	return p.frames
}

// Zero clears every channel.
func (p *Planar) Zero() {
	Zero(p.backing)
}

// Slices exposes the per-channel slices, e.g. for building a View.
// The returned slice is owned by p.
func (p *Planar) Slices() [][]float64 {
	return p.channels
}

// InPlaceView returns a view over the first frames of p that reads and
// writes the same memory.
func (p *Planar) InPlaceView(frames int) View {
	return View{In: p.channels, Out: p.channels, Frames: frames}
}
