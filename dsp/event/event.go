package event

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterunit/dsp/param"
)

// Type distinguishes event payloads.
type Type uint8

const (
	// TypeParameter ramps a parameter to Value over the default ramp time.
	TypeParameter Type = iota + 1
	// TypeParameterRamp ramps a parameter to Value over RampFrames frames.
	// Zero frames jumps.
	TypeParameterRamp
	// TypeReset clears the filter memory, as after a transport seek.
	TypeReset
)

func (t Type) String() string {
	switch t {
	case TypeParameter:
		return "parameter"
	case TypeParameterRamp:
		return "ramp"
	case TypeReset:
		return "reset"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Event is one timed instruction for the render plane. Offset is the frame
// within the upcoming cycle before which the event takes effect.
type Event struct {
	Type       Type
	Kind       param.Kind
	Value      float64
	Offset     int
	RampFrames int
}

// Parameter returns a default-ramp parameter change at offset.
func Parameter(k param.Kind, v float64, offset int) Event {
	return Event{Type: TypeParameter, Kind: k, Value: v, Offset: offset}
}

// Ramp returns a parameter change that ramps over frames frames.
func Ramp(k param.Kind, v float64, offset, frames int) Event {
	return Event{Type: TypeParameterRamp, Kind: k, Value: v, Offset: offset, RampFrames: frames}
}

// Reset returns a state reset at offset.
func Reset(offset int) Event {
	return Event{Type: TypeReset, Offset: offset}
}

// Valid reports whether e can be applied in a cycle of frames frames.
func (e Event) Valid(frames int) bool {
	if e.Offset < 0 || e.Offset >= frames {
		return false
	}

	switch e.Type {
	case TypeReset:
		return true
	case TypeParameter, TypeParameterRamp:
		if !e.Kind.Valid() || math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return false
		}

		return e.RampFrames >= 0
	default:
		return false
	}
}

func (e Event) String() string {
	switch e.Type {
	case TypeReset:
		return fmt.Sprintf("reset@%d", e.Offset)
	case TypeParameterRamp:
		return fmt.Sprintf("%v=%g@%d/%d", e.Kind, e.Value, e.Offset, e.RampFrames)
	default:
		return fmt.Sprintf("%v=%g@%d", e.Kind, e.Value, e.Offset)
	}
}
