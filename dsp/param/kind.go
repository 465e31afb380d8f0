package param

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-filterunit/dsp/core"
)

// Kind identifies an automatable parameter.
type Kind int

const (
	Cutoff Kind = iota
	Resonance

	// Count is the number of parameter kinds.
	Count
)

// Valid reports whether k names a known parameter.
func (k Kind) Valid() bool {
	return k >= 0 && k < Count
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return specs[k].Name
}

// ParseKind resolves a parameter name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for k := range Count {
		if strings.EqualFold(name, specs[k].Name) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("param: unknown parameter %q", name)
}

// Spec describes a parameter's range and default.
type Spec struct {
	Kind    Kind
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to the parameter's range. NaN maps to Default.
func (s Spec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}

	return core.Clamp(v, s.Min, s.Max)
}

var specs = [Count]Spec{
	Cutoff:    {Kind: Cutoff, Name: "cutoff", Unit: "Hz", Min: 12, Max: 20000, Default: 20000},
	Resonance: {Kind: Resonance, Name: "resonance", Unit: "dB", Min: -20, Max: 20, Default: 0},
}

// SpecOf returns the spec of k. Invalid kinds yield the zero Spec.
func SpecOf(k Kind) Spec {
	if !k.Valid() {
		return Spec{}
	}

	return specs[k]
}

// Specs returns every parameter spec in Kind order.
func Specs() [Count]Spec {
	return specs
}
