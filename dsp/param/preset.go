package param

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned when no factory preset matches a name.
var ErrUnknownPreset = errors.New("param: unknown preset")

// Preset is a named set of parameter values.
type Preset struct {
	Number int
	Name   string
	Values [Count]float64
}

var factoryPresets = []Preset{
	{Number: 0, Name: "Prominent", Values: [Count]float64{Cutoff: 2500, Resonance: 5}},
	{Number: 1, Name: "Bright", Values: [Count]float64{Cutoff: 14000, Resonance: 12}},
	{Number: 2, Name: "Warm", Values: [Count]float64{Cutoff: 384, Resonance: -3}},
}

// Presets returns a copy of the factory presets.
func Presets() []Preset {
	return append([]Preset(nil), factoryPresets...)
}

// PresetByName finds a factory preset, ignoring case.
func PresetByName(name string) (Preset, error) {
	for _, p := range factoryPresets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}

	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
