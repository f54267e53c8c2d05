package lightrig

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Role names one light of a rig. Its string form is the light's name prefix.
type Role string

const (
	KeyLight  Role = "KeyLight"
	FillLight Role = "FillLight"
	BackLight Role = "BackLight"
)

// Roles in placement order.
var Roles = []Role{KeyLight, FillLight, BackLight}

// ParseRole accepts "key", "fill", "back" or the full role name.
func ParseRole(s string) (Role, error) {
	switch s {
	case "key", string(KeyLight):
		return KeyLight, nil
	case "fill", string(FillLight):
		return FillLight, nil
	case "back", string(BackLight):
		return BackLight, nil
	}
	return "", fmt.Errorf("unknown light role %q", s)
}

type LightSettings struct {
	Color [3]float32
	Size  float32
}

type Preset struct {
	Key         string
	Label       string
	Description string
	BaseEnergy  float32
	Lights      map[Role]LightSettings
}

func (p Preset) Light(role Role) LightSettings {
	return p.Lights[role]
}

func uniform(color [3]float32) LightSettings {
	return LightSettings{Color: color, Size: 5}
}

var white = [3]float32{1, 1, 1}

var builtinPresets = []Preset{
	{
		Key:         "Basic3Point",
		Label:       "Basic 3 point Lights",
		Description: "Add basic 3 point lights",
		BaseEnergy:  30,
		Lights: map[Role]LightSettings{
			KeyLight:  uniform(white),
			FillLight: uniform(white),
			BackLight: uniform(white),
		},
	},
	{
		Key:         "Tamised",
		Label:       "Tamised Lights",
		Description: "Add 3 point lights with tamised energy",
		BaseEnergy:  5,
		Lights: map[Role]LightSettings{
			KeyLight:  uniform(white),
			FillLight: uniform(white),
			BackLight: uniform(white),
		},
	},
	{
		Key:         "French",
		Label:       "French Lights",
		Description: "Add normal 3 point lights with french color",
		BaseEnergy:  30,
		Lights: map[Role]LightSettings{
			KeyLight:  uniform([3]float32{0.91, 0.000317968, 0}),
			FillLight: uniform([3]float32{0.0035659, 0.00158721, 0.91}),
			BackLight: uniform(white),
		},
	},
	{
		Key:         "Caliente",
		Label:       "Caliente Lights",
		Description: "Add 3 point lights with caliente color",
		BaseEnergy:  30,
		Lights: map[Role]LightSettings{
			KeyLight:  uniform([3]float32{1, 0.255307, 0}),
			FillLight: uniform([3]float32{1, 0, 0.00404397}),
			BackLight: uniform([3]float32{1, 0.848015, 0}),
		},
	},
	{
		Key:         "SambaDoBrazil",
		Label:       "Samba Do Brazil Lights",
		Description: "Add 3 point lights with brazil color",
		BaseEnergy:  30,
		Lights: map[Role]LightSettings{
			KeyLight:  uniform([3]float32{0.963882, 0.660907, 0}),
			FillLight: uniform([3]float32{0.0387532, 0.471952, 0}),
			BackLight: uniform([3]float32{0.0268262, 0.019082, 0.571701}),
		},
	},
}

// DefaultPresetKey is selected when nothing else is configured.
const DefaultPresetKey = "Basic3Point"

// Presets returns copies of the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(builtinPresets))
	for i, p := range builtinPresets {
		out[i] = p.clone()
	}
	return out
}

// PresetKeys returns the built-in keys in display order.
func PresetKeys() []string {
	keys := make([]string, len(builtinPresets))
	for i, p := range builtinPresets {
		keys[i] = p.Key
	}
	return keys
}

// LookupPreset returns a copy of the preset registered under key.
func LookupPreset(key string) (Preset, error) {
	i := slices.IndexFunc(builtinPresets, func(p Preset) bool { return p.Key == key })
	if i < 0 {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return builtinPresets[i].clone(), nil
}

func (p Preset) clone() Preset {
	lights := make(map[Role]LightSettings, len(p.Lights))
	for r, l := range p.Lights {
		lights[r] = l
	}
	p.Lights = lights
	return p
}
