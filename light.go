package lightrig

type LightType uint32

const (
	LightTypePoint LightType = iota
	LightTypeSun
	LightTypeSpot
	LightTypeArea
)

var lightTypeNames = map[LightType]string{
	LightTypePoint: "point",
	LightTypeSun:   "sun",
	LightTypeSpot:  "spot",
	LightTypeArea:  "area",
}

func (t LightType) String() string {
	if s, ok := lightTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseLightType is the inverse of LightType.String. Unknown names map to
// point lights.
func ParseLightType(s string) LightType {
	for t, name := range lightTypeNames {
		if name == s {
			return t
		}
	}
	return LightTypePoint
}

// LightComponent makes an object a light. Energy is in watts; Size is the
// edge length of an area light.
type LightComponent struct {
	Type       LightType
	Color      [3]float32 // RGB
	Energy     float32
	Size       float32
	CastShadow bool
}

func areaLight(plan LightPlan) LightComponent {
	return LightComponent{
		Type:       LightTypeArea,
		Color:      plan.Color,
		Energy:     plan.Energy,
		Size:       plan.Size,
		CastShadow: plan.CastShadow,
	}
}
