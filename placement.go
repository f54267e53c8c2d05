package lightrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DistanceFactor scales the subject's largest extent into the distance
	// between subject and rig.
	DistanceFactor = 1.5
	FillRatio      = 0.5
	BackRatio      = 0.25
)

// Placement is a world-space pose aimed at the rig's target.
type Placement struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Quat `json:"-"`
	// Euler is Rotation as XYZ angles in radians.
	Euler mgl32.Vec3 `json:"euler"`
}

type LightPlan struct {
	Role Role `json:"role"`
	Placement
	Energy     float32    `json:"energy"`
	Color      [3]float32 `json:"color"`
	Size       float32    `json:"size"`
	CastShadow bool       `json:"cast_shadow"`
}

// RigPlan is the host-independent result of placing a rig around a box.
type RigPlan struct {
	Preset       string      `json:"preset"`
	Target       BoundingBox `json:"-"`
	Center       mgl32.Vec3  `json:"center"`
	MaxDimension float32     `json:"max_dimension"`
	Distance     float32     `json:"distance"`
	Camera       Placement   `json:"camera"`
	Lights       []LightPlan `json:"lights"`
}

// Light returns the plan for role.
func (p RigPlan) Light(role Role) (LightPlan, bool) {
	for _, l := range p.Lights {
		if l.Role == role {
			return l, true
		}
	}
	return LightPlan{}, false
}

// PlanRig computes camera and light poses and energies around target.
func PlanRig(target BoundingBox, preset Preset) RigPlan {
	c := target.Center()
	maxDim := target.MaxDimension()
	d := float32(DistanceFactor) * maxDim

	key := preset.BaseEnergy * maxDim * maxDim
	energies := map[Role]float32{
		KeyLight:  key,
		FillLight: key * FillRatio,
		BackLight: key * BackRatio,
	}

	cos45, sin45 := float32(math.Cos(math.Pi/4)), float32(math.Sin(math.Pi/4))
	offsets := map[Role]mgl32.Vec3{
		KeyLight:  {d * cos45, d * sin45, d * 0.5},
		FillLight: {d * cos45, -d * sin45, d * 0.25},
		BackLight: {-d * 1.5, 0, d * 0.5},
	}

	plan := RigPlan{
		Preset:       preset.Key,
		Target:       target,
		Center:       c,
		MaxDimension: maxDim,
		Distance:     d,
		Camera:       aimAt(c.Add(mgl32.Vec3{d * 1.5, d * sin45, d}), c),
	}
	for _, role := range Roles {
		s := preset.Light(role)
		plan.Lights = append(plan.Lights, LightPlan{
			Role:       role,
			Placement:  aimAt(c.Add(offsets[role]), c),
			Energy:     energies[role],
			Color:      s.Color,
			Size:       s.Size,
			CastShadow: true,
		})
	}
	return plan
}

func aimAt(position, target mgl32.Vec3) Placement {
	rot := LookAtRotation(position, target)
	return Placement{
		Position: position,
		Rotation: rot,
		Euler:    QuatToEuler(rot),
	}
}
