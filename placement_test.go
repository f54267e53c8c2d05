package lightrig

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRig_DistanceIsOneAndAHalfMaxDimension(t *testing.T) {
	p, err := LookupPreset(DefaultPresetKey)
	require.NoError(t, err)

	boxes := []BoundingBox{
		CubeBounds(1),
		{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{4, 1, 0.5}},
		{Min: mgl32.Vec3{-3, 5, 2}, Max: mgl32.Vec3{-2, 6, 9}},
		{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{1, 1, 1}},
	}
	for _, b := range boxes {
		plan := PlanRig(b, p)
		assert.Equal(t, b.MaxDimension(), plan.MaxDimension)
		assert.InDelta(t, 1.5*b.MaxDimension(), plan.Distance, 1e-6)
		assert.Equal(t, b.Center(), plan.Center)
	}
}

func TestPlanRig_EnergyRatiosForEveryPreset(t *testing.T) {
	box := BoundingBox{Min: mgl32.Vec3{-0.7, -1.3, 0}, Max: mgl32.Vec3{0.7, 1.3, 2.1}}
	maxDim := box.MaxDimension()

	for _, p := range Presets() {
		t.Run(p.Key, func(t *testing.T) {
			plan := PlanRig(box, p)
			require.Len(t, plan.Lights, 3)

			key, _ := plan.Light(KeyLight)
			fill, _ := plan.Light(FillLight)
			back, _ := plan.Light(BackLight)

			assert.Equal(t, p.BaseEnergy*maxDim*maxDim, key.Energy)
			assert.Equal(t, key.Energy*0.5, fill.Energy)
			assert.Equal(t, key.Energy*0.25, back.Energy)

			for _, l := range plan.Lights {
				assert.Equal(t, p.Light(l.Role).Color, l.Color)
				assert.Equal(t, float32(5), l.Size)
				assert.True(t, l.CastShadow)
			}
		})
	}
}

func TestPlanRig_UnitCube(t *testing.T) {
	p, _ := LookupPreset("Basic3Point")
	plan := PlanRig(CubeBounds(1), p)

	// Default cube: dimensions 2, distance 3, key energy 30 * 2^2.
	assert.Equal(t, float32(3), plan.Distance)
	key, _ := plan.Light(KeyLight)
	assert.Equal(t, float32(120), key.Energy)

	d := float32(3)
	s := float32(math.Sqrt2 / 2)
	vecNear(t, mgl32.Vec3{d * s, d * s, d * 0.5}, key.Position, 1e-5)
	fill, _ := plan.Light(FillLight)
	vecNear(t, mgl32.Vec3{d * s, -d * s, d * 0.25}, fill.Position, 1e-5)
	back, _ := plan.Light(BackLight)
	vecNear(t, mgl32.Vec3{-d * 1.5, 0, d * 0.5}, back.Position, 1e-5)
	vecNear(t, mgl32.Vec3{d * 1.5, d * s, d}, plan.Camera.Position, 1e-5)
}

func TestPlanRig_EverythingAimsAtCenter(t *testing.T) {
	p, _ := LookupPreset("French")
	box := BoundingBox{Min: mgl32.Vec3{2, 3, 4}, Max: mgl32.Vec3{5, 4, 8}}
	plan := PlanRig(box, p)

	poses := []Placement{plan.Camera}
	for _, l := range plan.Lights {
		poses = append(poses, l.Placement)
	}
	for _, pose := range poses {
		want := plan.Center.Sub(pose.Position).Normalize()
		vecNear(t, want, Forward(pose.Rotation), 1e-4)
		vecNear(t, QuatToEuler(pose.Rotation), pose.Euler, 1e-6)
	}
}

func TestPlanRig_JSON(t *testing.T) {
	p, _ := LookupPreset("Tamised")
	raw, err := json.Marshal(PlanRig(CubeBounds(0.5), p))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Tamised", decoded["preset"])
	assert.EqualValues(t, 1.5, decoded["distance"])
	assert.Len(t, decoded["lights"], 3)
	assert.NotContains(t, decoded, "Target")
}
