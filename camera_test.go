package lightrig

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCamera_FieldOfView(t *testing.T) {
	cam := DefaultCamera()
	h, v := cam.FieldOfView()

	assert.InDelta(t, 2*math.Atan(36.0/100.0), h, 1e-5)
	assert.Less(t, v, h, "16:9 is wider than tall")
}

func TestFrameBounds_KeepsEveryCornerInView(t *testing.T) {
	p, _ := LookupPreset(DefaultPresetKey)
	boxes := []BoundingBox{
		CubeBounds(1),
		{Min: mgl32.Vec3{-5, -0.2, 0}, Max: mgl32.Vec3{5, 0.2, 0.4}},
		{Min: mgl32.Vec3{10, 10, 10}, Max: mgl32.Vec3{11, 12, 30}},
	}
	for _, box := range boxes {
		plan := PlanRig(box, p)
		tr := NewTransform(plan.Camera.Position)
		tr.Rotation = plan.Camera.Rotation

		framed, cam := FrameBounds(tr, DefaultCamera(), box)
		vecNear(t, Forward(tr.Rotation), Forward(framed.Rotation), 1e-6)
		for _, c := range box.Corners() {
			assert.Truef(t, InView(framed, cam, c), "corner %v of %v out of view", c, box)
		}
	}
}

func TestInView(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{0, 0, 10})
	cam := DefaultCamera()

	assert.True(t, InView(tr, cam, mgl32.Vec3{0, 0, 0}))
	assert.False(t, InView(tr, cam, mgl32.Vec3{0, 0, 20}), "behind the camera")
	assert.False(t, InView(tr, cam, mgl32.Vec3{50, 0, 0}), "outside the horizontal field")
	assert.False(t, InView(tr, cam, mgl32.Vec3{0, 0, -2000}), "beyond the far clip")
}

func TestSceneCamera_Use(t *testing.T) {
	var s SceneCamera
	assert.False(t, s.Set)
	s.Use(4)
	assert.Equal(t, SceneCamera{Entity: 4, Set: true}, s)
}
