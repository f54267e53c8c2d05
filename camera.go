package lightrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraComponent describes a perspective camera. Lens and SensorWidth are in
// millimetres; the sensor width spans the horizontal field of view.
type CameraComponent struct {
	Lens        float32
	SensorWidth float32
	Aspect      float32 // width / height
	ClipStart   float32
	ClipEnd     float32
}

func DefaultCamera() CameraComponent {
	return CameraComponent{
		Lens:        50,
		SensorWidth: 36,
		Aspect:      16.0 / 9.0,
		ClipStart:   0.1,
		ClipEnd:     1000,
	}
}

// SceneCamera is the resource naming the camera the scene renders from.
type SceneCamera struct {
	Entity EntityId
	Set    bool
}

func (s *SceneCamera) Use(eid EntityId) {
	s.Entity = eid
	s.Set = true
}

// FieldOfView returns the horizontal and vertical angles in radians.
func (c CameraComponent) FieldOfView() (horizontal, vertical float32) {
	h := 2 * math.Atan(float64(c.SensorWidth)/(2*float64(c.Lens)))
	aspect := float64(c.Aspect)
	if aspect <= 0 {
		aspect = 1
	}
	v := 2 * math.Atan(math.Tan(h/2)/aspect)
	return float32(h), float32(v)
}

// FrameBounds slides the camera along its view axis until the sphere around
// target fits the narrower field of view. Orientation is unchanged; the far
// clip plane is pushed out if the target would be clipped.
func FrameBounds(tr TransformComponent, cam CameraComponent, target BoundingBox) (TransformComponent, CameraComponent) {
	h, v := cam.FieldOfView()
	half := float64(min(h, v)) / 2
	radius := float64(target.Radius())
	if radius <= 0 || half <= 0 {
		return tr, cam
	}

	dist := float32(radius / math.Sin(half))
	tr.Position = target.Center().Sub(Forward(tr.Rotation).Mul(dist))

	if need := dist + float32(radius); need > cam.ClipEnd {
		cam.ClipEnd = need * 1.1
	}
	return tr, cam
}

// InView reports whether p lies inside the camera's viewing frustum.
func InView(tr TransformComponent, cam CameraComponent, p mgl32.Vec3) bool {
	local := tr.Rotation.Conjugate().Rotate(p.Sub(tr.Position))
	depth := -local.Z()
	if depth < cam.ClipStart || depth > cam.ClipEnd {
		return false
	}
	h, v := cam.FieldOfView()
	const eps = 1e-4
	tanH := float32(math.Tan(float64(h)/2)) + eps
	tanV := float32(math.Tan(float64(v)/2)) + eps
	return abs32(local.X()) <= depth*tanH && abs32(local.Y()) <= depth*tanV
}
