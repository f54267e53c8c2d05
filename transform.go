package lightrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the scene's up axis. The scene is Z-up.
var WorldUp = mgl32.Vec3{0, 0, 1}

type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ObjectToWorld returns M = T * R * S.
func (t TransformComponent) ObjectToWorld() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Normalize().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}

// Euler returns the rotation as XYZ Euler angles in radians.
func (t TransformComponent) Euler() mgl32.Vec3 {
	return QuatToEuler(t.Rotation)
}

// LookAtRotation aims local -Z from eye at target with local +Y as close to
// WorldUp as possible. A degenerate direction yields the identity.
func LookAtRotation(eye, target mgl32.Vec3) mgl32.Quat {
	dir := target.Sub(eye)
	if dir.Len() < 1e-6 {
		return mgl32.QuatIdent()
	}
	z := dir.Normalize().Mul(-1)

	x := WorldUp.Cross(z)
	if x.Len() < 1e-6 {
		// Looking straight along the up axis; fall back to +Y as up.
		x = mgl32.Vec3{0, 1, 0}.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

// QuatToEuler decomposes q into XYZ Euler angles (R = Rz * Ry * Rx).
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	m := q.Normalize().Mat4()
	r00, r10, r20 := float64(m.At(0, 0)), float64(m.At(1, 0)), float64(m.At(2, 0))
	r21, r22 := float64(m.At(2, 1)), float64(m.At(2, 2))

	cy := math.Hypot(r00, r10)
	var x, y, z float64
	if cy > 1e-6 {
		x = math.Atan2(r21, r22)
		y = math.Atan2(-r20, cy)
		z = math.Atan2(r10, r00)
	} else {
		// Gimbal lock: fold the Z rotation into X.
		x = math.Atan2(-float64(m.At(1, 2)), float64(m.At(1, 1)))
		y = math.Atan2(-r20, cy)
		z = 0
	}
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// EulerToQuat composes XYZ Euler angles in radians.
func EulerToQuat(e mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(e.X(), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(e.Y(), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(e.Z(), mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx).Normalize()
}

// Forward is the direction local -Z points to under q.
func Forward(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(mgl32.Vec3{0, 0, -1})
}
