package lightrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is an axis-aligned box. The zero value is the degenerate box at
// the origin; use EmptyBounds to start an accumulation.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoundsComponent holds an object's bounding box in its local space.
type BoundsComponent struct {
	Local BoundingBox
}

// ObjectBounds pairs a local box with the transform that places it.
type ObjectBounds struct {
	Transform TransformComponent
	Local     BoundingBox
}

func EmptyBounds() BoundingBox {
	inf := float32(math.Inf(1))
	return BoundingBox{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// CubeBounds is the box [-half, half] on every axis.
func CubeBounds(half float32) BoundingBox {
	return BoundingBox{
		Min: mgl32.Vec3{-half, -half, -half},
		Max: mgl32.Vec3{half, half, half},
	}
}

func (b BoundingBox) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

func (b BoundingBox) Extend(p mgl32.Vec3) BoundingBox {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Corners lists the 8 corners, bit i of the index selecting Max on axis i.
func (b BoundingBox) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				out[i][axis] = b.Max[axis]
			} else {
				out[i][axis] = b.Min[axis]
			}
		}
	}
	return out
}

// Transform returns the axis-aligned box around b's corners mapped by m.
func (b BoundingBox) Transform(m mgl32.Mat4) BoundingBox {
	out := EmptyBounds()
	for _, c := range b.Corners() {
		out = out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}

func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b BoundingBox) Dimensions() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b BoundingBox) MaxDimension() float32 {
	d := b.Dimensions()
	return max(d.X(), d.Y(), d.Z())
}

// Radius of the sphere through the corners, centered on Center.
func (b BoundingBox) Radius() float32 {
	return b.Dimensions().Len() / 2
}

// World returns the world-space box around the object's transformed corners.
func (o ObjectBounds) World() BoundingBox {
	return o.Local.Transform(o.Transform.ObjectToWorld())
}

// Dimensions are the local extents scaled by the object's scale, ignoring
// rotation.
func (o ObjectBounds) Dimensions() mgl32.Vec3 {
	d := o.Local.Dimensions()
	s := o.Transform.Scale
	return mgl32.Vec3{
		d.X() * abs32(s.X()),
		d.Y() * abs32(s.Y()),
		d.Z() * abs32(s.Z()),
	}
}

// UnionBounds is the world-space box around every corner of every object.
func UnionBounds(objs ...ObjectBounds) BoundingBox {
	out := EmptyBounds()
	for _, o := range objs {
		out = out.Union(o.World())
	}
	return out
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
