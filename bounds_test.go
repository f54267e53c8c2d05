package lightrig

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBoundingBox_Basics(t *testing.T) {
	b := BoundingBox{Min: mgl32.Vec3{-1, -2, -3}, Max: mgl32.Vec3{3, 2, 1}}

	assert.Equal(t, mgl32.Vec3{1, 0, -1}, b.Center())
	assert.Equal(t, mgl32.Vec3{4, 4, 4}, b.Dimensions())
	assert.Equal(t, float32(4), b.MaxDimension())
	assert.False(t, b.IsEmpty())
	assert.True(t, EmptyBounds().IsEmpty())

	corners := b.Corners()
	assert.Equal(t, b.Min, corners[0])
	assert.Equal(t, b.Max, corners[7])
	assert.Equal(t, mgl32.Vec3{3, -2, -3}, corners[1])
}

func TestBoundingBox_UnionWithEmpty(t *testing.T) {
	b := CubeBounds(1)
	assert.Equal(t, b, EmptyBounds().Union(b))
	assert.Equal(t, b, b.Union(EmptyBounds()))
}

func TestObjectBounds_WorldAppliesScaleAndTranslation(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{10, 0, 0})
	tr.Scale = mgl32.Vec3{2, 1, 3}
	ob := ObjectBounds{Transform: tr, Local: CubeBounds(1)}

	w := ob.World()
	vecNear(t, mgl32.Vec3{8, -1, -3}, w.Min, 1e-5)
	vecNear(t, mgl32.Vec3{12, 1, 3}, w.Max, 1e-5)
	assert.Equal(t, mgl32.Vec3{4, 2, 6}, ob.Dimensions())
}

func TestObjectBounds_RotatedCubeGrows(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{})
	tr.Rotation = mgl32.QuatRotate(math.Pi/4, WorldUp)
	w := ObjectBounds{Transform: tr, Local: CubeBounds(1)}.World()

	r := float32(math.Sqrt2)
	vecNear(t, mgl32.Vec3{-r, -r, -1}, w.Min, 1e-5)
	vecNear(t, mgl32.Vec3{r, r, 1}, w.Max, 1e-5)
}

// The union box must equal the min/max over every transformed corner of
// every object, for arbitrary rotations.
func TestUnionBounds_MatchesTransformedCorners(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	f := func(lo, hi float64) float32 { return float32(lo + rng.Float64()*(hi-lo)) }

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.IntN(5)
		objs := make([]ObjectBounds, n)
		lo := mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
		hi := lo.Mul(-1)

		for i := range objs {
			tr := NewTransform(mgl32.Vec3{f(-10, 10), f(-10, 10), f(-10, 10)})
			tr.Rotation = EulerToQuat(mgl32.Vec3{f(-math.Pi, math.Pi), f(-math.Pi, math.Pi), f(-math.Pi, math.Pi)})
			tr.Scale = mgl32.Vec3{f(0.1, 3), f(0.1, 3), f(0.1, 3)}
			local := BoundingBox{
				Min: mgl32.Vec3{f(-2, 0), f(-2, 0), f(-2, 0)},
				Max: mgl32.Vec3{f(0, 2), f(0, 2), f(0, 2)},
			}
			objs[i] = ObjectBounds{Transform: tr, Local: local}

			for _, c := range local.Corners() {
				scaled := mgl32.Vec3{c.X() * tr.Scale.X(), c.Y() * tr.Scale.Y(), c.Z() * tr.Scale.Z()}
				p := tr.Rotation.Rotate(scaled).Add(tr.Position)
				for axis := 0; axis < 3; axis++ {
					lo[axis] = min(lo[axis], p[axis])
					hi[axis] = max(hi[axis], p[axis])
				}
			}
		}

		u := UnionBounds(objs...)
		vecNear(t, lo, u.Min, 1e-3)
		vecNear(t, hi, u.Max, 1e-3)
	}
}
