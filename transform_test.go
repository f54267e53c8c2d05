package lightrig

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLookAtRotation_AimsNegativeZ(t *testing.T) {
	cases := []struct {
		name        string
		eye, target mgl32.Vec3
	}{
		{"horizontal", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{}},
		{"elevated", mgl32.Vec3{3, 3, 2}, mgl32.Vec3{0, 0, 0.5}},
		{"behind", mgl32.Vec3{-9, 0, 3}, mgl32.Vec3{1, 1, 1}},
		{"straight down", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}},
		{"straight up", mgl32.Vec3{0, 0, -10}, mgl32.Vec3{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := LookAtRotation(tc.eye, tc.target)
			want := tc.target.Sub(tc.eye).Normalize()
			vecNear(t, want, Forward(q), 1e-4)
			assert.InDelta(t, 1, q.Len(), 1e-5)
		})
	}
}

func TestLookAtRotation_KeepsUpRight(t *testing.T) {
	q := LookAtRotation(mgl32.Vec3{4, -2, 3}, mgl32.Vec3{})
	up := q.Rotate(mgl32.Vec3{0, 1, 0})
	right := q.Rotate(mgl32.Vec3{1, 0, 0})

	assert.Greater(t, up.Dot(WorldUp), float32(0), "local +Y leans toward world up")
	assert.InDelta(t, 0, right.Dot(WorldUp), 1e-5, "local +X stays horizontal")
}

func TestLookAtRotation_Degenerate(t *testing.T) {
	p := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, mgl32.QuatIdent(), LookAtRotation(p, p))
}

func TestEuler_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	basis := []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for i := 0; i < 100; i++ {
		e := mgl32.Vec3{
			float32(rng.Float64()*2*math.Pi - math.Pi),
			float32(rng.Float64()*math.Pi - math.Pi/2),
			float32(rng.Float64()*2*math.Pi - math.Pi),
		}
		q := EulerToQuat(e)
		back := EulerToQuat(QuatToEuler(q))
		for _, v := range basis {
			vecNear(t, q.Rotate(v), back.Rotate(v), 1e-4)
		}
	}
}

func TestEuler_Axes(t *testing.T) {
	// A quarter turn about Z maps +X to +Y.
	q := EulerToQuat(mgl32.Vec3{0, 0, math.Pi / 2})
	vecNear(t, mgl32.Vec3{0, 1, 0}, q.Rotate(mgl32.Vec3{1, 0, 0}), 1e-5)
	vecNear(t, mgl32.Vec3{0, 0, math.Pi / 2}, QuatToEuler(q), 1e-5)

	// X is applied first: +Y goes to +Z, then Z turns nothing.
	q = EulerToQuat(mgl32.Vec3{math.Pi / 2, 0, 0})
	vecNear(t, mgl32.Vec3{0, 0, 1}, q.Rotate(mgl32.Vec3{0, 1, 0}), 1e-5)
}

func TestEuler_GimbalLock(t *testing.T) {
	e := mgl32.Vec3{0.3, math.Pi / 2, 0}
	q := EulerToQuat(e)
	back := EulerToQuat(QuatToEuler(q))
	for _, v := range []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		vecNear(t, q.Rotate(v), back.Rotate(v), 1e-3)
	}
}

func TestTransform_ObjectToWorld(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{1, 2, 3})
	tr.Rotation = mgl32.QuatRotate(math.Pi/2, WorldUp)
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.ObjectToWorld())
	vecNear(t, mgl32.Vec3{1, 4, 3}, p, 1e-5)
}
