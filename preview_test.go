package lightrig

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreview(t *testing.T) {
	_, cmd := newRigApp(t)
	addBox(t, cmd, "Cube", NewTransform(mgl32.Vec3{}), 1, true)
	rig, err := PlaceRig(cmd, "French", DefaultRigOptions())
	require.NoError(t, err)
	info, err := InspectRig(cmd, rig.Collection)
	require.NoError(t, err)

	img, err := RenderPreview(cmd, info, 256)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())

	p, _ := LookupPreset("French")
	keyColor := lightColor(p.Light(KeyLight).Color)
	counts := map[color.RGBA]int{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			counts[img.RGBAAt(x, y)]++
		}
	}
	assert.GreaterOrEqual(t, counts[keyColor], (2*lightMarker+1)*(2*lightMarker+1), "key light marker is drawn in its color")
	assert.Positive(t, counts[previewTarget])
	assert.Positive(t, counts[previewCamera])
	assert.Less(t, counts[previewBackground], 256*256)

	var buf bytes.Buffer
	require.NoError(t, WritePreviewPNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestRenderPreview_FarFromOrigin(t *testing.T) {
	_, cmd := newRigApp(t)
	addBox(t, cmd, "Cube", NewTransform(mgl32.Vec3{2e7, 0, 0}), 1, true)
	rig, err := PlaceRig(cmd, "Basic3Point", DefaultRigOptions())
	require.NoError(t, err)
	info, err := InspectRig(cmd, rig.Collection)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := RenderPreview(cmd, info, 256)
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RenderPreview did not finish for a rig at x=2e7")
	}
}

func TestPlot_GridTerminatesAtLargeCoordinates(t *testing.T) {
	p := newPlot(BoundingBox{Min: mgl32.Vec3{3e7, -3e7, 0}, Max: mgl32.Vec3{3e7 + 8, -3e7 + 8, 0}}, 128)
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	p.grid(img)

	lines := 0
	for x := 0; x < 128; x++ {
		if img.RGBAAt(x, 0) == previewGrid {
			lines++
		}
	}
	assert.Positive(t, lines)
}

func TestRenderPreview_Errors(t *testing.T) {
	_, cmd := newRigApp(t)
	_, err := RenderPreview(cmd, RigInfo{Target: "Cube"}, 16)
	assert.Error(t, err)

	_, err = RenderPreview(cmd, RigInfo{Target: "Missing"}, 128)
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestPlot_ProjectsWithYUp(t *testing.T) {
	p := newPlot(BoundingBox{Min: mgl32.Vec3{-1, -1, 0}, Max: mgl32.Vec3{1, 1, 0}}, 100)

	center := p.project(mgl32.Vec3{})
	assert.Equal(t, 50, center.X)
	assert.Equal(t, 50, center.Y)

	up := p.project(mgl32.Vec3{0, 1, 0})
	assert.Less(t, up.Y, center.Y)
	right := p.project(mgl32.Vec3{1, 0, 0})
	assert.Greater(t, right.X, center.X)
}
