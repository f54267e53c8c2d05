package lightrig

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	previewBackground = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	previewGrid       = color.RGBA{R: 44, G: 44, B: 52, A: 255}
	previewTarget     = color.RGBA{R: 230, G: 160, B: 40, A: 255}
	previewCamera     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	previewRay        = color.RGBA{R: 90, G: 90, B: 100, A: 255}
)

const (
	minPreviewSize = 64
	previewMargin  = 0.12
	lightMarker    = 5
)

// RenderPreview draws a top-down (XY plane) sketch of a rig: the target's
// footprint, each light in its color with a ray to the center, and the camera
// with its view direction.
func RenderPreview(cmd *Commands, info RigInfo, size int) (*image.RGBA, error) {
	if size < minPreviewSize {
		return nil, fmt.Errorf("preview size %d is below %d", size, minPreviewSize)
	}
	target, ok := FindObject(cmd, info.Target)
	if !ok {
		return nil, fmt.Errorf("target %q: %w", info.Target, ErrUnknownObject)
	}
	ob, _ := ObjectBoundsOf(cmd, target)
	box := ob.World()

	extent := box
	type marker struct {
		label string
		pos   mgl32.Vec3
		col   color.RGBA
	}
	var lights []marker
	for _, role := range Roles {
		eid, ok := info.Lights[role]
		if !ok {
			continue
		}
		tr := GetComponent[TransformComponent](cmd, eid)
		l := GetComponent[LightComponent](cmd, eid)
		if tr == nil || l == nil {
			continue
		}
		lights = append(lights, marker{label: string(role), pos: tr.Position, col: lightColor(l.Color)})
		extent = extent.Extend(tr.Position)
	}
	var camTr *TransformComponent
	if info.HasCamera {
		camTr = GetComponent[TransformComponent](cmd, info.Camera)
		if camTr != nil {
			extent = extent.Extend(camTr.Position)
		}
	}

	p := newPlot(extent, size)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(previewBackground), image.Point{}, draw.Src)
	p.grid(img)

	center := p.project(box.Center())
	for _, m := range lights {
		drawLine(img, p.project(m.pos), center, previewRay)
	}

	lo, hi := p.project(box.Min), p.project(box.Max)
	drawRect(img, image.Rect(lo.X, hi.Y, hi.X, lo.Y), previewTarget)
	drawLabel(img, info.Target, image.Pt(lo.X+2, hi.Y-3), previewTarget)

	for _, m := range lights {
		at := p.project(m.pos)
		fillRect(img, image.Rect(at.X-lightMarker, at.Y-lightMarker, at.X+lightMarker+1, at.Y+lightMarker+1), m.col)
		drawLabel(img, m.label, image.Pt(at.X+lightMarker+3, at.Y+4), m.col)
	}

	if camTr != nil {
		at := p.project(camTr.Position)
		fwd := Forward(camTr.Rotation)
		dir := mgl32.Vec2{fwd.X(), fwd.Y()}
		if dir.Len() > 1e-4 {
			dir = dir.Normalize().Mul(float32(size) / 10)
			tip := image.Pt(at.X+int(dir.X()), at.Y-int(dir.Y()))
			drawLine(img, at, tip, previewCamera)
		}
		drawRect(img, image.Rect(at.X-4, at.Y-4, at.X+5, at.Y+5), previewCamera)
		drawLabel(img, "Camera", image.Pt(at.X+8, at.Y+4), previewCamera)
	}
	return img, nil
}

// WritePreviewPNG encodes img as PNG.
func WritePreviewPNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// plot maps world XY onto a square image with +Y up.
type plot struct {
	origin mgl32.Vec2
	scale  float32
	size   int
}

func newPlot(extent BoundingBox, size int) plot {
	span := max(extent.Max.X()-extent.Min.X(), extent.Max.Y()-extent.Min.Y())
	if span <= 0 {
		span = 1
	}
	usable := float32(size) * (1 - 2*previewMargin)
	c := extent.Center()
	return plot{
		origin: mgl32.Vec2{c.X(), c.Y()},
		scale:  usable / span,
		size:   size,
	}
}

func (p plot) project(v mgl32.Vec3) image.Point {
	half := float32(p.size) / 2
	x := half + (v.X()-p.origin.X())*p.scale
	y := half - (v.Y()-p.origin.Y())*p.scale
	return image.Pt(int(math.Round(float64(x))), int(math.Round(float64(y))))
}

// grid draws lines at whole world units, thinned out when they would crowd.
func (p plot) grid(img *image.RGBA) {
	scale := float64(p.scale)
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return
	}
	step := 1.0
	for step*scale < 16 {
		step *= 2
	}
	half := float64(p.size) / 2 / scale
	n := int(math.Ceil(2*half/step)) + 1
	x0 := math.Floor((float64(p.origin.X())-half)/step) * step
	y0 := math.Floor((float64(p.origin.Y())-half)/step) * step
	for i := 0; i <= n; i++ {
		x := p.projectX(x0 + float64(i)*step)
		drawLine(img, image.Pt(x, 0), image.Pt(x, p.size-1), previewGrid)
		y := p.projectY(y0 + float64(i)*step)
		drawLine(img, image.Pt(0, y), image.Pt(p.size-1, y), previewGrid)
	}
}

// projectX and projectY map world coordinates in float64 so grid lines far
// from the origin keep their spacing.
func (p plot) projectX(u float64) int {
	return int(math.Round(float64(p.size)/2 + (u-float64(p.origin.X()))*float64(p.scale)))
}

func (p plot) projectY(v float64) int {
	return int(math.Round(float64(p.size)/2 - (v-float64(p.origin.Y()))*float64(p.scale)))
}

func lightColor(c [3]float32) color.RGBA {
	to8 := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255}
}

// drawLine rasterizes a Bresenham line, clipped to img.
func drawLine(img *image.RGBA, a, b image.Point, c color.RGBA) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	bounds := img.Bounds()
	err := dx + dy
	for {
		if a.In(bounds) {
			img.SetRGBA(a.X, a.Y, c)
		}
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func drawRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Canon()
	drawLine(img, r.Min, image.Pt(r.Max.X, r.Min.Y), c)
	drawLine(img, image.Pt(r.Max.X, r.Min.Y), r.Max, c)
	drawLine(img, r.Max, image.Pt(r.Min.X, r.Max.Y), c)
	drawLine(img, image.Pt(r.Min.X, r.Max.Y), r.Min, c)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawLabel(img *image.RGBA, text string, at image.Point, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(at.X, at.Y),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
