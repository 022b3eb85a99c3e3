// Package compositor turns ordered polygon layers into finished frames.
package compositor

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/ivlev/spiredance/internal/geometry"
	"github.com/ivlev/spiredance/internal/system"
)

// coverageThreshold is the minimum rasterizer coverage for a pixel to take
// the layer color. Edges are hard: no blending with what lies below.
const coverageThreshold = 0x80

// Layer is one filled polygon of a frame.
type Layer struct {
	Polygon geometry.Polygon
	Fill    color.RGBA
}

// Frame is a finished animation frame.
type Frame struct {
	Index      int
	Background color.RGBA
	Layers     []Layer
	Rotated    bool
	Image      *image.RGBA
}

// Backdrop holds the background policy: every frame whose index is even and
// a multiple of five flashes.
type Backdrop struct {
	Default color.RGBA
	Flash   color.RGBA
}

// DefaultBackdrop returns the green background with a yellow flash.
func DefaultBackdrop() Backdrop {
	return Backdrop{Default: BackgroundColor, Flash: LightningColor}
}

// IsFlash reports whether frame i uses the flash color.
func IsFlash(i int) bool {
	return i%2 == 0 && i%5 == 0
}

// For returns the background of frame i.
func (b Backdrop) For(i int) color.RGBA {
	if IsFlash(i) {
		return b.Flash
	}
	return b.Default
}

// Compositor draws layers on a fixed-size canvas. It holds no mutable state
// and is safe for concurrent use.
type Compositor struct {
	Width  int
	Height int
}

func New(width, height int) *Compositor {
	return &Compositor{Width: width, Height: height}
}

func (c *Compositor) bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// Compose renders the layers over the background, rotates the finished
// raster by 180° and returns the frame.
func (c *Compositor) Compose(index int, bg color.RGBA, layers []Layer) *Frame {
	canvas := system.GetImage(c.bounds())
	c.draw(canvas, bg, layers)

	out := image.NewRGBA(c.bounds())
	Rotate180(out, canvas)
	system.PutImage(canvas)

	return &Frame{
		Index:      index,
		Background: bg,
		Layers:     append([]Layer(nil), layers...),
		Rotated:    true,
		Image:      out,
	}
}

// Render returns the raster before the final rotation.
func (c *Compositor) Render(bg color.RGBA, layers []Layer) *image.RGBA {
	canvas := image.NewRGBA(c.bounds())
	c.draw(canvas, bg, layers)
	return canvas
}

func (c *Compositor) draw(dst *image.RGBA, bg color.RGBA, layers []Layer) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if len(layers) == 0 {
		return
	}

	mask := system.GetMask(c.bounds())
	defer system.PutMask(mask)
	z := vector.NewRasterizer(c.Width, c.Height)

	for _, l := range layers {
		fillPolygon(dst, mask, z, l)
	}
}

// fillPolygon rasterizes the layer polygon into mask and copies the fill into
// dst wherever coverage reaches the threshold.
func fillPolygon(dst *image.RGBA, mask *image.Alpha, z *vector.Rasterizer, l Layer) {
	if len(l.Polygon) < 3 {
		return
	}

	clear(mask.Pix)
	z.Reset(mask.Rect.Dx(), mask.Rect.Dy())
	z.DrawOp = draw.Src
	z.MoveTo(float32(l.Polygon[0].X), float32(l.Polygon[0].Y))
	for _, p := range l.Polygon[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	fill := [4]uint8{l.Fill.R, l.Fill.G, l.Fill.B, l.Fill.A}
	for i, a := range mask.Pix {
		if a >= coverageThreshold {
			copy(dst.Pix[i*4:i*4+4], fill[:])
		}
	}
}

// Rotate180 writes src turned by 180° into dst; pixel (x, y) of dst takes
// pixel (w-1-x, h-1-y) of src. Both images must share the same bounds at
// the origin.
func Rotate180(dst *image.RGBA, src *image.RGBA) {
	w, h := float64(src.Rect.Dx()), float64(src.Rect.Dy())
	s2d := f64.Aff3{
		-1, 0, w,
		0, -1, h,
	}
	xdraw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), xdraw.Src, nil)
}
