package glyf

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/npillmayer/otbackend/bez"
	"github.com/npillmayer/otbackend/orchestration"
	"golang.org/x/image/vector"
)

// PreviewSize is the edge length of glyph preview images, in pixels.
const PreviewSize = 256

// RenderPreview rasterizes a glyph outline into an image of size×size
// pixels. The em square of upem font units is scaled to the image, leaving a
// margin of 1/8 em below the baseline.
func RenderPreview(path bez.Path, upem uint16, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	if upem == 0 || path.IsEmpty() {
		return img
	}
	scale := float64(size) / (float64(upem) * 1.25)
	baseline := float64(size) - float64(upem)*scale/8
	// font units grow upward, image Y grows downward
	xform := bez.Affine{scale, 0, 0, -scale, float64(size) / 10, baseline}
	pt := func(p bez.Point) (float32, float32) {
		q := xform.Apply(p)
		return float32(q.X), float32(q.Y)
	}
	rast := vector.NewRasterizer(size, size)
	rast.DrawOp = draw.Over
	for _, el := range path.Elements() {
		switch el.Kind {
		case bez.MoveTo:
			rast.MoveTo(pt(el.P[0]))
		case bez.LineTo:
			rast.LineTo(pt(el.P[0]))
		case bez.QuadTo:
			bx, by := pt(el.P[0])
			cx, cy := pt(el.P[1])
			rast.QuadTo(bx, by, cx, cy)
		case bez.CurveTo:
			bx, by := pt(el.P[0])
			cx, cy := pt(el.P[1])
			dx, dy := pt(el.P[2])
			rast.CubeTo(bx, by, cx, cy, dx, dy)
		case bez.ClosePath:
			rast.ClosePath()
		}
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	return img
}

// writePreview writes a PNG preview of a glyph into the debug directory.
func writePreview(ctx *orchestration.Context, name string, path bez.Path, upem uint16) error {
	dir := filepath.Join(ctx.DebugDir(), "glyphs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create preview directory: %w", err)
	}
	outPath := filepath.Join(dir, orchestration.SafeFilename(name)+".png")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create preview file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, RenderPreview(path, upem, PreviewSize)); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
