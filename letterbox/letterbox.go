// Package letterbox computes aspect-preserving fit geometry for detector
// input preparation, and the matching image resize.
//
// A detector with a fixed square input sees frames scaled down by the
// smaller of the per-axis ratios and padded to center; the Params produced
// here describe that fit, and UnmapBox inverts it to bring detections back
// into source-image coordinates.
package letterbox

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/detkit/boxgeom"
)

// Params describes a letterbox fit of a source space into a destination
// space.
type Params struct {
	// Scale is the uniform source->destination scale factor.
	Scale float32
	// PadX, PadY are the padding on the left and top edges.
	PadX, PadY int
	// ResizeW, ResizeH are the scaled source dimensions inside the
	// destination.
	ResizeW, ResizeH int
	// Src, Dst are the spaces the fit was computed for.
	Src, Dst boxgeom.Dims
}

// Fit computes the letterbox geometry that scales src into dst while
// preserving aspect, with the leftover space split evenly on both sides of
// the padded axis.
func Fit(src, dst boxgeom.Dims) Params {
	p := Params{
		Src:     src,
		Dst:     dst,
		ResizeW: int(dst.W),
		ResizeH: int(dst.H),
	}

	scaleW := dst.W / src.W
	scaleH := dst.H / src.H
	p.Scale = scaleH

	if scaleW < scaleH {
		p.Scale = scaleW
		p.ResizeH = int(src.H * p.Scale)
	} else {
		p.ResizeW = int(src.W * p.Scale)
	}

	p.PadX = (int(dst.W) - p.ResizeW) / 2
	p.PadY = (int(dst.H) - p.ResizeH) / 2

	return p
}

// UnmapBox maps a detection from the padded destination space back into
// source-image coordinates.
func (p Params) UnmapBox(b boxgeom.Box) boxgeom.Box {
	b.X = (b.X - float32(p.PadX)) / p.Scale
	b.Y = (b.Y - float32(p.PadY)) / p.Scale
	b.W /= p.Scale
	b.H /= p.Scale
	return b
}

// MapBox maps a box from source-image coordinates into the padded
// destination space. It is the inverse of UnmapBox.
func (p Params) MapBox(b boxgeom.Box) boxgeom.Box {
	b.X = b.X*p.Scale + float32(p.PadX)
	b.Y = b.Y*p.Scale + float32(p.PadY)
	b.W *= p.Scale
	b.H *= p.Scale
	return b
}

// Resize letterboxes img into a dst-sized canvas: a Lanczos3 resize to the
// fitted dimensions, drawn centered over a fill-colored background. The
// returned Params are the geometry to UnmapBox detections with.
func Resize(img image.Image, dst boxgeom.Dims, fill color.Color) (image.Image, Params, error) {
	if dst.W <= 0 || dst.H <= 0 {
		return nil, Params{}, errors.Errorf("letterbox: destination dimensions must be positive, got %gx%g", dst.W, dst.H)
	}

	bounds := img.Bounds()
	src := boxgeom.Dims{W: float32(bounds.Dx()), H: float32(bounds.Dy())}
	if src.W <= 0 || src.H <= 0 {
		return nil, Params{}, errors.Errorf("letterbox: source image is empty")
	}

	p := Fit(src, dst)

	scaled := resize.Resize(uint(p.ResizeW), uint(p.ResizeH), img, resize.Lanczos3)

	canvas := image.NewRGBA(image.Rect(0, 0, int(dst.W), int(dst.H)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(p.PadX, p.PadY, p.PadX+p.ResizeW, p.PadY+p.ResizeH),
		scaled, image.Point{}, draw.Src)

	return canvas, p, nil
}
