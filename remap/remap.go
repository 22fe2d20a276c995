// Package remap transforms detection boxes from the detector's input pixel
// space into a display space.
//
// The transform assumes the detector input was produced by an
// aspect-preserving letterbox fit (see the letterbox package) and that the
// target uses a bottom-up y axis, so every box goes through a uniform scale,
// a vertical flip, an optional horizontal mirror (front-facing cameras), a
// second scale to the final output resolution, and a horizontal centering
// offset when the output is wider than the scaled display space.
package remap

import (
	"github.com/pkg/errors"

	"github.com/detkit/boxgeom"
)

// Remapper holds the coordinate spaces of a fixed camera/display setup.
// Construct one per setup and reuse it for every frame; ScaleBox itself is
// pure and safe for concurrent use.
type Remapper struct {
	// Input is the detector input space the boxes arrive in.
	Input boxgeom.Dims
	// Display is the intermediate display space being scaled into.
	Display boxgeom.Dims
	// Output is the final output resolution. Equal to Display when the
	// display space is rendered 1:1.
	Output boxgeom.Dims
	// Offset is subtracted from box coordinates before scaling, to undo
	// any crop offset applied when the detector input was produced.
	Offset boxgeom.Point
	// Mirror flips boxes horizontally, for mirrored (selfie) camera feeds.
	Mirror bool
}

// NewRemapper validates the coordinate spaces once so that ScaleBox can stay
// guard-free. A zero-value output is taken to mean "render the display space
// 1:1".
func NewRemapper(input, display, output boxgeom.Dims, offset boxgeom.Point, mirror bool) (*Remapper, error) {
	if output == (boxgeom.Dims{}) {
		output = display
	}
	for _, d := range []struct {
		name string
		dims boxgeom.Dims
	}{
		{"input", input},
		{"display", display},
		{"output", output},
	} {
		if d.dims.W <= 0 || d.dims.H <= 0 {
			return nil, errors.Errorf("remap: %s dimensions must be positive, got %gx%g",
				d.name, d.dims.W, d.dims.H)
		}
	}

	return &Remapper{
		Input:   input,
		Display: display,
		Output:  output,
		Offset:  offset,
		Mirror:  mirror,
	}, nil
}

// minImgScale is the uniform scale from input space to display space,
// derived by matching the smaller dimension of each space so the scaled
// input letterboxes inside the display.
func (r *Remapper) minImgScale() float32 {
	return r.Display.Min() / r.Input.Min()
}

// displayScale maps the display space onto the output resolution by height.
func (r *Remapper) displayScale() float32 {
	if r.Output == (boxgeom.Dims{}) {
		return 1
	}
	return r.Output.H / r.Display.H
}

// centerX is the horizontal offset that centers the scaled display space in
// the output when their aspect ratios differ.
func (r *Remapper) centerX() float32 {
	if r.Output == (boxgeom.Dims{}) {
		return 0
	}
	return (r.Output.W - r.Display.W*r.displayScale()) / 2
}

// toDisplay shifts the box by the crop offset, flips y from the detector's
// top-down convention to the display's bottom-up one, and applies the
// uniform input->display scale.
func (r *Remapper) toDisplay(b boxgeom.Box) boxgeom.Box {
	scale := r.minImgScale()
	b.X = (b.X - r.Offset.X) * scale
	b.Y = (r.Input.H - (b.Y - r.Offset.Y)) * scale
	b.W *= scale
	b.H *= scale
	return b
}

// mirrorX reflects the box across the vertical center line of the display.
func (r *Remapper) mirrorX(b boxgeom.Box) boxgeom.Box {
	b.X = r.Display.W - b.X - b.W
	return b
}

// toOutput applies the display->output scale and the centering offset.
func (r *Remapper) toOutput(b boxgeom.Box) boxgeom.Box {
	scale := r.displayScale()
	b.X = b.X*scale + r.centerX()
	b.Y *= scale
	b.W *= scale
	b.H *= scale
	return b
}

// ScaleBox returns b transformed from detector input space into output
// space. The input box is not mutated; Class and Score carry through
// unchanged. Zero dimensions in the Remapper produce the usual
// divide-by-zero float results, which NewRemapper exists to rule out.
func (r *Remapper) ScaleBox(b boxgeom.Box) boxgeom.Box {
	out := r.toDisplay(b)
	if r.Mirror {
		out = r.mirrorX(out)
	}
	return r.toOutput(out)
}
