// Package boxgeom provides bounding-box geometry for object-detection
// postprocessing: overlap metrics for Non-Maximum Suppression and the value
// types shared by the postprocess, remap and letterbox packages.
//
// All operations are pure functions over value inputs. Nothing here holds
// state, performs I/O, or mutates its arguments, so every function is safe to
// call concurrently without synchronization.
package boxgeom

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// Box is an axis-aligned rectangle anchored at its top-left corner, plus the
// classification metadata carried alongside a detection. Class and Score are
// opaque to the geometry operations; Score is only meaningful to callers that
// pre-sort detections before suppression.
//
// W and H are expected to be non-negative. The module does not validate this;
// areas computed from negative extents are undefined.
type Box struct {
	// X, Y are the top-left corner in whatever coordinate space the caller
	// is working in (detector input space unless remapped).
	X, Y float32
	// W, H are the box extents.
	W, H float32
	// Class is the class index the detection was labelled with.
	Class int
	// Score is the detection confidence in [0,1].
	Score float32
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float32 {
	return b.X + b.W
}

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float32 {
	return b.Y + b.H
}

// Area returns W*H.
func (b Box) Area() float32 {
	return b.W * b.H
}

// ToRect converts the box to an image.Rectangle, truncating fractional
// pixels at the edges.
func (b Box) ToRect() image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.Right()), int(b.Bottom())).Canon()
}

func (b Box) String() string {
	return fmt.Sprintf("class %d (score %f): (%f, %f) %fx%f",
		b.Class, b.Score, b.X, b.Y, b.W, b.H)
}

// Dims is a width/height pair, used as a coordinate-space dimension
// parameter by the remap and letterbox packages.
type Dims struct {
	W, H float32
}

// Min returns the smaller of the two dimensions.
func (d Dims) Min() float32 {
	return math32.Min(d.W, d.H)
}

// Point is an x/y offset pair.
type Point struct {
	X, Y float32
}

// EnclosingArea returns the area of the minimal axis-aligned rectangle
// covering both a and b. Note this is the bounding envelope of the pair, not
// the set union of the two rectangles; suppression thresholds downstream are
// calibrated against this envelope, so it must not be replaced with an
// inclusion-exclusion union.
func EnclosingArea(a, b Box) float32 {
	x := math32.Min(a.X, b.X)
	y := math32.Min(a.Y, b.Y)
	w := math32.Max(a.Right(), b.Right()) - x
	h := math32.Max(a.Bottom(), b.Bottom()) - y
	return w * h
}

// IntersectionArea returns the area of the overlapping region between a and
// b, with no clamping: when the boxes are disjoint on one axis the overlap
// extent on that axis is negative and the result is negative. When they are
// disjoint on both axes the two negative extents multiply back to a positive
// value, so a raw result > 0 does not by itself prove the boxes overlap.
// Callers deciding suppression should use the guarded ratio in the
// postprocess package instead.
func IntersectionArea(a, b Box) float32 {
	x := math32.Max(a.X, b.X)
	y := math32.Max(a.Y, b.Y)
	w := math32.Min(a.Right(), b.Right()) - x
	h := math32.Min(a.Bottom(), b.Bottom()) - y
	return w * h
}

// IoU returns IntersectionArea(a, b) / EnclosingArea(a, b), raw. It inherits
// the quirks of both operands: negative for axis-disjoint boxes, and NaN for
// coincident zero-area boxes (0/0).
func IoU(a, b Box) float32 {
	return IntersectionArea(a, b) / EnclosingArea(a, b)
}
