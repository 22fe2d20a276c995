package boxgeom

import (
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestEnclosingArea(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected float32
	}{
		{
			name:     "identical boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 0, W: 10, H: 10},
			expected: 100,
		},
		{
			name: "offset overlap",
			a:    Box{X: 0, Y: 0, W: 10, H: 10},
			b:    Box{X: 1, Y: 1, W: 10, H: 10},
			// envelope spans (0,0)-(11,11)
			expected: 121,
		},
		{
			name: "side by side with gap",
			a:    Box{X: 0, Y: 0, W: 10, H: 10},
			b:    Box{X: 20, Y: 0, W: 10, H: 10},
			// sum of areas plus the 10x10 gap between them
			expected: 300,
		},
		{
			name:     "one inside the other",
			a:        Box{X: 0, Y: 0, W: 100, H: 100},
			b:        Box{X: 25, Y: 25, W: 50, H: 50},
			expected: 10000,
		},
		{
			name:     "diagonally disjoint",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 100, Y: 100, W: 10, H: 10},
			expected: 110 * 110,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnclosingArea(tt.a, tt.b))
			// the envelope does not depend on argument order
			assert.Equal(t, tt.expected, EnclosingArea(tt.b, tt.a))
		})
	}
}

func TestIntersectionArea(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected float32
	}{
		{
			name:     "identical boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 0, W: 10, H: 10},
			expected: 100,
		},
		{
			name:     "offset overlap",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 1, Y: 1, W: 10, H: 10},
			expected: 81,
		},
		{
			name: "disjoint on x axis",
			a:    Box{X: 0, Y: 0, W: 10, H: 10},
			b:    Box{X: 20, Y: 0, W: 10, H: 10},
			// overlap width is 10-20=-10, height 10: no clamping
			expected: -100,
		},
		{
			name: "disjoint on both axes",
			a:    Box{X: 0, Y: 0, W: 10, H: 10},
			b:    Box{X: 100, Y: 100, W: 10, H: 10},
			// both extents are -90, multiplying back to a positive value
			expected: 8100,
		},
		{
			name:     "touching edges",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntersectionArea(tt.a, tt.b))
			assert.Equal(t, tt.expected, IntersectionArea(tt.b, tt.a))
		})
	}
}

func TestIntersectionAreaDisjointNotPositiveOnOneAxis(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	for _, b := range []Box{
		{X: 50, Y: 0, W: 10, H: 10},
		{X: 0, Y: 50, W: 10, H: 10},
		{X: 50, Y: 5, W: 10, H: 10},
	} {
		assert.LessOrEqual(t, IntersectionArea(a, b), float32(0), "box %v", b)
	}
}

func TestIoU(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	b := Box{X: 1, Y: 1, W: 10, H: 10}

	assert.Equal(t, float32(1), IoU(a, a))
	assert.InDelta(t, 81.0/121.0, IoU(a, b), 1e-6)

	// axis-disjoint boxes produce a negative ratio rather than zero
	c := Box{X: 20, Y: 0, W: 10, H: 10}
	assert.Less(t, IoU(a, c), float32(0))
}

func TestIoUZeroAreaIsNaN(t *testing.T) {
	// coincident zero-area boxes divide 0 by 0
	z := Box{X: 5, Y: 5}
	assert.True(t, math32.IsNaN(IoU(z, z)))
}

func TestBoxAccessors(t *testing.T) {
	b := Box{X: 2, Y: 3, W: 10, H: 20, Class: 7, Score: 0.5}

	assert.Equal(t, float32(12), b.Right())
	assert.Equal(t, float32(23), b.Bottom())
	assert.Equal(t, float32(200), b.Area())
	assert.Equal(t, image.Rect(2, 3, 12, 23), b.ToRect())
}

func TestDimsMin(t *testing.T) {
	assert.Equal(t, float32(720), Dims{W: 1280, H: 720}.Min())
	assert.Equal(t, float32(640), Dims{W: 640, H: 640}.Min())
}

func BenchmarkIntersectionArea(b *testing.B) {
	x := Box{X: 0, Y: 0, W: 100, H: 100}
	y := Box{X: 50, Y: 50, W: 100, H: 100}
	for i := 0; i < b.N; i++ {
		IntersectionArea(x, y)
	}
}
