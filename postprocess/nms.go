// Package postprocess - greedy Non-Maximum Suppression over sorted detections.
package postprocess

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/detkit/boxgeom"
)

// DefaultIoUThreshold is the suppression threshold used by DefaultConfig.
const DefaultIoUThreshold = 0.45

// Config defines parameters for Non-Maximum Suppression.
type Config struct {
	// IoUThreshold is the overlap ratio above which a candidate is
	// suppressed by an already-kept box. Zero or negative suppresses every
	// candidate that has any overlap with a kept box.
	IoUThreshold float32
	// ClassAware restricts suppression to kept boxes of the same class.
	ClassAware bool
}

// DefaultConfig returns a Config with the standard suppression threshold.
func DefaultConfig() Config {
	return Config{IoUThreshold: DefaultIoUThreshold}
}

// SortedByScore is a detection sequence whose producer asserts it is in
// descending-score order. FilterIndices never sorts its input; it trusts this
// type's contract. Build one with SortByScore, or convert directly when the
// detections are already ordered (model outputs often are).
type SortedByScore []boxgeom.Box

// SortByScore copies dets and sorts the copy by descending score. The input
// slice is left untouched.
func SortByScore(dets []boxgeom.Box) SortedByScore {
	sorted := make(SortedByScore, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// SuppressionRatio returns the overlap ratio the greedy filter decides on:
// intersection area over enclosing-envelope area, gated to 0 when the boxes
// do not actually overlap. The gate matters because the raw intersection
// formula goes positive again for diagonally disjoint boxes, which would
// otherwise suppress detections in opposite corners of the frame.
func SuppressionRatio(a, b boxgeom.Box) float32 {
	iw := math32.Min(a.Right(), b.Right()) - math32.Max(a.X, b.X)
	ih := math32.Min(a.Bottom(), b.Bottom()) - math32.Max(a.Y, b.Y)
	if iw <= 0 || ih <= 0 {
		return 0
	}
	return iw * ih / boxgeom.EnclosingArea(a, b)
}

// FilterIndices runs greedy suppression over dets in input order and returns
// the indices to keep, in input order. The first detection is always kept.
// A candidate is compared against every already-kept box (same class only
// when cfg.ClassAware is set) and rejected as soon as one overlaps it above
// cfg.IoUThreshold; rejection is final — a suppressed detection is never
// reconsidered. O(n²) in the number of detections.
//
// Returns nil for empty input.
func FilterIndices(dets SortedByScore, cfg Config) []int {
	n := len(dets)
	if n == 0 {
		return nil
	}

	kept := make([]int, 0, n)
	for i := 0; i < n; i++ {
		candidate := dets[i]
		accept := true

		for _, j := range kept {
			if cfg.ClassAware && candidate.Class != dets[j].Class {
				continue
			}
			if SuppressionRatio(candidate, dets[j]) > cfg.IoUThreshold {
				accept = false
				break
			}
		}

		if accept {
			kept = append(kept, i)
		}
	}

	return kept
}

// Filter is FilterIndices returning the kept detections themselves.
func Filter(dets SortedByScore, cfg Config) []boxgeom.Box {
	indices := FilterIndices(dets, cfg)
	if indices == nil {
		return nil
	}

	filtered := make([]boxgeom.Box, 0, len(indices))
	for _, i := range indices {
		filtered = append(filtered, dets[i])
	}
	return filtered
}
