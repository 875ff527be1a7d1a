// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"fmt"
	"math"
)

// cosine returns the cosine of the angle between a and b, accumulating in
// float64. A zero-length or zero-norm vector yields 0.
func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// aggregate combines per-source similarities into one score: the average
// of the maximum and the mean, bounded to [0, 1]. sims must be non-empty.
func aggregate(sims []float64) (float64, error) {
	maxSim := sims[0]
	var sum float64
	for _, s := range sims {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("%w: per-source similarity %v", ErrInvalidScore, s)
		}
		if s > maxSim {
			maxSim = s
		}
		sum += s
	}
	mean := sum / float64(len(sims))
	score := (maxSim + mean) / 2
	return math.Max(0, math.Min(score, 1)), nil
}

// countAbove counts similarities strictly greater than threshold.
func countAbove(sims []float64, threshold float64) int {
	n := 0
	for _, s := range sims {
		if s > threshold {
			n++
		}
	}
	return n
}

func percent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
