package review

import "math"

// WeightTolerance is how far the dimension weights may drift from 1.0.
const WeightTolerance = 0.01

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampWeight(w float64) float64 {
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// WeightSum returns the sum of the dimension weights.
func WeightSum(dims []DimensionScore) float64 {
	var sum float64
	for _, d := range dims {
		sum += d.Weight
	}
	return sum
}

// WeightsBalanced reports whether the weights sum to 1.0 within WeightTolerance.
func WeightsBalanced(dims []DimensionScore) bool {
	return math.Abs(WeightSum(dims)-1.0) <= WeightTolerance
}

// ComputeOverall returns round(Σ score×weight) clamped to [0,100].
func ComputeOverall(dims []DimensionScore) int {
	var total float64
	for _, d := range dims {
		total += d.Weighted()
	}
	return Clamp(int(math.Round(total)), 0, 100)
}
