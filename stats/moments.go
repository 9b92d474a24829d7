package stats

// Mean calculates the arithmetic mean of x. Returns 0 for empty input.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Variance calculates the unbiased sample variance of x (divide by N-1).
// Returns 0 when x has fewer than two values.
func Variance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return sumSquares(x) / float64(len(x)-1)
}

// PopulationVariance calculates the variance of x dividing by N.
func PopulationVariance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return sumSquares(x) / float64(len(x))
}

func sumSquares(x []float64) float64 {
	mean := Mean(x)
	sumSq := 0.0
	for _, v := range x {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq
}

// IsConstant reports whether every value of x is identical. Empty input is
// constant. Variance may not round to zero for such input, e.g. 0.1 repeated.
func IsConstant(x []float64) bool {
	for _, v := range x {
		if v != x[0] {
			return false
		}
	}
	return true
}

// Sum returns the sum of x.
func Sum(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum
}

// SplitHalves partitions x into two contiguous halves of len(x)/2 values.
// For odd lengths the final value is dropped. The halves share memory with x.
func SplitHalves(x []float64) (first, second []float64) {
	half := len(x) / 2
	return x[:half], x[half : 2*half]
}

// Moments holds the mean and unbiased variance of a sequence.
type Moments struct {
	Mean     float64
	Variance float64
}

// SplitMoments returns the moments of both halves of x, as produced by
// SplitHalves.
func SplitMoments(x []float64) (first, second Moments) {
	a, b := SplitHalves(x)
	return Moments{Mean: Mean(a), Variance: Variance(a)},
		Moments{Mean: Mean(b), Variance: Variance(b)}
}
