package chains

import (
	"fmt"
	"math"

	"github.com/sartorproj/mcmcdiag/stats"
)

// Chain is the post-warmup draws of one parameter in one sampling run.
// A Chain never changes after construction.
type Chain struct {
	values []float64
	warmup int
}

// New creates a chain from kept (post-warmup) draws. The draws are copied.
func New(kept []float64) *Chain {
	values := make([]float64, len(kept))
	copy(values, kept)
	return &Chain{values: values}
}

// NewWithWarmup creates a chain from all saved draws of a run, discarding the
// first warmup of them.
func NewWithWarmup(saved []float64, warmup int) (*Chain, error) {
	if warmup < 0 || warmup > len(saved) {
		return nil, fmt.Errorf("%w: warmup %d with %d saved draws",
			ErrInconsistentChainLengths, warmup, len(saved))
	}
	c := New(saved[warmup:])
	c.warmup = warmup
	return c, nil
}

// Len returns the number of kept draws.
func (c *Chain) Len() int {
	return len(c.values)
}

// Warmup returns the number of saved draws that were discarded as warmup.
func (c *Chain) Warmup() int {
	return c.warmup
}

// At returns the i-th kept draw.
func (c *Chain) At(i int) float64 {
	return c.values[i]
}

// Values returns a copy of the kept draws.
func (c *Chain) Values() []float64 {
	values := make([]float64, len(c.values))
	copy(values, c.values)
	return values
}

// Head returns a chain holding the first n kept draws.
func (c *Chain) Head(n int) *Chain {
	if n > len(c.values) {
		n = len(c.values)
	}
	if n < 0 {
		n = 0
	}
	return &Chain{values: c.values[:n:n], warmup: c.warmup}
}

// Mean calculates the arithmetic mean of the kept draws.
func (c *Chain) Mean() float64 {
	return stats.Mean(c.values)
}

// Variance calculates the unbiased sample variance of the kept draws.
func (c *Chain) Variance() float64 {
	return stats.Variance(c.values)
}

// Autocovariance calculates the autocovariance of the kept draws for every lag.
func (c *Chain) Autocovariance() []float64 {
	return stats.Autocovariance(c.values)
}

// SplitMoments returns the moments of the two halves of the chain.
func (c *Chain) SplitMoments() (first, second stats.Moments) {
	return stats.SplitMoments(c.values)
}

// IsConstant reports whether every kept draw has the same value.
func (c *Chain) IsConstant() bool {
	return stats.IsConstant(c.values)
}

// IsFinite reports whether every kept draw is a finite number.
func (c *Chain) IsFinite() bool {
	for _, v := range c.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
