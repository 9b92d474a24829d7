package rhat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/mcmcdiag/chains"
	"github.com/sartorproj/mcmcdiag/stats"
)

// Result holds the split R-hat together with its variance components.
type Result struct {
	RHat        float64
	VarBetween  float64 // B: half length times the variance of split-chain means
	VarWithin   float64 // W: mean of split-chain variances
	HalfLen     int
	SplitChains int
}

// Compute returns the split potential scale reduction of the set.
//
// The common sample count n is the shortest chain length, decremented by one
// when odd. The first n draws of every chain are split into two contiguous
// halves of n/2 draws, and the 2M halves are treated as separate chains.
func Compute(set *chains.Set) (float64, error) {
	res, err := Detail(set)
	if err != nil {
		return 0, err
	}
	return res.RHat, nil
}

// Detail is like Compute but also returns the variance components.
func Detail(set *chains.Set) (*Result, error) {
	if set == nil || set.Len() == 0 {
		return nil, chains.ErrNoChains
	}

	n := set.MinLen()
	if n%2 == 1 {
		n--
	}
	half := n / 2
	if half < 2 {
		return nil, fmt.Errorf("%w: split chains have %d draws, need at least 2",
			chains.ErrDegenerateVariance, half)
	}

	cs := set.Chains()
	splitMean := make([]float64, 0, 2*len(cs))
	splitVar := make([]float64, 0, 2*len(cs))
	constant := true
	for k, c := range cs {
		if !c.IsFinite() {
			return nil, fmt.Errorf("%w: chain %d has non-finite draws", chains.ErrDegenerateVariance, k)
		}
		head := c.Head(n)
		a, b := stats.SplitHalves(head.Values())
		constant = constant && stats.IsConstant(a) && stats.IsConstant(b)
		first, second := head.SplitMoments()
		splitMean = append(splitMean, first.Mean, second.Mean)
		splitVar = append(splitVar, first.Variance, second.Variance)
	}

	varBetween := float64(half) * stats.Variance(splitMean)
	varWithin := stats.Mean(splitVar)
	// rounding can leave a tiny W for constant draws such as 0.1
	if constant || varWithin == 0 {
		return nil, fmt.Errorf("%w: within-chain variance is zero", chains.ErrDegenerateVariance)
	}

	// [(n-1)*W/n + B/n]/W rewritten as (n-1 + B/W)/n
	srhat := math.Sqrt((varBetween/varWithin + float64(half) - 1) / float64(half))
	if math.IsNaN(srhat) || math.IsInf(srhat, 0) {
		return nil, fmt.Errorf("%w: split R-hat is %v", chains.ErrDegenerateVariance, srhat)
	}

	return &Result{
		RHat:        srhat,
		VarBetween:  varBetween,
		VarWithin:   varWithin,
		HalfLen:     half,
		SplitChains: len(splitMean),
	}, nil
}

// FromMatrix returns the split R-hat of an iterations x chains matrix of
// post-warmup draws.
func FromMatrix(m mat.Matrix) (float64, error) {
	set, err := chains.FromMatrix(m)
	if err != nil {
		return 0, err
	}
	return Compute(set)
}
