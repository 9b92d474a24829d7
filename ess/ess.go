package ess

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/mcmcdiag/chains"
	"github.com/sartorproj/mcmcdiag/stats"
)

// pooled holds the per-chain quantities shared by both ESS variants.
type pooled struct {
	acov    [][]float64
	meanVar float64
	varPlus float64
}

// pool computes the per-chain autocovariances and the pooled variance
// estimates. n is the common sample count.
func pool(set *chains.Set, n int) (*pooled, error) {
	cs := set.Chains()
	m := len(cs)

	p := &pooled{acov: make([][]float64, m)}
	chainMean := make([]float64, m)
	chainVar := make([]float64, m)
	constant := 0
	for k, c := range cs {
		nk := c.Len()
		if nk < 2 {
			return nil, fmt.Errorf("%w: chain %d has %d draws, need at least 2",
				chains.ErrDegenerateVariance, k, nk)
		}
		if !c.IsFinite() {
			return nil, fmt.Errorf("%w: chain %d has non-finite draws", chains.ErrDegenerateVariance, k)
		}
		if c.IsConstant() {
			constant++
		}
		p.acov[k] = c.Autocovariance()
		chainMean[k] = c.Mean()
		chainVar[k] = p.acov[k][0] * float64(nk) / float64(nk-1)
	}

	if constant == m {
		return nil, fmt.Errorf("%w: within-chain variance is zero", chains.ErrDegenerateVariance)
	}

	p.meanVar = stats.Mean(chainVar)
	p.varPlus = p.meanVar * float64(n-1) / float64(n)
	if m > 1 {
		p.varPlus += stats.Variance(chainMean)
	}
	if p.varPlus == 0 || math.IsNaN(p.varPlus) || math.IsInf(p.varPlus, 0) {
		return nil, fmt.Errorf("%w: pooled variance is %v", chains.ErrDegenerateVariance, p.varPlus)
	}
	return p, nil
}

// rho estimates the autocorrelation at lag t combined across chains.
func (p *pooled) rho(t int) float64 {
	sum := 0.0
	for _, acov := range p.acov {
		sum += acov[t]
	}
	return 1 - (p.meanVar-sum/float64(len(p.acov)))/p.varPlus
}

// Compute returns the effective sample size of the set.
//
// Chains may have different lengths; the shortest one gives the common sample
// count n. Autocovariances, means and variances are computed over each
// chain's own draws. The autocorrelation sequence is truncated with Geyer's
// initial positive sequence and smoothed with the initial monotone sequence,
// and the result is M*n / (1 + 2*sum(rho)).
//
// The result may exceed M*n when draws are negatively autocorrelated. When
// the lag-1 autocorrelation is close to -1, as for an alternating chain,
// 1 + 2*sum(rho) is negative and so is the returned value.
//
// Sets where every chain is constant are rejected with ErrDegenerateVariance,
// even when the chains hold different values.
func Compute(set *chains.Set) (float64, error) {
	if set == nil || set.Len() == 0 {
		return 0, chains.ErrNoChains
	}
	m := set.Len()
	n := set.MinLen()

	p, err := pool(set, n)
	if err != nil {
		return 0, err
	}

	rhoHat, maxT := initialPositive(p, n)
	initialMonotone(rhoHat, maxT)

	return finish(float64(m*n) / (1 + 2*stats.Sum(rhoHat)))
}

// initialPositive builds the autocorrelation sequence with Geyer's initial
// positive sequence: lags are accepted in (even, odd) pairs while the sum of
// the previous pair is non-negative. maxT is the last lag examined, including
// the rejected pair.
func initialPositive(p *pooled, n int) (rhoHat []float64, maxT int) {
	rhoHat = make([]float64, n)
	rhoEven := 1.0
	rhoOdd := p.rho(1)
	rhoHat[1] = rhoOdd

	maxT = 1
	for t := 1; t < n-2 && rhoEven+rhoOdd >= 0; t += 2 {
		rhoEven = p.rho(t + 1)
		rhoOdd = p.rho(t + 2)
		if rhoEven+rhoOdd >= 0 {
			rhoHat[t+1] = rhoEven
			rhoHat[t+2] = rhoOdd
		}
		maxT = t + 2
	}
	return rhoHat, maxT
}

// initialMonotone applies Geyer's initial monotone sequence in place: every
// pair sum is clamped to the previous one.
func initialMonotone(rhoHat []float64, maxT int) {
	for t := 3; t <= maxT-2; t += 2 {
		if rhoHat[t+1]+rhoHat[t+2] > rhoHat[t-1]+rhoHat[t] {
			rhoHat[t+1] = (rhoHat[t-1] + rhoHat[t]) / 2
			rhoHat[t+2] = rhoHat[t+1]
		}
	}
}

// ComputeSimple returns the effective sample size of a rectangular set using
// the simplified truncation rule: the autocorrelation sequence stops at the
// first negative single lag and no monotone smoothing is applied.
//
// For the same input this can differ from Compute.
func ComputeSimple(set *chains.Set) (float64, error) {
	if set == nil || set.Len() == 0 {
		return 0, chains.ErrNoChains
	}
	if !set.IsRectangular() {
		return 0, fmt.Errorf("%w: simplified ESS needs equal-length chains",
			chains.ErrInconsistentChainLengths)
	}
	m := set.Len()
	n := set.MinLen()

	p, err := pool(set, n)
	if err != nil {
		return 0, err
	}

	var rhoHat []float64
	rho := 0.0
	for t := 1; t < n && rho >= 0; t++ {
		rho = p.rho(t)
		if rho >= 0 {
			rhoHat = append(rhoHat, rho)
		}
	}

	ess := float64(m * n)
	if len(rhoHat) > 0 {
		ess /= 1 + 2*stats.Sum(rhoHat)
	}
	return finish(ess)
}

// FromMatrix returns the simplified effective sample size of an
// iterations x chains matrix of post-warmup draws.
func FromMatrix(m mat.Matrix) (float64, error) {
	set, err := chains.FromMatrix(m)
	if err != nil {
		return 0, err
	}
	return ComputeSimple(set)
}

func finish(ess float64) (float64, error) {
	if math.IsNaN(ess) || math.IsInf(ess, 0) {
		return 0, fmt.Errorf("%w: effective sample size is %v", chains.ErrDegenerateVariance, ess)
	}
	return ess, nil
}
