// Package ess estimates the effective sample size of MCMC draws.
//
// The effective sample size is the number of independent draws that would
// give the same precision for the mean as the autocorrelated draws at hand.
// The estimate follows BDA3 (p. 286-287) and combines the autocovariances of
// all chains.
//
// # Full Estimator
//
// Compute accepts chains of different lengths and truncates the
// autocorrelation sequence with Geyer's initial positive sequence, then
// smooths it with Geyer's initial monotone sequence:
//
//	set, _ := chains.NewSet(draws, meta)
//	n, err := ess.Compute(set)
//	if errors.Is(err, chains.ErrDegenerateVariance) {
//	    // constant chains, not estimable
//	}
//
// # Simplified Estimator
//
// ComputeSimple (and FromMatrix for gonum matrices) requires equal-length
// chains and stops at the first negative autocorrelation without monotone
// smoothing:
//
//	m := mat.NewDense(iterations, nChains, data)
//	n, err := ess.FromMatrix(m)
//
// The two estimators can return different values for the same draws.
//
// # References
//
//   - Gelman, A. et al. (2013). Bayesian Data Analysis, 3rd ed.
//   - Geyer, C. J. (1992). Practical Markov Chain Monte Carlo. Statistical Science.
package ess
