// Package mcmcdiag provides convergence diagnostics for MCMC sampling chains.
//
// For a scalar parameter sampled by one or more chains, mcmcdiag estimates the
// effective sample size (ESS) and the split potential scale reduction
// statistic (split R-hat), following the definitions used by Stan.
//
// # Features
//
//   - Autocovariance of a chain, by direct sum or FFT
//   - Effective sample size with Geyer's initial positive and initial
//     monotone sequences, for chains of different lengths
//   - Simplified effective sample size for rectangular draws
//   - Split R-hat with its between/within variance components
//   - Per-parameter summaries of whole simulation records, in parallel
//
// # Quick Start
//
// Diagnose one parameter from the saved draws of each chain:
//
//	meta := chains.Metadata{Saved: []int{2000, 2000}, Warmup: []int{1000, 1000}}
//	n, err := diagnostics.EffectiveSampleSize(draws, meta)
//	r, err := diagnostics.SplitRHat(draws, meta)
//
// Diagnose every parameter of a run:
//
//	summaries, err := diagnostics.Summarize(ctx, sim, diagnostics.DefaultConfig())
//
// # Packages
//
//   - stats: autocovariance and moments of plain float64 slices
//   - chains: chains, chain sets, simulation records and sentinel errors
//   - ess: effective sample size
//   - rhat: split R-hat
//   - diagnostics: entry points and batch summaries
//
// # References
//
//   - Gelman, A. et al. (2013). Bayesian Data Analysis, 3rd ed.
//   - Geyer, C. J. (1992). Practical Markov Chain Monte Carlo. Statistical Science.
//   - Stan Reference Manual, "Effective Sample Size" and "Potential Scale Reduction".
package mcmcdiag
