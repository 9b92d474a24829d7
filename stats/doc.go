// Package stats provides the numeric building blocks of the chain diagnostics.
//
// The functions here operate on plain float64 slices and never modify their
// input.
//
// # Autocovariance
//
// Compute the autocovariance of a single chain for every lag:
//
//	acov := stats.Autocovariance(draws)
//	// acov[0] is the population (divide-by-N) variance
//
// Autocovariance uses the direct sum for short chains and an FFT for long
// ones. Both implementations are exported:
//
//	direct := stats.AutocovarianceDirect(draws)
//	fast := stats.AutocovarianceFFT(draws)
//
// The normalized form is available as well:
//
//	acf := stats.Autocorrelation(draws)
//
// # Moments
//
// The divide-by-N and divide-by-(N-1) conventions are kept explicit:
//
//	m := stats.Mean(draws)
//	s2 := stats.Variance(draws)            // N-1
//	p2 := stats.PopulationVariance(draws)  // N
//
// Split a chain into two equal halves (the last draw of an odd-length chain
// is dropped) and compute their moments:
//
//	first, second := stats.SplitMoments(draws)
package stats
