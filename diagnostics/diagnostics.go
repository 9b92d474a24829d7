package diagnostics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/mcmcdiag/chains"
	"github.com/sartorproj/mcmcdiag/ess"
	"github.com/sartorproj/mcmcdiag/rhat"
	"github.com/sartorproj/mcmcdiag/stats"
)

// EffectiveSampleSize returns the effective sample size of one parameter.
// draws[k] holds every saved draw of chain k and meta gives the saved and
// warmup counts per chain. Chains may have different kept lengths.
func EffectiveSampleSize(draws [][]float64, meta chains.Metadata) (float64, error) {
	set, err := chains.NewSet(draws, meta)
	if err != nil {
		return 0, err
	}
	return ess.Compute(set)
}

// EffectiveSampleSizeMatrix returns the simplified effective sample size of
// an iterations x chains matrix of post-warmup draws.
func EffectiveSampleSizeMatrix(m mat.Matrix) (float64, error) {
	return ess.FromMatrix(m)
}

// SplitRHat returns the split R-hat of one parameter. Arguments are as for
// EffectiveSampleSize.
func SplitRHat(draws [][]float64, meta chains.Metadata) (float64, error) {
	set, err := chains.NewSet(draws, meta)
	if err != nil {
		return 0, err
	}
	return rhat.Compute(set)
}

// SplitRHatMatrix returns the split R-hat of an iterations x chains matrix of
// post-warmup draws.
func SplitRHatMatrix(m mat.Matrix) (float64, error) {
	return rhat.FromMatrix(m)
}

// Autocovariance returns the autocovariance of samples for lags 0 to
// len(samples)-1.
func Autocovariance(samples []float64) []float64 {
	return stats.Autocovariance(samples)
}

// ParamEffectiveSampleSize returns the effective sample size of parameter p
// of a simulation record.
//
// Deprecated: extract the draws and use EffectiveSampleSize, or Summarize for
// every parameter at once.
func ParamEffectiveSampleSize(sim *chains.Simulation, p int) (float64, error) {
	set, err := paramSet(sim, p)
	if err != nil {
		return 0, err
	}
	return ess.Compute(set)
}

// ParamSplitRHat returns the split R-hat of parameter p of a simulation
// record.
//
// Deprecated: extract the draws and use SplitRHat, or Summarize for every
// parameter at once.
func ParamSplitRHat(sim *chains.Simulation, p int) (float64, error) {
	set, err := paramSet(sim, p)
	if err != nil {
		return 0, err
	}
	return rhat.Compute(set)
}

func paramSet(sim *chains.Simulation, p int) (*chains.Set, error) {
	if err := sim.Validate(); err != nil {
		return nil, err
	}
	return sim.ParamSet(p)
}
