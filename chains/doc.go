// Package chains provides validated, read-only views of MCMC draws.
//
// A Chain holds the post-warmup draws of one parameter from one sampling run.
// A Set groups the chains of the same parameter; chains may have different
// lengths, and the diagnostics use the shortest one as the common sample
// count.
//
// # Building a Set
//
// From saved draws plus per-chain metadata:
//
//	meta := chains.Metadata{
//	    Saved:  []int{2000, 2000},
//	    Warmup: []int{1000, 1000},
//	}
//	set, err := chains.NewSet(draws, meta)
//
// From draws that already exclude warmup:
//
//	set, err := chains.NewKeptSet(kept)
//
// From an iterations x chains gonum matrix:
//
//	set, err := chains.FromMatrix(m)
//
// # Simulation Records
//
// A Simulation holds the draws of every parameter of every chain:
//
//	if err := sim.Validate(); err != nil {
//	    return err
//	}
//	set, err := sim.ParamSet(3)
//
// All failures wrap one of the package's sentinel errors and can be matched
// with errors.Is.
package chains
