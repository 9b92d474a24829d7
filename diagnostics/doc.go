// Package diagnostics is the entry point for MCMC convergence diagnostics.
//
// It accepts raw per-chain draws, gonum matrices or whole simulation records
// and dispatches to the ess and rhat packages.
//
// # Single Parameter
//
//	meta := chains.Metadata{Saved: saved, Warmup: warmup}
//	n, err := diagnostics.EffectiveSampleSize(draws, meta)
//	r, err := diagnostics.SplitRHat(draws, meta)
//
// For an iterations x chains matrix without warmup:
//
//	n, err := diagnostics.EffectiveSampleSizeMatrix(m)
//	r, err := diagnostics.SplitRHatMatrix(m)
//
// # Every Parameter
//
// Summarize runs both diagnostics for every parameter of a simulation record
// concurrently. A parameter whose diagnostics fail, for example because its
// draws are constant, carries the error in its own summary:
//
//	cfg := diagnostics.DefaultConfig()
//	cfg.Workers = 4
//	summaries, err := diagnostics.Summarize(ctx, sim, cfg)
//	for _, s := range summaries {
//	    if s.Err() != nil {
//	        continue
//	    }
//	    fmt.Printf("%s ess=%.0f rhat=%.3f converged=%v\n",
//	        s.Name, s.ESS, s.RHat, s.Converged())
//	}
package diagnostics
