package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/mcmcdiag/chains"
	"github.com/sartorproj/mcmcdiag/ess"
	"github.com/sartorproj/mcmcdiag/rhat"
)

// Config holds configuration for Summarize.
type Config struct {
	Workers       int          // Parameters processed concurrently (default: GOMAXPROCS)
	RHatThreshold float64      // Split R-hat below which a parameter counts as converged (default: 1.1)
	Logger        *slog.Logger // Logger for per-parameter progress (default: slog.Default())
}

// DefaultConfig returns the default summary configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:       runtime.GOMAXPROCS(0),
		RHatThreshold: 1.1,
		Logger:        slog.Default(),
	}
}

func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Workers <= 0 {
		out.Workers = d.Workers
	}
	if out.RHatThreshold <= 0 {
		out.RHatThreshold = d.RHatThreshold
	}
	if out.Logger == nil {
		out.Logger = d.Logger
	}
	return &out
}

// ParamError reports a diagnostic that could not be computed for one
// parameter.
type ParamError struct {
	Param int
	Name  string
	Stat  string // "ess" or "rhat"
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (param %d) %s: %v", e.Name, e.Param, e.Stat, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// ParamSummary holds the diagnostics of one parameter. A failed statistic
// leaves its value at zero and sets the matching error.
type ParamSummary struct {
	Param   int
	Name    string
	ESS     float64
	RHat    float64
	ESSErr  error
	RHatErr error

	threshold float64
}

// Err returns the combined error of both statistics, or nil.
func (s ParamSummary) Err() error {
	return errors.Join(s.ESSErr, s.RHatErr)
}

// Converged reports whether the split R-hat was computed and is below the
// configured threshold.
func (s ParamSummary) Converged() bool {
	return s.RHatErr == nil && s.RHat < s.threshold
}

// Summarize computes the effective sample size and split R-hat of every
// parameter of sim.
//
// Parameters are processed concurrently. A diagnostic that fails for one
// parameter is reported in that parameter's summary and does not affect the
// others; Summarize itself only fails when the record is invalid or ctx is
// done.
func Summarize(ctx context.Context, sim *chains.Simulation, cfg *Config) ([]ParamSummary, error) {
	if err := sim.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	start := time.Now()

	out := make([]ParamSummary, sim.Params)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for p := 0; p < sim.Params; p++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[p] = summarizeParam(sim, p, cfg)
			logSummary(cfg.Logger, out[p])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, s := range out {
		if s.Err() != nil {
			failed++
		}
	}
	cfg.Logger.Info("diagnostics summarized",
		"params", sim.Params,
		"chains", sim.Chains,
		"failed", failed,
		"duration", time.Since(start))

	return out, nil
}

func summarizeParam(sim *chains.Simulation, p int, cfg *Config) ParamSummary {
	s := ParamSummary{Param: p, Name: sim.ParamName(p), threshold: cfg.RHatThreshold}

	set, err := sim.ParamSet(p)
	if err != nil {
		s.ESSErr = &ParamError{Param: p, Name: s.Name, Stat: "ess", Err: err}
		s.RHatErr = &ParamError{Param: p, Name: s.Name, Stat: "rhat", Err: err}
		return s
	}

	if v, err := ess.Compute(set); err != nil {
		s.ESSErr = &ParamError{Param: p, Name: s.Name, Stat: "ess", Err: err}
	} else {
		s.ESS = v
	}

	if v, err := rhat.Compute(set); err != nil {
		s.RHatErr = &ParamError{Param: p, Name: s.Name, Stat: "rhat", Err: err}
	} else {
		s.RHat = v
	}
	return s
}

func logSummary(logger *slog.Logger, s ParamSummary) {
	if err := s.Err(); err != nil {
		logger.Warn("diagnostic failed",
			"param", s.Param,
			"name", s.Name,
			"error", err)
		return
	}
	logger.Debug("parameter summarized",
		"param", s.Param,
		"name", s.Name,
		"ess", s.ESS,
		"rhat", s.RHat)
}
