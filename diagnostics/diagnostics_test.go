package diagnostics

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/mcmcdiag/chains"
	"github.com/sartorproj/mcmcdiag/ess"
	"github.com/sartorproj/mcmcdiag/rhat"
)

func TestEntryPoints(t *testing.T) {
	draws := [][]float64{
		{50, 1, 2, 3, 4, 5, 6, 7, 8},
		{-50, -50, 8, 6, 7, 5, 3, 4, 2, 1},
	}
	meta := chains.Metadata{Saved: []int{9, 10}, Warmup: []int{1, 2}}

	set, err := chains.NewSet(draws, meta)
	require.NoError(t, err)
	wantESS, err := ess.Compute(set)
	require.NoError(t, err)
	wantRHat, err := rhat.Compute(set)
	require.NoError(t, err)

	gotESS, err := EffectiveSampleSize(draws, meta)
	require.NoError(t, err)
	assert.Equal(t, wantESS, gotESS)

	gotRHat, err := SplitRHat(draws, meta)
	require.NoError(t, err)
	assert.Equal(t, wantRHat, gotRHat)
}

func TestEntryPointsInconsistentMetadata(t *testing.T) {
	draws := [][]float64{{1, 2, 3, 4}}
	meta := chains.Metadata{Saved: []int{5}, Warmup: []int{0}}

	_, err := EffectiveSampleSize(draws, meta)
	assert.ErrorIs(t, err, chains.ErrInconsistentChainLengths)

	_, err = SplitRHat(draws, meta)
	assert.ErrorIs(t, err, chains.ErrInconsistentChainLengths)
}

func TestMatrixEntryPoints(t *testing.T) {
	dense := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8})

	got, err := SplitRHatMatrix(dense)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5.55), got, 1e-12)

	got, err = EffectiveSampleSizeMatrix(dense)
	require.NoError(t, err)
	assert.InDelta(t, 1344.0/374.0, got, 1e-9)

	constant := mat.NewDense(4, 2, []float64{1, 1, 1, 1, 1, 1, 1, 1})
	_, err = SplitRHatMatrix(constant)
	assert.ErrorIs(t, err, chains.ErrDegenerateVariance)
	_, err = EffectiveSampleSizeMatrix(constant)
	assert.ErrorIs(t, err, chains.ErrDegenerateVariance)
}

func TestAutocovariance(t *testing.T) {
	acov := Autocovariance([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.Len(t, acov, 8)
	assert.InDelta(t, 5.25, acov[0], 1e-12)
}

// SimulationSuite exercises the simulation-record entry points.
type SimulationSuite struct {
	suite.Suite
	ctx  context.Context
	sim  *chains.Simulation
	logs *bytes.Buffer
	cfg  *Config
}

func TestSimulationSuite(t *testing.T) {
	suite.Run(t, new(SimulationSuite))
}

// SetupTest builds 4 chains of 1200 saved draws (200 warmup) for three
// parameters: a well-mixed normal, a constant and a drifting one.
func (s *SimulationSuite) SetupTest() {
	s.ctx = context.Background()

	const nChains, saved, warmup = 4, 1200, 200
	samples := make([][][]float64, nChains)
	for k := range samples {
		normal := distuv.Normal{Mu: 1, Sigma: 2, Src: rand.NewPCG(7, uint64(k))}
		mu := make([]float64, saved)
		constant := make([]float64, saved)
		drift := make([]float64, saved)
		for i := range mu {
			mu[i] = normal.Rand()
			constant[i] = 0.1
			drift[i] = float64(i) / 100
		}
		samples[k] = [][]float64{mu, constant, drift}
	}

	s.sim = &chains.Simulation{
		Chains:     nChains,
		Params:     3,
		ParamNames: []string{"mu", "constant", "drift"},
		Samples:    samples,
		Saved:      []int{saved, saved, saved, saved},
		Warmup:     []int{warmup, warmup, warmup, warmup},
	}

	s.logs = &bytes.Buffer{}
	s.cfg = DefaultConfig()
	s.cfg.Workers = 2
	s.cfg.Logger = slog.New(slog.NewTextHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (s *SimulationSuite) TestParamEffectiveSampleSize() {
	got, err := ParamEffectiveSampleSize(s.sim, 0)
	s.Require().NoError(err)
	s.InEpsilon(4000.0, got, 0.3)

	_, err = ParamEffectiveSampleSize(s.sim, 3)
	s.ErrorIs(err, chains.ErrInvalidParameterIndex)

	_, err = ParamEffectiveSampleSize(s.sim, 1)
	s.ErrorIs(err, chains.ErrDegenerateVariance)
}

func (s *SimulationSuite) TestParamSplitRHat() {
	got, err := ParamSplitRHat(s.sim, 0)
	s.Require().NoError(err)
	s.Less(got, 1.01)

	got, err = ParamSplitRHat(s.sim, 2)
	s.Require().NoError(err)
	s.Greater(got, 1.1)

	_, err = ParamSplitRHat(s.sim, -1)
	s.ErrorIs(err, chains.ErrInvalidParameterIndex)

	_, err = ParamSplitRHat(s.sim, 1)
	s.ErrorIs(err, chains.ErrDegenerateVariance)
}

func (s *SimulationSuite) TestInvalidSimulation() {
	s.sim.Samples = s.sim.Samples[:3]

	_, err := ParamEffectiveSampleSize(s.sim, 0)
	s.ErrorIs(err, chains.ErrInvalidSimulation)

	_, err = Summarize(s.ctx, s.sim, s.cfg)
	s.ErrorIs(err, chains.ErrInvalidSimulation)
}

func (s *SimulationSuite) TestSummarize() {
	out, err := Summarize(s.ctx, s.sim, s.cfg)
	s.Require().NoError(err)
	s.Require().Len(out, 3)

	mu := out[0]
	s.Equal("mu", mu.Name)
	s.NoError(mu.Err())
	s.True(mu.Converged())
	s.Greater(mu.ESS, 0.0)

	// a constant parameter fails on its own without affecting the others
	constant := out[1]
	s.Equal(1, constant.Param)
	s.ErrorIs(constant.ESSErr, chains.ErrDegenerateVariance)
	s.ErrorIs(constant.RHatErr, chains.ErrDegenerateVariance)
	s.False(constant.Converged())

	var perr *ParamError
	s.Require().True(errors.As(constant.RHatErr, &perr))
	s.Equal("constant", perr.Name)
	s.Equal("rhat", perr.Stat)

	drift := out[2]
	s.NoError(drift.Err())
	s.False(drift.Converged())

	s.Contains(s.logs.String(), "diagnostic failed")
	s.Contains(s.logs.String(), "diagnostics summarized")
}

func (s *SimulationSuite) TestSummarizeCanceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := Summarize(ctx, s.sim, s.cfg)
	s.ErrorIs(err, context.Canceled)
}

func (s *SimulationSuite) TestSummarizeNilConfig() {
	out, err := Summarize(s.ctx, s.sim, nil)
	s.Require().NoError(err)
	s.Len(out, 3)
}

func TestConfigDefaults(t *testing.T) {
	cfg := (&Config{Workers: -1}).withDefaults()
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, 1.1, cfg.RHatThreshold)
	assert.NotNil(t, cfg.Logger)

	var nilCfg *Config
	assert.NotNil(t, nilCfg.withDefaults())
}
