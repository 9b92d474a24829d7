package ess

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/mcmcdiag/chains"
)

// ar1Chains generates m independent AR(1) chains of length n.
// phi = 0 gives uncorrelated draws.
func ar1Chains(m, n int, phi float64, seed uint64) [][]float64 {
	out := make([][]float64, m)
	for k := range out {
		noise := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, uint64(k))}
		draws := make([]float64, n)
		draws[0] = noise.Rand()
		for i := 1; i < n; i++ {
			draws[i] = phi*draws[i-1] + noise.Rand()
		}
		out[k] = draws
	}
	return out
}

// constantChains returns m chains of n draws all equal to v.
func constantChains(m, n int, v float64) [][]float64 {
	out := make([][]float64, m)
	for k := range out {
		out[k] = make([]float64, n)
		for i := range out[k] {
			out[k][i] = v
		}
	}
	return out
}

func keptSet(t *testing.T, draws [][]float64) *chains.Set {
	t.Helper()
	set, err := chains.NewKeptSet(draws)
	require.NoError(t, err)
	return set
}

func TestComputeTrendingChain(t *testing.T) {
	set := keptSet(t, [][]float64{{1, 2, 3, 4, 5, 6, 7, 8}})

	// rho1 = 27/56; the (rho2, rho3) pair sums to a negative value and is
	// rejected, so ESS = 8 / (1 + 54/56).
	got, err := Compute(set)
	require.NoError(t, err)
	assert.InDelta(t, 448.0/110.0, got, 1e-9)
}

func TestComputeSimpleTrendingChain(t *testing.T) {
	set := keptSet(t, [][]float64{{1, 2, 3, 4, 5, 6, 7, 8}})

	// rho1 = 27/56 and rho2 = 11/84 are kept, rho3 is negative.
	got, err := ComputeSimple(set)
	require.NoError(t, err)
	assert.InDelta(t, 1344.0/374.0, got, 1e-9)
}

func TestComputeUncorrelated(t *testing.T) {
	const m, n = 4, 1000
	set := keptSet(t, ar1Chains(m, n, 0, 11))

	got, err := Compute(set)
	require.NoError(t, err)
	assert.InEpsilon(t, float64(m*n), got, 0.3)

	simple, err := ComputeSimple(set)
	require.NoError(t, err)
	assert.InEpsilon(t, float64(m*n), simple, 0.3)
}

func TestComputeAutocorrelated(t *testing.T) {
	const m, n = 4, 2000
	set := keptSet(t, ar1Chains(m, n, 0.9, 12))

	got, err := Compute(set)
	require.NoError(t, err)
	// AR(1) with phi=0.9 keeps roughly (1-phi)/(1+phi) ~ 5% of the draws
	assert.Less(t, got, 0.2*float64(m*n))
	assert.Greater(t, got, 0.0)
}

func TestComputeNegativeAutocorrelation(t *testing.T) {
	const m, n = 4, 1000
	set := keptSet(t, ar1Chains(m, n, -0.5, 13))

	got, err := Compute(set)
	require.NoError(t, err)
	assert.Greater(t, got, float64(m*n))

	// the simplified rule stops at the negative lag-1 estimate
	simple, err := ComputeSimple(set)
	require.NoError(t, err)
	assert.Equal(t, float64(m*n), simple)
}

func TestComputeLocationInvariance(t *testing.T) {
	draws := ar1Chains(3, 500, 0.5, 14)
	shifted := make([][]float64, len(draws))
	for k, d := range draws {
		shifted[k] = make([]float64, len(d))
		for i, v := range d {
			shifted[k][i] = v + 1000
		}
	}

	base, err := Compute(keptSet(t, draws))
	require.NoError(t, err)
	moved, err := Compute(keptSet(t, shifted))
	require.NoError(t, err)
	assert.InEpsilon(t, base, moved, 1e-6)

	base, err = ComputeSimple(keptSet(t, draws))
	require.NoError(t, err)
	moved, err = ComputeSimple(keptSet(t, shifted))
	require.NoError(t, err)
	assert.InEpsilon(t, base, moved, 1e-6)
}

func TestComputeJagged(t *testing.T) {
	draws := ar1Chains(3, 600, 0.3, 15)
	draws[1] = draws[1][:450]

	set := keptSet(t, draws)
	got, err := Compute(set)
	require.NoError(t, err)
	// the common sample count is the shortest chain
	assert.Less(t, got, 3*450.0*1.5)
	assert.Greater(t, got, 0.0)

	_, err = ComputeSimple(set)
	assert.ErrorIs(t, err, chains.ErrInconsistentChainLengths)
}

func TestComputeWarmupIsDiscarded(t *testing.T) {
	draws := [][]float64{{100, -100, 1, 2, 3, 4, 5, 6, 7, 8}}
	set, err := chains.NewSet(draws, chains.Metadata{Saved: []int{10}, Warmup: []int{2}})
	require.NoError(t, err)

	got, err := Compute(set)
	require.NoError(t, err)
	assert.InDelta(t, 448.0/110.0, got, 1e-9)
}

func TestComputeDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		draws [][]float64
	}{
		{"constant chains", [][]float64{{2, 2, 2, 2}, {2, 2, 2, 2}}},
		{"constant 0.1", constantChains(2, 100, 0.1)},
		{"constant 0.3", constantChains(2, 100, 0.3)},
		{"constant 1.1", constantChains(2, 100, 1.1)},
		{"constant 0.1 long", constantChains(2, 2000, 0.1)},
		{"constant chains at different values", [][]float64{{1, 1, 1, 1, 1, 1}, {2, 2, 2, 2, 2, 2}}},
		{"single draw", [][]float64{{1}, {2}}},
		{"empty chain", [][]float64{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := keptSet(t, tt.draws)

			_, err := Compute(set)
			assert.ErrorIs(t, err, chains.ErrDegenerateVariance)

			_, err = ComputeSimple(set)
			assert.ErrorIs(t, err, chains.ErrDegenerateVariance)
		})
	}

	_, err := Compute(nil)
	assert.ErrorIs(t, err, chains.ErrNoChains)
}

func TestComputeOneConstantChain(t *testing.T) {
	draws := ar1Chains(2, 200, 0, 21)
	draws = append(draws, constantChains(1, 200, 0.1)[0])

	got, err := Compute(keptSet(t, draws))
	require.NoError(t, err)
	assert.Positive(t, got)
}

func TestComputeAlternatingChainIsNegative(t *testing.T) {
	draws := make([]float64, 100)
	for i := range draws {
		draws[i] = 1
		if i%2 == 1 {
			draws[i] = -1
		}
	}

	got, err := Compute(keptSet(t, [][]float64{draws}))
	require.NoError(t, err)
	assert.Negative(t, got)
}

func TestInitialMonotone(t *testing.T) {
	rhoHat := []float64{0, 0.5, 0.2, 0.1, 0.3, 0.3, 0, 0}
	initialMonotone(rhoHat, 5)

	// pair (4,5) sums to 0.6 > 0.3 from pair (2,3), so both are clamped
	assert.InDelta(t, 0.15, rhoHat[4], 1e-12)
	assert.InDelta(t, 0.15, rhoHat[5], 1e-12)
	assert.Equal(t, 0.2, rhoHat[2])
	assert.Equal(t, 0.1, rhoHat[3])
}

func TestFromMatrix(t *testing.T) {
	const m, n = 2, 400
	draws := ar1Chains(m, n, 0.2, 16)
	dense := mat.NewDense(n, m, nil)
	for k, d := range draws {
		dense.SetCol(k, d)
	}

	got, err := FromMatrix(dense)
	require.NoError(t, err)

	want, err := ComputeSimple(keptSet(t, draws))
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}
