package chains

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Metadata describes the saved draws of each chain: Saved[k] is the number of
// draws stored for chain k (warmup included) and Warmup[k] how many of them
// are warmup.
type Metadata struct {
	Saved  []int
	Warmup []int
}

// Kept returns the number of post-warmup draws of chain k.
func (m Metadata) Kept(k int) int {
	return m.Saved[k] - m.Warmup[k]
}

// Validate checks the metadata against the number of chains it describes.
func (m Metadata) Validate(chains int) error {
	if len(m.Saved) != chains || len(m.Warmup) != chains {
		return fmt.Errorf("%w: metadata for %d/%d chains, got %d chains",
			ErrInconsistentChainLengths, len(m.Saved), len(m.Warmup), chains)
	}
	for k := 0; k < chains; k++ {
		if m.Warmup[k] < 0 || m.Warmup[k] > m.Saved[k] {
			return fmt.Errorf("%w: chain %d has warmup %d of %d saved draws",
				ErrInconsistentChainLengths, k, m.Warmup[k], m.Saved[k])
		}
	}
	return nil
}

// Set is the ordered collection of chains sampled for one parameter.
type Set struct {
	chains []*Chain
}

// NewSet builds a set from the saved draws of each chain. draws[k] holds every
// saved draw of chain k, warmup included, and must have exactly
// meta.Saved[k] values.
func NewSet(draws [][]float64, meta Metadata) (*Set, error) {
	if len(draws) == 0 {
		return nil, ErrNoChains
	}
	if err := meta.Validate(len(draws)); err != nil {
		return nil, err
	}

	set := &Set{chains: make([]*Chain, len(draws))}
	for k, d := range draws {
		if len(d) != meta.Saved[k] {
			return nil, fmt.Errorf("%w: chain %d has %d draws, metadata says %d",
				ErrInconsistentChainLengths, k, len(d), meta.Saved[k])
		}
		c, err := NewWithWarmup(d, meta.Warmup[k])
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", k, err)
		}
		set.chains[k] = c
	}
	return set, nil
}

// NewKeptSet builds a set from draws that already exclude warmup.
func NewKeptSet(kept [][]float64) (*Set, error) {
	if len(kept) == 0 {
		return nil, ErrNoChains
	}
	set := &Set{chains: make([]*Chain, len(kept))}
	for k, d := range kept {
		set.chains[k] = New(d)
	}
	return set, nil
}

// FromMatrix builds a set from an iterations x chains matrix of post-warmup
// draws: column j is chain j.
func FromMatrix(m mat.Matrix) (*Set, error) {
	if m == nil {
		return nil, ErrNoChains
	}
	_, cols := m.Dims()
	if cols == 0 {
		return nil, ErrNoChains
	}
	set := &Set{chains: make([]*Chain, cols)}
	for j := 0; j < cols; j++ {
		set.chains[j] = &Chain{values: mat.Col(nil, j, m)}
	}
	return set, nil
}

// Len returns the number of chains.
func (s *Set) Len() int {
	return len(s.chains)
}

// Chain returns chain k.
func (s *Set) Chain(k int) (*Chain, error) {
	if k < 0 || k >= len(s.chains) {
		return nil, fmt.Errorf("%w: chain=%d, chains=%d", ErrInvalidChainIndex, k, len(s.chains))
	}
	return s.chains[k], nil
}

// Chains returns the chains in order. The slice is a copy; the chains are
// shared and immutable.
func (s *Set) Chains() []*Chain {
	out := make([]*Chain, len(s.chains))
	copy(out, s.chains)
	return out
}

// MinLen returns the smallest number of kept draws across the chains, the
// common sample count used by the diagnostics.
func (s *Set) MinLen() int {
	if len(s.chains) == 0 {
		return 0
	}
	n := s.chains[0].Len()
	for _, c := range s.chains[1:] {
		n = min(n, c.Len())
	}
	return n
}

// IsRectangular reports whether every chain has the same number of draws.
func (s *Set) IsRectangular() bool {
	for _, c := range s.chains {
		if c.Len() != s.chains[0].Len() {
			return false
		}
	}
	return true
}
