package chains

import (
	"fmt"

	"github.com/sartorproj/mcmcdiag/stats"
)

// Simulation is the full output of a multi-chain sampling run.
//
// Samples[k][p] holds every saved draw of parameter p in chain k, warmup
// included. Saved[k] is the number of saved draws of chain k and Warmup[k]
// how many of those are warmup (thinning already accounted for).
type Simulation struct {
	Chains     int
	Params     int
	ParamNames []string
	Samples    [][][]float64
	Saved      []int
	Warmup     []int
}

// Validate checks that the record is internally consistent.
func (s *Simulation) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil simulation", ErrInvalidSimulation)
	}
	if s.Chains <= 0 {
		return fmt.Errorf("%w: %d chains", ErrInvalidSimulation, s.Chains)
	}
	if s.Params < 0 {
		return fmt.Errorf("%w: %d parameters", ErrInvalidSimulation, s.Params)
	}
	if len(s.Samples) != s.Chains {
		return fmt.Errorf("%w: %d chains specified but %d found in samples",
			ErrInvalidSimulation, s.Chains, len(s.Samples))
	}
	if s.ParamNames != nil && len(s.ParamNames) != s.Params {
		return fmt.Errorf("%w: %d parameter names for %d parameters",
			ErrInvalidSimulation, len(s.ParamNames), s.Params)
	}

	meta := Metadata{Saved: s.Saved, Warmup: s.Warmup}
	if err := meta.Validate(s.Chains); err != nil {
		return err
	}

	for k, chain := range s.Samples {
		if len(chain) != s.Params {
			return fmt.Errorf("%w: chain %d has %d parameters, expected %d",
				ErrInvalidSimulation, k, len(chain), s.Params)
		}
		for p, draws := range chain {
			if len(draws) != s.Saved[k] {
				return fmt.Errorf("%w: chain %d parameter %d has %d draws, expected %d",
					ErrInconsistentChainLengths, k, p, len(draws), s.Saved[k])
			}
		}
	}
	return nil
}

// Metadata returns the per-chain saved and warmup counts.
func (s *Simulation) Metadata() Metadata {
	return Metadata{Saved: s.Saved, Warmup: s.Warmup}
}

// ParamName returns the name of parameter p, or a positional name when the
// record carries none.
func (s *Simulation) ParamName(p int) string {
	if p >= 0 && p < len(s.ParamNames) {
		return s.ParamNames[p]
	}
	return fmt.Sprintf("param[%d]", p)
}

// ValidateChainIndex returns ErrInvalidChainIndex unless 0 <= k < Chains.
func (s *Simulation) ValidateChainIndex(k int) error {
	if k < 0 || k >= s.Chains {
		return fmt.Errorf("%w: num chains=%d; chain=%d", ErrInvalidChainIndex, s.Chains, k)
	}
	return nil
}

// ValidateParamIndex returns ErrInvalidParameterIndex unless 0 <= p < Params.
func (s *Simulation) ValidateParamIndex(p int) error {
	if p < 0 || p >= s.Params {
		return fmt.Errorf("%w: num params=%d; param=%d", ErrInvalidParameterIndex, s.Params, p)
	}
	return nil
}

// KeptSamples returns the post-warmup draws of parameter p in chain k.
// The returned slice is a copy. The record must have passed Validate.
func (s *Simulation) KeptSamples(k, p int) ([]float64, error) {
	if err := s.ValidateChainIndex(k); err != nil {
		return nil, err
	}
	if err := s.ValidateParamIndex(p); err != nil {
		return nil, err
	}
	c, err := NewWithWarmup(s.Samples[k][p], s.Warmup[k])
	if err != nil {
		return nil, err
	}
	return c.values, nil
}

// ChainMean returns the mean of the post-warmup draws of parameter p in
// chain k.
func (s *Simulation) ChainMean(k, p int) (float64, error) {
	kept, err := s.KeptSamples(k, p)
	if err != nil {
		return 0, err
	}
	return stats.Mean(kept), nil
}

// ParamSet extracts the chains of parameter p.
func (s *Simulation) ParamSet(p int) (*Set, error) {
	if err := s.ValidateParamIndex(p); err != nil {
		return nil, err
	}
	draws := make([][]float64, s.Chains)
	for k := range draws {
		draws[k] = s.Samples[k][p]
	}
	return NewSet(draws, s.Metadata())
}
