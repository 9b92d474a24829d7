package chains

import "errors"

// Sentinel errors shared by the diagnostics packages. Callers match them with
// errors.Is; returned errors usually wrap one of these with extra context.
var (
	// ErrNoChains is returned when a diagnostic is requested for zero chains.
	ErrNoChains = errors.New("chains: no chains")

	// ErrInvalidChainIndex indicates a chain index outside [0, Chains).
	ErrInvalidChainIndex = errors.New("chains: chain index out of range")

	// ErrInvalidParameterIndex indicates a parameter index outside [0, Params).
	ErrInvalidParameterIndex = errors.New("chains: parameter index out of range")

	// ErrInconsistentChainLengths indicates that per-chain metadata disagrees
	// with the draws actually supplied.
	ErrInconsistentChainLengths = errors.New("chains: inconsistent chain lengths")

	// ErrInvalidSimulation indicates a malformed simulation record.
	ErrInvalidSimulation = errors.New("chains: invalid simulation record")

	// ErrDegenerateVariance indicates that a variance needed by a diagnostic
	// is zero or cannot be computed (constant chains, too few draws).
	ErrDegenerateVariance = errors.New("chains: degenerate variance")
)
