package ga

import "errors"

// Sentinel errors forming the engine's error taxonomy. Callers should use
// errors.Is against these values; concrete errors returned by the engine
// wrap one of them with additional context via fmt.Errorf's %w verb.
var (
	// ErrInvalidConfig marks a missing or inconsistent construction option,
	// e.g. preserve > population size, parents < 2, or an unknown strategy
	// name. Raised at construction or Init. Fatal.
	ErrInvalidConfig = errors.New("ga: invalid config")

	// ErrInvalidChromosome marks an Inject value that violates its type's
	// invariants. Fatal for that call only; the population is left
	// unchanged.
	ErrInvalidChromosome = errors.New("ga: invalid chromosome")

	// ErrFitness marks a failure inside the user fitness callback, or a
	// strict-mode fingerprint mismatch (chromosome mutated during fitness).
	// The current generation is aborted; already-written fitness entries
	// are retained.
	ErrFitness = errors.New("ga: fitness evaluation failed")

	// ErrChromosomeMutated is wrapped by ErrFitness when strict mode
	// detects that a fitness callback mutated its chromosome argument.
	ErrChromosomeMutated = errors.New("ga: chromosome mutated during fitness")

	// ErrNotInitialized marks an Evolve call made before Init.
	ErrNotInitialized = errors.New("ga: engine not initialized")
)
