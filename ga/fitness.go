package ga

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FitnessFunc is the user callback: given the engine (for context-aware
// fitness, e.g. generation-dependent scoring) and a chromosome, it returns a
// score where higher is better. It must be side-effect free when threads > 1
// (documented contract, not enforced).
type FitnessFunc func(e *Engine, c *Chromosome) (float64, error)

// fitnessEvaluator invokes the user callback, memoising results via an
// optional process-wide cache keyed by Chromosome.Fingerprint, and
// optionally fanning out unevaluated chromosomes across a bounded worker
// pool.
//
// Parallel evaluation runs an errgroup.Group with SetLimit(threads) writing
// into a pre-sized, index-aligned results slice, so fitness[i] always
// corresponds to chromosome i regardless of completion order.
type fitnessEvaluator struct {
	fn       FitnessFunc
	cacheMu  sync.Mutex
	cache    map[[8]byte]float64
	useCache bool
	threads  int
	strict   bool
}

func newFitnessEvaluator(fn FitnessFunc, cache bool, threads int, strict bool) *fitnessEvaluator {
	fe := &fitnessEvaluator{fn: fn, useCache: cache, threads: threads, strict: strict}
	if cache {
		fe.cache = make(map[[8]byte]float64)
	}
	if fe.threads < 1 {
		fe.threads = 1
	}
	return fe
}

// evaluateOne runs the callback for a single chromosome, applying cache and
// strict-mode checks. It does not touch the engine's RNG.
func (fe *fitnessEvaluator) evaluateOne(e *Engine, c *Chromosome) (float64, bool, error) {
	var key [8]byte
	if fe.useCache {
		key = c.Fingerprint()
		fe.cacheMu.Lock()
		v, ok := fe.cache[key]
		fe.cacheMu.Unlock()
		if ok {
			return v, true, nil
		}
	}

	var before [8]byte
	if fe.strict {
		before = c.Fingerprint()
	}

	f, err := fe.fn(e, c)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrFitness, err)
	}

	if fe.strict {
		after := c.Fingerprint()
		if before != after {
			return 0, false, fmt.Errorf("%w: %w", ErrFitness, ErrChromosomeMutated)
		}
	}

	if fe.useCache {
		fe.cacheMu.Lock()
		fe.cache[key] = f
		fe.cacheMu.Unlock()
	}
	return f, false, nil
}

// evaluatePopulation fills in fitness for every slot of pop that does not
// already carry a value, running up to fe.threads evaluations concurrently.
// On first error the remaining in-flight work is cancelled and the error is
// returned; fitness entries already written are retained.
func (fe *fitnessEvaluator) evaluatePopulation(ctx context.Context, e *Engine, pop *population) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(fe.threads)

	for i := 0; i < pop.size(); i++ {
		if pop.hasFitness(i) {
			continue
		}
		idx := i
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			f, _, err := fe.evaluateOne(e, pop.at(idx))
			if err != nil {
				return err
			}
			pop.setFitness(idx, f)
			return nil
		})
	}

	return g.Wait()
}
