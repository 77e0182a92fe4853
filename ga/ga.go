// Package ga implements a general-purpose genetic algorithm engine: a
// configurable pipeline over four chromosome representations (bitvector,
// listvector, rangevector, combination), a menu of selection and crossover
// strategies, optional parallel fitness evaluation, and fitness caching
// across generations.
//
// Basic usage:
//
//	layout, _ := ga.NewLayout(ga.Layout{Kind: ga.BitVector, Length: 32})
//	engine := ga.New(layout,
//	    ga.WithPopulationSize(1000),
//	    ga.WithFitness(popcount),
//	    ga.WithMutationRate(0.01),
//	    ga.WithCrossoverRate(0.9),
//	)
//	if err := engine.Init(); err != nil { ... }
//	if err := engine.Evolve(context.Background(), 200); err != nil { ... }
//	best, _ := engine.GetFittest(1, false)
package ga

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// TerminateFunc reports whether evolution should stop, checked once per
// generation.
type TerminateFunc func(e *Engine) bool

// Config holds every recognized construction option.
type Config struct {
	Population        int
	Crossover         float64
	Mutation          float64
	Parents           int
	Preserve          int
	Selection         SelectionConfig
	CrossoverStrategy CrossoverConfig
	Cache             bool
	History           bool
	Threads           int
	Strict            bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithPopulationSize sets N, the constant population size across
// generations. Required, N >= 2.
func WithPopulationSize(n int) Option { return func(e *Engine) { e.cfg.Population = n } }

// WithFitness sets the required user fitness callback.
func WithFitness(fn FitnessFunc) Option { return func(e *Engine) { e.fitnessFn = fn } }

// WithTerminate sets the optional early-stop callback.
func WithTerminate(fn TerminateFunc) Option { return func(e *Engine) { e.terminateFn = fn } }

// WithCrossoverRate sets the probability that crossover (rather than a
// parent-0 copy) produces each offspring.
func WithCrossoverRate(p float64) Option { return func(e *Engine) { e.cfg.Crossover = p } }

// WithMutationRate sets the per-gene mutation probability.
func WithMutationRate(p float64) Option { return func(e *Engine) { e.cfg.Mutation = p } }

// WithParents sets P, the number of parent indices Selection produces per
// breeding call. Default 2.
func WithParents(p int) Option { return func(e *Engine) { e.cfg.Parents = p } }

// WithSelection sets the selection scheme and its parameters.
func WithSelection(cfg SelectionConfig) Option { return func(e *Engine) { e.cfg.Selection = cfg } }

// WithCrossoverStrategy sets the crossover strategy and its parameters.
func WithCrossoverStrategy(cfg CrossoverConfig) Option {
	return func(e *Engine) { e.cfg.CrossoverStrategy = cfg }
}

// WithCache enables process-wide fitness memoisation keyed by chromosome
// fingerprint.
func WithCache(on bool) Option { return func(e *Engine) { e.cfg.Cache = on } }

// WithHistory enables per-generation (min, mean, max) logging.
func WithHistory(on bool) Option { return func(e *Engine) { e.cfg.History = on } }

// WithPreserve sets k, the number of top chromosomes copied verbatim into
// the next generation (elitism). 0 <= k <= N.
func WithPreserve(k int) Option { return func(e *Engine) { e.cfg.Preserve = k } }

// WithThreads sets the fitness-evaluation worker count. Default 1.
func WithThreads(t int) Option { return func(e *Engine) { e.cfg.Threads = t } }

// WithStrict enables fingerprint-before/after mutation detection around the
// fitness callback.
func WithStrict(on bool) Option { return func(e *Engine) { e.cfg.Strict = on } }

// WithSeed pins the RNG seed for reproducible runs. Default: current time.
func WithSeed(seed int64) Option { return func(e *Engine) { e.seed = seed; e.seedSet = true } }

// WithLogger overrides the engine's structured logger (default: a
// warn-level logrus.Logger).
func WithLogger(l logrus.FieldLogger) Option { return func(e *Engine) { e.log = l } }

// WithChartRenderer wires an external history-chart renderer that Chart
// delegates to.
func WithChartRenderer(r ChartRenderer) Option { return func(e *Engine) { e.chart = r } }

// Engine is the evolution driver: it orchestrates generations (selection,
// crossover, mutation, fitness evaluation, preservation, history, and
// termination) over a Population Store it owns.
type Engine struct {
	cfg    Config
	layout *Layout

	fitnessFn   FitnessFunc
	terminateFn TerminateFunc
	log         logrus.FieldLogger
	chart       ChartRenderer

	seed    int64
	seedSet bool
	rng     *sampler

	pop         *population
	evaluator   *fitnessEvaluator
	generation  int
	history     *history
	initialized bool
}

// New constructs an Engine for the given layout. Required options are
// WithPopulationSize and WithFitness; Init validates the full configuration
// and must be called before Evolve.
func New(layout *Layout, opts ...Option) *Engine {
	e := &Engine{
		layout: layout,
		cfg: Config{
			Crossover: 0.8,
			Mutation:  0.01,
			Parents:   2,
			Threads:   1,
		},
		log:     defaultLogger(),
		history: &history{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.seedSet {
		e.seed = time.Now().UnixNano()
	}
	e.rng = newSampler(e.seed)
	return e
}

// Validate checks the configuration for the conditions that make it
// invalid.
func (e *Engine) Validate() error {
	if e.cfg.Population < 2 {
		return fmt.Errorf("%w: population must be >= 2, got %d", ErrInvalidConfig, e.cfg.Population)
	}
	if e.fitnessFn == nil {
		return fmt.Errorf("%w: fitness callback is required", ErrInvalidConfig)
	}
	if e.cfg.Parents < 2 {
		return fmt.Errorf("%w: parents must be >= 2, got %d", ErrInvalidConfig, e.cfg.Parents)
	}
	if e.cfg.Preserve < 0 || e.cfg.Preserve > e.cfg.Population {
		return fmt.Errorf("%w: preserve must be within [0, population], got %d", ErrInvalidConfig, e.cfg.Preserve)
	}
	if e.cfg.Crossover < 0 || e.cfg.Crossover > 1 {
		return fmt.Errorf("%w: crossover rate must be within [0,1], got %g", ErrInvalidConfig, e.cfg.Crossover)
	}
	if e.cfg.Mutation < 0 || e.cfg.Mutation > 1 {
		return fmt.Errorf("%w: mutation rate must be within [0,1], got %g", ErrInvalidConfig, e.cfg.Mutation)
	}
	if e.cfg.Threads < 1 {
		return fmt.Errorf("%w: threads must be >= 1, got %d", ErrInvalidConfig, e.cfg.Threads)
	}
	if e.cfg.Selection.Scheme < RouletteBasic || e.cfg.Selection.Scheme > DistributionSelection {
		return fmt.Errorf("%w: unknown selection scheme %d", ErrInvalidConfig, e.cfg.Selection.Scheme)
	}
	if e.cfg.CrossoverStrategy.Strategy < PointsSimple || e.cfg.CrossoverStrategy.Strategy > OX {
		return fmt.Errorf("%w: unknown crossover strategy %d", ErrInvalidConfig, e.cfg.CrossoverStrategy.Strategy)
	}
	return nil
}

// Init validates the configuration and creates N random chromosomes
// respecting the layout's invariants.
func (e *Engine) Init() error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.history = &history{enabled: e.cfg.History}
	e.evaluator = newFitnessEvaluator(e.fitnessFn, e.cfg.Cache, e.cfg.Threads, e.cfg.Strict)
	e.pop = newPopulation(e.layout, e.cfg.Population)
	for i := 0; i < e.cfg.Population; i++ {
		e.pop.members[i] = e.randomChromosome()
	}
	e.generation = 0
	e.initialized = true
	return nil
}

// randomChromosome builds one chromosome satisfying the layout's
// invariants, used by Init's random fill.
func (e *Engine) randomChromosome() *Chromosome {
	switch e.layout.Kind {
	case BitVector:
		vals := make([]int, e.layout.Length)
		for i := range vals {
			if e.rng.FlipCoin(0.5) {
				vals[i] = 1
			}
		}
		c, _ := Encode(e.layout, vals)
		return c
	case ListVector:
		vals := make([]int, e.layout.Length)
		for i := range vals {
			vals[i] = e.rng.Intn(len(e.layout.Positions[i].Alphabet))
		}
		c, _ := Encode(e.layout, vals)
		return c
	case RangeVector:
		vals := make([]int, e.layout.Length)
		for i, p := range e.layout.Positions {
			vals[i] = p.Lo + e.rng.Intn(p.Hi-p.Lo+1)
		}
		c, _ := Encode(e.layout, vals)
		return c
	case Combination:
		vals := make([]int, e.layout.Length)
		for i := range vals {
			vals[i] = i
		}
		e.rng.IntShuffle(vals)
		c, _ := Encode(e.layout, vals)
		return c
	}
	return newChromosome(e.layout)
}

// Inject overwrites the population's prefix with user-supplied raw
// chromosome values.
func (e *Engine) Inject(raws [][]int) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	chroms := make([]*Chromosome, len(raws))
	for i, raw := range raws {
		c, err := Encode(e.layout, raw)
		if err != nil {
			return err
		}
		chroms[i] = c
	}
	return e.pop.inject(chroms)
}

// Evolve advances up to n generations (unlimited when n <= 0), stopping
// early if Terminate returns true.
func (e *Engine) Evolve(ctx context.Context, n int) error {
	if !e.initialized {
		return ErrNotInitialized
	}

	for i := 0; n <= 0 || i < n; i++ {
		if err := e.evaluator.evaluatePopulation(ctx, e, e.pop); err != nil {
			return err
		}

		if e.terminateFn != nil && e.terminateFn(e) {
			return nil
		}

		stats := computeStats(e.pop.fitness)
		if err := e.stepGeneration(); err != nil {
			return err
		}
		e.generation++

		if e.cfg.History {
			e.history.record(stats)
		}
	}
	return nil
}

// stepGeneration performs preservation and breeding, producing the next
// population and swapping it in.
func (e *Engine) stepGeneration() error {
	next := make([]*Chromosome, e.cfg.Population)
	preservedFitness := make([]float64, e.cfg.Population)
	preservedSet := make([]bool, e.cfg.Population)

	ranked := e.pop.rankedIndices()
	k := e.cfg.Preserve
	if k > len(ranked) {
		k = len(ranked)
	}
	for i := 0; i < k; i++ {
		src := ranked[i]
		next[i] = e.pop.at(src)
		preservedFitness[i] = e.pop.fitnessAt(src)
		preservedSet[i] = true
	}

	sel := newSelector(e.cfg.Selection, e.rng, e.log)
	xop := newCrossoverOp(e.cfg.CrossoverStrategy, e.layout)

	eval := func(c *Chromosome) (float64, error) {
		f, _, err := e.evaluator.evaluateOne(e, c)
		return f, err
	}

	for i := k; i < e.cfg.Population; i++ {
		parentsIdx := sel.Select(e.pop, e.cfg.Parents)
		parents := make([]*Chromosome, len(parentsIdx))
		parentFitness := make([]float64, len(parentsIdx))
		for j, idx := range parentsIdx {
			parents[j] = e.pop.at(idx)
			parentFitness[j] = e.pop.fitnessAt(idx)
		}

		var child *Chromosome
		if e.rng.FlipCoin(e.cfg.Crossover) {
			c, err := xop.Cross(parents, parentFitness, e.rng, eval)
			if err != nil {
				return fmt.Errorf("generation %d: %w", e.generation, err)
			}
			child = c
		} else {
			child = parents[0].Clone()
		}

		mutate(e.layout, child, e.cfg.Mutation, e.rng)
		next[i] = child
	}

	e.pop.bulkReplace(next)
	for i := 0; i < k; i++ {
		if preservedSet[i] {
			e.pop.fitness[i] = preservedFitness[i]
			e.pop.fitnessSet[i] = true
		}
	}
	return nil
}

// GetFittest returns the top-k chromosomes and their fitness, ranked
// descending. unique dedupes by fingerprint, skipping repeats.
func (e *Engine) GetFittest(k int, unique bool) ([]*Chromosome, []float64) {
	ranked := e.pop.rankedIndices()
	chroms := make([]*Chromosome, 0, k)
	fitness := make([]float64, 0, k)
	seen := make(map[[8]byte]bool)
	for _, idx := range ranked {
		if len(chroms) >= k {
			break
		}
		c := e.pop.at(idx)
		if unique {
			fp := c.Fingerprint()
			if seen[fp] {
				continue
			}
			seen[fp] = true
		}
		chroms = append(chroms, c)
		fitness = append(fitness, e.pop.fitnessAt(idx))
	}
	return chroms, fitness
}

// GetHistory returns [max[], mean[], min[]] over completed generations, or
// three empty slices when history is disabled.
func (e *Engine) GetHistory() [][]float64 { return e.history.Matrix() }

// Generation reports the number of completed generations.
func (e *Engine) Generation() int { return e.generation }

// Layout returns the engine's chromosome layout.
func (e *Engine) Layout() *Layout { return e.layout }

// Chart delegates history visualisation to the configured ChartRenderer.
// No renderer ships in this package; callers wire their own.
func (e *Engine) Chart() error {
	if e.chart == nil {
		return fmt.Errorf("ga: no ChartRenderer configured")
	}
	return e.chart.Render(e.GetHistory())
}
