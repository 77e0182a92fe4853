package ga

import (
	"encoding/gob"
	"fmt"
	"os"
)

// snapshot is the gob-encodable structural dump of an Engine's state. The
// on-disk format is opaque but stable within a major version.
type snapshot struct {
	Layout        Layout
	Config        Config
	Seed          int64
	Generation    int
	Members       []chromosomeSnapshot
	Fitness       []float64
	FitnessSet    []bool
	HistoryLog    []GenerationStats
	HistoryOn     bool
}

type chromosomeSnapshot struct {
	Length     int
	HolePrefix int
	Values     []int // defined genes only, encoded as in AsValue(); holes are restored from HolePrefix
}

func toChromosomeSnapshot(c *Chromosome) chromosomeSnapshot {
	arr := c.AsArrayDefOnly()
	vals := make([]int, len(arr))
	for i, g := range arr {
		switch c.layout.Kind {
		case BitVector:
			if g.Bit {
				vals[i] = 1
			}
		case RangeVector:
			vals[i] = g.Int
		case ListVector, Combination:
			vals[i] = g.Index
		}
	}
	return chromosomeSnapshot{Length: c.length, HolePrefix: c.holePrefix, Values: vals}
}

func fromChromosomeSnapshot(l *Layout, s chromosomeSnapshot) *Chromosome {
	c := newChromosome(l)
	c.length = s.Length
	c.holePrefix = s.HolePrefix
	for i, v := range s.Values {
		var gv GeneValue
		switch l.Kind {
		case BitVector:
			gv = GeneValue{Defined: true, Bit: v != 0}
		case RangeVector:
			gv = GeneValue{Defined: true, Int: v}
		default:
			gv = GeneValue{Defined: true, Index: v}
		}
		c.SetGene(s.HolePrefix+i, gv)
	}
	return c
}

// Save dumps the engine's current state to path. I/O failures surface
// verbatim.
func (e *Engine) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	snap := snapshot{
		Layout:     *e.layout,
		Config:     e.cfg,
		Seed:       e.seed,
		Generation: e.generation,
		HistoryOn:  e.history.enabled,
		HistoryLog: e.history.log,
	}
	if e.pop != nil {
		snap.Members = make([]chromosomeSnapshot, e.pop.size())
		for i := 0; i < e.pop.size(); i++ {
			snap.Members[i] = toChromosomeSnapshot(e.pop.at(i))
		}
		snap.Fitness = append([]float64(nil), e.pop.fitness...)
		snap.FitnessSet = append([]bool(nil), e.pop.fitnessSet...)
	}

	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		return fmt.Errorf("ga: save: %w", err)
	}
	return nil
}

// Load replaces the engine's state with the dump at path. The fitness and
// terminate callbacks from the original construction are preserved, since
// functions cannot be serialized; callers must still supply WithFitness
// (and WithTerminate, if used) when constructing the Engine that Load is
// called on.
func (e *Engine) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return fmt.Errorf("ga: load: %w", err)
	}

	// Only exported fields survive the gob round-trip; rebuild the
	// unexported bit-packing geometry from them.
	layout, err := NewLayout(Layout{
		Kind:          snap.Layout.Kind,
		Length:        snap.Layout.Length,
		Positions:     snap.Layout.Positions,
		Alphabet:      snap.Layout.Alphabet,
		VariableLevel: snap.Layout.VariableLevel,
		MaxLength:     snap.Layout.MaxLength,
	})
	if err != nil {
		return fmt.Errorf("ga: load: rebuilding layout: %w", err)
	}
	e.layout = layout
	e.cfg.Population = snap.Config.Population
	e.cfg.Crossover = snap.Config.Crossover
	e.cfg.Mutation = snap.Config.Mutation
	e.cfg.Parents = snap.Config.Parents
	e.cfg.Preserve = snap.Config.Preserve
	e.cfg.Selection = snap.Config.Selection
	e.cfg.CrossoverStrategy = snap.Config.CrossoverStrategy
	e.cfg.Cache = snap.Config.Cache
	e.cfg.History = snap.Config.History
	e.cfg.Threads = snap.Config.Threads
	e.cfg.Strict = snap.Config.Strict
	e.seed = snap.Seed
	e.rng = newSampler(snap.Seed)
	e.generation = snap.Generation
	e.history = &history{enabled: snap.HistoryOn, log: append([]GenerationStats(nil), snap.HistoryLog...)}

	pop := newPopulation(e.layout, len(snap.Members))
	for i, ms := range snap.Members {
		pop.members[i] = fromChromosomeSnapshot(e.layout, ms)
	}
	if len(snap.Fitness) == len(pop.members) {
		pop.fitness = append([]float64(nil), snap.Fitness...)
		pop.fitnessSet = append([]bool(nil), snap.FitnessSet...)
	}
	e.pop = pop
	e.evaluator = newFitnessEvaluator(e.fitnessFn, e.cfg.Cache, e.cfg.Threads, e.cfg.Strict)
	e.initialized = true
	return nil
}
