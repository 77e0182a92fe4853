package ga

import "sort"

// population holds the current generation's chromosomes and a parallel,
// nullable fitness column. It is mutated only on the driver goroutine.
type population struct {
	layout     *Layout
	members    []*Chromosome
	fitness    []float64
	fitnessSet []bool
}

func newPopulation(layout *Layout, n int) *population {
	return &population{
		layout:     layout,
		members:    make([]*Chromosome, n),
		fitness:    make([]float64, n),
		fitnessSet: make([]bool, n),
	}
}

func (p *population) size() int { return len(p.members) }

func (p *population) at(i int) *Chromosome { return p.members[i] }

// replaceAt overwrites the chromosome and clears its fitness; fitness is
// nullable per slot, cleared on replacement.
func (p *population) replaceAt(i int, c *Chromosome) {
	p.members[i] = c
	p.fitness[i] = 0
	p.fitnessSet[i] = false
}

// bulkReplace swaps in an entirely new generation's chromosomes, clearing
// fitness for every slot not explicitly carried over by the caller.
func (p *population) bulkReplace(members []*Chromosome) {
	p.members = members
	p.fitness = make([]float64, len(members))
	p.fitnessSet = make([]bool, len(members))
}

func (p *population) setFitness(i int, f float64) {
	p.fitness[i] = f
	p.fitnessSet[i] = true
}

func (p *population) hasFitness(i int) bool { return p.fitnessSet[i] }

func (p *population) fitnessAt(i int) float64 { return p.fitness[i] }

// rankedIndices returns population indices sorted by descending fitness,
// ties broken by ascending original index.
func (p *population) rankedIndices() []int {
	idx := make([]int, len(p.members))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		fa, fb := p.fitness[idx[a]], p.fitness[idx[b]]
		if fa == fb {
			return idx[a] < idx[b]
		}
		return fa > fb
	})
	return idx
}

// inject overwrites the population's prefix with user-supplied chromosomes,
// validating each against the layout's invariants.
func (p *population) inject(chroms []*Chromosome) error {
	for i, c := range chroms {
		if i >= len(p.members) {
			break
		}
		if err := validateChromosome(c.layout, c); err != nil {
			return err
		}
		p.replaceAt(i, c)
	}
	return nil
}
