package ga

// mutate applies per-gene mutation with probability p, and for
// variable-length layouts a secondary grow/shrink roll with the same
// probability. It mutates c in place.
func mutate(l *Layout, c *Chromosome, p float64, rng *sampler) {
	for i := 0; i < c.Len(); i++ {
		if !rng.FlipCoin(p) {
			continue
		}
		mutateGene(l, c, i, rng)
	}

	if l.VariableLevel >= 1 && rng.FlipCoin(p) {
		mutateLength(l, c, rng)
	}
}

func mutateGene(l *Layout, c *Chromosome, i int, rng *sampler) {
	logical := c.HolePrefix() + i
	switch l.Kind {
	case BitVector:
		g := c.Gene(logical)
		c.SetGene(logical, GeneValue{Defined: true, Bit: !g.Bit})
	case ListVector:
		pos := l.PositionAt(i)
		g := c.Gene(logical)
		if len(pos.Alphabet) < 2 {
			return
		}
		nv := rng.Intn(len(pos.Alphabet))
		for nv == g.Index {
			nv = rng.Intn(len(pos.Alphabet))
		}
		c.SetGene(logical, GeneValue{Defined: true, Index: nv})
	case RangeVector:
		pos := l.PositionAt(i)
		v := pos.Lo + rng.Intn(pos.Hi-pos.Lo+1)
		c.SetGene(logical, GeneValue{Defined: true, Int: v})
	case Combination:
		j := rng.Intn(c.Len())
		for j == i {
			j = rng.Intn(c.Len())
		}
		gi, gj := c.Gene(i), c.Gene(j)
		c.SetGene(i, gj)
		c.SetGene(j, gi)
	}
}

// mutateLength grows or shrinks the chromosome by one gene. Level 1 only
// grows/shrinks the right edge; level 2 may touch either edge, with a
// shrink from the left extending the hole prefix.
func mutateLength(l *Layout, c *Chromosome, rng *sampler) {
	grow := rng.FlipCoin(0.5)

	if grow {
		if c.HolePrefix()+c.Len() >= l.MaxLength {
			return
		}
		growRight(l, c, rng)
		return
	}

	if c.Len() <= 1 {
		return
	}
	if l.VariableLevel == 2 && rng.FlipCoin(0.5) {
		c.holePrefix++
		c.length--
		return
	}
	c.length--
}

func growRight(l *Layout, c *Chromosome, rng *sampler) {
	i := c.Len()
	switch l.Kind {
	case BitVector:
		c.length++
		c.SetGene(c.HolePrefix()+i, GeneValue{Defined: true, Bit: rng.FlipCoin(0.5)})
	case ListVector:
		pos := l.PositionAt(i)
		c.length++
		c.SetGene(c.HolePrefix()+i, GeneValue{Defined: true, Index: rng.Intn(len(pos.Alphabet))})
	case RangeVector:
		pos := l.PositionAt(i)
		c.length++
		c.SetGene(c.HolePrefix()+i, GeneValue{Defined: true, Int: pos.Lo + rng.Intn(pos.Hi-pos.Lo+1)})
	}
	// Combination never grows: its length is fixed to the global alphabet
	// size by construction (NewLayout rejects VariableLevel != 0 for it).
}
