package ga

// CrossoverStrategy tags the closed set of recombination operators the
// engine supports.
type CrossoverStrategy int

const (
	PointsSimple CrossoverStrategy = iota
	PointsBasic
	Points
	PointsAdvanced
	DistributionCrossover
	PMX
	OX
)

// CrossoverConfig carries a strategy, its point count, and (for
// DistributionCrossover) the sampling distribution.
type CrossoverConfig struct {
	Strategy     CrossoverStrategy
	N            int // cut-point count for Points* strategies
	Distribution Distribution
	DistParams   DistParams
}

// evalFunc scores a candidate chromosome, going through the same fitness
// evaluator (and cache) the driver uses elsewhere, so ranking candidates
// during crossover never bypasses the cache-effectiveness invariant.
type evalFunc func(*Chromosome) (float64, error)

type crossoverOp struct {
	cfg    CrossoverConfig
	layout *Layout
}

func newCrossoverOp(cfg CrossoverConfig, layout *Layout) *crossoverOp {
	return &crossoverOp{cfg: cfg, layout: layout}
}

// Cross produces one child from the parent tuple, per the configured
// strategy. parents and parentFitness are aligned by index; eval is used by
// strategies that must rank candidate children against their parents.
func (x *crossoverOp) Cross(parents []*Chromosome, parentFitness []float64, rng *sampler, eval evalFunc) (*Chromosome, error) {
	if len(parents) < 2 {
		return parents[0].Clone(), nil
	}
	p0, p1 := parents[0], parents[1]

	switch x.cfg.Strategy {
	case PointsSimple:
		return x.pointsSimple(p0, p1, parentFitness[0], parentFitness[1], rng, eval)
	case PointsBasic:
		a, b := x.pointSplit(p0, p1, x.cutPoints(p0, p1, x.cfg.N, rng))
		if rng.FlipCoin(0.5) {
			return a, nil
		}
		return b, nil
	case Points:
		a, b := x.pointSplit(p0, p1, x.cutPoints(p0, p1, x.cfg.N, rng))
		return fitterOf(a, b, eval)
	case PointsAdvanced:
		a, b := x.pointSplit(p0, p1, x.cutPoints(p0, p1, x.cfg.N, rng))
		return bestOfRanked([]*Chromosome{p0, p1, a, b}, []float64{parentFitness[0], parentFitness[1], 0, 0}, eval)
	case DistributionCrossover:
		n := distributionPointCount(x.cfg.Distribution)
		cuts := x.cutPointsFromDist(p0, p1, n, rng)
		a, b := x.pointSplit(p0, p1, cuts)
		return fitterOf(a, b, eval)
	case PMX:
		return x.pmx(p0, p1, rng), nil
	case OX:
		return x.ox(p0, p1, rng), nil
	default:
		return p0.Clone(), nil
	}
}

func distributionPointCount(d Distribution) int {
	switch d {
	case Binomial, Poisson:
		return 2
	default:
		return 1
	}
}

func fitterOf(a, b *Chromosome, eval evalFunc) (*Chromosome, error) {
	fa, err := eval(a)
	if err != nil {
		return nil, err
	}
	fb, err := eval(b)
	if err != nil {
		return nil, err
	}
	if fb > fa {
		return b, nil
	}
	return a, nil
}

// bestOfRanked returns the fittest of candidates. The first two entries are
// the parents, whose fitness is taken from known; every later candidate is
// scored through eval. Ties keep the first found. A winning parent is
// returned as a clone, so the result never aliases a population member.
func bestOfRanked(candidates []*Chromosome, known []float64, eval evalFunc) (*Chromosome, error) {
	scores := make([]float64, len(candidates))
	copy(scores, known)
	for i, c := range candidates {
		if i >= 2 { // parents' fitness is already known; children must be scored.
			f, err := eval(c)
			if err != nil {
				return nil, err
			}
			scores[i] = f
		}
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if best < 2 {
		return candidates[best].Clone(), nil
	}
	return candidates[best], nil
}

// effLen returns the shorter parent's effective (defined) length, so cut
// points for variable-length chromosomes are drawn against the common
// range.
func effLen(a, b *Chromosome) int {
	if a.Len() < b.Len() {
		return a.Len()
	}
	return b.Len()
}

// cutPoints draws n distinct cut points in [1, L-1], clamped to L-1 when n
// is too large.
func (x *crossoverOp) cutPoints(a, b *Chromosome, n int, rng *sampler) []int {
	L := effLen(a, b)
	if L < 2 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > L-1 {
		n = L - 1
	}
	pts := rng.IntGetUniqueN(1, L, n)
	return sortedInts(pts)
}

func (x *crossoverOp) cutPointsFromDist(a, b *Chromosome, n int, rng *sampler) []int {
	L := effLen(a, b)
	if L < 2 {
		return nil
	}
	if n > L-1 {
		n = L - 1
	}
	seen := map[int]bool{}
	pts := make([]int, 0, n)
	for len(pts) < n {
		v := rng.DrawInt(x.cfg.Distribution, x.cfg.DistParams, L, 1, L)
		if !seen[v] {
			seen[v] = true
			pts = append(pts, v)
		}
		if len(seen) >= L-1 {
			break
		}
	}
	return sortedInts(pts)
}

func sortedInts(xs []int) []int {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
	return xs
}

// pointSplit builds the two split-and-swap children for a set of cut
// points, alternating which parent contributes each segment. Trailing
// genes beyond the shorter parent's length extend child a (level-1
// variable length); child b is truncated to the shorter length in that
// case, since it inherits the longer parent's tail only via a itself.
func (x *crossoverOp) pointSplit(p0, p1 *Chromosome, cuts []int) (a, b *Chromosome) {
	L := effLen(p0, p1)
	longer := p0
	if p1.Len() > p0.Len() {
		longer = p1
	}

	aVals := make([]int, 0, longer.Len())
	bVals := make([]int, 0, longer.Len())
	swap := false
	start := 0
	ends := append(append([]int{}, cuts...), L)
	rawAt := func(c *Chromosome, i int) int { return rawValue(c, i) }

	for _, end := range ends {
		for i := start; i < end; i++ {
			if swap {
				aVals = append(aVals, rawAt(p1, i))
				bVals = append(bVals, rawAt(p0, i))
			} else {
				aVals = append(aVals, rawAt(p0, i))
				bVals = append(bVals, rawAt(p1, i))
			}
		}
		start = end
		swap = !swap
	}

	// Level-1 variable length: the longer parent's tail beyond L extends
	// child a only (the parent whose segment was active last continues).
	if longer.Len() > L && x.layout.VariableLevel >= 1 {
		for i := L; i < longer.Len(); i++ {
			aVals = append(aVals, rawAt(longer, i))
		}
	}

	a = buildChild(x.layout, aVals, p0.HolePrefix())
	b = buildChild(x.layout, bVals, p1.HolePrefix())
	return a, b
}

func rawValue(c *Chromosome, i int) int {
	g := c.Gene(c.HolePrefix() + i)
	switch c.layout.Kind {
	case BitVector:
		if g.Bit {
			return 1
		}
		return 0
	case RangeVector:
		return g.Int
	default:
		return g.Index
	}
}

func buildChild(l *Layout, vals []int, holePrefix int) *Chromosome {
	c := newChromosome(l)
	c.length = len(vals)
	c.holePrefix = holePrefix
	for i, v := range vals {
		var gv GeneValue
		switch l.Kind {
		case BitVector:
			gv = GeneValue{Defined: true, Bit: v != 0}
		case RangeVector:
			gv = GeneValue{Defined: true, Int: v}
		default:
			gv = GeneValue{Defined: true, Index: v}
		}
		c.SetGene(i, gv)
	}
	return c
}

// pointsSimple enumerates the 2^(n+1) contiguous-segment parent-assignments
// for n cut points, skipping the two that copy a single parent whole, and
// returns the fittest of the two parents and those children: the fitter
// parent (as a clone) is kept unless some child is strictly fitter.
func (x *crossoverOp) pointsSimple(p0, p1 *Chromosome, f0, f1 float64, rng *sampler, eval evalFunc) (*Chromosome, error) {
	cuts := x.cutPoints(p0, p1, x.cfg.N, rng)
	segments := len(cuts) + 1

	best := p0
	bestFitness := f0
	if f1 > bestFitness {
		best = p1
		bestFitness = f1
	}

	total := 1 << uint(segments)
	for pattern := 1; pattern < total-1; pattern++ { // skip all-0 / all-1 (no recombination)
		child := x.assignSegments(p0, p1, cuts, pattern)
		f, err := eval(child)
		if err != nil {
			return nil, err
		}
		if f > bestFitness {
			best, bestFitness = child, f
		}
	}
	if best == p0 || best == p1 {
		return best.Clone(), nil
	}
	return best, nil
}

// assignSegments builds one child by choosing, for each of len(cuts)+1
// contiguous segments, whether it comes from p0 (bit 0) or p1 (bit 1) of
// pattern.
func (x *crossoverOp) assignSegments(p0, p1 *Chromosome, cuts []int, pattern int) *Chromosome {
	L := effLen(p0, p1)
	ends := append(append([]int{}, cuts...), L)
	vals := make([]int, 0, L)
	start := 0
	for seg, end := range ends {
		from := p0
		if pattern&(1<<uint(seg)) != 0 {
			from = p1
		}
		for i := start; i < end; i++ {
			vals = append(vals, rawValue(from, i))
		}
		start = end
	}
	return buildChild(x.layout, vals, p0.HolePrefix())
}

// pmx implements Partially Mapped Crossover for combination chromosomes:
// copy parent0, then for each position in [a,b) map parent1's gene into the
// child by swapping it with whichever slot currently holds that symbol,
// preserving the permutation invariant.
func (x *crossoverOp) pmx(p0, p1 *Chromosome, rng *sampler) *Chromosome {
	L := p0.Len()
	if L < 2 {
		return p0.Clone()
	}
	a, b := twoCuts(L, rng)

	vals := make([]int, L)
	for i := 0; i < L; i++ {
		vals[i] = rawValue(p0, i)
	}
	pos := make(map[int]int, L) // symbol -> current slot
	for i, v := range vals {
		pos[v] = i
	}

	for i := a; i < b; i++ {
		want := rawValue(p1, i)
		if vals[i] == want {
			continue
		}
		j := pos[want]
		vals[i], vals[j] = vals[j], vals[i]
		pos[vals[i]] = i
		pos[vals[j]] = j
	}
	return buildChild(x.layout, vals, 0)
}

// ox implements Order Crossover for combination chromosomes: the child
// inherits parent0[a:b) verbatim; remaining slots are filled by walking
// parent1 from b, wrapping around, skipping genes already placed.
func (x *crossoverOp) ox(p0, p1 *Chromosome, rng *sampler) *Chromosome {
	L := p0.Len()
	if L < 2 {
		return p0.Clone()
	}
	a, b := twoCuts(L, rng)

	vals := make([]int, L)
	placed := make([]bool, L)
	for i := a; i < b; i++ {
		v := rawValue(p0, i)
		vals[i] = v
		placed[v] = true
	}

	child := b % L
	for k := 0; k < L; k++ {
		src := (b + k) % L
		v := rawValue(p1, src)
		if placed[v] {
			continue
		}
		for a <= child && child < b {
			child = (child + 1) % L
		}
		vals[child] = v
		placed[v] = true
		child = (child + 1) % L
	}
	return buildChild(x.layout, vals, 0)
}

func twoCuts(L int, rng *sampler) (int, int) {
	a := rng.Intn(L)
	b := rng.Intn(L)
	if a == b {
		b = (b + 1) % L
	}
	if a > b {
		a, b = b, a
	}
	return a, b
}
