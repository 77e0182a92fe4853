package ga

import "gonum.org/v1/gonum/stat"

// GenerationStats is the (min, mean, max) triple of a generation's fitness
// column, plus StdDev for callers comparing generations.
type GenerationStats struct {
	Min, Mean, Max, StdDev float64
}

func computeStats(fitness []float64) GenerationStats {
	if len(fitness) == 0 {
		return GenerationStats{}
	}
	min, max := fitness[0], fitness[0]
	for _, f := range fitness {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	mean, std := stat.MeanStdDev(fitness, nil)
	return GenerationStats{Min: min, Mean: mean, Max: max, StdDev: std}
}

// history is the append-only generation log.
type history struct {
	enabled bool
	log     []GenerationStats
}

func (h *history) record(s GenerationStats) {
	if h.enabled {
		h.log = append(h.log, s)
	}
}

// Matrix returns [max[], mean[], min[]] across recorded generations.
func (h *history) Matrix() [][]float64 {
	max := make([]float64, len(h.log))
	mean := make([]float64, len(h.log))
	min := make([]float64, len(h.log))
	for i, s := range h.log {
		max[i], mean[i], min[i] = s.Max, s.Mean, s.Min
	}
	return [][]float64{max, mean, min}
}

// ChartRenderer renders a recorded history matrix. Core ships no
// implementation; cmd/ga provides an SVG example renderer.
type ChartRenderer interface {
	Render(history [][]float64) error
}
