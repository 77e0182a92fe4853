package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/kernelgenome/evolve/ga"
	"github.com/schollz/progressbar/v3"
)

func main() {
	example := flag.String("example", "onemax", "The example to run (onemax or tsp)")
	generations := flag.Int("generations", 100, "Number of generations to run")
	flag.Parse()

	switch *example {
	case "onemax":
		runOneMax(*generations)
	case "tsp":
		runTSP(*generations)
	default:
		log.Fatalf("unknown example: %s", *example)
	}
}

// runOneMax evolves a 20-bit bitvector toward all-ones, the canonical
// smoke test for a bitvector layout and RouletteBasic selection.
func runOneMax(generations int) {
	layout, err := ga.NewLayout(ga.Layout{Kind: ga.BitVector, Length: 20})
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	bar := progressbar.Default(int64(generations), "onemax")

	engine := ga.New(layout,
		ga.WithPopulationSize(100),
		ga.WithFitness(func(_ *ga.Engine, c *ga.Chromosome) (float64, error) {
			score := 0.0
			for _, g := range c.AsArrayDefOnly() {
				if g.Bit {
					score++
				}
			}
			return score, nil
		}),
		ga.WithCrossoverRate(0.8),
		ga.WithMutationRate(0.01),
		ga.WithPreserve(2),
		ga.WithHistory(true),
		ga.WithTerminate(func(e *ga.Engine) bool {
			bar.Add(1)
			best, _ := e.GetFittest(1, false)
			return len(best) > 0 && best[0].Len() == 20 && allOnes(best[0])
		}),
	)

	if err := engine.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	if err := engine.Evolve(context.Background(), generations); err != nil {
		log.Fatalf("evolve: %v", err)
	}

	best, fitness := engine.GetFittest(1, false)
	fmt.Printf("\nbest chromosome %s, fitness %.0f (generation %d)\n", best[0].AsString(), fitness[0], engine.Generation())
}

func allOnes(c *ga.Chromosome) bool {
	for _, g := range c.AsArrayDefOnly() {
		if !g.Bit {
			return false
		}
	}
	return true
}

// runTSP evolves a combination chromosome over a CSV-loaded city list,
// minimizing round-trip distance, using Order Crossover.
func runTSP(generations int) {
	cities, err := loadCities("examples/tsp.csv")
	if err != nil {
		log.Fatalf("load cities: %v", err)
	}
	if len(cities) < 2 {
		log.Fatalf("need at least 2 cities for TSP, got %d", len(cities))
	}
	fmt.Printf("loaded %d cities for TSP\n", len(cities))

	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}

	layout, err := ga.NewLayout(ga.Layout{Kind: ga.Combination, Length: len(cities), Alphabet: names})
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	bar := progressbar.Default(int64(generations), "tsp")

	engine := ga.New(layout,
		ga.WithPopulationSize(150),
		ga.WithFitness(func(_ *ga.Engine, c *ga.Chromosome) (float64, error) {
			d := routeDistance(cities, c)
			if d == 0 {
				return 0, nil
			}
			return 1 / d, nil
		}),
		ga.WithCrossoverRate(0.85),
		ga.WithMutationRate(0.02),
		ga.WithPreserve(3),
		ga.WithHistory(true),
		ga.WithCrossoverStrategy(ga.CrossoverConfig{Strategy: ga.OX}),
		ga.WithTerminate(func(_ *ga.Engine) bool { bar.Add(1); return false }),
		ga.WithChartRenderer(&svgRouteRenderer{cities: cities, path: "tsp_history.svg"}),
	)

	if err := engine.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	if err := engine.Evolve(context.Background(), generations); err != nil {
		log.Fatalf("evolve: %v", err)
	}

	best, fitness := engine.GetFittest(1, false)
	fmt.Printf("\nbest route fitness %.6f (total distance %.2f)\n", fitness[0], routeDistance(cities, best[0]))

	if err := visualizeRoute(cities, best[0], "tsp_route.svg"); err != nil {
		log.Fatalf("visualize: %v", err)
	}
	fmt.Println("route visualization saved to tsp_route.svg")

	if err := engine.Chart(); err != nil {
		log.Fatalf("chart: %v", err)
	}
	fmt.Println("fitness history saved to tsp_history.svg")
}

type city struct {
	Name string
	X, Y float64
}

func loadCities(filename string) ([]city, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file must contain at least a header and one data row")
	}

	cities := make([]city, 0, len(records)-1)
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns (name, x, y), got %d", i+1, len(record))
		}
		name := record[0]
		if name == "" {
			return nil, fmt.Errorf("row %d: city name cannot be empty", i+1)
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid x coordinate %q: %w", i+1, record[1], err)
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid y coordinate %q: %w", i+1, record[2], err)
		}
		cities = append(cities, city{Name: name, X: x, Y: y})
	}
	return cities, nil
}

func distance(a, b city) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// routeDistance reads the chromosome's combination permutation as an
// ordering over cities and sums the closed-tour distance.
func routeDistance(cities []city, c *ga.Chromosome) float64 {
	route := make([]city, c.Len())
	for i, g := range c.AsArrayDefOnly() {
		route[i] = cities[g.Index]
	}
	total := 0.0
	for i := 0; i < len(route); i++ {
		total += distance(route[i], route[(i+1)%len(route)])
	}
	return total
}

// svgRouteRenderer renders the fitness history as an SVG line chart for the
// (min, mean, max) matrix an Engine's ChartRenderer receives.
type svgRouteRenderer struct {
	cities []city
	path   string
}

func (r *svgRouteRenderer) Render(history [][]float64) error {
	if len(history) != 3 || len(history[0]) == 0 {
		return fmt.Errorf("svgRouteRenderer: empty history")
	}
	max, mean, min := history[0], history[1], history[2]

	width, height, padding := 800.0, 400.0, 50.0
	n := len(max)

	lo, hi := min[0], max[0]
	for i := 0; i < n; i++ {
		if min[i] < lo {
			lo = min[i]
		}
		if max[i] > hi {
			hi = max[i]
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	x := func(i int) float64 { return padding + float64(i)/float64(n-1)*(width-2*padding) }
	y := func(v float64) float64 { return height - padding - (v-lo)/(hi-lo)*(height-2*padding) }

	svg := fmt.Sprintf(`<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`, width, height)
	svg += fmt.Sprintf(`<text x="%.0f" y="20" text-anchor="middle" font-family="Arial, sans-serif" font-size="16" font-weight="bold">fitness history</text>`, width/2)
	svg += polyline(max, x, y, "green")
	svg += polyline(mean, x, y, "blue")
	svg += polyline(min, x, y, "red")
	svg += `</svg>`

	return os.WriteFile(r.path, []byte(svg), 0644)
}

func polyline(series []float64, x func(int) float64, y func(float64) float64, color string) string {
	if len(series) < 2 {
		return ""
	}
	points := ""
	for i, v := range series {
		if i > 0 {
			points += " "
		}
		points += fmt.Sprintf("%.2f,%.2f", x(i), y(v))
	}
	return fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="2" />`, points, color)
}

// visualizeRoute renders the best route found as an SVG plot.
func visualizeRoute(cities []city, c *ga.Chromosome, filename string) error {
	route := make([]city, c.Len())
	for i, g := range c.AsArrayDefOnly() {
		route[i] = cities[g.Index]
	}
	if len(route) == 0 {
		return fmt.Errorf("empty route")
	}

	minX, maxX := route[0].X, route[0].X
	minY, maxY := route[0].Y, route[0].Y
	for _, cty := range route {
		if cty.X < minX {
			minX = cty.X
		}
		if cty.X > maxX {
			maxX = cty.X
		}
		if cty.Y < minY {
			minY = cty.Y
		}
		if cty.Y > maxY {
			maxY = cty.Y
		}
	}

	padding, canvasWidth, canvasHeight := 80.0, 800.0, 600.0
	scaleX := (canvasWidth - 2*padding) / math.Max(maxX-minX, 1)
	scaleY := (canvasHeight - 2*padding) / math.Max(maxY-minY, 1)
	scale := math.Min(scaleX, scaleY)

	tx := func(x float64) float64 { return padding + (x-minX)*scale }
	ty := func(y float64) float64 { return padding + (y-minY)*scale }

	svg := fmt.Sprintf(`<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`, canvasWidth, canvasHeight)
	for i := 0; i < len(route); i++ {
		cur, next := route[i], route[(i+1)%len(route)]
		svg += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="blue" stroke-width="2" />`,
			tx(cur.X), ty(cur.Y), tx(next.X), ty(next.Y))
	}
	for _, cty := range route {
		svg += fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="6" fill="red" stroke="black" stroke-width="1" />`, tx(cty.X), ty(cty.Y))
	}
	for _, cty := range route {
		svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12">%s</text>`,
			tx(cty.X), ty(cty.Y)-12, cty.Name)
	}
	svg += `</svg>`

	return os.WriteFile(filename, []byte(svg), 0644)
}
