// Command loft-sweep runs a wing parameter study: it lofts a surface for
// every combination of sweep angle and taper ratio and writes the planform
// metrics per combination to a CSV for plotting.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/loft"
)

// parseCSVFloatSlice parses a comma-separated list of floats
func parseCSVFloatSlice(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func generateRange(start, end, step float64) []float64 {
	if step <= 0 {
		step = 1
	}
	var result []float64
	for v := start; v <= end+1e-9; v += step {
		result = append(result, v)
	}
	return result
}

func parseParamList(list string, start, end, step float64) []float64 {
	if list != "" {
		vals, err := parseCSVFloatSlice(list)
		if err != nil {
			log.Fatalf("Invalid parameter list: %v", err)
		}
		return vals
	}
	return generateRange(start, end, step)
}

func meanStddev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(len(xs))
	var sdSum float64
	for _, v := range xs {
		d := v - mean
		sdSum += d * d
	}
	var stddev float64
	if len(xs) > 1 {
		stddev = math.Sqrt(sdSum / float64(len(xs)-1))
	}
	return mean, stddev
}

// buildSweepPlanform makes a linearly tapered wing for one study point:
// four evenly spaced stations from root chord down to root*taper, all at
// the study's sweep angle. Four stations let the loft run at the full
// cubic degree without changing the geometry, since the interpolated
// control points stay on the straight leading and trailing edges.
func buildSweepPlanform(span, rootChord, sweepDeg, taper float64) geom.Planform {
	const stationCount = 4
	p := geom.Planform{Name: fmt.Sprintf("sweep%.1f-taper%.2f", sweepDeg, taper)}
	for i := 0; i < stationCount; i++ {
		frac := float64(i) / float64(stationCount-1)
		p.Stations = append(p.Stations, geom.Station{
			SpanPos:  span * frac,
			Chord:    rootChord * (1 + frac*(taper-1)),
			SweepDeg: sweepDeg,
		})
	}
	return p
}

// sweepResult holds the numbers recorded for one study point.
type sweepResult struct {
	Metrics geom.Metrics
	DegreeU int
	DegreeV int
	TipX    float64
}

// sweepOnce lofts and samples one study combination.
func sweepOnce(airfoil geom.Airfoil, planform geom.Planform, opts loft.Options) (sweepResult, error) {
	var result sweepResult

	sections := geom.GenerateSections(airfoil, planform)
	surface, err := loft.BuildSurface(sections, opts.MaxDegree)
	if err != nil {
		return result, err
	}
	samples, err := loft.SampleGrid(surface, opts.SamplesU, opts.SamplesV)
	if err != nil {
		return result, err
	}
	metrics, err := geom.ComputeMetrics(planform)
	if err != nil {
		return result, err
	}

	result.Metrics = metrics
	result.DegreeU = surface.DegreeU()
	result.DegreeV = surface.DegreeV()

	// Chordwise shear at the tip: largest x reached by the last spanwise
	// samples, a quick check that the sweep actually moved the tip.
	for _, row := range samples {
		tip := row[len(row)-1]
		if tip[0] > result.TipX {
			result.TipX = tip[0]
		}
	}

	return result, nil
}

func writeHeader(w *csv.Writer) {
	w.Write([]string{
		"sweep_deg", "taper_ratio", "tip_chord",
		"span", "area", "mean_aero_chord", "aspect_ratio",
		"degree_u", "degree_v", "tip_x",
		"build_ms_mean", "build_ms_stddev",
	})
}

func writeRow(w *csv.Writer, sweepDeg, taper, tipChord float64, result sweepResult, buildMean, buildStddev float64) {
	w.Write([]string{
		fmt.Sprintf("%.3f", sweepDeg),
		fmt.Sprintf("%.3f", taper),
		fmt.Sprintf("%.4f", tipChord),
		fmt.Sprintf("%.4f", result.Metrics.Span),
		fmt.Sprintf("%.4f", result.Metrics.Area),
		fmt.Sprintf("%.4f", result.Metrics.MeanAeroChord),
		fmt.Sprintf("%.4f", result.Metrics.AspectRatio),
		fmt.Sprintf("%d", result.DegreeU),
		fmt.Sprintf("%d", result.DegreeV),
		fmt.Sprintf("%.4f", result.TipX),
		fmt.Sprintf("%.3f", buildMean),
		fmt.Sprintf("%.3f", buildStddev),
	})
}

func main() {
	airfoilName := flag.String("airfoil", "demo", "Built-in airfoil to loft at every station")
	span := flag.Float64("span", 10, "Half span of the study wing")
	rootChord := flag.Float64("root-chord", 1.5, "Root chord of the study wing")

	sweepList := flag.String("sweeps", "", "Comma-separated sweep angles in degrees (e.g. 0,10,20,30)")
	sweepStart := flag.Float64("sweep-start", 0, "Start sweep angle for generated range")
	sweepEnd := flag.Float64("sweep-end", 30, "End sweep angle for generated range")
	sweepStep := flag.Float64("sweep-step", 10, "Step for generated sweep range")

	taperList := flag.String("tapers", "", "Comma-separated taper ratios (e.g. 0.3,0.5,1.0)")
	taperStart := flag.Float64("taper-start", 0.25, "Start taper ratio for generated range")
	taperEnd := flag.Float64("taper-end", 1.0, "End taper ratio for generated range")
	taperStep := flag.Float64("taper-step", 0.25, "Step for generated taper range")

	maxDegree := flag.Int("max-degree", 3, "Maximum spline degree")
	samplesU := flag.Int("samples-u", 20, "Chordwise samples per surface")
	samplesV := flag.Int("samples-v", 20, "Spanwise samples per surface")
	iterations := flag.Int("iters", 3, "Builds per combination for timing statistics")
	output := flag.String("output", "", "Output CSV filename (defaults to loft-sweep-<timestamp>.csv)")
	flag.Parse()

	airfoil, err := geom.LookupBuiltin(*airfoilName)
	if err != nil {
		log.Fatalf("Unknown airfoil: %v", err)
	}

	opts := loft.Options{MaxDegree: *maxDegree, SamplesU: *samplesU, SamplesV: *samplesV}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid loft options: %v", err)
	}
	if *iterations < 1 {
		log.Fatalf("Iterations must be at least 1, got %d", *iterations)
	}

	sweeps := parseParamList(*sweepList, *sweepStart, *sweepEnd, *sweepStep)
	tapers := parseParamList(*taperList, *taperStart, *taperEnd, *taperStep)
	for _, taper := range tapers {
		if taper <= 0 {
			log.Fatalf("Taper ratios must be positive, got %g", taper)
		}
	}

	totalCombos := len(sweeps) * len(tapers)
	log.Printf("Parameter combinations: %d (sweeps: %d, tapers: %d)", totalCombos, len(sweeps), len(tapers))

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("loft-sweep-%s.csv", time.Now().Format("20060102-150405"))
	}

	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Could not create output file %s: %v", filename, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	writeHeader(w)

	comboNum := 0
	for _, sweepDeg := range sweeps {
		for _, taper := range tapers {
			comboNum++
			log.Printf("\n=== Combination %d/%d: sweep=%.1f taper=%.2f ===",
				comboNum, totalCombos, sweepDeg, taper)

			planform := buildSweepPlanform(*span, *rootChord, sweepDeg, taper)

			var result sweepResult
			buildMs := make([]float64, 0, *iterations)
			failed := false
			for iter := 0; iter < *iterations; iter++ {
				start := time.Now()
				r, err := sweepOnce(airfoil, planform, opts)
				if err != nil {
					log.Printf("ERROR: loft failed: %v", err)
					failed = true
					break
				}
				buildMs = append(buildMs, float64(time.Since(start).Nanoseconds())/1e6)
				result = r
			}
			if failed {
				continue
			}

			buildMean, buildStddev := meanStddev(buildMs)
			writeRow(w, sweepDeg, taper, *rootChord*taper, result, buildMean, buildStddev)
		}
	}

	log.Printf("\nSweep complete!")
	log.Printf("Results: %s", filename)
}
