package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/chordline-aero/wingloft/internal/db"
	"github.com/chordline-aero/wingloft/internal/fsutil"
	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/loft"
	"github.com/chordline-aero/wingloft/internal/meshio"
	"github.com/chordline-aero/wingloft/internal/render"
	"github.com/chordline-aero/wingloft/internal/security"
	"github.com/chordline-aero/wingloft/internal/units"
)

// generateOptions carries a resolved geometry pair plus the output
// selection for one pipeline run.
type generateOptions struct {
	Airfoil  geom.Airfoil
	Planform geom.Planform
	Loft     loft.Options

	OutDir      string
	WriteHTML   bool
	WriteSTL    bool
	WriteOBJ    bool
	WriteCSV    bool
	SectionsPNG bool
}

// generateResult reports what one pipeline run produced.
type generateResult struct {
	DegreeU int
	DegreeV int
	Metrics geom.Metrics
	Files   []string
}

func handleGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	airfoilName := fs.String("airfoil", "demo", "Catalog airfoil to loft")
	airfoilFile := fs.String("airfoil-file", "", "Selig .dat file to loft instead of a catalog airfoil")
	planformName := fs.String("planform", "demo", "Catalog planform to loft over")
	planformFile := fs.String("planform-file", "", "JSON planform file to loft over instead of a catalog planform")
	outDir := fs.String("out", "", "Output directory (default from config)")
	dbPath := fs.String("db", "", "Path to the SQLite database file (overrides config)")
	configPath := fs.String("config", "", "Path to a JSON config file")
	maxDegree := fs.Int("max-degree", 0, "Maximum spline degree (default from config)")
	samplesU := fs.Int("samples-u", 0, "Chordwise samples (default from config)")
	samplesV := fs.Int("samples-v", 0, "Spanwise samples (default from config)")
	writeSTL := fs.Bool("stl", false, "Write a binary STL of the tessellated surface")
	writeOBJ := fs.Bool("obj", false, "Write a Wavefront OBJ of the tessellated surface")
	writeCSV := fs.Bool("csv", false, "Write the evaluated grid as CSV")
	sectionsPNG := fs.Bool("sections-png", false, "Write a PNG of the transformed sections")
	noHTML := fs.Bool("no-html", false, "Skip the interactive HTML surface chart")
	fs.Parse(args)

	cfg := loadServeConfig(*configPath)
	if *dbPath != "" {
		cfg.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	opts := generateOptions{
		Loft: loft.Options{
			MaxDegree: cfg.GetMaxDegree(),
			SamplesU:  cfg.GetSamplesU(),
			SamplesV:  cfg.GetSamplesV(),
		},
		OutDir:      cfg.GetOutputDir(),
		WriteHTML:   !*noHTML,
		WriteSTL:    *writeSTL,
		WriteOBJ:    *writeOBJ,
		WriteCSV:    *writeCSV,
		SectionsPNG: *sectionsPNG,
	}
	if *outDir != "" {
		opts.OutDir = *outDir
	}
	if *maxDegree != 0 {
		opts.Loft.MaxDegree = *maxDegree
	}
	if *samplesU != 0 {
		opts.Loft.SamplesU = *samplesU
	}
	if *samplesV != 0 {
		opts.Loft.SamplesV = *samplesV
	}

	var err error
	opts.Airfoil, opts.Planform, err = resolveGeometry(
		cfg.GetDBPath(), *airfoilName, *airfoilFile, *planformName, *planformFile)
	if err != nil {
		log.Fatalf("Failed to resolve geometry: %v", err)
	}

	result, err := runGenerate(opts, fsutil.OSFileSystem{}, render.ChartOptions{
		Theme:  cfg.GetChartTheme(),
		Width:  cfg.GetChartWidth(),
		Height: cfg.GetChartHeight(),
	})
	if err != nil {
		log.Fatalf("Generate failed: %v", err)
	}

	printGenerateSummary(os.Stdout, opts, result, cfg.GetUnits())
}

// resolveGeometry loads the requested airfoil and planform. File flags
// bypass the catalog; names are looked up in the database, which seeds
// the built-in geometry on first open.
func resolveGeometry(dbPath, airfoilName, airfoilFile, planformName, planformFile string) (geom.Airfoil, geom.Planform, error) {
	var airfoil geom.Airfoil
	var planform geom.Planform

	needDB := airfoilFile == "" || planformFile == ""
	var database *db.DB
	if needDB {
		var err error
		database, err = db.NewDB(dbPath)
		if err != nil {
			return airfoil, planform, fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()
	}

	if airfoilFile != "" {
		a, err := geom.LoadDatFile(airfoilFile)
		if err != nil {
			return airfoil, planform, err
		}
		airfoil = a
	} else {
		stored, err := database.GetAirfoilByName(airfoilName)
		if err != nil {
			return airfoil, planform, err
		}
		if stored == nil {
			return airfoil, planform, fmt.Errorf("airfoil %q not in catalog", airfoilName)
		}
		airfoil = stored.Section()
	}

	if planformFile != "" {
		p, err := loadPlanformFile(planformFile)
		if err != nil {
			return airfoil, planform, err
		}
		planform = p
	} else {
		stored, err := database.GetPlanformByName(planformName)
		if err != nil {
			return airfoil, planform, err
		}
		if stored == nil {
			return airfoil, planform, fmt.Errorf("planform %q not in catalog", planformName)
		}
		planform = stored.Geometry()
	}

	return airfoil, planform, nil
}

// runGenerate executes the loft pipeline once and writes the selected
// outputs under opts.OutDir through the supplied filesystem.
func runGenerate(opts generateOptions, fsys fsutil.FileSystem, chartOpts render.ChartOptions) (*generateResult, error) {
	if err := opts.Loft.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Airfoil.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Planform.Validate(); err != nil {
		return nil, err
	}

	sections := geom.GenerateSections(opts.Airfoil, opts.Planform)
	grid, err := loft.BuildControlGrid(sections)
	if err != nil {
		return nil, err
	}
	surface, err := loft.BuildSurfaceFromGrid(grid, opts.Loft.MaxDegree)
	if err != nil {
		return nil, err
	}
	samples, err := loft.SampleGrid(surface, opts.Loft.SamplesU, opts.Loft.SamplesV)
	if err != nil {
		return nil, err
	}
	metrics, err := geom.ComputeMetrics(opts.Planform)
	if err != nil {
		return nil, err
	}

	if err := fsys.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &generateResult{
		DegreeU: surface.DegreeU(),
		DegreeV: surface.DegreeV(),
		Metrics: metrics,
	}
	base := security.SanitizeFilename(opts.Airfoil.Name) + "-" + security.SanitizeFilename(opts.Planform.Name)

	writeFile := func(name string, write func(io.Writer) error) error {
		path := filepath.Join(opts.OutDir, name)
		if err := security.ValidateExportPath(path); err != nil {
			return fmt.Errorf("invalid output path %s: %w", path, err)
		}
		f, err := fsys.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := write(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
		return nil
	}

	if opts.WriteHTML {
		meta := render.WingMeta{
			AirfoilName:  opts.Airfoil.Name,
			PlanformName: opts.Planform.Name,
			DegreeU:      result.DegreeU,
			DegreeV:      result.DegreeV,
			SamplesU:     opts.Loft.SamplesU,
			SamplesV:     opts.Loft.SamplesV,
		}
		err := writeFile(base+"-wing.html", func(w io.Writer) error {
			return render.WingSurfaceChart(w, samples, grid, meta, chartOpts)
		})
		if err != nil {
			return nil, err
		}
	}

	// Tessellate once when any mesh format is requested.
	if opts.WriteSTL || opts.WriteOBJ {
		mesh := loft.Tessellate(surface)

		if opts.WriteSTL {
			tris, err := meshio.Triangles(mesh)
			if err != nil {
				return nil, err
			}
			err = writeFile(base+".stl", func(w io.Writer) error {
				return meshio.WriteSTL(w, base, tris)
			})
			if err != nil {
				return nil, err
			}
		}
		if opts.WriteOBJ {
			err := writeFile(base+".obj", func(w io.Writer) error {
				return meshio.WriteOBJ(w, base, mesh)
			})
			if err != nil {
				return nil, err
			}
		}
	}

	if opts.WriteCSV {
		err := writeFile(base+"-grid.csv", func(w io.Writer) error {
			return meshio.WriteGridCSV(w, samples)
		})
		if err != nil {
			return nil, err
		}
	}

	if opts.SectionsPNG {
		labels := make([]string, len(opts.Planform.Stations))
		for i, st := range opts.Planform.Stations {
			labels[i] = fmt.Sprintf("z=%g c=%g", st.SpanPos, st.Chord)
		}
		path := filepath.Join(opts.OutDir, base+"-sections.png")
		if err := security.ValidateExportPath(path); err != nil {
			return nil, fmt.Errorf("invalid output path %s: %w", path, err)
		}
		// gonum/plot saves straight to disk, so this output skips the
		// filesystem abstraction.
		if err := render.SectionsPlot(path, sections, labels); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	return result, nil
}

// printGenerateSummary writes the run summary in the configured display
// units. Geometry is authored in meters.
func printGenerateSummary(w io.Writer, opts generateOptions, result *generateResult, unit string) {
	fmt.Fprintf(w, "Lofted %s over %s (degree %dx%d, %dx%d samples)\n",
		opts.Airfoil.Name, opts.Planform.Name,
		result.DegreeU, result.DegreeV,
		opts.Loft.SamplesU, opts.Loft.SamplesV)

	m := result.Metrics
	fmt.Fprintf(w, "  Span:             %.3f %s\n", units.ConvertLength(m.Span, unit), unit)
	fmt.Fprintf(w, "  Area (half wing): %.3f %s^2\n", units.ConvertArea(m.Area, unit), unit)
	fmt.Fprintf(w, "  Mean aero chord:  %.3f %s\n", units.ConvertLength(m.MeanAeroChord, unit), unit)
	fmt.Fprintf(w, "  Aspect ratio:     %.3f\n", m.AspectRatio)
	fmt.Fprintf(w, "  Taper ratio:      %.3f\n", m.TaperRatio)

	for _, f := range result.Files {
		fmt.Fprintf(w, "  Wrote %s\n", f)
	}
}

// loadPlanformFile reads a planform from a JSON file shaped like the API
// payload: {"name": ..., "stations": [{"span_pos": ...}, ...]}.
func loadPlanformFile(path string) (geom.Planform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geom.Planform{}, fmt.Errorf("failed to read planform file: %w", err)
	}
	return parsePlanformJSON(data, filepath.Base(path))
}

// parsePlanformJSON decodes and validates a planform document, naming it
// after the source file when the document has no name of its own.
func parsePlanformJSON(data []byte, fallbackName string) (geom.Planform, error) {
	var planform geom.Planform
	if err := json.Unmarshal(data, &planform); err != nil {
		return geom.Planform{}, fmt.Errorf("invalid planform JSON: %w", err)
	}
	if planform.Name == "" {
		planform.Name = fallbackName
	}
	if err := planform.Validate(); err != nil {
		return geom.Planform{}, err
	}
	return planform, nil
}
