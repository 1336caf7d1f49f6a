package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/df07/go-optical-raytracer/pkg/analysis"
	"github.com/df07/go-optical-raytracer/pkg/beam"
	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/lens"
	"github.com/df07/go-optical-raytracer/pkg/optics"
	"github.com/df07/go-optical-raytracer/pkg/tracer"
)

// Config holds the command line options for a single run
type Config struct {
	Lens       string
	Beam       string
	BeamRadius float64 // 0 = preset default
	Rings      int
	PerRing    int
	Rays       int
	OutputZ    float64 // NaN = paraxial focus
	Wavelength float64 // mm
	Workers    int
	TIRPolicy  string
	SpotsFile  string
	Seed       int64
}

// Report is the numeric summary of a run
type Report struct {
	Lens           string
	PredictedFocus float64
	ParaxialFocus  float64
	FocalLength    float64
	OutputZ        float64
	Stats          tracer.TraceStats
	RMSRadius      float64
	DiffractionRMS float64
	Spots          []core.Vec2
}

func main() {
	config := Config{}
	flag.StringVar(&config.Lens, "lens", "single-surface", "Lens preset (see -list)")
	flag.StringVar(&config.Beam, "beam", "rings", "Beam type: 'rings', 'disc' or 'grid'")
	flag.Float64Var(&config.BeamRadius, "radius", 0, "Beam radius in mm (0 = preset default)")
	flag.IntVar(&config.Rings, "rings", 6, "Number of rings (rings beam) or points per side (grid beam)")
	flag.IntVar(&config.PerRing, "per-ring", 6, "Rays in the first ring; ring i holds i times as many (rings beam)")
	flag.IntVar(&config.Rays, "rays", 1000, "Number of rays (disc beam)")
	flag.Float64Var(&config.OutputZ, "output", math.NaN(), "Output plane z in mm (default: traced paraxial focus)")
	flag.Float64Var(&config.Wavelength, "wavelength", 588e-6, "Wavelength in mm for the diffraction scale")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.StringVar(&config.TIRPolicy, "tir", "terminate", "Total internal reflection policy: 'terminate' or 'reflect'")
	flag.StringVar(&config.SpotsFile, "spots", "", "Write spot diagram positions to this CSV file")
	flag.Int64Var(&config.Seed, "seed", 42, "Random seed for the disc beam")
	list := flag.Bool("list", false, "List lens presets")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Optical Raytracer")
		fmt.Println("Usage: optical-raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if *list {
		for _, name := range lens.Names() {
			preset, _ := lens.Lookup(name)
			fmt.Printf("  %-16s %s\n", name, preset.Description)
		}
		return
	}

	logger := tracer.NewDefaultLogger()
	report, err := run(config, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	printReport(report)

	if config.SpotsFile != "" {
		if err := writeSpots(config.SpotsFile, report.Spots); err != nil {
			fmt.Printf("Error writing spots: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Spot diagram saved as %s\n", config.SpotsFile)
	}
}

// run builds the system and beam described by config, traces it and measures the focus
func run(config Config, logger core.Logger) (*Report, error) {
	preset, err := lens.Lookup(config.Lens)
	if err != nil {
		return nil, err
	}
	policy, err := optics.ParseTIRPolicy(config.TIRPolicy)
	if err != nil {
		return nil, err
	}

	lensSystem, err := preset.System()
	if err != nil {
		return nil, err
	}
	predicted, err := preset.PredictedFocus()
	if err != nil {
		return nil, err
	}
	paraxial, err := analysis.ParaxialFocus(lensSystem, 0.1)
	if err != nil {
		return nil, fmt.Errorf("finding paraxial focus: %w", err)
	}

	outputZ := config.OutputZ
	if math.IsNaN(outputZ) {
		outputZ = paraxial
	}
	system, err := preset.SystemWithOutput(outputZ)
	if err != nil {
		return nil, err
	}
	system.SetPolicy(policy)

	radius := config.BeamRadius
	if radius == 0 {
		radius = preset.BeamRadius
	}
	rays, err := createBeam(config, radius)
	if err != nil {
		return nil, err
	}

	logger.Printf("Tracing %d rays through %s (output plane at z=%.3f)...\n", len(rays), preset.Name, outputZ)
	startTime := time.Now()
	bt := tracer.NewBundleTracer(system, tracer.TraceConfig{NumWorkers: config.Workers}, logger)
	stats, _ := bt.TraceBundle(rays)
	logger.Printf("Trace completed in %v\n", time.Since(startTime))

	points := analysis.SpotPositions(rays)
	rms, err := analysis.RMSRadius(points)
	if err != nil {
		return nil, fmt.Errorf("measuring spot: %w", err)
	}
	focalLength, err := preset.FocalLength()
	if err != nil {
		return nil, err
	}
	diffraction, err := analysis.DiffractionScale(config.Wavelength, focalLength, radius)
	if err != nil {
		return nil, err
	}

	return &Report{
		Lens:           preset.Name,
		PredictedFocus: predicted,
		ParaxialFocus:  paraxial,
		FocalLength:    focalLength,
		OutputZ:        outputZ,
		Stats:          stats,
		RMSRadius:      rms,
		DiffractionRMS: diffraction,
		Spots:          analysis.SpotDiagram(points),
	}, nil
}

func createBeam(config Config, radius float64) ([]*optics.Ray, error) {
	axis := core.NewVec3(0, 0, 1)
	switch config.Beam {
	case "rings":
		return beam.EvenRings(radius, config.Rings, config.PerRing, 0, axis)
	case "disc":
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(config.Seed)))
		return beam.UniformDisc(radius, config.Rays, 0, axis, sampler)
	case "grid":
		return beam.Grid(radius, config.Rings, 0, axis)
	default:
		return nil, fmt.Errorf("unknown beam type %q", config.Beam)
	}
}

func printReport(report *Report) {
	fmt.Printf("Lens: %s\n", report.Lens)
	fmt.Printf("Predicted paraxial focus: z=%.4f mm\n", report.PredictedFocus)
	fmt.Printf("Traced paraxial focus:    z=%.4f mm\n", report.ParaxialFocus)
	fmt.Printf("Effective focal length:   %.4f mm\n", report.FocalLength)
	fmt.Printf("Output plane:             z=%.4f mm\n", report.OutputZ)
	fmt.Printf("Rays: %d traced, %d reached, %d lost (%.1f%% transmission)\n",
		report.Stats.Total, report.Stats.Reached, report.Stats.Lost(), 100*report.Stats.Transmission())
	fmt.Printf("RMS spot radius: %.6g mm\n", report.RMSRadius)
	fmt.Printf("Diffraction scale: %.6g mm\n", report.DiffractionRMS)
}

func writeSpots(filename string, spots []core.Vec2) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, s := range spots {
		record := []string{
			strconv.FormatFloat(s.X, 'g', -1, 64),
			strconv.FormatFloat(s.Y, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
