package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/lens"
)

type testLogger struct{}

func (testLogger) Printf(format string, args ...interface{}) {}

func testConfig(lensName string) Config {
	return Config{
		Lens:       lensName,
		Beam:       "rings",
		Rings:      4,
		PerRing:    6,
		Rays:       200,
		OutputZ:    math.NaN(),
		Wavelength: 588e-6,
		Workers:    2,
		TIRPolicy:  "terminate",
		Seed:       42,
	}
}

func TestRun_AllPresets(t *testing.T) {
	for _, name := range lens.Names() {
		t.Run(name, func(t *testing.T) {
			report, err := run(testConfig(name), testLogger{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if report.Stats.Total != 61 {
				t.Errorf("Expected 61 rays, got %d", report.Stats.Total)
			}
			if report.Stats.Reached != report.Stats.Total {
				t.Errorf("Expected every ray to reach the output plane, got %+v", report.Stats)
			}
			if math.Abs(report.OutputZ-report.ParaxialFocus) > 1e-12 {
				t.Errorf("Expected output plane at paraxial focus %f, got %f", report.ParaxialFocus, report.OutputZ)
			}
			if math.Abs(report.ParaxialFocus-report.PredictedFocus) > 0.1 {
				t.Errorf("Traced focus %f far from predicted %f", report.ParaxialFocus, report.PredictedFocus)
			}
			if report.RMSRadius <= 0 || len(report.Spots) != report.Stats.Reached {
				t.Errorf("Unexpected spot summary: rms=%g spots=%d", report.RMSRadius, len(report.Spots))
			}
		})
	}
}

func TestRun_Beams(t *testing.T) {
	for _, beamType := range []string{"rings", "disc", "grid"} {
		t.Run(beamType, func(t *testing.T) {
			config := testConfig("convex-plano")
			config.Beam = beamType
			report, err := run(config, testLogger{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if report.Stats.Total == 0 {
				t.Error("Expected a non-empty beam")
			}
		})
	}
}

func TestRun_OutputPlaneAtZero(t *testing.T) {
	// After the mirror at z=200 light travels back toward -z, so z=0 is a valid detector
	config := testConfig("concave-mirror")
	config.OutputZ = 0

	report, err := run(config, testLogger{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.OutputZ != 0 {
		t.Errorf("Expected output plane at z=0, got %f", report.OutputZ)
	}
	if report.Stats.Reached != report.Stats.Total {
		t.Errorf("Expected every ray to reach z=0, got %+v", report.Stats)
	}
}

func TestRun_DiffractionUsesFocalLength(t *testing.T) {
	config := testConfig("biconvex")
	report, err := run(config, testLogger{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	preset, _ := lens.Lookup("biconvex")
	f, _ := preset.FocalLength()
	if report.FocalLength != f {
		t.Errorf("Expected focal length %f, got %f", f, report.FocalLength)
	}
	expected := config.Wavelength * f / (2 * preset.BeamRadius)
	if math.Abs(report.DiffractionRMS-expected) > 1e-15 {
		t.Errorf("Expected diffraction scale %g, got %g", expected, report.DiffractionRMS)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown lens", func(c *Config) { c.Lens = "nonexistent" }},
		{"unknown beam", func(c *Config) { c.Beam = "laser" }},
		{"unknown policy", func(c *Config) { c.TIRPolicy = "absorb" }},
		{"output plane before lens", func(c *Config) { c.OutputZ = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig("single-surface")
			tt.mutate(&config)
			if _, err := run(config, testLogger{}); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}

func TestWriteSpots(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "spots.csv")
	spots := []core.Vec2{core.NewVec2(0.5, -1), core.NewVec2(0, 2.25)}

	if err := writeSpots(filename, spots); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(records))
	}
	if got := fmt.Sprint(records[2]); got != "[0 2.25]" {
		t.Errorf("Expected second spot [0 2.25], got %s", got)
	}
}
