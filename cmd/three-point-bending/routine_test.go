package threepointbending

import (
	"strings"
	"testing"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

func testConfig(t *testing.T) *contract.SimulationConfig {
	t.Helper()
	raw := []byte(`{
		"TEST_TYPE": "ThreePointBending",
		"MODEL_NAME": "flexure_aluminum",
		"GEOMETRY": {"span_mm": 150, "width_mm": 15, "height_mm": 10},
		"MATERIAL": {"name": "Aluminum", "youngs_modulus_Pa": 70e9, "poisson_ratio": 0.33},
		"LOADING": {"midspan_load_N": 1000},
		"DISCRETIZATION": {"element_size_mm": 2.5, "solver_type": "implicit"}
	}`)
	cfg, err := contract.Validate(raw)
	if err != nil {
		t.Fatalf("Failed to validate test config: %v", err)
	}
	return cfg
}

func TestRegistered(t *testing.T) {
	r, err := dispatch.DefaultRegistry.Get("ThreePointBending")
	if err != nil {
		t.Fatalf("Routine not registered: %v", err)
	}
	if got := r.TestType(); got != "ThreePointBending" {
		t.Errorf("Expected test type 'ThreePointBending', got '%s'", got)
	}
}

func TestEstimateMesh(t *testing.T) {
	est, err := New().EstimateMesh(testConfig(t))
	if err != nil {
		t.Fatalf("EstimateMesh failed: %v", err)
	}

	// 60 x 6 x 4 bricks
	if est.Elements != 1440 {
		t.Errorf("Expected 1440 elements, got %d", est.Elements)
	}
	if est.Nodes != 61*7*5 {
		t.Errorf("Expected %d nodes, got %d", 61*7*5, est.Nodes)
	}
}

func TestBuildScript(t *testing.T) {
	script, err := New().BuildScript(testConfig(t))
	if err != nil {
		t.Fatalf("BuildScript failed: %v", err)
	}

	for _, want := range []string{
		"flexure_aluminum",
		"ABAQUS_CONFIG_PATH",
		"midspan_load_N",
		"Set-LeftSupport",
		"Set-Midspan",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Script missing %q", want)
		}
	}
}
