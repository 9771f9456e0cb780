package cantileverbeam

import (
	"strings"
	"testing"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

func testConfig(t *testing.T) *contract.SimulationConfig {
	t.Helper()
	raw := []byte(`{
		"TEST_TYPE": "CantileverBeam",
		"MODEL_NAME": "cantilever_steel",
		"GEOMETRY": {"length_mm": 200, "width_mm": 20, "height_mm": 10},
		"MATERIAL": {"name": "Steel", "youngs_modulus_Pa": 200e9, "poisson_ratio": 0.30},
		"LOADING": {"tip_load_N": 500},
		"DISCRETIZATION": {"element_size_mm": 2.0, "solver_type": "implicit"}
	}`)
	cfg, err := contract.Validate(raw)
	if err != nil {
		t.Fatalf("Failed to validate test config: %v", err)
	}
	return cfg
}

func TestRegistered(t *testing.T) {
	r, err := dispatch.DefaultRegistry.Get("CantileverBeam")
	if err != nil {
		t.Fatalf("Routine not registered: %v", err)
	}
	if got := r.TestType(); got != "CantileverBeam" {
		t.Errorf("Expected test type 'CantileverBeam', got '%s'", got)
	}
}

func TestEstimateMesh(t *testing.T) {
	est, err := New().EstimateMesh(testConfig(t))
	if err != nil {
		t.Fatalf("EstimateMesh failed: %v", err)
	}

	// 100 x 10 x 5 bricks
	if est.Elements != 5000 {
		t.Errorf("Expected 5000 elements, got %d", est.Elements)
	}
	if est.Nodes != 101*11*6 {
		t.Errorf("Expected %d nodes, got %d", 101*11*6, est.Nodes)
	}
}

func TestBuildScript(t *testing.T) {
	script, err := New().BuildScript(testConfig(t))
	if err != nil {
		t.Fatalf("BuildScript failed: %v", err)
	}

	for _, want := range []string{
		"cantilever_steel",
		"ABAQUS_CONFIG_PATH",
		"StaticStep",
		"tip_load_N",
		"EncastreBC",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Script missing %q", want)
		}
	}
}
