package modalanalysis

import (
	"strings"
	"testing"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

func testConfig(t *testing.T) *contract.SimulationConfig {
	t.Helper()
	raw := []byte(`{
		"TEST_TYPE": "ModalAnalysis",
		"MODEL_NAME": "modal_titanium",
		"GEOMETRY": {"length_mm": 100, "width_mm": 50, "height_mm": 25},
		"MATERIAL": {"name": "Titanium", "youngs_modulus_Pa": 114e9, "poisson_ratio": 0.34},
		"DISCRETIZATION": {"element_size_mm": 5.0, "solver_type": "implicit"}
	}`)
	cfg, err := contract.Validate(raw)
	if err != nil {
		t.Fatalf("Failed to validate test config: %v", err)
	}
	return cfg
}

func TestRegistered(t *testing.T) {
	r, err := dispatch.DefaultRegistry.Get("ModalAnalysis")
	if err != nil {
		t.Fatalf("Routine not registered: %v", err)
	}
	if got := r.TestType(); got != "ModalAnalysis" {
		t.Errorf("Expected test type 'ModalAnalysis', got '%s'", got)
	}
}

func TestEstimateMesh(t *testing.T) {
	est, err := New().EstimateMesh(testConfig(t))
	if err != nil {
		t.Fatalf("EstimateMesh failed: %v", err)
	}

	// 20 x 10 x 5 bricks
	if est.Elements != 1000 {
		t.Errorf("Expected 1000 elements, got %d", est.Elements)
	}
	if est.Nodes != 21*11*6 {
		t.Errorf("Expected %d nodes, got %d", 21*11*6, est.Nodes)
	}
}

func TestBuildScript(t *testing.T) {
	script, err := New().BuildScript(testConfig(t))
	if err != nil {
		t.Fatalf("BuildScript failed: %v", err)
	}

	for _, want := range []string{
		"modal_titanium",
		"ABAQUS_CONFIG_PATH",
		"FrequencyStep",
		"numEigen=10",
		"Density",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Script missing %q", want)
		}
	}
}

func TestBuildScriptNoLoading(t *testing.T) {
	script, err := New().BuildScript(testConfig(t))
	if err != nil {
		t.Fatalf("BuildScript failed: %v", err)
	}
	if strings.Contains(script, "LOADING") {
		t.Error("Modal analysis driver should not reference a LOADING group")
	}
}
