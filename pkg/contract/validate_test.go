package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// taylorImpactDoc returns a valid Taylor impact document as a mutable map.
func taylorImpactDoc() map[string]interface{} {
	return map[string]interface{}{
		"TEST_TYPE": "Taylor Impact",
		"GEOMETRY": map[string]interface{}{
			"length_mm":   100.0,
			"diameter_mm": 10.0,
			"height_mm":   20.0,
		},
		"MATERIAL": map[string]interface{}{
			"name":              "Copper",
			"youngs_modulus_Pa": 110e9,
			"poisson_ratio":     0.34,
		},
		"LOADING": map[string]interface{}{
			"initial_velocity_m_per_s": 180.0,
			"impact_duration_ms":       5.0,
		},
		"DISCRETIZATION": map[string]interface{}{
			"element_size_mm": 1.0,
			"solver_type":     "explicit",
		},
	}
}

func mustMarshal(t *testing.T, doc map[string]interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal test document: %v", err)
	}
	return raw
}

func TestValidateTaylorImpact(t *testing.T) {
	cfg, err := Validate(mustMarshal(t, taylorImpactDoc()))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.TestType != "TaylorImpact" {
		t.Errorf("Expected test type 'TaylorImpact', got '%s'", cfg.TestType)
	}
	if cfg.Geometry["length_mm"] != 100 {
		t.Errorf("Expected length 100, got %v", cfg.Geometry["length_mm"])
	}
	if cfg.Geometry["height_mm"] != 20 {
		t.Errorf("Extra geometry field height_mm not preserved: %v", cfg.Geometry)
	}
	if cfg.Material.Name != "Copper" {
		t.Errorf("Expected material 'Copper', got '%s'", cfg.Material.Name)
	}
	if cfg.Material.YoungsModulusPa != 110e9 {
		t.Errorf("Expected Young's modulus 110e9, got %v", cfg.Material.YoungsModulusPa)
	}
	if cfg.Loading["initial_velocity_m_per_s"] != 180 {
		t.Errorf("Expected velocity 180, got %v", cfg.Loading["initial_velocity_m_per_s"])
	}
	if cfg.Discretization.SolverType != SolverExplicit {
		t.Errorf("Expected explicit solver, got '%s'", cfg.Discretization.SolverType)
	}
}

func TestValidateUnsupportedTestType(t *testing.T) {
	// The document is otherwise empty: an unknown tag must short-circuit
	// before any group checks run.
	raw := []byte(`{"TEST_TYPE": "TensileTest"}`)

	_, err := Validate(raw)
	var unsupported *UnsupportedTestTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedTestTypeError, got %v", err)
	}
	if unsupported.TestType != "TensileTest" {
		t.Errorf("Expected offending tag 'TensileTest', got '%s'", unsupported.TestType)
	}
}

func TestValidateMissingParameters(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(doc map[string]interface{})
		wantPath string
	}{
		{
			name:     "missing test type",
			mutate:   func(doc map[string]interface{}) { delete(doc, "TEST_TYPE") },
			wantPath: "TEST_TYPE",
		},
		{
			name:     "missing geometry group",
			mutate:   func(doc map[string]interface{}) { delete(doc, "GEOMETRY") },
			wantPath: "GEOMETRY",
		},
		{
			name: "missing diameter",
			mutate: func(doc map[string]interface{}) {
				delete(doc["GEOMETRY"].(map[string]interface{}), "diameter_mm")
			},
			wantPath: "GEOMETRY.diameter_mm",
		},
		{
			name: "missing poisson ratio",
			mutate: func(doc map[string]interface{}) {
				delete(doc["MATERIAL"].(map[string]interface{}), "poisson_ratio")
			},
			wantPath: "MATERIAL.poisson_ratio",
		},
		{
			name:     "missing loading group",
			mutate:   func(doc map[string]interface{}) { delete(doc, "LOADING") },
			wantPath: "LOADING",
		},
		{
			name: "missing solver type",
			mutate: func(doc map[string]interface{}) {
				delete(doc["DISCRETIZATION"].(map[string]interface{}), "solver_type")
			},
			wantPath: "DISCRETIZATION.solver_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := taylorImpactDoc()
			tt.mutate(doc)

			_, err := Validate(mustMarshal(t, doc))
			var missing *MissingParameterError
			if !errors.As(err, &missing) {
				t.Fatalf("Expected MissingParameterError, got %v", err)
			}
			if missing.Path != tt.wantPath {
				t.Errorf("Expected path '%s', got '%s'", tt.wantPath, missing.Path)
			}
		})
	}
}

func TestValidateInvalidValues(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(doc map[string]interface{})
		wantPath   string
		wantReason string
	}{
		{
			name: "poisson ratio at upper bound",
			mutate: func(doc map[string]interface{}) {
				doc["MATERIAL"].(map[string]interface{})["poisson_ratio"] = 0.5
			},
			wantPath:   "MATERIAL.poisson_ratio",
			wantReason: "must be in [0, 0.5)",
		},
		{
			name: "poisson ratio too large",
			mutate: func(doc map[string]interface{}) {
				doc["MATERIAL"].(map[string]interface{})["poisson_ratio"] = 0.6
			},
			wantPath:   "MATERIAL.poisson_ratio",
			wantReason: "must be in [0, 0.5)",
		},
		{
			name: "negative length",
			mutate: func(doc map[string]interface{}) {
				doc["GEOMETRY"].(map[string]interface{})["length_mm"] = -0.001
			},
			wantPath:   "GEOMETRY.length_mm",
			wantReason: "must be a positive number",
		},
		{
			name: "zero element size",
			mutate: func(doc map[string]interface{}) {
				doc["DISCRETIZATION"].(map[string]interface{})["element_size_mm"] = 0.0
			},
			wantPath:   "DISCRETIZATION.element_size_mm",
			wantReason: "must be a positive number",
		},
		{
			name: "negative velocity",
			mutate: func(doc map[string]interface{}) {
				doc["LOADING"].(map[string]interface{})["initial_velocity_m_per_s"] = -1.0
			},
			wantPath:   "LOADING.initial_velocity_m_per_s",
			wantReason: "must be non-negative",
		},
		{
			name: "unknown material",
			mutate: func(doc map[string]interface{}) {
				doc["MATERIAL"].(map[string]interface{})["name"] = "Unobtainium"
			},
			wantPath: "MATERIAL.name",
		},
		{
			name: "unknown solver",
			mutate: func(doc map[string]interface{}) {
				doc["DISCRETIZATION"].(map[string]interface{})["solver_type"] = "quasi-static"
			},
			wantPath: "DISCRETIZATION.solver_type",
		},
		{
			name: "negative extra geometry field",
			mutate: func(doc map[string]interface{}) {
				doc["GEOMETRY"].(map[string]interface{})["height_mm"] = -20.0
			},
			wantPath:   "GEOMETRY.height_mm",
			wantReason: "must be a positive number",
		},
		{
			name: "negative extra loading field",
			mutate: func(doc map[string]interface{}) {
				doc["LOADING"].(map[string]interface{})["ramp_time_ms"] = -1.0
			},
			wantPath:   "LOADING.ramp_time_ms",
			wantReason: "must be non-negative",
		},
		{
			name: "geometry value not a number",
			mutate: func(doc map[string]interface{}) {
				doc["GEOMETRY"].(map[string]interface{})["length_mm"] = "100"
			},
			wantPath:   "GEOMETRY.length_mm",
			wantReason: "must be a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := taylorImpactDoc()
			tt.mutate(doc)

			_, err := Validate(mustMarshal(t, doc))
			var invalid *InvalidValueError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected InvalidValueError, got %v", err)
			}
			if invalid.Path != tt.wantPath {
				t.Errorf("Expected path '%s', got '%s'", tt.wantPath, invalid.Path)
			}
			if tt.wantReason != "" && invalid.Reason != tt.wantReason {
				t.Errorf("Expected reason '%s', got '%s'", tt.wantReason, invalid.Reason)
			}
		})
	}
}

func TestValidateBoundaryValues(t *testing.T) {
	doc := taylorImpactDoc()
	doc["MATERIAL"].(map[string]interface{})["poisson_ratio"] = 0.0
	doc["LOADING"].(map[string]interface{})["initial_velocity_m_per_s"] = 0.0

	cfg, err := Validate(mustMarshal(t, doc))
	if err != nil {
		t.Fatalf("Boundary values should be accepted: %v", err)
	}
	if cfg.Material.PoissonRatio != 0 {
		t.Errorf("Expected Poisson ratio 0, got %v", cfg.Material.PoissonRatio)
	}
}

func TestValidateIdempotent(t *testing.T) {
	cfg, err := Validate(mustMarshal(t, taylorImpactDoc()))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	normalized, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal normalized config: %v", err)
	}

	cfg2, err := Validate(normalized)
	if err != nil {
		t.Fatalf("Re-validating normalized output failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, cfg2) {
		t.Errorf("Re-validation changed the config:\nfirst:  %+v\nsecond: %+v", cfg, cfg2)
	}

	normalized2, err := json.Marshal(cfg2)
	if err != nil {
		t.Fatalf("Failed to marshal re-validated config: %v", err)
	}
	if !bytes.Equal(normalized, normalized2) {
		t.Errorf("Normalized output is not stable:\nfirst:  %s\nsecond: %s", normalized, normalized2)
	}
}

func TestValidateExtraGroupPreserved(t *testing.T) {
	// ModalAnalysis does not require LOADING; a present LOADING group is
	// ignored but carried through to the normalized output.
	raw := []byte(`{
		"TEST_TYPE": "ModalAnalysis",
		"GEOMETRY": {"length_mm": 500, "width_mm": 20, "height_mm": 10},
		"MATERIAL": {"name": "Steel", "youngs_modulus_Pa": 200e9, "poisson_ratio": 0.3},
		"DISCRETIZATION": {"element_size_mm": 2, "solver_type": "implicit"},
		"LOADING": {"tip_load_N": 50}
	}`)

	cfg, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if _, ok := cfg.Extra["LOADING"]; !ok {
		t.Fatalf("Expected LOADING to be preserved as an extra group, got %v", cfg.Extra)
	}

	normalized, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	cfg2, err := Validate(normalized)
	if err != nil {
		t.Fatalf("Re-validating with extra group failed: %v", err)
	}
	if _, ok := cfg2.Extra["LOADING"]; !ok {
		t.Errorf("Extra group lost on round trip")
	}
}

func TestValidateClosedGroupsDropExtras(t *testing.T) {
	// MATERIAL and DISCRETIZATION have fixed schemas: unknown fields are
	// dropped from the normalized output rather than preserved.
	doc := taylorImpactDoc()
	doc["MATERIAL"].(map[string]interface{})["density_kg_per_m3"] = 8960.0
	doc["DISCRETIZATION"].(map[string]interface{})["mesh_quality"] = "fine"

	cfg, err := Validate(mustMarshal(t, doc))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	normalized, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	for _, dropped := range []string{"density_kg_per_m3", "mesh_quality"} {
		if bytes.Contains(normalized, []byte(dropped)) {
			t.Errorf("Unknown field %s survived normalization: %s", dropped, normalized)
		}
	}

	if _, err := Validate(normalized); err != nil {
		t.Errorf("Re-validating normalized output failed: %v", err)
	}
}

func TestValidateModelName(t *testing.T) {
	doc := taylorImpactDoc()
	doc["MODEL_NAME"] = "Taylor_Cu_180ms"

	cfg, err := Validate(mustMarshal(t, doc))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.ModelName != "Taylor_Cu_180ms" {
		t.Errorf("Expected model name 'Taylor_Cu_180ms', got '%s'", cfg.ModelName)
	}
}

func TestValidateRejectsMalformedDocument(t *testing.T) {
	if _, err := Validate([]byte(`[1, 2, 3]`)); err == nil {
		t.Error("Expected error for non-object document")
	}
	if _, err := Validate([]byte(`{"TEST_TYPE": 42}`)); err == nil {
		t.Error("Expected error for non-string TEST_TYPE")
	}
}
