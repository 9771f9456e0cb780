package dispatch

import "github.com/simforge/fea-sim/pkg/contract"

// MeshEstimate is the predicted size of the mesh a routine will generate.
type MeshEstimate struct {
	Elements int
	Nodes    int
}

// Routine turns a validated configuration into a concrete Abaqus setup.
// Each supported test type provides one implementation, registered in its
// package init.
type Routine interface {
	// TestType returns the canonical test type tag this routine handles.
	TestType() string

	// Description returns a brief description of the physical experiment.
	Description() string

	// BuildScript renders the Abaqus/CAE Python driver for the
	// configuration. The script reads the job's config.json through the
	// ABAQUS_CONFIG_PATH environment variable.
	BuildScript(cfg *contract.SimulationConfig) (string, error)

	// EstimateMesh predicts element and node counts before submission, so
	// jobs that would blow past solver license limits are caught early.
	EstimateMesh(cfg *contract.SimulationConfig) (MeshEstimate, error)
}

// RoutineConfig is the metadata loaded from a routine's testtype.yaml.
type RoutineConfig struct {
	TestType    string      `yaml:"test_type"`
	Description string      `yaml:"description"`
	Version     string      `yaml:"version"`
	Parameters  []Parameter `yaml:"parameters"`
}

// Parameter describes one configurable value for interactive composition.
// Group and Key locate it in the wire document; Material and Solver types get
// dedicated prompts.
type Parameter struct {
	Group       string      `yaml:"group"` // GEOMETRY, MATERIAL, LOADING, DISCRETIZATION
	Key         string      `yaml:"key"`
	Type        string      `yaml:"type"` // float, material, solver
	Description string      `yaml:"description"`
	Default     interface{} `yaml:"default,omitempty"`
}
