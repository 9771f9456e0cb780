package contract

import (
	"bytes"
	"encoding/json"
	"sort"
)

// SolverType selects the Abaqus analysis procedure.
type SolverType string

const (
	SolverExplicit SolverType = "explicit"
	SolverImplicit SolverType = "implicit"
)

// Material holds the validated MATERIAL group.
type Material struct {
	Name            string
	YoungsModulusPa float64
	PoissonRatio    float64
}

// Discretization holds the validated DISCRETIZATION group.
type Discretization struct {
	ElementSizeMM float64
	SolverType    SolverType
}

// SimulationConfig is the validated, normalized form of a simulation request.
// It is constructed by Validate, consumed once by the dispatcher, and never
// mutated afterwards.
//
// Geometry and Loading carry every numeric field present in the document,
// required fields and preserved extras alike. Extra holds parameter groups
// the selected test type does not require, preserved verbatim.
type SimulationConfig struct {
	TestType       string
	ModelName      string
	Geometry       map[string]float64
	Material       Material
	Loading        map[string]float64
	Discretization Discretization
	Extra          map[string]json.RawMessage
}

// MarshalJSON emits the exact wire key structure: TEST_TYPE, optional
// MODEL_NAME, the required groups in document order, then preserved extra
// groups sorted by name. The output round-trips through Validate unchanged.
func (c *SimulationConfig) MarshalJSON() ([]byte, error) {
	spec := testTypes[c.TestType]

	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeKey := func(key string, value []byte) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
	}
	writeVal := func(key string, value interface{}) error {
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		writeKey(key, v)
		return nil
	}

	if err := writeVal(KeyTestType, c.TestType); err != nil {
		return nil, err
	}
	if c.ModelName != "" {
		if err := writeVal(KeyModelName, c.ModelName); err != nil {
			return nil, err
		}
	}

	for _, group := range spec.groups {
		var encoded []byte
		var err error
		switch group {
		case GroupGeometry:
			encoded, err = marshalNumericGroup(c.Geometry, spec.geometry)
		case GroupLoading:
			encoded, err = marshalNumericGroup(c.Loading, spec.loading)
		case GroupMaterial:
			encoded, err = json.Marshal(map[string]interface{}{
				"name":              c.Material.Name,
				"youngs_modulus_Pa": c.Material.YoungsModulusPa,
				"poisson_ratio":     c.Material.PoissonRatio,
			})
		case GroupDiscretization:
			encoded, err = json.Marshal(map[string]interface{}{
				"element_size_mm": c.Discretization.ElementSizeMM,
				"solver_type":     c.Discretization.SolverType,
			})
		}
		if err != nil {
			return nil, err
		}
		writeKey(group, encoded)
	}

	extraNames := make([]string, 0, len(c.Extra))
	for name := range c.Extra {
		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames)
	for _, name := range extraNames {
		writeKey(name, c.Extra[name])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNumericGroup writes required fields in table order followed by
// preserved extras sorted by key.
func marshalNumericGroup(values map[string]float64, required []numField) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	written := make(map[string]bool, len(values))
	first := true
	write := func(key string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		v, err := json.Marshal(values[key])
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		written[key] = true
		return nil
	}

	for _, f := range required {
		if _, ok := values[f.key]; ok {
			if err := write(f.key); err != nil {
				return nil, err
			}
		}
	}
	extras := make([]string, 0, len(values))
	for key := range values {
		if !written[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		if err := write(key); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
