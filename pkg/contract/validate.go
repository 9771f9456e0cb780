package contract

import (
	"encoding/json"
	"math"
	"sort"
)

// Validate checks a raw configuration document against the contract and
// returns its normalized form. It is purely functional: no side effects, and
// the same document always yields the same result.
//
// Checks run in a fixed order and stop at the first failure: TEST_TYPE, then
// each required group in document order, then each field in schema order.
// Failures are reported as *UnsupportedTestTypeError, *MissingParameterError
// or *InvalidValueError, always with the exact wire-format field path.
func Validate(raw []byte) (*SimulationConfig, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &InvalidValueError{Reason: "document must be a JSON object: " + err.Error()}
	}

	rawType, ok := doc[KeyTestType]
	if !ok {
		return nil, &MissingParameterError{Path: KeyTestType}
	}
	var typeStr string
	if err := json.Unmarshal(rawType, &typeStr); err != nil {
		return nil, &InvalidValueError{Path: KeyTestType, Reason: "must be a string"}
	}
	testType, ok := CanonicalTestType(typeStr)
	if !ok {
		return nil, &UnsupportedTestTypeError{TestType: typeStr}
	}
	spec := testTypes[testType]

	cfg := &SimulationConfig{TestType: testType}

	if rawName, ok := doc[KeyModelName]; ok {
		if err := json.Unmarshal(rawName, &cfg.ModelName); err != nil {
			return nil, &InvalidValueError{Path: KeyModelName, Reason: "must be a string"}
		}
	}

	for _, group := range spec.groups {
		rawGroup, ok := doc[group]
		if !ok {
			return nil, &MissingParameterError{Path: group}
		}
		fields, err := parseGroup(group, rawGroup)
		if err != nil {
			return nil, err
		}

		switch group {
		case GroupGeometry:
			cfg.Geometry, err = validateNumericGroup(group, fields, spec.geometry, boundPositive)
		case GroupLoading:
			cfg.Loading, err = validateNumericGroup(group, fields, spec.loading, boundNonNegative)
		case GroupMaterial:
			cfg.Material, err = validateMaterial(fields)
		case GroupDiscretization:
			cfg.Discretization, err = validateDiscretization(fields)
		}
		if err != nil {
			return nil, err
		}
	}

	// Groups the test type does not require are ignored but preserved.
	for key, value := range doc {
		if key == KeyTestType || key == KeyModelName {
			continue
		}
		if containsGroup(spec.groups, key) {
			continue
		}
		if cfg.Extra == nil {
			cfg.Extra = make(map[string]json.RawMessage)
		}
		cfg.Extra[key] = value
	}

	return cfg, nil
}

func containsGroup(groups []string, name string) bool {
	for _, g := range groups {
		if g == name {
			return true
		}
	}
	return false
}

func parseGroup(group string, raw json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &InvalidValueError{Path: group, Reason: "must be an object"}
	}
	return fields, nil
}

// validateNumericGroup checks the required fields in schema order, then
// checks any extra fields so they can be preserved in the normalized output.
// Extras carry the group's default bound: geometry values must be positive,
// loading values non-negative, whatever their key.
func validateNumericGroup(group string, fields map[string]json.RawMessage, required []numField, extraBound bound) (map[string]float64, error) {
	out := make(map[string]float64, len(fields))

	for _, f := range required {
		path := group + "." + f.key
		raw, ok := fields[f.key]
		if !ok {
			return nil, &MissingParameterError{Path: path}
		}
		v, err := parseNumber(path, raw)
		if err != nil {
			return nil, err
		}
		if !f.bound.ok(v) {
			return nil, &InvalidValueError{Path: path, Reason: f.bound.reason()}
		}
		out[f.key] = v
	}

	extras := make([]string, 0, len(fields))
	for key := range fields {
		if _, ok := out[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		path := group + "." + key
		v, err := parseNumber(path, fields[key])
		if err != nil {
			return nil, err
		}
		if !extraBound.ok(v) {
			return nil, &InvalidValueError{Path: path, Reason: extraBound.reason()}
		}
		out[key] = v
	}

	return out, nil
}

func validateMaterial(fields map[string]json.RawMessage) (Material, error) {
	var mat Material

	rawName, ok := fields["name"]
	if !ok {
		return mat, &MissingParameterError{Path: "MATERIAL.name"}
	}
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil {
		return mat, &InvalidValueError{Path: "MATERIAL.name", Reason: "must be a string"}
	}
	props, ok := LookupMaterial(name)
	if !ok {
		return mat, &InvalidValueError{Path: "MATERIAL.name", Reason: "unknown material " + name}
	}
	mat.Name = props.Name

	rawE, ok := fields["youngs_modulus_Pa"]
	if !ok {
		return mat, &MissingParameterError{Path: "MATERIAL.youngs_modulus_Pa"}
	}
	e, err := parseNumber("MATERIAL.youngs_modulus_Pa", rawE)
	if err != nil {
		return mat, err
	}
	if e <= 0 {
		return mat, &InvalidValueError{Path: "MATERIAL.youngs_modulus_Pa", Reason: "must be a positive number"}
	}
	mat.YoungsModulusPa = e

	rawNu, ok := fields["poisson_ratio"]
	if !ok {
		return mat, &MissingParameterError{Path: "MATERIAL.poisson_ratio"}
	}
	nu, err := parseNumber("MATERIAL.poisson_ratio", rawNu)
	if err != nil {
		return mat, err
	}
	if nu < 0 || nu >= 0.5 {
		return mat, &InvalidValueError{Path: "MATERIAL.poisson_ratio", Reason: "must be in [0, 0.5)"}
	}
	mat.PoissonRatio = nu

	return mat, nil
}

func validateDiscretization(fields map[string]json.RawMessage) (Discretization, error) {
	var disc Discretization

	rawSize, ok := fields["element_size_mm"]
	if !ok {
		return disc, &MissingParameterError{Path: "DISCRETIZATION.element_size_mm"}
	}
	size, err := parseNumber("DISCRETIZATION.element_size_mm", rawSize)
	if err != nil {
		return disc, err
	}
	if size <= 0 {
		return disc, &InvalidValueError{Path: "DISCRETIZATION.element_size_mm", Reason: "must be a positive number"}
	}
	disc.ElementSizeMM = size

	rawSolver, ok := fields["solver_type"]
	if !ok {
		return disc, &MissingParameterError{Path: "DISCRETIZATION.solver_type"}
	}
	var solver string
	if err := json.Unmarshal(rawSolver, &solver); err != nil {
		return disc, &InvalidValueError{Path: "DISCRETIZATION.solver_type", Reason: "must be a string"}
	}
	switch SolverType(solver) {
	case SolverExplicit, SolverImplicit:
		disc.SolverType = SolverType(solver)
	default:
		return disc, &InvalidValueError{Path: "DISCRETIZATION.solver_type", Reason: `must be "explicit" or "implicit"`}
	}

	return disc, nil
}

func parseNumber(path string, raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, &InvalidValueError{Path: path, Reason: "must be a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidValueError{Path: path, Reason: "must be a finite number"}
	}
	return v, nil
}
