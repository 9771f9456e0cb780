package contract

import "strings"

// Wire-format group names, in document order.
const (
	GroupGeometry       = "GEOMETRY"
	GroupMaterial       = "MATERIAL"
	GroupLoading        = "LOADING"
	GroupDiscretization = "DISCRETIZATION"
)

// Top-level keys that are not parameter groups.
const (
	KeyTestType  = "TEST_TYPE"
	KeyModelName = "MODEL_NAME"
)

type bound int

const (
	boundPositive bound = iota
	boundNonNegative
)

func (b bound) reason() string {
	if b == boundPositive {
		return "must be a positive number"
	}
	return "must be non-negative"
}

func (b bound) ok(v float64) bool {
	if b == boundPositive {
		return v > 0
	}
	return v >= 0
}

// numField is a required numeric field within a group.
type numField struct {
	key   string
	bound bound
}

// typeSpec describes the parameter groups a test type requires. MATERIAL and
// DISCRETIZATION have fixed schemas shared by all test types; GEOMETRY and
// LOADING fields vary per type.
type typeSpec struct {
	groups   []string
	geometry []numField
	loading  []numField
}

// testTypes is the test type lookup table. Adding a test type is a data
// change here plus a routine package under cmd/.
var testTypes = map[string]typeSpec{
	"TaylorImpact": {
		groups: []string{GroupGeometry, GroupMaterial, GroupLoading, GroupDiscretization},
		geometry: []numField{
			{"length_mm", boundPositive},
			{"diameter_mm", boundPositive},
		},
		loading: []numField{
			{"initial_velocity_m_per_s", boundNonNegative},
			{"impact_duration_ms", boundNonNegative},
		},
	},
	"CantileverBeam": {
		groups: []string{GroupGeometry, GroupMaterial, GroupLoading, GroupDiscretization},
		geometry: []numField{
			{"length_mm", boundPositive},
			{"width_mm", boundPositive},
			{"height_mm", boundPositive},
		},
		loading: []numField{
			{"tip_load_N", boundNonNegative},
		},
	},
	"ThreePointBending": {
		groups: []string{GroupGeometry, GroupMaterial, GroupLoading, GroupDiscretization},
		geometry: []numField{
			{"span_mm", boundPositive},
			{"width_mm", boundPositive},
			{"height_mm", boundPositive},
		},
		loading: []numField{
			{"midspan_load_N", boundNonNegative},
		},
	},
	// Free vibration: no applied load, so LOADING is not required.
	"ModalAnalysis": {
		groups: []string{GroupGeometry, GroupMaterial, GroupDiscretization},
		geometry: []numField{
			{"length_mm", boundPositive},
			{"width_mm", boundPositive},
			{"height_mm", boundPositive},
		},
	},
}

// testTypeOrder keeps listings and error messages deterministic.
var testTypeOrder = []string{
	"TaylorImpact",
	"CantileverBeam",
	"ThreePointBending",
	"ModalAnalysis",
}

// SupportedTestTypes returns all recognized test type tags.
func SupportedTestTypes() []string {
	out := make([]string, len(testTypeOrder))
	copy(out, testTypeOrder)
	return out
}

// RequiredGroups returns the parameter groups the given test type requires.
func RequiredGroups(testType string) ([]string, error) {
	spec, ok := testTypes[testType]
	if !ok {
		return nil, &UnsupportedTestTypeError{TestType: testType}
	}
	groups := make([]string, len(spec.groups))
	copy(groups, spec.groups)
	return groups, nil
}

// CanonicalTestType resolves a test type string to its canonical tag,
// ignoring case, spaces, hyphens and underscores, so "Taylor Impact" and
// "taylor-impact" both resolve to "TaylorImpact".
func CanonicalTestType(s string) (string, bool) {
	folded := foldTag(s)
	for _, tag := range testTypeOrder {
		if foldTag(tag) == folded {
			return tag, true
		}
	}
	return "", false
}

func foldTag(s string) string {
	s = strings.ToLower(s)
	for _, sep := range []string{" ", "-", "_"} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}
