package contract

import "strings"

// MaterialProperties holds reference elastic constants for a known material.
// They seed interactive prompts and agent defaults; the document's own values
// are always authoritative.
type MaterialProperties struct {
	Name            string
	YoungsModulusPa float64
	PoissonRatio    float64
}

// materials is the closed set of materials the contract accepts.
var materials = map[string]MaterialProperties{
	"Steel":    {Name: "Steel", YoungsModulusPa: 200e9, PoissonRatio: 0.30},
	"Aluminum": {Name: "Aluminum", YoungsModulusPa: 70e9, PoissonRatio: 0.33},
	"Copper":   {Name: "Copper", YoungsModulusPa: 110e9, PoissonRatio: 0.34},
	"Titanium": {Name: "Titanium", YoungsModulusPa: 114e9, PoissonRatio: 0.34},
	"Brass":    {Name: "Brass", YoungsModulusPa: 100e9, PoissonRatio: 0.35},
}

var materialOrder = []string{"Steel", "Aluminum", "Copper", "Titanium", "Brass"}

// KnownMaterials returns the names of all accepted materials.
func KnownMaterials() []string {
	out := make([]string, len(materialOrder))
	copy(out, materialOrder)
	return out
}

// LookupMaterial resolves a material name case-insensitively.
func LookupMaterial(name string) (MaterialProperties, bool) {
	for _, canonical := range materialOrder {
		if strings.EqualFold(name, canonical) {
			return materials[canonical], true
		}
	}
	return MaterialProperties{}, false
}
