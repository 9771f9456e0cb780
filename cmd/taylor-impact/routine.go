package taylorimpact

import (
	"fmt"
	"math"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

// Routine sets up a Taylor impact test: a cylindrical specimen fired against
// a rigid wall, explicit dynamics.
type Routine struct{}

// New creates a new Taylor impact routine
func New() dispatch.Routine {
	return &Routine{}
}

func init() {
	if err := dispatch.DefaultRegistry.Register("TaylorImpact", New); err != nil {
		panic(fmt.Sprintf("failed to register TaylorImpact routine: %v", err))
	}
}

// TestType returns the canonical test type tag
func (r *Routine) TestType() string {
	return "TaylorImpact"
}

// Description returns a brief description of the experiment
func (r *Routine) Description() string {
	return "Cylindrical specimen impacting a rigid wall at velocity (Taylor test)"
}

// EstimateMesh predicts the structured hex mesh for the cylinder.
func (r *Routine) EstimateMesh(cfg *contract.SimulationConfig) (dispatch.MeshEstimate, error) {
	length := cfg.Geometry["length_mm"]
	diameter := cfg.Geometry["diameter_mm"]
	size := cfg.Discretization.ElementSizeMM

	alongAxis := seeds(length, size)
	across := seeds(diameter, size)

	// Quarter-circle cross section swept along the axis.
	crossElems := int(math.Ceil(math.Pi / 4.0 * float64(across*across)))
	crossNodes := int(math.Ceil(math.Pi / 4.0 * float64((across+1)*(across+1))))

	return dispatch.MeshEstimate{
		Elements: alongAxis * crossElems,
		Nodes:    (alongAxis + 1) * crossNodes,
	}, nil
}

func seeds(dimension, elementSize float64) int {
	n := int(math.Ceil(dimension / elementSize))
	if n < 1 {
		n = 1
	}
	return n
}
