package threepointbending

import (
	"fmt"
	"math"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

// Routine sets up a three-point bending test: a rectangular beam resting on
// two supports, loaded at midspan.
type Routine struct{}

// New creates a new three-point bending routine
func New() dispatch.Routine {
	return &Routine{}
}

func init() {
	if err := dispatch.DefaultRegistry.Register("ThreePointBending", New); err != nil {
		panic(fmt.Sprintf("failed to register ThreePointBending routine: %v", err))
	}
}

// TestType returns the canonical test type tag
func (r *Routine) TestType() string {
	return "ThreePointBending"
}

// Description returns a brief description of the experiment
func (r *Routine) Description() string {
	return "Beam on two supports loaded at midspan (flexural test)"
}

// EstimateMesh predicts the structured hex mesh for the beam.
func (r *Routine) EstimateMesh(cfg *contract.SimulationConfig) (dispatch.MeshEstimate, error) {
	size := cfg.Discretization.ElementSizeMM

	nS := seeds(cfg.Geometry["span_mm"], size)
	nW := seeds(cfg.Geometry["width_mm"], size)
	nH := seeds(cfg.Geometry["height_mm"], size)

	return dispatch.MeshEstimate{
		Elements: nS * nW * nH,
		Nodes:    (nS + 1) * (nW + 1) * (nH + 1),
	}, nil
}

func seeds(dimension, elementSize float64) int {
	n := int(math.Ceil(dimension / elementSize))
	if n < 1 {
		n = 1
	}
	return n
}
