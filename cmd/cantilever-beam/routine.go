package cantileverbeam

import (
	"fmt"
	"math"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

// Routine sets up a cantilever beam bending test: a rectangular beam fixed at
// one end with a concentrated load at the free tip.
type Routine struct{}

// New creates a new cantilever beam routine
func New() dispatch.Routine {
	return &Routine{}
}

func init() {
	if err := dispatch.DefaultRegistry.Register("CantileverBeam", New); err != nil {
		panic(fmt.Sprintf("failed to register CantileverBeam routine: %v", err))
	}
}

// TestType returns the canonical test type tag
func (r *Routine) TestType() string {
	return "CantileverBeam"
}

// Description returns a brief description of the experiment
func (r *Routine) Description() string {
	return "Rectangular beam fixed at one end, loaded at the free tip"
}

// EstimateMesh predicts the structured hex mesh for the beam.
func (r *Routine) EstimateMesh(cfg *contract.SimulationConfig) (dispatch.MeshEstimate, error) {
	size := cfg.Discretization.ElementSizeMM

	nL := seeds(cfg.Geometry["length_mm"], size)
	nW := seeds(cfg.Geometry["width_mm"], size)
	nH := seeds(cfg.Geometry["height_mm"], size)

	return dispatch.MeshEstimate{
		Elements: nL * nW * nH,
		Nodes:    (nL + 1) * (nW + 1) * (nH + 1),
	}, nil
}

func seeds(dimension, elementSize float64) int {
	n := int(math.Ceil(dimension / elementSize))
	if n < 1 {
		n = 1
	}
	return n
}
