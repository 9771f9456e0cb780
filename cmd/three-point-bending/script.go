package threepointbending

import (
	"bytes"
	"text/template"

	"github.com/simforge/fea-sim/pkg/contract"
)

type scriptView struct {
	ModelName string
	SeedsSpan int
}

// BuildScript renders the Abaqus/CAE Python driver for the configuration.
func (r *Routine) BuildScript(cfg *contract.SimulationConfig) (string, error) {
	var buf bytes.Buffer
	err := driverTemplate.Execute(&buf, scriptView{
		ModelName: cfg.ModelName,
		SeedsSpan: seeds(cfg.Geometry["span_mm"], cfg.Discretization.ElementSizeMM),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var driverTemplate = template.Must(template.New("three-point-bending").Parse(`# Abaqus/CAE driver for {{.ModelName}} (three-point bending)
from abaqus import *
from abaqusConstants import *
import json
import os

CONFIG_PATH = os.environ.get('ABAQUS_CONFIG_PATH', 'config.json')
with open(CONFIG_PATH, 'r') as f:
    config = json.load(f)

MODEL_NAME = config.get('MODEL_NAME', '{{.ModelName}}')
geom = config['GEOMETRY']
mat = config['MATERIAL']
load = config['LOADING']

# Wire units are mm / Pa; the model is built in SI.
SPAN = geom['span_mm'] / 1000.0
WIDTH = geom['width_mm'] / 1000.0
HEIGHT = geom['height_mm'] / 1000.0
MIDSPAN_LOAD = load['midspan_load_N']

model = mdb.Model(name=MODEL_NAME)

sketch = model.ConstrainedSketch(name='beamProfile', sheetSize=1.0)
sketch.rectangle(point1=(0.0, 0.0), point2=(WIDTH, HEIGHT))
part = model.Part(name='Beam', dimensionality=THREE_D, type=DEFORMABLE_BODY)
part.BaseSolidExtrude(sketch=sketch, depth=SPAN)

material = model.Material(name=mat['name'])
material.Elastic(table=((mat['youngs_modulus_Pa'], mat['poisson_ratio']), ))
model.HomogeneousSolidSection(name='BeamSection', material=mat['name'])
part.SectionAssignment(region=(part.cells,), sectionName='BeamSection')

assembly = model.rootAssembly
instance = assembly.Instance(name='BeamInstance', part=part, dependent=ON)

model.StaticStep(name='Bending', previous='Initial')

# Simple supports along the bottom edges at both ends of the span
leftEdge = instance.edges.findAt(((WIDTH / 2.0, 0.0, 0.0), ))
rightEdge = instance.edges.findAt(((WIDTH / 2.0, 0.0, SPAN), ))
assembly.Set(edges=leftEdge, name='Set-LeftSupport')
assembly.Set(edges=rightEdge, name='Set-RightSupport')
model.DisplacementBC(name='PinLeft', createStepName='Initial',
                     region=assembly.sets['Set-LeftSupport'], u1=0.0, u2=0.0, u3=0.0)
model.DisplacementBC(name='RollerRight', createStepName='Initial',
                     region=assembly.sets['Set-RightSupport'], u1=0.0, u2=0.0)

# Downward load along the top edge at midspan
midEdge = instance.edges.findAt(((WIDTH / 2.0, HEIGHT, SPAN / 2.0), ))
assembly.Set(edges=midEdge, name='Set-Midspan')
model.ConcentratedForce(name='MidspanLoad', createStepName='Bending',
                        region=assembly.sets['Set-Midspan'], cf2=-MIDSPAN_LOAD,
                        distributionType=UNIFORM)

# Seed the span explicitly so the generated mesh matches the estimate.
part.setMeshControls(regions=part.cells, elemShape=HEX, technique=STRUCTURED)
part.seedPart(size=config['DISCRETIZATION']['element_size_mm'] / 1000.0, deviationFactor=0.1)
spanEdges = part.edges.findAt(((0.0, 0.0, SPAN / 2.0), ))
part.seedEdgeByNumber(edges=spanEdges, number={{.SeedsSpan}}, constraint=FINER)
part.generateMesh()

job = mdb.Job(name=MODEL_NAME, model=MODEL_NAME, type=ANALYSIS)
job.submit(consistencyChecking=OFF)
job.waitForCompletion()

print('Three-point bending model %s submitted.' % MODEL_NAME)
`))
