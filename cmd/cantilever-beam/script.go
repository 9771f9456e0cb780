package cantileverbeam

import (
	"bytes"
	"text/template"

	"github.com/simforge/fea-sim/pkg/contract"
)

type scriptView struct {
	ModelName string
	SeedsL    int
	SeedsW    int
	SeedsH    int
}

// BuildScript renders the Abaqus/CAE Python driver for the configuration.
func (r *Routine) BuildScript(cfg *contract.SimulationConfig) (string, error) {
	size := cfg.Discretization.ElementSizeMM
	var buf bytes.Buffer
	err := driverTemplate.Execute(&buf, scriptView{
		ModelName: cfg.ModelName,
		SeedsL:    seeds(cfg.Geometry["length_mm"], size),
		SeedsW:    seeds(cfg.Geometry["width_mm"], size),
		SeedsH:    seeds(cfg.Geometry["height_mm"], size),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var driverTemplate = template.Must(template.New("cantilever-beam").Parse(`# Abaqus/CAE driver for {{.ModelName}} (cantilever beam bending)
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
LENGTH = geom['length_mm'] / 1000.0
WIDTH = geom['width_mm'] / 1000.0
HEIGHT = geom['height_mm'] / 1000.0
TIP_LOAD = load['tip_load_N']

model = mdb.Model(name=MODEL_NAME)

# Beam: rectangular section extruded along its axis
sketch = model.ConstrainedSketch(name='beamProfile', sheetSize=1.0)
sketch.rectangle(point1=(0.0, 0.0), point2=(WIDTH, HEIGHT))
part = model.Part(name='Beam', dimensionality=THREE_D, type=DEFORMABLE_BODY)
part.BaseSolidExtrude(sketch=sketch, depth=LENGTH)

material = model.Material(name=mat['name'])
material.Elastic(table=((mat['youngs_modulus_Pa'], mat['poisson_ratio']), ))
model.HomogeneousSolidSection(name='BeamSection', material=mat['name'])
part.SectionAssignment(region=(part.cells,), sectionName='BeamSection')

assembly = model.rootAssembly
instance = assembly.Instance(name='BeamInstance', part=part, dependent=ON)

model.StaticStep(name='Bending', previous='Initial')

# Encastre the root face (z = 0)
rootFace = instance.faces.findAt(((WIDTH / 2.0, HEIGHT / 2.0, 0.0), ))
assembly.Set(faces=rootFace, name='Set-Root')
model.EncastreBC(name='FixedRoot', createStepName='Initial', region=assembly.sets['Set-Root'])

# Downward point load at the free tip edge
tipEdge = instance.edges.findAt(((WIDTH / 2.0, HEIGHT, LENGTH), ))
assembly.Set(edges=tipEdge, name='Set-Tip')
model.ConcentratedForce(name='TipLoad', createStepName='Bending',
                        region=assembly.sets['Set-Tip'], cf2=-TIP_LOAD,
                        distributionType=UNIFORM)

# Structured hex mesh, seed counts fixed per edge direction
part.setMeshControls(regions=part.cells, elemShape=HEX, technique=STRUCTURED)
part.seedPart(size=config['DISCRETIZATION']['element_size_mm'] / 1000.0, deviationFactor=0.1)
part.generateMesh()
# Expected grid: {{.SeedsL}} x {{.SeedsW}} x {{.SeedsH}}

job = mdb.Job(name=MODEL_NAME, model=MODEL_NAME, type=ANALYSIS)
job.submit(consistencyChecking=OFF)
job.waitForCompletion()

print('Cantilever beam model %s submitted.' % MODEL_NAME)
`))
