package modalanalysis

import (
	"bytes"
	"text/template"

	"github.com/simforge/fea-sim/pkg/contract"
)

// numModes is the number of eigenvalues the frequency step extracts.
const numModes = 10

type scriptView struct {
	ModelName string
	NumModes  int
}

// BuildScript renders the Abaqus/CAE Python driver for the configuration.
func (r *Routine) BuildScript(cfg *contract.SimulationConfig) (string, error) {
	var buf bytes.Buffer
	err := driverTemplate.Execute(&buf, scriptView{
		ModelName: cfg.ModelName,
		NumModes:  numModes,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var driverTemplate = template.Must(template.New("modal-analysis").Parse(`# Abaqus/CAE driver for {{.ModelName}} (natural frequency extraction)
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

# Wire units are mm / Pa; the model is built in SI.
LENGTH = geom['length_mm'] / 1000.0
WIDTH = geom['width_mm'] / 1000.0
HEIGHT = geom['height_mm'] / 1000.0

# Frequency extraction needs mass. Reference densities per material, kg/m^3.
DENSITIES = {
    'Steel': 7850.0,
    'Aluminum': 2700.0,
    'Copper': 8960.0,
    'Titanium': 4510.0,
    'Brass': 8500.0,
}
DENSITY = DENSITIES.get(mat['name'], 7850.0)

model = mdb.Model(name=MODEL_NAME)

sketch = model.ConstrainedSketch(name='blockProfile', sheetSize=1.0)
sketch.rectangle(point1=(0.0, 0.0), point2=(WIDTH, HEIGHT))
part = model.Part(name='Block', dimensionality=THREE_D, type=DEFORMABLE_BODY)
part.BaseSolidExtrude(sketch=sketch, depth=LENGTH)

material = model.Material(name=mat['name'])
material.Elastic(table=((mat['youngs_modulus_Pa'], mat['poisson_ratio']), ))
material.Density(table=((DENSITY, ), ))
model.HomogeneousSolidSection(name='BlockSection', material=mat['name'])
part.SectionAssignment(region=(part.cells,), sectionName='BlockSection')

assembly = model.rootAssembly
instance = assembly.Instance(name='BlockInstance', part=part, dependent=ON)

# Clamp one end so the spectrum starts above the rigid body modes
rootFace = instance.faces.findAt(((WIDTH / 2.0, HEIGHT / 2.0, 0.0), ))
assembly.Set(faces=rootFace, name='Set-Root')
model.EncastreBC(name='FixedRoot', createStepName='Initial', region=assembly.sets['Set-Root'])

model.FrequencyStep(name='Modes', previous='Initial', numEigen={{.NumModes}})

part.setMeshControls(regions=part.cells, elemShape=HEX, technique=STRUCTURED)
part.seedPart(size=config['DISCRETIZATION']['element_size_mm'] / 1000.0, deviationFactor=0.1)
part.generateMesh()

job = mdb.Job(name=MODEL_NAME, model=MODEL_NAME, type=ANALYSIS)
job.submit(consistencyChecking=OFF)
job.waitForCompletion()

print('Modal analysis model %s submitted.' % MODEL_NAME)
`))
