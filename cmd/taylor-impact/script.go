package taylorimpact

import (
	"bytes"
	"text/template"

	"github.com/simforge/fea-sim/pkg/contract"
)

// scriptView carries the render-time values of the driver. Physical
// parameters stay in config.json and are read at solver runtime, so a job can
// be tweaked by editing its config without regenerating the script.
type scriptView struct {
	ModelName string
	SeedsAxis int
	SeedsDiam int
}

// BuildScript renders the Abaqus/CAE Python driver for the configuration.
func (r *Routine) BuildScript(cfg *contract.SimulationConfig) (string, error) {
	var buf bytes.Buffer
	err := driverTemplate.Execute(&buf, scriptView{
		ModelName: cfg.ModelName,
		SeedsAxis: seeds(cfg.Geometry["length_mm"], cfg.Discretization.ElementSizeMM),
		SeedsDiam: seeds(cfg.Geometry["diameter_mm"], cfg.Discretization.ElementSizeMM),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var driverTemplate = template.Must(template.New("taylor-impact").Parse(`# Abaqus/CAE driver for {{.ModelName}} (Taylor impact test)
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
RADIUS = geom['diameter_mm'] / 2000.0
VELOCITY = load['initial_velocity_m_per_s']
DURATION = load['impact_duration_ms'] / 1000.0

model = mdb.Model(name=MODEL_NAME)

# Specimen: solid cylinder extruded along Z
sketch = model.ConstrainedSketch(name='specimenProfile', sheetSize=1.0)
sketch.CircleByCenterPerimeter(center=(0.0, 0.0), point1=(RADIUS, 0.0))
part = model.Part(name='Specimen', dimensionality=THREE_D, type=DEFORMABLE_BODY)
part.BaseSolidExtrude(sketch=sketch, depth=LENGTH)

material = model.Material(name=mat['name'])
material.Elastic(table=((mat['youngs_modulus_Pa'], mat['poisson_ratio']), ))
model.HomogeneousSolidSection(name='SpecimenSection', material=mat['name'])
part.SectionAssignment(region=(part.cells,), sectionName='SpecimenSection')

assembly = model.rootAssembly
instance = assembly.Instance(name='SpecimenInstance', part=part, dependent=ON)

# Rigid target wall at the impact face
wallSketch = model.ConstrainedSketch(name='wallProfile', sheetSize=1.0)
wallSketch.rectangle(point1=(-4 * RADIUS, -4 * RADIUS), point2=(4 * RADIUS, 4 * RADIUS))
wall = model.Part(name='Wall', dimensionality=THREE_D, type=ANALYTIC_RIGID_SURFACE)
wall.AnalyticRigidSurfExtrude(sketch=wallSketch, depth=8 * RADIUS)
wall.ReferencePoint(point=(0.0, 0.0, 0.0))
wallInstance = assembly.Instance(name='WallInstance', part=wall, dependent=ON)
wallInstance.translate(vector=(0.0, 0.0, -0.0001))

step = model.ExplicitDynamicsStep(name='Impact', previous='Initial', timePeriod=DURATION)

# Initial velocity toward the wall
allCells = instance.cells
assembly.Set(cells=allCells, name='Set-Specimen')
model.Velocity(name='ImpactVelocity', region=assembly.sets['Set-Specimen'],
               velocity1=0.0, velocity2=0.0, velocity3=-VELOCITY)

# Fix the wall
wallRegion = (wallInstance.referencePoints.values()[0],)
assembly.Set(referencePoints=wallRegion, name='Set-Wall')
model.EncastreBC(name='FixedWall', createStepName='Initial', region=assembly.sets['Set-Wall'])

# Structured hex mesh, seeded from the element size in config
part.setMeshControls(regions=part.cells, elemShape=HEX, technique=STRUCTURED)
part.seedPart(size=geom['diameter_mm'] / 1000.0 / {{.SeedsDiam}}, deviationFactor=0.1)
part.seedEdgeByNumber(edges=part.edges, number={{.SeedsAxis}}, constraint=FINER)
part.generateMesh()

job = mdb.Job(name=MODEL_NAME, model=MODEL_NAME, type=ANALYSIS)
job.submit(consistencyChecking=OFF)
job.waitForCompletion()

print('Taylor impact model %s submitted.' % MODEL_NAME)
`))
