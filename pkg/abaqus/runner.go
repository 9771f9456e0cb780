package abaqus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/simforge/fea-sim/pkg/config"
	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

// LearningEditionNodeLimit is the node cap of the Abaqus Learning Edition
// license. Jobs over the limit still submit; generateMesh fails inside the
// solver, so the precheck warns first.
const LearningEditionNodeLimit = 1000

// ConfigPathEnv tells the driver script where to find its configuration.
const ConfigPathEnv = "ABAQUS_CONFIG_PATH"

// Job is a prepared solver submission: a working directory holding the
// normalized configuration and the generated CAE driver script.
type Job struct {
	ID         string
	ModelName  string
	TestType   string
	Dir        string
	ConfigPath string
	ScriptPath string
	LogPath    string
	Mesh       dispatch.MeshEstimate
}

// OverNodeLimit reports whether the predicted mesh exceeds the Learning
// Edition node cap.
func (j *Job) OverNodeLimit() bool {
	return j.Mesh.Nodes > LearningEditionNodeLimit
}

// Runner prepares and executes solver jobs against one environment.
type Runner struct {
	env *config.Environment
}

// NewRunner creates a runner for the given solver environment.
func NewRunner(env *config.Environment) *Runner {
	return &Runner{env: env}
}

// Prepare creates the job directory and writes config.json and the rendered
// driver script. Nothing is executed yet.
func (r *Runner) Prepare(cfg *contract.SimulationConfig, routine dispatch.Routine) (*Job, error) {
	mesh, err := routine.EstimateMesh(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate mesh: %w", err)
	}

	id := uuid.New().String()
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = fmt.Sprintf("%s_%s", cfg.TestType, id[:8])
	}

	root := r.env.JobRoot
	if root == "" {
		root = "jobs"
	}
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create job directory: %w", err)
	}

	job := &Job{
		ID:         id,
		ModelName:  modelName,
		TestType:   cfg.TestType,
		Dir:        dir,
		ConfigPath: filepath.Join(dir, "config.json"),
		ScriptPath: filepath.Join(dir, "run_model.py"),
		LogPath:    filepath.Join(dir, "run.log"),
		Mesh:       mesh,
	}

	// The driver reads MODEL_NAME, so persist the default assigned above.
	normalized := *cfg
	normalized.ModelName = modelName
	data, err := json.MarshalIndent(&normalized, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(job.ConfigPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write config.json: %w", err)
	}

	script, err := routine.BuildScript(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to build driver script: %w", err)
	}
	if err := os.WriteFile(job.ScriptPath, []byte(script), 0644); err != nil {
		return nil, fmt.Errorf("failed to write driver script: %w", err)
	}

	return job, nil
}

// Args returns the solver command line for a job, without the leading
// executable.
func (r *Runner) Args(job *Job) []string {
	args := []string{"cae", "-script", filepath.Base(job.ScriptPath)}
	return append(args, r.env.ExtraArgs...)
}

// Execute runs the solver for a prepared job and captures its combined
// output to run.log in the job directory. The configuration path is passed
// through the environment, matching what the driver script expects.
func (r *Runner) Execute(ctx context.Context, job *Job) error {
	logFile, err := os.Create(job.LogPath)
	if err != nil {
		return fmt.Errorf("failed to create run.log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	var stderr strings.Builder

	cmd := exec.CommandContext(ctx, r.env.Command, r.Args(job)...)
	cmd.Dir = job.Dir
	cmd.Stdout = logFile
	cmd.Stderr = &multiWriter{file: logFile, tail: &stderr}
	cmd.Env = append(os.Environ(), ConfigPathEnv+"="+filepath.Base(job.ConfigPath))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		tail := strings.TrimSpace(stderr.String())
		if tail != "" {
			return fmt.Errorf("solver run failed: %w\n%s", err, lastLines(tail, 5))
		}
		return fmt.Errorf("solver run failed (see %s): %w", job.LogPath, err)
	}

	return nil
}

type multiWriter struct {
	file *os.File
	tail *strings.Builder
}

func (w *multiWriter) Write(p []byte) (int, error) {
	w.tail.Write(p)
	return w.file.Write(p)
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
