package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/simforge/fea-sim/pkg/abaqus"
	"github.com/simforge/fea-sim/pkg/config"
	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
	"github.com/simforge/fea-sim/pkg/history"
	"github.com/simforge/fea-sim/pkg/logger"
	"github.com/simforge/fea-sim/pkg/utils"

	// Import routines to register them
	_ "github.com/simforge/fea-sim/cmd/cantilever-beam"
	_ "github.com/simforge/fea-sim/cmd/modal-analysis"
	_ "github.com/simforge/fea-sim/cmd/taylor-impact"
	_ "github.com/simforge/fea-sim/cmd/three-point-bending"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long: `Run a simulation from a configuration file, or compose one
interactively for a selected test type`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().StringP("file", "f", "", "configuration file (JSON)")
	runCmd.Flags().StringP("test-type", "t", "", "test type to compose interactively")
	runCmd.Flags().Bool("dry-run", false, "prepare the job directory without submitting")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return executeConfig(cfg, dryRun)
}

// resolveConfig produces a validated configuration from the -f file or from
// interactive composition.
func resolveConfig(cmd *cobra.Command) (*contract.SimulationConfig, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
		cfg, err := contract.Validate(raw)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	testType, _ := cmd.Flags().GetString("test-type")
	if testType != "" {
		canonical, ok := contract.CanonicalTestType(testType)
		if !ok {
			return nil, &contract.UnsupportedTestTypeError{TestType: testType}
		}
		testType = canonical
	} else {
		selected, err := selectTestType()
		if err != nil {
			return nil, fmt.Errorf("failed to select test type: %w", err)
		}
		testType = selected
	}

	info, err := utils.FindRoutineInfo(testType)
	if err != nil {
		return nil, fmt.Errorf("failed to load routine metadata: %w", err)
	}

	doc, err := utils.ComposeDocument(testType, info.Config.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to compose configuration: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode composed configuration: %w", err)
	}
	return contract.Validate(raw)
}

// executeConfig prepares and submits a job for a validated configuration.
// Shared by run and ask.
func executeConfig(cfg *contract.SimulationConfig, dryRun bool) error {
	routine, err := dispatch.DefaultRegistry.Get(cfg.TestType)
	if err != nil {
		return fmt.Errorf("failed to get routine: %w", err)
	}

	env, err := selectSolverEnvironment()
	if err != nil {
		return fmt.Errorf("failed to select environment: %w", err)
	}

	runner := abaqus.NewRunner(env)
	job, err := runner.Prepare(cfg, routine)
	if err != nil {
		return fmt.Errorf("failed to prepare job: %w", err)
	}

	logger.LogSection(fmt.Sprintf("Job %s (%s)", job.ModelName, job.TestType))
	logger.LogKeyValue("Directory", job.Dir)
	logger.LogKeyValue("Environment", env.Name)
	logger.LogKeyValue("Estimated mesh", fmt.Sprintf("%d elements, %d nodes", job.Mesh.Elements, job.Mesh.Nodes))

	if job.OverNodeLimit() {
		logger.Warnf("Estimated %d nodes exceeds the Learning Edition limit of %d; the solver may reject the mesh",
			job.Mesh.Nodes, abaqus.LearningEditionNodeLimit)
	}

	if dryRun {
		logger.Successf("Dry run: job prepared, would execute %s %s",
			env.Command, strings.Join(runner.Args(job), " "))
		return nil
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := &history.Run{
		ID:          job.ID,
		ModelName:   job.ModelName,
		TestType:    job.TestType,
		Environment: env.Name,
		JobDir:      job.Dir,
		StartedAt:   time.Now(),
	}
	if err := store.RecordStart(run); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		logger.Warn("\nReceived interrupt signal, stopping solver...")
		cancel()
	}()

	logger.Submit(fmt.Sprintf("Submitting %s to %s", job.ModelName, env.Name))
	spinner := logger.NewSpinner(fmt.Sprintf("Running %s...", job.ModelName))
	spinner.Start()

	runErr := runner.Execute(ctx, job)
	spinner.Stop()

	if err := store.RecordResult(job.ID, runErr); err != nil {
		logger.Errorf("Failed to record run result: %v", err)
	}

	if runErr != nil {
		return fmt.Errorf("solver run failed: %w", runErr)
	}

	logger.Successf("Run completed, results in %s", job.Dir)
	return nil
}

func selectTestType() (string, error) {
	routineInfos, err := utils.DiscoverRoutines()
	if err != nil {
		return "", err
	}

	if len(routineInfos) == 0 {
		return "", fmt.Errorf("no test type routines found")
	}

	// Build options for selection
	options := make([]string, len(routineInfos))
	descriptions := make(map[string]string)

	for i, info := range routineInfos {
		options[i] = info.Config.TestType
		descriptions[info.Config.TestType] = info.Config.Description
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select test type:",
		Options: options,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}

func selectSolverEnvironment() (*config.Environment, error) {
	envConfig, err := config.LoadEnvironments()
	if err != nil {
		return nil, err
	}
	return envConfig.Resolve(envName)
}

func openHistory() (*history.Store, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dir, "history.db"))
}
