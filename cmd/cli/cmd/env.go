package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/simforge/fea-sim/pkg/config"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage solver environments",
	Long:  `Manage Abaqus solver environment configurations`,
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured environments",
	RunE:  listEnvironments,
}

var envAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new environment",
	RunE:  addEnvironment,
}

var envRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an environment",
	RunE:  removeEnvironment,
}

func init() {
	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envAddCmd)
	envCmd.AddCommand(envRemoveCmd)
}

func listEnvironments(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	if len(cfg.Environments) == 0 {
		fmt.Println("No environments configured")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCOMMAND\tEXTRA ARGS\tJOB ROOT")
	_, _ = fmt.Fprintln(w, "----\t-------\t----------\t--------")

	for _, env := range cfg.Environments {
		name := env.Name
		if env.Name == cfg.Selected {
			name += " *"
		}
		jobRoot := env.JobRoot
		if jobRoot == "" {
			jobRoot = "jobs"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			name, env.Command, strings.Join(env.ExtraArgs, " "), jobRoot)
	}

	return w.Flush()
}

func addEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	var env config.Environment

	// Prompt for name
	namePrompt := &survey.Input{
		Message: "Environment name:",
	}
	if err := survey.AskOne(namePrompt, &env.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	// Check if name already exists
	for _, existing := range cfg.Environments {
		if existing.Name == env.Name {
			return fmt.Errorf("environment %s already exists", env.Name)
		}
	}

	// Prompt for the solver executable
	commandPrompt := &survey.Input{
		Message: "Solver command:",
		Default: "abaqus",
	}
	if err := survey.AskOne(commandPrompt, &env.Command, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	// Prompt for extra arguments (license flags etc.)
	var extraArgs string
	extraPrompt := &survey.Input{
		Message: "Extra arguments (optional):",
		Help:    "Appended to every solver invocation, e.g. license server flags",
	}
	if err := survey.AskOne(extraPrompt, &extraArgs); err != nil {
		return err
	}
	if extraArgs != "" {
		env.ExtraArgs = strings.Fields(extraArgs)
	}

	// Prompt for the job root directory
	jobRootPrompt := &survey.Input{
		Message: "Job root directory (optional):",
		Help:    "Where job directories are created; empty means ./jobs",
	}
	if err := survey.AskOne(jobRootPrompt, &env.JobRoot); err != nil {
		return err
	}

	// Add to config
	cfg.Environments = append(cfg.Environments, env)

	// Save config
	if err := config.SaveEnvironments(cfg); err != nil {
		return fmt.Errorf("failed to save environments: %w", err)
	}

	fmt.Printf("Environment %s added successfully\n", env.Name)
	return nil
}

func removeEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	if len(cfg.Environments) == 0 {
		fmt.Println("No environments to remove")
		return nil
	}

	// Build list of environment names
	names := make([]string, len(cfg.Environments))
	for i, env := range cfg.Environments {
		names[i] = env.Name
	}

	// Prompt for selection
	var selected string
	prompt := &survey.Select{
		Message: "Select environment to remove:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	// Confirm removal
	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	// Remove from config
	newEnvs := make([]config.Environment, 0, len(cfg.Environments)-1)
	for _, env := range cfg.Environments {
		if env.Name != selected {
			newEnvs = append(newEnvs, env)
		}
	}
	cfg.Environments = newEnvs
	if cfg.Selected == selected {
		cfg.Selected = ""
	}

	// Save config
	if err := config.SaveEnvironments(cfg); err != nil {
		return fmt.Errorf("failed to save environments: %w", err)
	}

	fmt.Printf("Environment %s removed successfully\n", selected)
	return nil
}
