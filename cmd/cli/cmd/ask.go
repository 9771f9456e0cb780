package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/simforge/fea-sim/pkg/agent"
	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/logger"
)

var askCmd = &cobra.Command{
	Use:   "ask [request]",
	Short: "Describe a simulation in plain language",
	Long: `Send a natural-language request to the Gemini agent, validate the
generated configuration, and submit it after confirmation.

Example:
  fea-sim ask "simulate a 10cm copper rod hitting a wall at 250 m/s"`,
	RunE: askAgent,
}

func init() {
	askCmd.Flags().BoolP("interactive", "i", false, "keep prompting for requests")
	askCmd.Flags().BoolP("yes", "y", false, "submit without confirmation")
	askCmd.Flags().Bool("dry-run", false, "prepare the job directory without submitting")
	askCmd.Flags().String("model", "", "Gemini model to use (default "+agent.DefaultModel+")")
}

func askAgent(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	model, _ := cmd.Flags().GetString("model")
	nlAgent, err := agent.New(ctx, os.Getenv("GOOGLE_API_KEY"), model)
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	autoConfirm, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	request := strings.TrimSpace(strings.Join(args, " "))
	if request == "" && !interactive {
		return fmt.Errorf("no request given (pass a request or use -i)")
	}

	for {
		if request == "" {
			prompt := &survey.Input{Message: "Describe the simulation:"}
			if err := survey.AskOne(prompt, &request, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}

		if err := handleRequest(ctx, nlAgent, request, autoConfirm, dryRun); err != nil {
			if !interactive {
				return err
			}
			logger.Errorf("%v", err)
		}

		if !interactive {
			return nil
		}
		request = ""
	}
}

func handleRequest(ctx context.Context, nlAgent *agent.Agent, request string, autoConfirm, dryRun bool) error {
	logger.Progress("Generating configuration...")
	raw, err := nlAgent.GenerateConfig(ctx, request)
	if err != nil {
		return err
	}

	cfg, err := contract.Validate(raw)
	if err != nil {
		return fmt.Errorf("agent produced an invalid configuration: %w", err)
	}

	normalized, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	logger.LogSection("Generated configuration")
	fmt.Println(string(normalized))

	if !autoConfirm {
		var confirm bool
		confirmPrompt := &survey.Confirm{
			Message: "Submit this configuration?",
			Default: true,
		}
		if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
			return err
		}
		if !confirm {
			logger.Info("Submission cancelled")
			return nil
		}
	}

	return executeConfig(cfg, dryRun)
}
