package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration document",
	Long: `Validate a simulation configuration document against the contract
and print the normalized form. Reads from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateConfig,
}

func init() {
	validateCmd.Flags().BoolP("quiet", "q", false, "suppress normalized output, only report errors")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read configuration: %w", err)
		}
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read configuration from stdin: %w", err)
		}
	}

	cfg, err := contract.Validate(raw)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	if quiet {
		logger.Successf("Configuration is valid (%s)", cfg.TestType)
		return nil
	}

	normalized, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode normalized configuration: %w", err)
	}
	fmt.Println(string(normalized))
	return nil
}
