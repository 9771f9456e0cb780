package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simforge/fea-sim/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available test types",
	Long:  `List all available test types with their descriptions`,
	RunE:  listTestTypes,
}

func listTestTypes(cmd *cobra.Command, args []string) error {
	routineInfos, err := utils.DiscoverRoutines()
	if err != nil {
		return fmt.Errorf("failed to discover test types: %w", err)
	}

	if len(routineInfos) == 0 {
		fmt.Println("No test types found")
		return nil
	}

	// Create tabwriter for formatted output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TEST TYPE\tVERSION\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "---------\t-------\t-----------")

	for _, info := range routineInfos {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
			info.Config.TestType,
			info.Config.Version,
			info.Config.Description,
		)
	}

	return w.Flush()
}
