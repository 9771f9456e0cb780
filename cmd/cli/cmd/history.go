package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent solver runs",
	Long:  `Show the most recent solver runs recorded in the run history`,
	RunE:  showHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show")
}

func showHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MODEL\tTEST TYPE\tENVIRONMENT\tSTATUS\tSTARTED\tDURATION")
	_, _ = fmt.Fprintln(w, "-----\t---------\t-----------\t------\t-------\t--------")

	for _, run := range runs {
		duration := "-"
		if d := run.Duration(); d > 0 {
			duration = d.Round(time.Second).String()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ModelName,
			run.TestType,
			run.Environment,
			run.Status,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			duration,
		)
	}

	return w.Flush()
}
