package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stepling-app/stepling/internal/daemon"
	"github.com/stepling-app/stepling/internal/domain"
)

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "Window size (7 or 30)")
	rootCmd.AddCommand(historyCmd)
}

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the rolling daily step history",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyDays < 1 || historyDays > 365 {
		return fmt.Errorf("days must be between 1 and 365, got %d", historyDays)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	records, err := d.Engine.History().LastNDays(d.Engine.Clock(), historyDays)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSTEPS\tGOAL")
	total := 0
	for _, rec := range records {
		goal := ""
		if rec.GoalMet {
			goal = "✓"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", rec.Date, rec.Steps, goal)
		total += rec.Steps
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %d steps over %d day(s) (daily goal %d)\n", total, historyDays, domain.DailyGoal)
	return nil
}
