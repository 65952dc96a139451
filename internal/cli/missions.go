package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stepling-app/stepling/internal/daemon"
)

func init() {
	rootCmd.AddCommand(missionsCmd)
}

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List today's missions and the weekly challenge",
	RunE:  runMissions,
}

func runMissions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	missions, err := d.Engine.Missions().Missions()
	if err != nil {
		return err
	}
	if len(missions) == 0 {
		fmt.Println("No missions yet — run `stepling sync` first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MISSION\tPROGRESS\tREWARD\tDONE")
	for _, m := range missions {
		done := ""
		if m.IsCompleted() {
			done = "✓"
		}
		fmt.Fprintf(w, "%s\t%d/%d\t%d\t%s\n", m.Title, m.Progress, m.Target, m.CoinReward, done)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if d.Engine.IsPremium() {
		challenge, err := d.Engine.Missions().Challenge(d.Engine.Clock())
		if err != nil {
			return err
		}
		if challenge != nil {
			fmt.Printf("\nWeekly challenge (%s): %s\n", challenge.WeekString, challenge.Title)
			fmt.Printf("  %d/%d for %d coins\n", challenge.Progress, challenge.Target, challenge.CoinReward)
		}
	}
	return nil
}
