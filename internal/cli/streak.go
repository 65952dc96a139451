package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stepling-app/stepling/internal/daemon"
	"github.com/stepling-app/stepling/internal/domain"
)

func init() {
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current and longest goal streak",
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := d.Engine.Progress()
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s)\n", state.CurrentStreak)
	fmt.Printf("Longest streak: %d day(s)\n", state.LongestStreak)
	fmt.Printf("Daily goal:     %d steps\n", domain.DailyGoal)

	if state.TodaySteps < domain.DailyGoal {
		fmt.Printf("\n%d steps to go today to keep the streak alive.\n",
			domain.DailyGoal-state.TodaySteps)
	}
	return nil
}
