package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stepling-app/stepling/internal/daemon"
	"github.com/stepling-app/stepling/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pet's current state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := d.Engine.Progress()
	if err != nil {
		return err
	}
	balance, err := d.Engine.Coins().Balance()
	if err != nil {
		return err
	}

	fmt.Printf("Phase:        %d (%s)\n", state.CurrentPhase, domain.PhaseName(state.CurrentPhase))
	fmt.Printf("Today:        %d steps (goal %d)\n", state.TodaySteps, domain.DailyGoal)
	fmt.Printf("Streak:       %d day(s), longest %d\n", state.CurrentStreak, state.LongestStreak)
	fmt.Printf("Best day:     %d steps\n", state.BestDaySteps)
	fmt.Printf("Active days:  %d\n", state.TotalActiveDays)
	fmt.Printf("Total steps:  %d\n", state.TotalStepsSinceStart)
	fmt.Printf("Coins:        %d\n", balance)
	if d.Engine.IsPremium() {
		fmt.Println("Premium:      enabled")
	}
	return nil
}
