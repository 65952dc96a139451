package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stepling-app/stepling/internal/daemon"
	"github.com/stepling-app/stepling/internal/domain"
)

func init() {
	syncCmd.Flags().IntVar(&syncCumulative, "cumulative", -1,
		"Lifetime step total (defaults to the stored total plus today's delta)")
	rootCmd.AddCommand(syncCmd)
}

var syncCumulative int

var syncCmd = &cobra.Command{
	Use:   "sync <today-steps>",
	Short: "Feed a step reading into the engine",
	Long: `Run one update cycle with today's step count.
The engine recomputes avatar state, streak, phase, missions and
celebrations, and pays out any coins earned by the reading.`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 0 {
		return fmt.Errorf("today-steps must be a non-negative integer, got %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	cumulative := syncCumulative
	if cumulative < 0 {
		// Derive the lifetime total: stored total plus however much
		// today's count grew since the last sync.
		state, err := d.Engine.Progress()
		if err != nil {
			return err
		}
		cumulative = state.TotalStepsSinceStart
		if delta := steps - state.TodaySteps; delta > 0 {
			cumulative += delta
		}
	}

	result, err := d.Engine.Update(domain.StepReading{
		CurrentSteps:    steps,
		CumulativeSteps: cumulative,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Synced %d steps (%s)\n", result.TodaySteps, result.AvatarState.Description())
	fmt.Printf("  Phase:  %d (%s)\n", result.Phase, domain.PhaseName(result.Phase))
	fmt.Printf("  Streak: %d day(s)\n", result.Streak)
	if result.CoinsAwarded > 0 {
		fmt.Printf("  Coins:  +%d\n", result.CoinsAwarded)
	}
	for _, m := range result.CompletedMissions {
		fmt.Printf("  Mission complete: %s (+%d coins)\n", m.Title, m.CoinReward)
	}
	if result.Celebration != nil {
		fmt.Printf("  🎉 %s — %s\n", result.Celebration.Title(), result.Celebration.Subtitle())
	}
	if result.PhaseChanged {
		fmt.Printf("  Your pet evolved to %s!\n", domain.PhaseName(result.Phase))
	}
	return nil
}
