package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stepling-app/stepling/internal/daemon"
)

func init() {
	coinsCmd.Flags().IntVar(&coinsLimit, "limit", 15, "Number of ledger entries to show")
	rootCmd.AddCommand(coinsCmd)
}

var coinsLimit int

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "Show the coin balance and recent ledger entries",
	RunE:  runCoins,
}

func runCoins(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	coins := d.Engine.Coins()
	balance, err := coins.Balance()
	if err != nil {
		return err
	}
	lifetime, err := coins.LifetimeEarned()
	if err != nil {
		return err
	}

	fmt.Printf("Balance:         %d coins\n", balance)
	fmt.Printf("Lifetime earned: %d coins\n", lifetime)

	entries, err := coins.History(coinsLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTYPE\tAMOUNT\tREASON")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Type,
			e.Amount,
			e.Reason,
		)
	}
	return w.Flush()
}
