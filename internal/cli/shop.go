package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stepling-app/stepling/internal/app/cosmetic"
	"github.com/stepling-app/stepling/internal/daemon"
	"github.com/stepling-app/stepling/internal/domain"
)

func init() {
	shopListCmd.Flags().StringVar(&shopCategory, "category", "",
		"Filter by category (background, hat, accessory, skin)")
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopFeaturedCmd)
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopEquipCmd)
	shopCmd.AddCommand(shopUnequipCmd)
	rootCmd.AddCommand(shopCmd)
}

var shopCategory string

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse and buy cosmetics for your pet",
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cosmetic catalog with prices and locks",
	RunE:  runShopList,
}

var shopFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show the current featured rotation",
	RunE:  runShopFeatured,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item-id>",
	Short: "Buy a cosmetic item with coins",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

var shopEquipCmd = &cobra.Command{
	Use:   "equip <item-id>",
	Short: "Equip an owned cosmetic item",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopEquip,
}

var shopUnequipCmd = &cobra.Command{
	Use:   "unequip <category>",
	Short: "Clear a loadout slot (background, hat, accessory, skin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopUnequip,
}

func playerState(d *daemon.Daemon) (cosmetic.PlayerState, error) {
	state, err := d.Engine.Progress()
	if err != nil {
		return cosmetic.PlayerState{}, err
	}
	return cosmetic.PlayerState{
		IsPremium:  d.Engine.IsPremium(),
		Phase:      state.CurrentPhase,
		Streak:     state.CurrentStreak,
		TotalSteps: state.TotalStepsSinceStart,
	}, nil
}

func runShopList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	items := cosmetic.Catalog()
	if shopCategory != "" {
		items = cosmetic.ItemsFor(domain.CosmeticCategory(shopCategory))
		if len(items) == 0 {
			return fmt.Errorf("unknown category %q", shopCategory)
		}
	}

	player, err := playerState(d)
	if err != nil {
		return err
	}
	now := d.Engine.Clock()
	loadout, err := d.Shop.Loadout()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRARITY\tPRICE\tSTATUS")
	for _, item := range items {
		elig, err := d.Shop.CanPurchase(item, player, now)
		if err != nil {
			return err
		}
		status := shopStatus(item, elig, loadout)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.Name, item.Category, item.Rarity, item.Price, status)
	}
	return w.Flush()
}

func shopStatus(item domain.CosmeticItem, elig domain.Eligibility, loadout domain.CosmeticLoadout) string {
	switch {
	case loadout.Equipped(item.Category) == item.ID:
		return "equipped"
	case elig.Code == domain.EligibilityAlreadyOwned:
		return "owned"
	case elig.CanBuy():
		return "available"
	default:
		if msg := elig.LockMessage(); msg != "" {
			return msg
		}
		return string(elig.Code)
	}
}

func runShopFeatured(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := d.Engine.Clock()
	items := cosmetic.FeaturedItems(now, d.Engine.IsPremium())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRARITY\tPRICE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", item.ID, item.Name, item.Rarity, item.Price)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nNext rotation in %s\n", cosmetic.TimeUntilNextRotation(now).Round(time.Minute))
	return nil
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	player, err := playerState(d)
	if err != nil {
		return err
	}

	item, err := d.Shop.Purchase(args[0], player, d.Engine.Clock())
	if err != nil {
		return err
	}

	balance, err := d.Engine.Coins().Balance()
	if err != nil {
		return err
	}
	fmt.Printf("Bought %s for %d coins. Balance: %d\n", item.Name, item.Price, balance)
	return nil
}

func runShopEquip(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Shop.Equip(args[0]); err != nil {
		return err
	}
	fmt.Printf("Equipped %s\n", args[0])
	return nil
}

func runShopUnequip(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	cat := domain.CosmeticCategory(args[0])
	valid := false
	for _, c := range domain.CosmeticCategories() {
		if c == cat {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown category %q", args[0])
	}

	if err := d.Shop.Unequip(cat); err != nil {
		return err
	}
	fmt.Printf("Cleared %s slot\n", cat)
	return nil
}
