package coin

import (
	"errors"
	"testing"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Service Tests ──────────────────────────────────────────────────────────

func TestService_InitialBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	bal, err := svc.Balance()
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if bal != 0 {
		t.Errorf("initial balance = %d, want 0", bal)
	}
}

func TestService_Award(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if err := svc.Award(250, "phase_evolution"); err != nil {
		t.Fatalf("Award() error: %v", err)
	}

	bal, err := svc.Balance()
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if bal != 250 {
		t.Errorf("balance after award = %d, want 250", bal)
	}
}

func TestService_AwardMultiple(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	svc.Award(25, "daily_goal")
	svc.Award(100, "streak_7")
	svc.Award(150, "personal_record")

	bal, _ := svc.Balance()
	if bal != 275 {
		t.Errorf("balance = %d, want 275", bal)
	}
}

func TestService_AwardNonPositive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if err := svc.Award(-5, "bad"); !errors.Is(err, domain.ErrNonPositiveAmount) {
		t.Errorf("Award(-5) error = %v, want ErrNonPositiveAmount", err)
	}
	if err := svc.Award(0, "zero"); !errors.Is(err, domain.ErrNonPositiveAmount) {
		t.Errorf("Award(0) error = %v, want ErrNonPositiveAmount", err)
	}
}

func TestService_Spend(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	svc.Award(500, "phase_evolution")

	if err := svc.Spend(150, "cosmetic:hat_party"); err != nil {
		t.Fatalf("Spend() error: %v", err)
	}

	bal, _ := svc.Balance()
	if bal != 350 {
		t.Errorf("balance after award 500, spend 150 = %d, want 350", bal)
	}
}

func TestService_SpendInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	svc.Award(10, "daily_goal")

	err := svc.Spend(20, "cosmetic:bg_sunset")
	if !errors.Is(err, domain.ErrInsufficientCoins) {
		t.Errorf("Spend(20) with balance 10: error = %v, want ErrInsufficientCoins", err)
	}

	// Failed spend must not touch the ledger.
	bal, _ := svc.Balance()
	if bal != 10 {
		t.Errorf("balance after rejected spend = %d, want 10", bal)
	}
}

func TestService_DoubleEntryBalances(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	svc.Award(300, "streak_30")
	svc.Spend(100, "cosmetic:skin_gold")

	wallet, _ := db.CoinBalance(domain.AccountWallet)
	mint, _ := db.CoinBalance(domain.AccountMint)
	if wallet+mint != 0 {
		t.Errorf("wallet(%d) + mint(%d) = %d, want 0", wallet, mint, wallet+mint)
	}
}

func TestService_LifetimeEarned(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	svc.Award(100, "streak_7")
	svc.Award(25, "daily_goal")
	svc.Spend(50, "cosmetic:hat_cap")

	earned, err := svc.LifetimeEarned()
	if err != nil {
		t.Fatalf("LifetimeEarned() error: %v", err)
	}
	// Spending does not reduce lifetime earnings.
	if earned != 125 {
		t.Errorf("LifetimeEarned() = %d, want 125", earned)
	}
}

func TestService_History(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	svc.Award(10, "daily_goal")
	svc.Award(20, "mission:step_target")

	entries, err := svc.History(10)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("History() = %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Reason != "mission:step_target" {
		t.Errorf("entries[0].Reason = %q, want most recent entry first", entries[0].Reason)
	}
}

// ─── Reward Schedule Tests ──────────────────────────────────────────────────

func TestStreakMilestoneReward(t *testing.T) {
	cases := []struct {
		days, want int
	}{
		{7, 100},
		{14, 100},
		{30, 300},
		{60, 300},
		{100, 500},
		{365, 500},
	}
	for _, c := range cases {
		if got := StreakMilestoneReward(c.days); got != c.want {
			t.Errorf("StreakMilestoneReward(%d) = %d, want %d", c.days, got, c.want)
		}
	}
}

func TestStepMilestoneReward(t *testing.T) {
	cases := []struct {
		milestone, want int
	}{
		{10_000, 100},
		{25_000, 100},
		{50_000, 300},
		{100_000, 500},
		{1_000_000, 500},
	}
	for _, c := range cases {
		if got := StepMilestoneReward(c.milestone); got != c.want {
			t.Errorf("StepMilestoneReward(%d) = %d, want %d", c.milestone, got, c.want)
		}
	}
}
