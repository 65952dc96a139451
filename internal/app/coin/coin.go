// Package coin implements the double-entry coin ledger.
// Every coin operation creates matched DEBIT/CREDIT entries between the
// mint pool and the user's wallet; SUM(debits) == SUM(credits) is an
// invariant and the wallet balance never goes negative.
package coin

import (
	"fmt"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/metrics"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

// Service manages the coin economy.
type Service struct {
	db *sqlite.DB
}

// NewService creates a coin service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Balance returns the current wallet balance.
func (s *Service) Balance() (int, error) {
	return s.db.CoinBalance(domain.AccountWallet)
}

// LifetimeEarned returns the total coins ever credited to the wallet.
func (s *Service) LifetimeEarned() (int, error) {
	return s.db.LifetimeEarned(domain.AccountWallet)
}

// Award records coins earned from a progression event.
// Creates matched DEBIT (mint) and CREDIT (wallet) entries.
func (s *Service) Award(amount int, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("award %q: %w", reason, domain.ErrNonPositiveAmount)
	}

	now := time.Now()

	mintBal, err := s.db.CoinBalance(domain.AccountMint)
	if err != nil {
		return fmt.Errorf("get mint balance: %w", err)
	}
	walletBal, err := s.db.CoinBalance(domain.AccountWallet)
	if err != nil {
		return fmt.Errorf("get wallet balance: %w", err)
	}

	// DEBIT mint (source of reward coins)
	_, err = s.db.InsertCoinEntry(domain.CoinLedgerEntry{
		Timestamp: now,
		Type:      domain.CoinTxEarn,
		EntryType: domain.CoinEntryDebit,
		Account:   domain.AccountMint,
		Amount:    amount,
		Reason:    reason,
		Balance:   mintBal - amount,
	})
	if err != nil {
		return fmt.Errorf("debit mint: %w", err)
	}

	// CREDIT wallet (destination)
	_, err = s.db.InsertCoinEntry(domain.CoinLedgerEntry{
		Timestamp: now,
		Type:      domain.CoinTxEarn,
		EntryType: domain.CoinEntryCredit,
		Account:   domain.AccountWallet,
		Amount:    amount,
		Reason:    reason,
		Balance:   walletBal + amount,
	})
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	metrics.CoinsEarned.WithLabelValues(reason).Add(float64(amount))
	return nil
}

// Spend records coins spent on a purchase. Fails with
// domain.ErrInsufficientCoins if the wallet cannot cover the amount.
func (s *Service) Spend(amount int, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("spend %q: %w", reason, domain.ErrNonPositiveAmount)
	}

	walletBal, err := s.db.CoinBalance(domain.AccountWallet)
	if err != nil {
		return fmt.Errorf("get wallet balance: %w", err)
	}
	if walletBal < amount {
		return fmt.Errorf("have %d, need %d: %w", walletBal, amount, domain.ErrInsufficientCoins)
	}

	now := time.Now()
	mintBal, err := s.db.CoinBalance(domain.AccountMint)
	if err != nil {
		return fmt.Errorf("get mint balance: %w", err)
	}

	// DEBIT wallet
	_, err = s.db.InsertCoinEntry(domain.CoinLedgerEntry{
		Timestamp: now,
		Type:      domain.CoinTxSpend,
		EntryType: domain.CoinEntryDebit,
		Account:   domain.AccountWallet,
		Amount:    amount,
		Reason:    reason,
		Balance:   walletBal - amount,
	})
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}

	// CREDIT mint
	_, err = s.db.InsertCoinEntry(domain.CoinLedgerEntry{
		Timestamp: now,
		Type:      domain.CoinTxSpend,
		EntryType: domain.CoinEntryCredit,
		Account:   domain.AccountMint,
		Amount:    amount,
		Reason:    reason,
		Balance:   mintBal + amount,
	})
	if err != nil {
		return fmt.Errorf("credit mint: %w", err)
	}

	metrics.CoinsSpent.Add(float64(amount))
	return nil
}

// History returns recent wallet ledger entries, newest first.
func (s *Service) History(limit int) ([]domain.CoinLedgerEntry, error) {
	return s.db.CoinEntries(domain.AccountWallet, limit)
}

// ─── Reward Schedule ────────────────────────────────────────────────────────

// Flat awards for one-shot progression events.
const (
	PhaseEvolutionReward = 250
	DailyGoalReward      = 25
	PersonalRecordReward = 150
)

// StreakMilestoneReward returns the award for reaching a streak
// milestone day count.
func StreakMilestoneReward(days int) int {
	switch {
	case days >= 100:
		return 500
	case days >= 30:
		return 300
	default:
		return 100
	}
}

// StepMilestoneReward returns the award for crossing a lifetime step
// milestone.
func StepMilestoneReward(milestone int) int {
	switch {
	case milestone >= 100_000:
		return 500
	case milestone >= 50_000:
		return 300
	default:
		return 100
	}
}
