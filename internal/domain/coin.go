package domain

import "time"

// ─── Coin Ledger Types ──────────────────────────────────────────────────────
// Every coin operation creates matched DEBIT/CREDIT entries between the
// mint pool and the user wallet. SUM(debits) == SUM(credits) is an
// invariant; the wallet balance never goes negative.

// CoinTxType categorizes a ledger transaction.
type CoinTxType string

const (
	CoinTxEarn  CoinTxType = "EARN"
	CoinTxSpend CoinTxType = "SPEND"
)

// CoinEntryType marks one side of a double entry.
type CoinEntryType string

const (
	CoinEntryDebit  CoinEntryType = "DEBIT"
	CoinEntryCredit CoinEntryType = "CREDIT"
)

// Well-known ledger accounts.
const (
	AccountWallet = "wallet" // the user's spendable balance
	AccountMint   = "mint"   // source/sink for reward coins
)

// CoinLedgerEntry is one row of the coin ledger. Balance is the
// account's running balance after this entry.
type CoinLedgerEntry struct {
	ID        int64         `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Type      CoinTxType    `json:"type"`
	EntryType CoinEntryType `json:"entry_type"`
	Account   string        `json:"account"`
	Amount    int           `json:"amount"`
	Reason    string        `json:"reason"`
	Balance   int           `json:"balance"`
}
