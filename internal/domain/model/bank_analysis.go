package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Bank analysis snapshot (read-only scoring input, at most one per deal)
// ---------------------------------------------------------------------------

// DetectedPayment is a recurring debit pattern found in the merchant's bank
// statements. Fixed daily or weekly debits are consistent with factor-rate
// financing and feed the stacking detector.
type DetectedPayment struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"` // DAILY, WEEKLY
	Occurrences int             `json:"occurrences"`
}

// BankAnalysis is the aggregated view of a merchant's bank statements for a
// deal. The richest input to scoring, and the one most often missing: every
// consumer must tolerate a nil BankAnalysis.
type BankAnalysis struct {
	ID     string
	DealID string

	AvgDailyBalance decimal.Decimal
	MinDailyBalance decimal.Decimal
	MaxDailyBalance decimal.Decimal

	TotalDeposits   decimal.Decimal
	DepositCount    int
	AvgDepositSize  decimal.Decimal
	DepositDayCount int

	NSFCount       int
	OverdraftCount int
	MonthsAnalyzed int

	RevenueTrend valueobject.RevenueTrend

	// ExistingDailyLoad is the estimated daily payment already committed to
	// other financing, derived from the detected payment patterns.
	ExistingDailyLoad decimal.Decimal

	DetectedPayments []DetectedPayment

	AnalyzedAt time.Time
}
