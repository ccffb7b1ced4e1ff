package service

import (
	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// BankMetricsAnalyzer – derived health indicators from raw bank aggregates
// ---------------------------------------------------------------------------

// BankMetrics are descriptive ratios surfaced for human review and consumed
// by the risk scorer. Ratio pointers are nil when the analysis window is
// empty (zero months), never infinity or a fabricated zero.
type BankMetrics struct {
	NSFPerMonth        *decimal.Decimal
	OverdraftsPerMonth *decimal.Decimal
	// DepositDayCoverage is deposit days over calendar days in the window.
	DepositDayCoverage *decimal.Decimal
	// BalanceVolatility is (max - min) relative to the average balance.
	BalanceVolatility *decimal.Decimal
	AvgDepositSize    decimal.Decimal
	MonthsAnalyzed    int
}

const calendarDaysPerMonth = 30

// BankMetricsAnalyzer derives secondary indicators from a bank analysis
// snapshot. Stateless and pure.
type BankMetricsAnalyzer struct{}

func NewBankMetricsAnalyzer() BankMetricsAnalyzer {
	return BankMetricsAnalyzer{}
}

// Analyze computes the derived ratios. Call only with a non-nil analysis;
// a zero-month window yields nil ratios rather than dividing by zero.
func (BankMetricsAnalyzer) Analyze(ba model.BankAnalysis) BankMetrics {
	m := BankMetrics{
		AvgDepositSize: ba.AvgDepositSize,
		MonthsAnalyzed: ba.MonthsAnalyzed,
	}
	if ba.MonthsAnalyzed <= 0 {
		return m
	}

	months := decimal.NewFromInt(int64(ba.MonthsAnalyzed))

	nsf := decimal.NewFromInt(int64(ba.NSFCount)).Div(months)
	m.NSFPerMonth = &nsf

	od := decimal.NewFromInt(int64(ba.OverdraftCount)).Div(months)
	m.OverdraftsPerMonth = &od

	calendarDays := months.Mul(decimal.NewFromInt(calendarDaysPerMonth))
	coverage := decimal.NewFromInt(int64(ba.DepositDayCount)).Div(calendarDays)
	m.DepositDayCoverage = &coverage

	if ba.AvgDailyBalance.IsPositive() {
		vol := ba.MaxDailyBalance.Sub(ba.MinDailyBalance).Div(ba.AvgDailyBalance)
		m.BalanceVolatility = &vol
	}
	return m
}
