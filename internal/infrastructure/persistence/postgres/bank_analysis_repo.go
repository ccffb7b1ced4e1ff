package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// BankAnalysisRepo implements port.BankAnalysisRepository. Detected payment
// patterns are stored as a JSONB column beside the fixed aggregates.
type BankAnalysisRepo struct {
	pool *pgxpool.Pool
}

// NewBankAnalysisRepo creates a new repository backed by PostgreSQL.
func NewBankAnalysisRepo(pool *pgxpool.Pool) *BankAnalysisRepo {
	return &BankAnalysisRepo{pool: pool}
}

// FindLatestByDeal returns the most recent analysis for a deal, or nil when
// no statement set was ever submitted. Absence is not an error.
func (r *BankAnalysisRepo) FindLatestByDeal(ctx context.Context, dealID string) (*model.BankAnalysis, error) {
	query := `
		SELECT id, deal_id,
		       avg_daily_balance, min_daily_balance, max_daily_balance,
		       total_deposits, deposit_count, avg_deposit_size, deposit_day_count,
		       nsf_count, overdraft_count, months_analyzed,
		       revenue_trend, existing_daily_load, detected_payments, analyzed_at
		FROM bank_analyses
		WHERE deal_id = $1
		ORDER BY analyzed_at DESC
		LIMIT 1
	`
	var (
		ba       model.BankAnalysis
		trendStr string
		payments []byte
	)
	err := r.pool.QueryRow(ctx, query, dealID).Scan(
		&ba.ID, &ba.DealID,
		&ba.AvgDailyBalance, &ba.MinDailyBalance, &ba.MaxDailyBalance,
		&ba.TotalDeposits, &ba.DepositCount, &ba.AvgDepositSize, &ba.DepositDayCount,
		&ba.NSFCount, &ba.OverdraftCount, &ba.MonthsAnalyzed,
		&trendStr, &ba.ExistingDailyLoad, &payments, &ba.AnalyzedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bank analysis: %w", err)
	}

	trend, err := valueobject.NewRevenueTrend(trendStr)
	if err != nil {
		return nil, fmt.Errorf("parse revenue trend: %w", err)
	}
	ba.RevenueTrend = trend

	if len(payments) > 0 {
		if err := json.Unmarshal(payments, &ba.DetectedPayments); err != nil {
			return nil, fmt.Errorf("decode detected payments: %w", err)
		}
	}
	return &ba, nil
}

// Save persists an analysis snapshot (insert-only; a new statement set gets
// a new row).
func (r *BankAnalysisRepo) Save(ctx context.Context, ba model.BankAnalysis) error {
	payments, err := json.Marshal(ba.DetectedPayments)
	if err != nil {
		return fmt.Errorf("encode detected payments: %w", err)
	}
	analyzedAt := ba.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO bank_analyses (
			id, deal_id,
			avg_daily_balance, min_daily_balance, max_daily_balance,
			total_deposits, deposit_count, avg_deposit_size, deposit_day_count,
			nsf_count, overdraft_count, months_analyzed,
			revenue_trend, existing_daily_load, detected_payments, analyzed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`
	_, err = r.pool.Exec(ctx, query,
		ba.ID, ba.DealID,
		ba.AvgDailyBalance, ba.MinDailyBalance, ba.MaxDailyBalance,
		ba.TotalDeposits, ba.DepositCount, ba.AvgDepositSize, ba.DepositDayCount,
		ba.NSFCount, ba.OverdraftCount, ba.MonthsAnalyzed,
		ba.RevenueTrend.String(), ba.ExistingDailyLoad, payments, analyzedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bank analysis: %w", err)
	}
	return nil
}
