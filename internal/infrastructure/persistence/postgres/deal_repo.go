package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
	pkgpostgres "github.com/advancehub/underwriting-service/pkg/postgres"
)

// DealRepo implements port.DealRepository. Every write that carries pending
// history rows or comments runs in a single transaction guarded by the
// aggregate version, so stage and trail can never diverge.
type DealRepo struct {
	pool *pgxpool.Pool
}

// NewDealRepo creates a new repository backed by PostgreSQL.
func NewDealRepo(pool *pgxpool.Pool) *DealRepo {
	return &DealRepo{pool: pool}
}

const dealColumns = `
	id, tenant_id, merchant_id, broker_id, source,
	requested_amount, existing_positions, stacking_detected,
	stage, stage_changed_at,
	paper_grade, risk_score,
	approved_amount, factor_rate, term_days,
	daily_payment, weekly_payment, payback_amount,
	decision_notes, decline_reasons, underwriter_id,
	decision_at, funded_at,
	version, created_at, updated_at`

// Create inserts a brand-new deal together with its creation history row.
func (r *DealRepo) Create(ctx context.Context, deal model.Deal) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO deals (` + dealColumns + `)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)
		`
		if _, err := tx.Exec(ctx, query, dealArgs(deal)...); err != nil {
			return fmt.Errorf("insert deal: %w", err)
		}
		return appendTrail(ctx, tx, deal)
	})
}

// FindByID retrieves a single deal.
func (r *DealRepo) FindByID(ctx context.Context, tenantID, dealID string) (model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE tenant_id = $1 AND id = $2`
	deal, err := scanDeal(r.pool.QueryRow(ctx, query, tenantID, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Deal{}, port.ErrDealNotFound
		}
		return model.Deal{}, fmt.Errorf("find deal: %w", err)
	}
	return deal, nil
}

// Save persists a transitioned deal: the row update, the pending history
// rows, and the pending comments commit or roll back together. The aggregate
// already carries the next version, so the guard checks the version the copy
// was loaded at; a mismatch means another transition won the race.
func (r *DealRepo) Save(ctx context.Context, deal model.Deal) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE deals SET
				existing_positions = $3,
				stacking_detected  = $4,
				stage              = $5,
				stage_changed_at   = $6,
				paper_grade        = $7,
				risk_score         = $8,
				approved_amount    = $9,
				factor_rate        = $10,
				term_days          = $11,
				daily_payment      = $12,
				weekly_payment     = $13,
				payback_amount     = $14,
				decision_notes     = $15,
				decline_reasons    = $16,
				underwriter_id     = $17,
				decision_at        = $18,
				funded_at          = $19,
				version            = $20,
				updated_at         = $21
			WHERE tenant_id = $1 AND id = $2 AND version = $22
		`
		var (
			amount, rate, daily, weekly, payback *decimal.Decimal
			termDays                             *int
		)
		if terms := deal.Terms(); terms != nil {
			amount, rate, termDays = &terms.Amount, &terms.FactorRate, &terms.TermDays
			daily, weekly, payback = &terms.DailyPayment, &terms.WeeklyPayment, &terms.PaybackAmount
		}
		tag, err := tx.Exec(ctx, query,
			deal.TenantID(), deal.ID(),
			deal.ExistingPositions(), deal.StackingDetected(),
			deal.Stage().String(), deal.StageChangedAt(),
			nullableGrade(deal.PaperGrade()), deal.RiskScore(),
			amount, rate, termDays, daily, weekly, payback,
			deal.DecisionNotes(), deal.DeclineReasons(), deal.UnderwriterID(),
			deal.DecisionAt(), deal.FundedAt(),
			deal.Version(), deal.UpdatedAt(), deal.Version()-1,
		)
		if err != nil {
			return fmt.Errorf("update deal: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return port.ErrVersionConflict
		}
		return appendTrail(ctx, tx, deal)
	})
}

// appendTrail inserts the aggregate's pending history rows and comments
// inside the caller's transaction.
func appendTrail(ctx context.Context, tx pgx.Tx, deal model.Deal) error {
	for _, h := range deal.PendingHistory() {
		_, err := tx.Exec(ctx, `
			INSERT INTO deal_stage_history (id, deal_id, from_stage, to_stage, actor, note, occurred_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, h.ID, h.DealID, h.FromStage, h.ToStage, h.Actor, h.Note, h.OccurredAt)
		if err != nil {
			return fmt.Errorf("insert stage history: %w", err)
		}
	}
	for _, c := range deal.PendingComments() {
		_, err := tx.Exec(ctx, `
			INSERT INTO deal_comments (id, deal_id, author, body, created_at)
			VALUES ($1,$2,$3,$4,$5)
		`, c.ID, c.DealID, c.Author, c.Body, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert deal comment: %w", err)
		}
	}
	return nil
}

func dealArgs(deal model.Deal) []any {
	var (
		amount, rate, daily, weekly, payback *decimal.Decimal
		termDays                             *int
	)
	if terms := deal.Terms(); terms != nil {
		amount, rate, termDays = &terms.Amount, &terms.FactorRate, &terms.TermDays
		daily, weekly, payback = &terms.DailyPayment, &terms.WeeklyPayment, &terms.PaybackAmount
	}
	return []any{
		deal.ID(), deal.TenantID(), deal.MerchantID(), deal.BrokerID(), deal.Source(),
		deal.RequestedAmount(), deal.ExistingPositions(), deal.StackingDetected(),
		deal.Stage().String(), deal.StageChangedAt(),
		nullableGrade(deal.PaperGrade()), deal.RiskScore(),
		amount, rate, termDays, daily, weekly, payback,
		deal.DecisionNotes(), deal.DeclineReasons(), deal.UnderwriterID(),
		deal.DecisionAt(), deal.FundedAt(),
		deal.Version(), deal.CreatedAt(), deal.UpdatedAt(),
	}
}

func nullableGrade(grade valueobject.PaperGrade) *string {
	if grade.IsZero() {
		return nil
	}
	s := grade.String()
	return &s
}

type scannable interface {
	Scan(dest ...any) error
}

func scanDeal(s scannable) (model.Deal, error) {
	var (
		id, tenantID, merchantID, brokerID, source string
		requestedAmount                            decimal.Decimal
		existingPositions                          int
		stackingDetected                           bool
		stageStr                                   string
		stageChangedAt                             time.Time
		gradeStr                                   *string
		riskScore                                  *int
		amount, rate                               *decimal.Decimal
		termDays                                   *int
		daily, weekly, payback                     *decimal.Decimal
		decisionNotes                              string
		declineReasons                             []string
		underwriterID                              string
		decisionAt, fundedAt                       *time.Time
		version                                    int
		createdAt, updatedAt                       time.Time
	)

	err := s.Scan(
		&id, &tenantID, &merchantID, &brokerID, &source,
		&requestedAmount, &existingPositions, &stackingDetected,
		&stageStr, &stageChangedAt,
		&gradeStr, &riskScore,
		&amount, &rate, &termDays, &daily, &weekly, &payback,
		&decisionNotes, &declineReasons, &underwriterID,
		&decisionAt, &fundedAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Deal{}, err
	}

	stage, err := valueobject.NewDealStage(stageStr)
	if err != nil {
		return model.Deal{}, fmt.Errorf("parse stage: %w", err)
	}

	var grade valueobject.PaperGrade
	if gradeStr != nil {
		grade, err = valueobject.NewPaperGrade(*gradeStr)
		if err != nil {
			return model.Deal{}, fmt.Errorf("parse paper grade: %w", err)
		}
	}

	var terms *model.ApprovedTerms
	if amount != nil && rate != nil && termDays != nil {
		terms = &model.ApprovedTerms{
			Amount:     *amount,
			FactorRate: *rate,
			TermDays:   *termDays,
		}
		if daily != nil {
			terms.DailyPayment = *daily
		}
		if weekly != nil {
			terms.WeeklyPayment = *weekly
		}
		if payback != nil {
			terms.PaybackAmount = *payback
		}
	}

	return model.ReconstructDeal(
		id, tenantID, merchantID, brokerID, source,
		requestedAmount, existingPositions, stackingDetected,
		stage, stageChangedAt,
		grade, riskScore, terms,
		decisionNotes, declineReasons, underwriterID,
		decisionAt, fundedAt,
		version, createdAt, updatedAt,
	), nil
}
