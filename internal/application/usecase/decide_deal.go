package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/service"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// DecideDealUseCase applies an underwriting decision to a deal. This is the
// sole write path that changes stage, terms, and decision fields; the deal
// update, history row, and audit comment persist in one transaction.
type DecideDealUseCase struct {
	dealRepo  port.DealRepository
	publisher port.EventPublisher
	policy    service.PricingPolicy
	logger    *slog.Logger
}

// NewDecideDealUseCase wires dependencies. The policy supplies the payment
// cadence constants used when deriving omitted payment fields.
func NewDecideDealUseCase(
	dealRepo port.DealRepository,
	publisher port.EventPublisher,
	policy service.PricingPolicy,
	logger *slog.Logger,
) *DecideDealUseCase {
	return &DecideDealUseCase{
		dealRepo:  dealRepo,
		publisher: publisher,
		policy:    policy,
		logger:    logger,
	}
}

// Execute validates the decision payload, applies the transition, and
// persists atomically. A concurrent transition on the same deal surfaces
// as port.ErrVersionConflict; the caller retries with fresh state.
func (uc *DecideDealUseCase) Execute(ctx context.Context, req dto.DecideDealRequest) (dto.DecideDealResponse, error) {
	now := time.Now().UTC()

	decision, err := valueobject.NewDecisionType(req.Decision)
	if err != nil {
		return dto.DecideDealResponse{}, fmt.Errorf("parse decision: %w", err)
	}

	deal, err := uc.dealRepo.FindByID(ctx, req.TenantID, req.DealID)
	if err != nil {
		return dto.DecideDealResponse{}, fmt.Errorf("load deal: %w", err)
	}

	payload, err := uc.buildDecisionPayload(decision, req)
	if err != nil {
		return dto.DecideDealResponse{}, err
	}

	decided, err := deal.Decide(decision, payload, now)
	if err != nil {
		return dto.DecideDealResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	if err := uc.dealRepo.Save(ctx, decided); err != nil {
		return dto.DecideDealResponse{}, fmt.Errorf("save deal: %w", err)
	}
	if err := uc.publisher.Publish(ctx, decided.DomainEvents()...); err != nil {
		return dto.DecideDealResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "deal decisioned",
		"deal_id", deal.ID(),
		"decision", decision.String(),
		"stage", decided.Stage().String(),
		"underwriter_id", req.UnderwriterID,
	)
	return dto.DecideDealResponse{
		Deal:    toDealResponse(decided),
		Message: decisionMessage(decision, decided),
	}, nil
}

// buildDecisionPayload converts the wire request into the aggregate's
// payload, deriving payment fields the caller omitted using the policy's
// payment cadence. Full validation of required fields stays with the
// aggregate so no partial write can happen.
func (uc *DecideDealUseCase) buildDecisionPayload(decision valueobject.DecisionType, req dto.DecideDealRequest) (model.DecisionPayload, error) {
	p := model.DecisionPayload{
		RiskScore:      req.RiskScore,
		DeclineReasons: req.DeclineReasons,
		Notes:          req.Notes,
		UnderwriterID:  req.UnderwriterID,
	}

	if req.PaperGrade != "" {
		grade, err := valueobject.NewPaperGrade(req.PaperGrade)
		if err != nil {
			return model.DecisionPayload{}, fmt.Errorf("parse paper grade: %w", err)
		}
		p.PaperGrade = grade
	}

	if decision.IsApproval() && req.ApprovedAmount != nil && req.FactorRate != nil && req.TermDays != nil {
		terms := model.ApprovedTerms{
			Amount:     *req.ApprovedAmount,
			FactorRate: *req.FactorRate,
			TermDays:   *req.TermDays,
		}
		payback := terms.Amount.Mul(terms.FactorRate)
		if req.PaybackAmount != nil {
			payback = *req.PaybackAmount
		}
		terms.PaybackAmount = payback.Round(2)

		daily := payback.Div(decimal.NewFromInt(int64(terms.TermDays)))
		if req.DailyPayment != nil {
			daily = *req.DailyPayment
		}
		terms.DailyPayment = daily.Round(2)

		weekly := daily.Mul(decimal.NewFromInt(int64(uc.policy.BusinessDaysPerWeek())))
		if req.WeeklyPayment != nil {
			weekly = *req.WeeklyPayment
		}
		terms.WeeklyPayment = weekly.Round(2)

		p.Terms = &terms
	}
	return p, nil
}

func decisionMessage(decision valueobject.DecisionType, deal model.Deal) string {
	switch {
	case decision.IsApproval():
		terms := deal.Terms()
		return fmt.Sprintf("Deal approved at grade %s: %s over %d days at %s",
			deal.PaperGrade(), terms.Amount.StringFixed(2), terms.TermDays, terms.FactorRate)
	default:
		return fmt.Sprintf("Deal declined: %s", strings.Join(deal.DeclineReasons(), "; "))
	}
}
