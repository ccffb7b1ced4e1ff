package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/service"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// QuoteOfferUseCase produces the standard offer, the tier ladder, an
// optional custom offer, and the grade's policy constraints. Read-only.
type QuoteOfferUseCase struct {
	dealRepo     port.DealRepository
	merchantRepo port.MerchantRepository
	bankRepo     port.BankAnalysisRepository
	uccRepo      port.UCCFilingRepository
	brokerRepo   port.BrokerRepository
	scorer       *service.RiskScorer
	detector     service.StackingDetector
	calculator   *service.OfferCalculator
}

// NewQuoteOfferUseCase wires dependencies.
func NewQuoteOfferUseCase(
	dealRepo port.DealRepository,
	merchantRepo port.MerchantRepository,
	bankRepo port.BankAnalysisRepository,
	uccRepo port.UCCFilingRepository,
	brokerRepo port.BrokerRepository,
	scorer *service.RiskScorer,
	detector service.StackingDetector,
	calculator *service.OfferCalculator,
) *QuoteOfferUseCase {
	return &QuoteOfferUseCase{
		dealRepo:     dealRepo,
		merchantRepo: merchantRepo,
		bankRepo:     bankRepo,
		uccRepo:      uccRepo,
		brokerRepo:   brokerRepo,
		scorer:       scorer,
		detector:     detector,
		calculator:   calculator,
	}
}

// Execute resolves the grade (explicit request, the deal's decisioned grade,
// or a fresh scoring run, in that order) and prices the deal against it.
func (uc *QuoteOfferUseCase) Execute(ctx context.Context, req dto.QuoteOfferRequest) (dto.QuoteOfferResponse, error) {
	deal, err := uc.dealRepo.FindByID(ctx, req.TenantID, req.DealID)
	if err != nil {
		return dto.QuoteOfferResponse{}, fmt.Errorf("load deal: %w", err)
	}
	merchant, err := uc.merchantRepo.FindByID(ctx, req.TenantID, deal.MerchantID())
	if err != nil {
		return dto.QuoteOfferResponse{}, fmt.Errorf("load merchant: %w", err)
	}
	if merchant.MonthlyRevenue == nil {
		return dto.QuoteOfferResponse{}, service.ErrMissingRevenue
	}
	bank, err := uc.bankRepo.FindLatestByDeal(ctx, deal.ID())
	if err != nil {
		return dto.QuoteOfferResponse{}, fmt.Errorf("load bank analysis: %w", err)
	}

	grade, err := uc.resolveGrade(ctx, req.Grade, deal, merchant, bank)
	if err != nil {
		return dto.QuoteOfferResponse{}, err
	}

	rate, err := uc.brokerRate(ctx, req.TenantID, deal.BrokerID())
	if err != nil {
		return dto.QuoteOfferResponse{}, err
	}

	in := service.OfferInput{
		RequestedAmount:      deal.RequestedAmount(),
		MonthlyRevenue:       merchant.MonthlyRevenue,
		ExistingPositions:    deal.ExistingPositions(),
		ExistingDailyLoad:    existingDailyLoad(bank),
		BrokerCommissionRate: rate,
	}

	standard, err := uc.calculator.CalculateOffer(grade, in)
	if err != nil {
		return dto.QuoteOfferResponse{}, fmt.Errorf("calculate offer: %w", err)
	}
	tiers, err := uc.calculator.GenerateOfferTiers(grade, in)
	if err != nil {
		return dto.QuoteOfferResponse{}, fmt.Errorf("generate tiers: %w", err)
	}
	constraints, err := uc.calculator.ConstraintsFor(grade, in)
	if err != nil {
		return dto.QuoteOfferResponse{}, fmt.Errorf("load constraints: %w", err)
	}

	resp := dto.QuoteOfferResponse{
		DealID:        deal.ID(),
		Grade:         grade.String(),
		StandardOffer: toOfferResponse(standard),
		Constraints:   toConstraintsResponse(constraints),
	}
	tierResponses := make([]dto.OfferTierResponse, 0, len(tiers))
	for _, tier := range tiers {
		tierResponses = append(tierResponses, dto.OfferTierResponse{
			Label: tier.Label,
			Offer: toOfferResponse(tier.Offer),
		})
	}
	resp.Tiers = tierResponses

	if req.CustomAmount != nil && req.CustomFactorRate != nil && req.CustomTermDays != nil {
		custom, err := uc.calculator.CalculateCustomOffer(grade, *req.CustomAmount, *req.CustomFactorRate, *req.CustomTermDays, in)
		if err != nil {
			return dto.QuoteOfferResponse{}, fmt.Errorf("calculate custom offer: %w", err)
		}
		c := toOfferResponse(custom)
		resp.CustomOffer = &c
	}
	return resp, nil
}

func (uc *QuoteOfferUseCase) resolveGrade(
	ctx context.Context,
	requested string,
	deal model.Deal,
	merchant model.Merchant,
	bank *model.BankAnalysis,
) (valueobject.PaperGrade, error) {
	if requested != "" {
		grade, err := valueobject.NewPaperGrade(requested)
		if err != nil {
			return valueobject.PaperGrade{}, fmt.Errorf("parse grade: %w", err)
		}
		return grade, nil
	}
	if !deal.PaperGrade().IsZero() {
		return deal.PaperGrade(), nil
	}

	owners, err := uc.merchantRepo.ListOwners(ctx, deal.MerchantID())
	if err != nil {
		return valueobject.PaperGrade{}, fmt.Errorf("load owners: %w", err)
	}
	filings, err := uc.uccRepo.ListByMerchant(ctx, deal.MerchantID())
	if err != nil {
		return valueobject.PaperGrade{}, fmt.Errorf("load ucc filings: %w", err)
	}
	stacking := uc.detector.Detect(bank, filings)

	assessment, err := uc.scorer.Score(service.ScoreInput{
		Merchant:          merchant,
		Owners:            owners,
		BankAnalysis:      bank,
		ExistingPositions: deal.ExistingPositions(),
		StackingDetected:  stacking.StackingDetected || deal.StackingDetected(),
	})
	if err != nil {
		return valueobject.PaperGrade{}, fmt.Errorf("score deal: %w", err)
	}
	return assessment.Grade, nil
}

func (uc *QuoteOfferUseCase) brokerRate(ctx context.Context, tenantID, brokerID string) (*decimal.Decimal, error) {
	if brokerID == "" {
		return nil, nil
	}
	broker, err := uc.brokerRepo.FindByID(ctx, tenantID, brokerID)
	if err != nil {
		if errors.Is(err, port.ErrBrokerNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load broker: %w", err)
	}
	rate := broker.CommissionRate
	return &rate, nil
}
