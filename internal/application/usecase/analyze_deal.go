package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/service"
)

// AnalyzeDealUseCase runs the full underwriting engine over a deal's
// persisted state. Read-only: safe to call any number of times.
type AnalyzeDealUseCase struct {
	dealRepo     port.DealRepository
	merchantRepo port.MerchantRepository
	bankRepo     port.BankAnalysisRepository
	uccRepo      port.UCCFilingRepository
	brokerRepo   port.BrokerRepository
	scorer       *service.RiskScorer
	detector     service.StackingDetector
	metrics      service.BankMetricsAnalyzer
	calculator   *service.OfferCalculator
	logger       *slog.Logger
}

// NewAnalyzeDealUseCase wires dependencies.
func NewAnalyzeDealUseCase(
	dealRepo port.DealRepository,
	merchantRepo port.MerchantRepository,
	bankRepo port.BankAnalysisRepository,
	uccRepo port.UCCFilingRepository,
	brokerRepo port.BrokerRepository,
	scorer *service.RiskScorer,
	detector service.StackingDetector,
	metrics service.BankMetricsAnalyzer,
	calculator *service.OfferCalculator,
	logger *slog.Logger,
) *AnalyzeDealUseCase {
	return &AnalyzeDealUseCase{
		dealRepo:     dealRepo,
		merchantRepo: merchantRepo,
		bankRepo:     bankRepo,
		uccRepo:      uccRepo,
		brokerRepo:   brokerRepo,
		scorer:       scorer,
		detector:     detector,
		metrics:      metrics,
		calculator:   calculator,
		logger:       logger,
	}
}

// Execute loads the deal's inputs and composes scorer, stacking detector,
// bank metrics, and (when revenue is known) the offer calculator.
func (uc *AnalyzeDealUseCase) Execute(ctx context.Context, req dto.AnalyzeDealRequest) (dto.AnalyzeDealResponse, error) {
	deal, err := uc.dealRepo.FindByID(ctx, req.TenantID, req.DealID)
	if err != nil {
		return dto.AnalyzeDealResponse{}, fmt.Errorf("load deal: %w", err)
	}
	merchant, err := uc.merchantRepo.FindByID(ctx, req.TenantID, deal.MerchantID())
	if err != nil {
		return dto.AnalyzeDealResponse{}, fmt.Errorf("load merchant: %w", err)
	}
	owners, err := uc.merchantRepo.ListOwners(ctx, deal.MerchantID())
	if err != nil {
		return dto.AnalyzeDealResponse{}, fmt.Errorf("load owners: %w", err)
	}
	bank, err := uc.bankRepo.FindLatestByDeal(ctx, deal.ID())
	if err != nil {
		return dto.AnalyzeDealResponse{}, fmt.Errorf("load bank analysis: %w", err)
	}
	filings, err := uc.uccRepo.ListByMerchant(ctx, deal.MerchantID())
	if err != nil {
		return dto.AnalyzeDealResponse{}, fmt.Errorf("load ucc filings: %w", err)
	}

	stacking := uc.detector.Detect(bank, filings)

	assessment, err := uc.scorer.Score(service.ScoreInput{
		Merchant:          merchant,
		Owners:            owners,
		BankAnalysis:      bank,
		ExistingPositions: deal.ExistingPositions(),
		StackingDetected:  stacking.StackingDetected,
	})
	if err != nil {
		return dto.AnalyzeDealResponse{}, fmt.Errorf("score deal: %w", err)
	}

	resp := dto.AnalyzeDealResponse{
		DealID:           deal.ID(),
		MerchantName:     merchantDisplayName(merchant),
		RiskAnalysis:     toRiskAnalysisResponse(assessment),
		StackingAnalysis: toStackingResponse(stacking),
		AnalyzedAt:       time.Now().UTC(),
	}

	if bank != nil {
		m := uc.metrics.Analyze(*bank)
		bm := toBankMetricsResponse(m)
		resp.BankMetrics = &bm
	}

	if merchant.MonthlyRevenue != nil {
		brokerRate, err := uc.brokerCommission(ctx, req.TenantID, deal.BrokerID())
		if err != nil {
			return dto.AnalyzeDealResponse{}, err
		}
		offer, err := uc.calculator.CalculateOffer(assessment.Grade, service.OfferInput{
			RequestedAmount:      deal.RequestedAmount(),
			MonthlyRevenue:       merchant.MonthlyRevenue,
			ExistingPositions:    deal.ExistingPositions(),
			ExistingDailyLoad:    existingDailyLoad(bank),
			BrokerCommissionRate: brokerRate,
		})
		if err != nil {
			return dto.AnalyzeDealResponse{}, fmt.Errorf("calculate offer: %w", err)
		}
		o := toOfferResponse(offer)
		resp.Offer = &o
	}

	uc.logger.InfoContext(ctx, "deal analyzed",
		"deal_id", deal.ID(),
		"score", assessment.Score,
		"grade", assessment.Grade.String(),
		"stacking_detected", stacking.StackingDetected,
	)
	return resp, nil
}

func (uc *AnalyzeDealUseCase) brokerCommission(ctx context.Context, tenantID, brokerID string) (*decimal.Decimal, error) {
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

func merchantDisplayName(m model.Merchant) string {
	if m.DBAName != "" {
		return m.DBAName
	}
	return m.LegalName
}

func existingDailyLoad(bank *model.BankAnalysis) decimal.Decimal {
	if bank == nil {
		return decimal.Zero
	}
	return bank.ExistingDailyLoad
}
