package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/event"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Hand-written mocks for the domain ports
// ---------------------------------------------------------------------------

type mockDealRepository struct {
	createFunc   func(ctx context.Context, deal model.Deal) error
	findByIDFunc func(ctx context.Context, tenantID, dealID string) (model.Deal, error)
	saveFunc     func(ctx context.Context, deal model.Deal) error
	savedDeals   []model.Deal
}

func (m *mockDealRepository) Create(ctx context.Context, deal model.Deal) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, deal)
	}
	m.savedDeals = append(m.savedDeals, deal)
	return nil
}

func (m *mockDealRepository) FindByID(ctx context.Context, tenantID, dealID string) (model.Deal, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, dealID)
	}
	return model.Deal{}, port.ErrDealNotFound
}

func (m *mockDealRepository) Save(ctx context.Context, deal model.Deal) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, deal)
	}
	m.savedDeals = append(m.savedDeals, deal)
	return nil
}

type mockMerchantRepository struct {
	findByIDFunc   func(ctx context.Context, tenantID, merchantID string) (model.Merchant, error)
	listOwnersFunc func(ctx context.Context, merchantID string) ([]model.OwnerSnapshot, error)
}

func (m *mockMerchantRepository) FindByID(ctx context.Context, tenantID, merchantID string) (model.Merchant, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, merchantID)
	}
	return model.Merchant{}, port.ErrMerchantNotFound
}

func (m *mockMerchantRepository) ListOwners(ctx context.Context, merchantID string) ([]model.OwnerSnapshot, error) {
	if m.listOwnersFunc != nil {
		return m.listOwnersFunc(ctx, merchantID)
	}
	return nil, nil
}

type mockBankAnalysisRepository struct {
	findLatestFunc func(ctx context.Context, dealID string) (*model.BankAnalysis, error)
}

func (m *mockBankAnalysisRepository) FindLatestByDeal(ctx context.Context, dealID string) (*model.BankAnalysis, error) {
	if m.findLatestFunc != nil {
		return m.findLatestFunc(ctx, dealID)
	}
	return nil, nil
}

func (m *mockBankAnalysisRepository) Save(context.Context, model.BankAnalysis) error {
	return fmt.Errorf("not implemented")
}

type mockUCCFilingRepository struct {
	listFunc func(ctx context.Context, merchantID string) ([]model.UCCFiling, error)
}

func (m *mockUCCFilingRepository) ListByMerchant(ctx context.Context, merchantID string) ([]model.UCCFiling, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, merchantID)
	}
	return nil, nil
}

type mockBrokerRepository struct {
	findByIDFunc func(ctx context.Context, tenantID, brokerID string) (model.Broker, error)
}

func (m *mockBrokerRepository) FindByID(ctx context.Context, tenantID, brokerID string) (model.Broker, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, brokerID)
	}
	return model.Broker{}, port.ErrBrokerNotFound
}

type mockStageHistoryRepository struct {
	listTransitionsFunc func(ctx context.Context, dealID string) ([]model.StageTransition, error)
	listCommentsFunc    func(ctx context.Context, dealID string) ([]model.DealComment, error)
	addCommentFunc      func(ctx context.Context, comment model.DealComment) error
	addedComments       []model.DealComment
}

func (m *mockStageHistoryRepository) ListTransitions(ctx context.Context, dealID string) ([]model.StageTransition, error) {
	if m.listTransitionsFunc != nil {
		return m.listTransitionsFunc(ctx, dealID)
	}
	return nil, nil
}

func (m *mockStageHistoryRepository) ListComments(ctx context.Context, dealID string) ([]model.DealComment, error) {
	if m.listCommentsFunc != nil {
		return m.listCommentsFunc(ctx, dealID)
	}
	return nil, nil
}

func (m *mockStageHistoryRepository) AddComment(ctx context.Context, comment model.DealComment) error {
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, comment)
	}
	m.addedComments = append(m.addedComments, comment)
	return nil
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, events ...event.DomainEvent) error
	published   []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	m.published = append(m.published, events...)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testMerchant() model.Merchant {
	return model.Merchant{
		ID:                   "merchant-001",
		TenantID:             "tenant-001",
		LegalName:            "Riverside Bakery LLC",
		DBAName:              "Riverside Bakery",
		IndustryTier:         valueobject.IndustryTierMedium,
		TimeInBusinessMonths: intPtr(36),
		MonthlyRevenue:       decPtr("75000"),
	}
}

func testOwners() []model.OwnerSnapshot {
	return []model.OwnerSnapshot{
		{
			ID:           "owner-001",
			MerchantID:   "merchant-001",
			FullName:     "Dana Reyes",
			OwnershipPct: decimal.NewFromInt(100),
			FICOScore:    intPtr(680),
			IsPrimary:    true,
		},
	}
}

func testNewLeadDeal() model.Deal {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return model.ReconstructDeal(
		"deal-001", "tenant-001", "merchant-001", "", "BROKER_PORTAL",
		decimal.NewFromInt(50000),
		0, false,
		valueobject.DealStageNewLead, now,
		valueobject.PaperGrade{}, nil, nil,
		"", nil, "", nil, nil,
		1, now, now,
	)
}
