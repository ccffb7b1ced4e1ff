package port

import (
	"context"
	"errors"

	"github.com/advancehub/underwriting-service/internal/domain/event"
	"github.com/advancehub/underwriting-service/internal/domain/model"
)

var (
	ErrDealNotFound     = errors.New("deal not found")
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrBrokerNotFound   = errors.New("broker not found")
	// ErrVersionConflict signals an optimistic lock failure: the deal was
	// modified between read and save.
	ErrVersionConflict = errors.New("deal version conflict")
)

// DealRepository persists deal aggregates. Save methods write the deal row,
// its pending stage-history rows and pending comments in one transaction,
// guarded by the aggregate version.
type DealRepository interface {
	Create(ctx context.Context, deal model.Deal) error
	FindByID(ctx context.Context, tenantID, dealID string) (model.Deal, error)
	Save(ctx context.Context, deal model.Deal) error
}

// StageHistoryRepository reads the append-only audit trail of a deal.
type StageHistoryRepository interface {
	ListTransitions(ctx context.Context, dealID string) ([]model.StageTransition, error)
	ListComments(ctx context.Context, dealID string) ([]model.DealComment, error)
	AddComment(ctx context.Context, comment model.DealComment) error
}

// MerchantRepository reads merchant profiles and their owner snapshots.
type MerchantRepository interface {
	FindByID(ctx context.Context, tenantID, merchantID string) (model.Merchant, error)
	ListOwners(ctx context.Context, merchantID string) ([]model.OwnerSnapshot, error)
}

// BankAnalysisRepository reads parsed bank-statement summaries.
// FindLatestByDeal returns (nil, nil) when no statement set was submitted.
type BankAnalysisRepository interface {
	FindLatestByDeal(ctx context.Context, dealID string) (*model.BankAnalysis, error)
	Save(ctx context.Context, analysis model.BankAnalysis) error
}

// UCCFilingRepository reads lien filings against a merchant.
type UCCFilingRepository interface {
	ListByMerchant(ctx context.Context, merchantID string) ([]model.UCCFiling, error)
}

// BrokerRepository reads broker profiles for commission resolution.
type BrokerRepository interface {
	FindByID(ctx context.Context, tenantID, brokerID string) (model.Broker, error)
}

// EventPublisher pushes domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
