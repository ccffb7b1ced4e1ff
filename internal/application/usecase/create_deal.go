package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
)

// CreateDealUseCase opens a new deal in the initial lifecycle stage.
type CreateDealUseCase struct {
	dealRepo     port.DealRepository
	merchantRepo port.MerchantRepository
	brokerRepo   port.BrokerRepository
	publisher    port.EventPublisher
}

// NewCreateDealUseCase wires dependencies.
func NewCreateDealUseCase(
	dealRepo port.DealRepository,
	merchantRepo port.MerchantRepository,
	brokerRepo port.BrokerRepository,
	publisher port.EventPublisher,
) *CreateDealUseCase {
	return &CreateDealUseCase{
		dealRepo:     dealRepo,
		merchantRepo: merchantRepo,
		brokerRepo:   brokerRepo,
		publisher:    publisher,
	}
}

// Execute validates the referenced merchant and broker, creates the deal,
// and publishes the creation event.
func (uc *CreateDealUseCase) Execute(ctx context.Context, req dto.CreateDealRequest) (dto.DealResponse, error) {
	now := time.Now().UTC()

	if _, err := uc.merchantRepo.FindByID(ctx, req.TenantID, req.MerchantID); err != nil {
		return dto.DealResponse{}, fmt.Errorf("load merchant: %w", err)
	}
	if req.BrokerID != "" {
		if _, err := uc.brokerRepo.FindByID(ctx, req.TenantID, req.BrokerID); err != nil {
			return dto.DealResponse{}, fmt.Errorf("load broker: %w", err)
		}
	}

	deal, err := model.NewDeal(req.TenantID, req.MerchantID, req.BrokerID, req.RequestedAmount, req.Source, req.Actor, now)
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("create deal: %w", err)
	}

	if err := uc.dealRepo.Create(ctx, deal); err != nil {
		return dto.DealResponse{}, fmt.Errorf("save deal: %w", err)
	}
	if err := uc.publisher.Publish(ctx, deal.DomainEvents()...); err != nil {
		return dto.DealResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toDealResponse(deal), nil
}
