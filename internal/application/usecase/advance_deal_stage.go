package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// AdvanceDealStageUseCase moves a deal through its non-decision lifecycle
// stages: document requests, contract flow, funding, or marking it dead.
type AdvanceDealStageUseCase struct {
	dealRepo  port.DealRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewAdvanceDealStageUseCase wires dependencies.
func NewAdvanceDealStageUseCase(
	dealRepo port.DealRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *AdvanceDealStageUseCase {
	return &AdvanceDealStageUseCase{
		dealRepo:  dealRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute applies the stage movement and persists the deal update plus the
// history row atomically.
func (uc *AdvanceDealStageUseCase) Execute(ctx context.Context, req dto.AdvanceDealStageRequest) (dto.DealResponse, error) {
	now := time.Now().UTC()

	target, err := valueobject.NewDealStage(req.TargetStage)
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("parse stage: %w", err)
	}

	deal, err := uc.dealRepo.FindByID(ctx, req.TenantID, req.DealID)
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("load deal: %w", err)
	}

	advanced, err := deal.AdvanceTo(target, req.Actor, req.Note, now)
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("advance stage: %w", err)
	}

	if err := uc.dealRepo.Save(ctx, advanced); err != nil {
		return dto.DealResponse{}, fmt.Errorf("save deal: %w", err)
	}
	if err := uc.publisher.Publish(ctx, advanced.DomainEvents()...); err != nil {
		return dto.DealResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "deal stage advanced",
		"deal_id", deal.ID(),
		"from_stage", deal.Stage().String(),
		"to_stage", advanced.Stage().String(),
		"actor", req.Actor,
	)
	return toDealResponse(advanced), nil
}
