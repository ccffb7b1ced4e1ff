package usecase

import (
	"context"
	"fmt"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/port"
)

// GetDealUseCase retrieves a deal with its full audit trail.
type GetDealUseCase struct {
	dealRepo    port.DealRepository
	historyRepo port.StageHistoryRepository
}

// NewGetDealUseCase wires dependencies.
func NewGetDealUseCase(
	dealRepo port.DealRepository,
	historyRepo port.StageHistoryRepository,
) *GetDealUseCase {
	return &GetDealUseCase{
		dealRepo:    dealRepo,
		historyRepo: historyRepo,
	}
}

// Execute fetches the deal, its stage history, and its comments.
func (uc *GetDealUseCase) Execute(ctx context.Context, req dto.GetDealRequest) (dto.GetDealResponse, error) {
	deal, err := uc.dealRepo.FindByID(ctx, req.TenantID, req.DealID)
	if err != nil {
		return dto.GetDealResponse{}, fmt.Errorf("load deal: %w", err)
	}
	history, err := uc.historyRepo.ListTransitions(ctx, deal.ID())
	if err != nil {
		return dto.GetDealResponse{}, fmt.Errorf("load history: %w", err)
	}
	comments, err := uc.historyRepo.ListComments(ctx, deal.ID())
	if err != nil {
		return dto.GetDealResponse{}, fmt.Errorf("load comments: %w", err)
	}

	return dto.GetDealResponse{
		Deal:     toDealResponse(deal),
		History:  toTransitionResponses(history),
		Comments: toCommentResponses(comments),
	}, nil
}
