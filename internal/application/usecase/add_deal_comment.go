package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
)

// AddDealCommentUseCase appends a standalone audit note to a deal. Unlike
// the notes carried on stage transitions, these comments record rationale
// between lifecycle movements.
type AddDealCommentUseCase struct {
	dealRepo    port.DealRepository
	historyRepo port.StageHistoryRepository
	logger      *slog.Logger
}

// NewAddDealCommentUseCase wires dependencies.
func NewAddDealCommentUseCase(
	dealRepo port.DealRepository,
	historyRepo port.StageHistoryRepository,
	logger *slog.Logger,
) *AddDealCommentUseCase {
	return &AddDealCommentUseCase{
		dealRepo:    dealRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Execute verifies the deal exists, then appends the comment.
func (uc *AddDealCommentUseCase) Execute(ctx context.Context, req dto.AddDealCommentRequest) (dto.DealCommentResponse, error) {
	if strings.TrimSpace(req.Body) == "" {
		return dto.DealCommentResponse{}, model.ErrEmptyComment
	}

	deal, err := uc.dealRepo.FindByID(ctx, req.TenantID, req.DealID)
	if err != nil {
		return dto.DealCommentResponse{}, fmt.Errorf("load deal: %w", err)
	}

	comment := model.DealComment{
		ID:        uuid.New().String(),
		DealID:    deal.ID(),
		Author:    req.Author,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.historyRepo.AddComment(ctx, comment); err != nil {
		return dto.DealCommentResponse{}, fmt.Errorf("add comment: %w", err)
	}

	uc.logger.InfoContext(ctx, "deal comment added",
		"deal_id", deal.ID(),
		"author", req.Author,
	)
	return dto.DealCommentResponse{
		ID:        comment.ID,
		Author:    comment.Author,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}, nil
}
