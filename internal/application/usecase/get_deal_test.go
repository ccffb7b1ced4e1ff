package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/application/usecase"
	"github.com/advancehub/underwriting-service/internal/domain/model"
)

func TestGetDealUseCase_Execute(t *testing.T) {
	t.Run("returns deal with its trail", func(t *testing.T) {
		now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
		dealRepo := &mockDealRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.Deal, error) {
				return testNewLeadDeal(), nil
			},
		}
		historyRepo := &mockStageHistoryRepository{
			listTransitionsFunc: func(_ context.Context, dealID string) ([]model.StageTransition, error) {
				assert.Equal(t, "deal-001", dealID)
				return []model.StageTransition{
					{ID: "h-1", DealID: dealID, ToStage: "NEW_LEAD", Actor: "system", OccurredAt: now},
				}, nil
			},
			listCommentsFunc: func(_ context.Context, dealID string) ([]model.DealComment, error) {
				return []model.DealComment{
					{ID: "c-1", DealID: dealID, Author: "uw-001", Body: "called merchant", CreatedAt: now},
				}, nil
			},
		}

		uc := usecase.NewGetDealUseCase(dealRepo, historyRepo)

		resp, err := uc.Execute(context.Background(), dto.GetDealRequest{TenantID: "tenant-001", DealID: "deal-001"})
		require.NoError(t, err)

		assert.Equal(t, "deal-001", resp.Deal.ID)
		assert.Equal(t, "NEW_LEAD", resp.Deal.Stage)
		require.Len(t, resp.History, 1)
		assert.Equal(t, "NEW_LEAD", resp.History[0].ToStage)
		require.Len(t, resp.Comments, 1)
		assert.Equal(t, "called merchant", resp.Comments[0].Body)
	})

	t.Run("missing deal surfaces not found", func(t *testing.T) {
		uc := usecase.NewGetDealUseCase(&mockDealRepository{}, &mockStageHistoryRepository{})

		_, err := uc.Execute(context.Background(), dto.GetDealRequest{TenantID: "tenant-001", DealID: "deal-404"})
		require.Error(t, err)
	})
}
