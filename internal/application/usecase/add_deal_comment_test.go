package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/application/usecase"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
)

func TestAddDealCommentUseCase_Execute(t *testing.T) {
	t.Run("appends a comment to an existing deal", func(t *testing.T) {
		dealRepo := &mockDealRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.Deal, error) {
				return testNewLeadDeal(), nil
			},
		}
		historyRepo := &mockStageHistoryRepository{}
		uc := usecase.NewAddDealCommentUseCase(dealRepo, historyRepo, testLogger())

		resp, err := uc.Execute(context.Background(), dto.AddDealCommentRequest{
			TenantID: "tenant-001",
			DealID:   "deal-001",
			Author:   "uw-001",
			Body:     "merchant confirmed second location opening in July",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "uw-001", resp.Author)
		assert.False(t, resp.CreatedAt.IsZero())
		require.Len(t, historyRepo.addedComments, 1)
		assert.Equal(t, "deal-001", historyRepo.addedComments[0].DealID)
		assert.Equal(t, "merchant confirmed second location opening in July", historyRepo.addedComments[0].Body)
	})

	t.Run("blank body is rejected without a write", func(t *testing.T) {
		historyRepo := &mockStageHistoryRepository{}
		uc := usecase.NewAddDealCommentUseCase(&mockDealRepository{}, historyRepo, testLogger())

		_, err := uc.Execute(context.Background(), dto.AddDealCommentRequest{
			TenantID: "tenant-001",
			DealID:   "deal-001",
			Author:   "uw-001",
			Body:     "   ",
		})
		require.ErrorIs(t, err, model.ErrEmptyComment)
		assert.Empty(t, historyRepo.addedComments)
	})

	t.Run("unknown deal is rejected", func(t *testing.T) {
		uc := usecase.NewAddDealCommentUseCase(&mockDealRepository{}, &mockStageHistoryRepository{}, testLogger())

		_, err := uc.Execute(context.Background(), dto.AddDealCommentRequest{
			TenantID: "tenant-001",
			DealID:   "deal-404",
			Author:   "uw-001",
			Body:     "note",
		})
		require.ErrorIs(t, err, port.ErrDealNotFound)
	})
}
