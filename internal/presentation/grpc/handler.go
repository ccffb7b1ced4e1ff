package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/advancehub/underwriting-service/internal/application/usecase"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/service"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// UnderwritingHandler exposes the underwriting use cases over gRPC.
type UnderwritingHandler struct {
	UnimplementedUnderwritingServiceServer

	createDeal   *usecase.CreateDealUseCase
	analyzeDeal  *usecase.AnalyzeDealUseCase
	quoteOffer   *usecase.QuoteOfferUseCase
	decideDeal   *usecase.DecideDealUseCase
	advanceStage *usecase.AdvanceDealStageUseCase
	getDeal      *usecase.GetDealUseCase
	addComment   *usecase.AddDealCommentUseCase
}

// NewUnderwritingHandler creates a handler with all use-case dependencies.
func NewUnderwritingHandler(
	createDeal *usecase.CreateDealUseCase,
	analyzeDeal *usecase.AnalyzeDealUseCase,
	quoteOffer *usecase.QuoteOfferUseCase,
	decideDeal *usecase.DecideDealUseCase,
	advanceStage *usecase.AdvanceDealStageUseCase,
	getDeal *usecase.GetDealUseCase,
	addComment *usecase.AddDealCommentUseCase,
) *UnderwritingHandler {
	return &UnderwritingHandler{
		createDeal:   createDeal,
		analyzeDeal:  analyzeDeal,
		quoteOffer:   quoteOffer,
		decideDeal:   decideDeal,
		advanceStage: advanceStage,
		getDeal:      getDeal,
		addComment:   addComment,
	}
}

// CreateDeal registers a new lead in the pipeline.
func (h *UnderwritingHandler) CreateDeal(ctx context.Context, req *CreateDealRequest) (*CreateDealResponse, error) {
	resp, err := h.createDeal.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// AnalyzeDeal runs the full risk, stacking, and offer analysis for a deal.
func (h *UnderwritingHandler) AnalyzeDeal(ctx context.Context, req *AnalyzeDealRequest) (*AnalyzeDealResponse, error) {
	resp, err := h.analyzeDeal.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// QuoteOffer produces the offer ladder and constraints for a deal.
func (h *UnderwritingHandler) QuoteOffer(ctx context.Context, req *QuoteOfferRequest) (*QuoteOfferResponse, error) {
	resp, err := h.quoteOffer.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// DecideDeal records an underwriting decision on a deal.
func (h *UnderwritingHandler) DecideDeal(ctx context.Context, req *DecideDealRequest) (*DecideDealResponse, error) {
	resp, err := h.decideDeal.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// AdvanceDealStage moves a deal one step along the pipeline.
func (h *UnderwritingHandler) AdvanceDealStage(ctx context.Context, req *AdvanceDealStageRequest) (*AdvanceDealStageResponse, error) {
	resp, err := h.advanceStage.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// GetDeal retrieves a deal with its stage history and comments.
func (h *UnderwritingHandler) GetDeal(ctx context.Context, req *GetDealRequest) (*GetDealResponse, error) {
	resp, err := h.getDeal.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// AddDealComment appends a standalone audit note to a deal.
func (h *UnderwritingHandler) AddDealComment(ctx context.Context, req *AddDealCommentRequest) (*AddDealCommentResponse, error) {
	resp, err := h.addComment.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// toStatusError maps domain and port errors onto gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, port.ErrDealNotFound),
		errors.Is(err, port.ErrMerchantNotFound),
		errors.Is(err, port.ErrBrokerNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, port.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, service.ErrMissingRevenue):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrInvalidDecisionPayload),
		errors.Is(err, model.ErrEmptyComment),
		errors.Is(err, valueobject.ErrInvalidStageTransition),
		errors.Is(err, valueobject.ErrUnknownValue):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
