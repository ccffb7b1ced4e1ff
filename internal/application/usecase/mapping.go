package usecase

import (
	"github.com/advancehub/underwriting-service/internal/application/dto"
	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/service"
)

func toDealResponse(d model.Deal) dto.DealResponse {
	resp := dto.DealResponse{
		ID:                d.ID(),
		TenantID:          d.TenantID(),
		MerchantID:        d.MerchantID(),
		BrokerID:          d.BrokerID(),
		Source:            d.Source(),
		RequestedAmount:   d.RequestedAmount(),
		ExistingPositions: d.ExistingPositions(),
		StackingDetected:  d.StackingDetected(),
		Stage:             d.Stage().String(),
		StageChangedAt:    d.StageChangedAt(),
		PaperGrade:        d.PaperGrade().String(),
		RiskScore:         d.RiskScore(),
		DecisionNotes:     d.DecisionNotes(),
		DeclineReasons:    d.DeclineReasons(),
		UnderwriterID:     d.UnderwriterID(),
		DecisionAt:        d.DecisionAt(),
		FundedAt:          d.FundedAt(),
		Version:           d.Version(),
		CreatedAt:         d.CreatedAt(),
		UpdatedAt:         d.UpdatedAt(),
	}
	if terms := d.Terms(); terms != nil {
		resp.ApprovedTerms = &dto.ApprovedTermsResponse{
			Amount:        terms.Amount,
			FactorRate:    terms.FactorRate,
			TermDays:      terms.TermDays,
			DailyPayment:  terms.DailyPayment,
			WeeklyPayment: terms.WeeklyPayment,
			PaybackAmount: terms.PaybackAmount,
		}
	}
	return resp
}

func toRiskAnalysisResponse(a service.RiskAssessment) dto.RiskAnalysisResponse {
	factors := make([]dto.ScoringFactorResponse, 0, len(a.Factors))
	for _, f := range a.Factors {
		factors = append(factors, dto.ScoringFactorResponse{
			Name:   f.Name,
			Weight: f.Weight,
			Score:  f.Score,
			Impact: f.Impact,
		})
	}
	return dto.RiskAnalysisResponse{
		Score:   a.Score,
		Grade:   a.Grade.String(),
		Factors: factors,
		Signals: a.Signals,
	}
}

func toStackingResponse(r service.StackingResult) dto.StackingAnalysisResponse {
	return dto.StackingAnalysisResponse{
		StackingDetected: r.StackingDetected,
		Signals:          r.Signals,
		PositionCount:    r.PositionCount,
	}
}

func toBankMetricsResponse(m service.BankMetrics) dto.BankMetricsResponse {
	return dto.BankMetricsResponse{
		NSFPerMonth:        m.NSFPerMonth,
		OverdraftsPerMonth: m.OverdraftsPerMonth,
		DepositDayCoverage: m.DepositDayCoverage,
		BalanceVolatility:  m.BalanceVolatility,
		AvgDepositSize:     m.AvgDepositSize,
		MonthsAnalyzed:     m.MonthsAnalyzed,
	}
}

func toOfferResponse(o service.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		Grade:           o.Grade.String(),
		ApprovedAmount:  o.ApprovedAmount,
		FactorRate:      o.FactorRate,
		TermDays:        o.TermDays,
		PaybackAmount:   o.PaybackAmount,
		DailyPayment:    o.DailyPayment,
		WeeklyPayment:   o.WeeklyPayment,
		HoldbackPercent: o.HoldbackPercent,
		Position:        o.Position,
		Commission:      o.Commission,
		PolicyVersion:   o.PolicyVersion,
	}
}

func toConstraintsResponse(c service.OfferConstraints) dto.OfferConstraintsResponse {
	return dto.OfferConstraintsResponse{
		Grade:          c.Grade.String(),
		MaxApprovalCap: c.MaxApprovalCap,
		MinFactorRate:  c.MinFactorRate,
		MaxFactorRate:  c.MaxFactorRate,
		MinTermDays:    c.MinTermDays,
		MaxTermDays:    c.MaxTermDays,
		DailyCapacity:  c.DailyCapacity,
		PolicyVersion:  c.PolicyVersion,
		ClampCustom:    c.ClampCustom,
	}
}

func toTransitionResponses(rows []model.StageTransition) []dto.StageTransitionResponse {
	out := make([]dto.StageTransitionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StageTransitionResponse{
			ID:         r.ID,
			FromStage:  r.FromStage,
			ToStage:    r.ToStage,
			Actor:      r.Actor,
			Note:       r.Note,
			OccurredAt: r.OccurredAt,
		})
	}
	return out
}

func toCommentResponses(rows []model.DealComment) []dto.DealCommentResponse {
	out := make([]dto.DealCommentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DealCommentResponse{
			ID:        r.ID,
			Author:    r.Author,
			Body:      r.Body,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
