package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// ErrMissingRevenue is returned when an offer is requested for a merchant
// whose monthly revenue is unknown. Surfaced as a client error, not retried.
var ErrMissingRevenue = errors.New("monthly revenue is required to calculate an offer")

// Offer is one structured funding proposal. All monetary fields are rounded
// to two decimal places at construction; intermediate math keeps full
// precision.
type Offer struct {
	Grade           valueobject.PaperGrade
	ApprovedAmount  decimal.Decimal
	FactorRate      decimal.Decimal
	TermDays        int
	PaybackAmount   decimal.Decimal
	DailyPayment    decimal.Decimal
	WeeklyPayment   decimal.Decimal
	HoldbackPercent decimal.Decimal
	Position        int
	Commission      decimal.Decimal
	PolicyVersion   string
}

// OfferTier is a labeled alternative within the grade's allowed ranges.
type OfferTier struct {
	Label string
	Offer Offer
}

// OfferConstraints surfaces the grade's policy envelope so a reviewer can
// see what a custom offer may and may not do.
type OfferConstraints struct {
	Grade          valueobject.PaperGrade
	MaxApprovalCap decimal.Decimal
	MinFactorRate  decimal.Decimal
	MaxFactorRate  decimal.Decimal
	MinTermDays    int
	MaxTermDays    int
	DailyCapacity  decimal.Decimal
	ExistingLoad   decimal.Decimal
	PolicyVersion  string
	ClampCustom    bool
}

// OfferInput bundles the financial inputs shared by every offer path.
type OfferInput struct {
	RequestedAmount   decimal.Decimal
	MonthlyRevenue    *decimal.Decimal
	ExistingPositions int
	ExistingDailyLoad decimal.Decimal
	// BrokerCommissionRate overrides the policy default when non-nil.
	BrokerCommissionRate *decimal.Decimal
}

// OfferCalculator is a pure domain service. It owns no state beyond the
// injected policy table and performs no I/O.
type OfferCalculator struct {
	policy PricingPolicy
}

func NewOfferCalculator(policy PricingPolicy) *OfferCalculator {
	return &OfferCalculator{policy: policy}
}

// CalculateOffer produces the canonical offer for a grade using the policy
// default rate and term. The approved amount never exceeds the grade's
// revenue-multiple cap, whatever was requested.
func (c *OfferCalculator) CalculateOffer(grade valueobject.PaperGrade, in OfferInput) (Offer, error) {
	terms, err := c.policy.TermsFor(grade)
	if err != nil {
		return Offer{}, err
	}
	if in.MonthlyRevenue == nil {
		return Offer{}, ErrMissingRevenue
	}

	maxApproval := in.MonthlyRevenue.Mul(terms.MaxRevenueMultiple)
	approved := in.RequestedAmount
	if approved.GreaterThan(maxApproval) {
		approved = maxApproval
	}
	return c.buildOffer(grade, approved, terms.DefaultFactorRate, terms.DefaultTermDays, in)
}

// GenerateOfferTiers produces alternatives across the grade's allowed
// factor-rate and term ranges: best rate over the longest term, the policy
// default, and the fastest payback at the highest rate over the shortest
// term. Lets a reviewer present choices without recomputing by hand.
func (c *OfferCalculator) GenerateOfferTiers(grade valueobject.PaperGrade, in OfferInput) ([]OfferTier, error) {
	terms, err := c.policy.TermsFor(grade)
	if err != nil {
		return nil, err
	}
	if in.MonthlyRevenue == nil {
		return nil, ErrMissingRevenue
	}

	maxApproval := in.MonthlyRevenue.Mul(terms.MaxRevenueMultiple)
	approved := in.RequestedAmount
	if approved.GreaterThan(maxApproval) {
		approved = maxApproval
	}

	points := []struct {
		label string
		rate  decimal.Decimal
		days  int
	}{
		{"BEST_RATE", terms.MinFactorRate, terms.MaxTermDays},
		{"STANDARD", terms.DefaultFactorRate, terms.DefaultTermDays},
		{"FASTEST_PAYBACK", terms.MaxFactorRate, terms.MinTermDays},
	}

	tiers := make([]OfferTier, 0, len(points))
	for _, pt := range points {
		offer, err := c.buildOffer(grade, approved, pt.rate, pt.days, in)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, OfferTier{Label: pt.label, Offer: offer})
	}
	return tiers, nil
}

// CalculateCustomOffer recomputes payback, payments and holdback from
// explicit amount/rate/term overrides. Whether the overrides are clamped
// into the grade's range or accepted verbatim is a policy flag.
func (c *OfferCalculator) CalculateCustomOffer(
	grade valueobject.PaperGrade,
	amount, factorRate decimal.Decimal,
	termDays int,
	in OfferInput,
) (Offer, error) {
	terms, err := c.policy.TermsFor(grade)
	if err != nil {
		return Offer{}, err
	}
	if in.MonthlyRevenue == nil {
		return Offer{}, ErrMissingRevenue
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Offer{}, fmt.Errorf("custom amount must be positive")
	}
	if factorRate.LessThanOrEqual(decimal.NewFromInt(1)) {
		return Offer{}, fmt.Errorf("custom factor rate must exceed 1.0")
	}
	if termDays <= 0 {
		return Offer{}, fmt.Errorf("custom term days must be positive")
	}

	if c.policy.ClampCustomOffers() {
		if factorRate.LessThan(terms.MinFactorRate) {
			factorRate = terms.MinFactorRate
		}
		if factorRate.GreaterThan(terms.MaxFactorRate) {
			factorRate = terms.MaxFactorRate
		}
		if termDays < terms.MinTermDays {
			termDays = terms.MinTermDays
		}
		if termDays > terms.MaxTermDays {
			termDays = terms.MaxTermDays
		}
		maxApproval := in.MonthlyRevenue.Mul(terms.MaxRevenueMultiple)
		if amount.GreaterThan(maxApproval) {
			amount = maxApproval
		}
	}
	return c.buildOffer(grade, amount, factorRate, termDays, in)
}

// ConstraintsFor returns the grade's policy envelope plus the merchant's
// daily payment capacity.
func (c *OfferCalculator) ConstraintsFor(grade valueobject.PaperGrade, in OfferInput) (OfferConstraints, error) {
	terms, err := c.policy.TermsFor(grade)
	if err != nil {
		return OfferConstraints{}, err
	}
	oc := OfferConstraints{
		Grade:         grade,
		MinFactorRate: terms.MinFactorRate,
		MaxFactorRate: terms.MaxFactorRate,
		MinTermDays:   terms.MinTermDays,
		MaxTermDays:   terms.MaxTermDays,
		ExistingLoad:  in.ExistingDailyLoad,
		PolicyVersion: c.policy.Version(),
		ClampCustom:   c.policy.ClampCustomOffers(),
	}
	if in.MonthlyRevenue != nil {
		oc.MaxApprovalCap = in.MonthlyRevenue.Mul(terms.MaxRevenueMultiple).Round(2)
		daysPerMonth := decimal.NewFromInt(int64(c.policy.BusinessDaysPerMonth()))
		oc.DailyCapacity = in.MonthlyRevenue.Div(daysPerMonth).Sub(in.ExistingDailyLoad).Round(2)
	}
	return oc, nil
}

// buildOffer performs the shared payback/payment/holdback math. Rounding
// happens only here, at the output boundary.
func (c *OfferCalculator) buildOffer(
	grade valueobject.PaperGrade,
	approved, factorRate decimal.Decimal,
	termDays int,
	in OfferInput,
) (Offer, error) {
	if termDays <= 0 {
		return Offer{}, fmt.Errorf("term days must be positive")
	}

	payback := approved.Mul(factorRate)
	daily := payback.Div(decimal.NewFromInt(int64(termDays)))
	weekly := daily.Mul(decimal.NewFromInt(int64(c.policy.BusinessDaysPerWeek())))

	daysPerMonth := decimal.NewFromInt(int64(c.policy.BusinessDaysPerMonth()))
	dailyRevenue := in.MonthlyRevenue.Div(daysPerMonth)
	holdback := decimal.Zero
	if dailyRevenue.IsPositive() {
		holdback = daily.Add(in.ExistingDailyLoad).Div(dailyRevenue).Mul(decimal.NewFromInt(100))
	}

	commissionRate := c.policy.DefaultBrokerCommission()
	if in.BrokerCommissionRate != nil {
		commissionRate = *in.BrokerCommissionRate
	}

	return Offer{
		Grade:           grade,
		ApprovedAmount:  approved.Round(2),
		FactorRate:      factorRate,
		TermDays:        termDays,
		PaybackAmount:   payback.Round(2),
		DailyPayment:    daily.Round(2),
		WeeklyPayment:   weekly.Round(2),
		HoldbackPercent: holdback.Round(2),
		Position:        in.ExistingPositions + 1,
		Commission:      approved.Mul(commissionRate).Round(2),
		PolicyVersion:   c.policy.Version(),
	}, nil
}
