package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// RiskAssessment holds the outcome of scoring a deal's merchant profile.
type RiskAssessment struct {
	Score   int
	Grade   valueobject.PaperGrade
	Factors []ScoringFactor
	Signals []string
}

// ScoringFactor represents a single factor in the scoring model.
type ScoringFactor struct {
	Name   string
	Weight decimal.Decimal
	Impact string
	Score  int
}

// ScoreInput bundles the read-only state the scorer consumes. BankAnalysis
// may be nil and Owners may be empty; both degrade the score's confidence
// without failing.
type ScoreInput struct {
	Merchant          model.Merchant
	Owners            []model.OwnerSnapshot
	BankAnalysis      *model.BankAnalysis
	ExistingPositions int
	StackingDetected  bool
}

// RiskScorer is a pure domain service: the same input always produces the
// same assessment and nothing is mutated.
//
// Scoring model weights:
//   - Time in business:  20%
//   - Monthly revenue:   20%
//   - Industry tier:     15%
//   - Primary owner FICO: 20%
//   - Bank health:       15% (skipped and renormalized when absent)
//   - Position load:     10%
type RiskScorer struct {
	metrics BankMetricsAnalyzer
}

func NewRiskScorer() *RiskScorer {
	return &RiskScorer{metrics: NewBankMetricsAnalyzer()}
}

// missingDataScore is the neutral-penalized sub-score used when an optional
// input (FICO, revenue, time in business) is absent. Never zero: a thin file
// is worse than average, not catastrophic.
const missingDataScore = 40

// Score evaluates the merchant profile and returns a 0-100 score with its
// paper grade. Missing optional data is never an error; structurally invalid
// input (negative revenue or months) is.
func (s *RiskScorer) Score(in ScoreInput) (RiskAssessment, error) {
	if in.Merchant.MonthlyRevenue != nil && in.Merchant.MonthlyRevenue.IsNegative() {
		return RiskAssessment{}, fmt.Errorf("monthly revenue cannot be negative")
	}
	if in.Merchant.TimeInBusinessMonths != nil && *in.Merchant.TimeInBusinessMonths < 0 {
		return RiskAssessment{}, fmt.Errorf("time in business cannot be negative")
	}
	if in.ExistingPositions < 0 {
		return RiskAssessment{}, fmt.Errorf("existing positions cannot be negative")
	}

	var (
		factors []ScoringFactor
		signals []string
	)

	// Factor 1: time in business (20% weight)
	factors = append(factors, ScoringFactor{
		Name:   "time_in_business",
		Weight: decimal.NewFromFloat(0.20),
		Score:  scoreTimeInBusiness(in.Merchant.TimeInBusinessMonths),
	})
	if in.Merchant.TimeInBusinessMonths == nil {
		signals = append(signals, "time_in_business_missing")
	}

	// Factor 2: monthly revenue (20% weight)
	factors = append(factors, ScoringFactor{
		Name:   "monthly_revenue",
		Weight: decimal.NewFromFloat(0.20),
		Score:  scoreMonthlyRevenue(in.Merchant.MonthlyRevenue),
	})
	if in.Merchant.MonthlyRevenue == nil {
		signals = append(signals, "monthly_revenue_missing")
	}

	// Factor 3: industry tier (15% weight)
	factors = append(factors, ScoringFactor{
		Name:   "industry_tier",
		Weight: decimal.NewFromFloat(0.15),
		Score:  scoreIndustryTier(in.Merchant.IndustryTier),
	})

	// Factor 4: primary owner FICO (20% weight)
	ficoScore, ficoSignals := scorePrimaryOwnerFICO(in.Owners)
	factors = append(factors, ScoringFactor{
		Name:   "owner_fico",
		Weight: decimal.NewFromFloat(0.20),
		Score:  ficoScore,
	})
	signals = append(signals, ficoSignals...)

	// Factor 5: bank health (15% weight), skipped entirely when no
	// analysis exists. Substituting zero would look artificially bad.
	if in.BankAnalysis != nil {
		factors = append(factors, ScoringFactor{
			Name:   "bank_health",
			Weight: decimal.NewFromFloat(0.15),
			Score:  s.scoreBankHealth(*in.BankAnalysis),
		})
	} else {
		signals = append(signals, "bank_analysis_missing")
	}

	// Factor 6: position load (10% weight)
	factors = append(factors, ScoringFactor{
		Name:   "position_load",
		Weight: decimal.NewFromFloat(0.10),
		Score:  scorePositionLoad(in.ExistingPositions, in.StackingDetected),
	})

	// Weighted average over the factors actually present. Skipped factors
	// renormalize the remaining weights instead of dragging the score down.
	weightedSum := decimal.Zero
	totalWeight := decimal.Zero
	for i := range factors {
		factors[i].Impact = impactLabel(factors[i].Score)
		weightedSum = weightedSum.Add(factors[i].Weight.Mul(decimal.NewFromInt(int64(factors[i].Score))))
		totalWeight = totalWeight.Add(factors[i].Weight)
	}

	score := int(weightedSum.Div(totalWeight).Round(0).IntPart())
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return RiskAssessment{
		Score:   score,
		Grade:   valueobject.PaperGradeFromScore(score),
		Factors: factors,
		Signals: signals,
	}, nil
}

// scoreTimeInBusiness scales months in business to 0-100. Anything under
// six months is heavily penalized; five years or more scores full marks.
func scoreTimeInBusiness(months *int) int {
	if months == nil {
		return missingDataScore
	}
	m := *months
	if m < 6 {
		return 10
	}
	if m >= 60 {
		return 100
	}
	return m * 100 / 60
}

var revenueBands = []struct {
	ceiling decimal.Decimal
	score   int
}{
	{decimal.NewFromInt(5000), 20},
	{decimal.NewFromInt(15000), 50},
	{decimal.NewFromInt(40000), 70},
	{decimal.NewFromInt(100000), 85},
}

// scoreMonthlyRevenue bands revenue so very small and very large merchants
// stay off the extremes.
func scoreMonthlyRevenue(revenue *decimal.Decimal) int {
	if revenue == nil {
		return missingDataScore
	}
	for _, band := range revenueBands {
		if revenue.LessThan(band.ceiling) {
			return band.score
		}
	}
	return 95
}

func scoreIndustryTier(tier valueobject.IndustryTier) int {
	switch {
	case tier.Equal(valueobject.IndustryTierLow):
		return 90
	case tier.Equal(valueobject.IndustryTierHigh):
		return 30
	default:
		return 60
	}
}

// PrimaryOwner selects the deciding owner deterministically: the flagged
// primary wins; with zero or several primaries the highest ownership
// percentage wins, earliest in the slice on a tie.
func PrimaryOwner(owners []model.OwnerSnapshot) (model.OwnerSnapshot, bool) {
	if len(owners) == 0 {
		return model.OwnerSnapshot{}, false
	}

	var primaries []model.OwnerSnapshot
	for _, o := range owners {
		if o.IsPrimary {
			primaries = append(primaries, o)
		}
	}
	if len(primaries) == 1 {
		return primaries[0], true
	}
	pool := owners
	if len(primaries) > 1 {
		pool = primaries
	}

	candidates := make([]model.OwnerSnapshot, len(pool))
	copy(candidates, pool)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].OwnershipPct.GreaterThan(candidates[j].OwnershipPct)
	})
	return candidates[0], true
}

func scorePrimaryOwnerFICO(owners []model.OwnerSnapshot) (int, []string) {
	owner, ok := PrimaryOwner(owners)
	if !ok {
		return missingDataScore, []string{"no_owners", "fico_missing"}
	}
	if owner.FICOScore == nil {
		return missingDataScore, []string{"fico_missing"}
	}

	fico := *owner.FICOScore
	switch {
	case fico >= 750:
		return 95, nil
	case fico >= 700:
		return 80, nil
	case fico >= 650:
		return 60, nil
	case fico >= 600:
		return 40, nil
	default:
		return 20, nil
	}
}

// scoreBankHealth starts from full marks and penalizes NSF and overdraft
// frequency, balance volatility, thin deposit coverage, and a declining
// revenue trend.
func (s *RiskScorer) scoreBankHealth(ba model.BankAnalysis) int {
	m := s.metrics.Analyze(ba)
	score := decimal.NewFromInt(100)

	if m.NSFPerMonth != nil {
		penalty := m.NSFPerMonth.Mul(decimal.NewFromInt(15))
		score = score.Sub(capAt(penalty, 40))
	}
	if m.OverdraftsPerMonth != nil {
		penalty := m.OverdraftsPerMonth.Mul(decimal.NewFromInt(10))
		score = score.Sub(capAt(penalty, 30))
	}
	if m.BalanceVolatility != nil && m.BalanceVolatility.GreaterThan(decimal.NewFromInt(2)) {
		score = score.Sub(decimal.NewFromInt(15))
	}
	if m.DepositDayCoverage != nil && m.DepositDayCoverage.LessThan(decimal.NewFromFloat(0.40)) {
		score = score.Sub(decimal.NewFromInt(10))
	}
	if ba.RevenueTrend.Equal(valueobject.RevenueTrendDeclining) {
		score = score.Sub(decimal.NewFromInt(20))
	}

	result := int(score.Round(0).IntPart())
	if result < 0 {
		result = 0
	}
	return result
}

// scorePositionLoad drops monotonically with each existing position; a
// positive stacking detection costs an additional flat penalty.
func scorePositionLoad(positions int, stackingDetected bool) int {
	score := 100 - positions*25
	if stackingDetected {
		score -= 15
	}
	if score < 0 {
		score = 0
	}
	return score
}

func capAt(v decimal.Decimal, max int64) decimal.Decimal {
	ceiling := decimal.NewFromInt(max)
	if v.GreaterThan(ceiling) {
		return ceiling
	}
	return v
}

func impactLabel(score int) string {
	switch {
	case score >= 80:
		return "POSITIVE"
	case score >= 50:
		return "NEUTRAL"
	default:
		return "NEGATIVE"
	}
}
