package service

import (
	"fmt"

	"github.com/advancehub/underwriting-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// StackingDetector – existing-position risk from bank and lien signals
// ---------------------------------------------------------------------------

// StackingResult reports whether the merchant appears to carry concurrent
// advance obligations, and the signals a reviewer can audit.
type StackingResult struct {
	StackingDetected bool
	Signals          []string
	// PositionCount is the number of independent signals found, used as
	// the existing-position estimate when the deal record carries none.
	PositionCount int
}

// StackingDetector is a pure domain service combining two independent
// sources: recurring MCA-like debit patterns from the bank analysis, and
// active UCC filings against the merchant. Either source alone is enough
// to raise the flag.
type StackingDetector struct{}

func NewStackingDetector() StackingDetector {
	return StackingDetector{}
}

// Detect inspects both signal sources. A nil bank analysis falls back to
// UCC-only, an empty filing list falls back to bank-only, and both absent
// means not stacked.
func (StackingDetector) Detect(ba *model.BankAnalysis, filings []model.UCCFiling) StackingResult {
	var signals []string

	if ba != nil {
		for _, p := range ba.DetectedPayments {
			if p.Frequency != "DAILY" && p.Frequency != "WEEKLY" {
				continue
			}
			signals = append(signals, fmt.Sprintf(
				"recurring %s debit %q of %s (%d occurrences)",
				p.Frequency, p.Description, p.Amount.StringFixed(2), p.Occurrences,
			))
		}
	}

	for _, f := range filings {
		if !f.IsActive() {
			continue
		}
		signals = append(signals, fmt.Sprintf(
			"active UCC filing %s by %s", f.FilingNumber, f.SecuredParty,
		))
	}

	return StackingResult{
		StackingDetected: len(signals) > 0,
		Signals:          signals,
		PositionCount:    len(signals),
	}
}
