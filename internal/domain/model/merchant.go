package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Merchant and owner snapshots (read-only scoring inputs)
// ---------------------------------------------------------------------------

// Merchant is the point-in-time view of a merchant consumed by the
// underwriting engine. It is owned by the merchant record, never mutated here.
type Merchant struct {
	ID           string
	TenantID     string
	LegalName    string
	DBAName      string
	IndustryTier valueobject.IndustryTier

	// TimeInBusinessMonths is nil when the start date is unknown.
	TimeInBusinessMonths *int

	// MonthlyRevenue is nil until bank statements or tax returns establish it.
	MonthlyRevenue *decimal.Decimal
}

// OwnerSnapshot is one beneficial owner of a merchant. A merchant should have
// exactly one primary owner, but the engine tolerates zero or several.
type OwnerSnapshot struct {
	ID           string
	MerchantID   string
	FullName     string
	OwnershipPct decimal.Decimal

	// FICOScore is nil when no pull has been made for this owner.
	FICOScore *int

	IsPrimary bool
}

// Broker is the referring broker on a deal, used only as a pricing input.
type Broker struct {
	ID             string
	TenantID       string
	Name           string
	CommissionRate decimal.Decimal // fraction in [0,1]
}

// UCCFiling is a public lien filing recorded against a merchant. Active
// filings are treated as evidence of an existing funding position.
type UCCFiling struct {
	ID            string
	MerchantID    string
	SecuredParty  string
	FilingNumber  string
	FiledAt       time.Time
	Status        string // ACTIVE, TERMINATED, LAPSED
	CollateralDsc string
}

// IsActive reports whether the filing still encumbers the merchant.
func (f UCCFiling) IsActive() bool { return f.Status == "ACTIVE" }
