package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// MerchantRepo implements port.MerchantRepository. Merchant records are
// owned by the platform's CRM; this service only reads them.
type MerchantRepo struct {
	pool *pgxpool.Pool
}

// NewMerchantRepo creates a new repository backed by PostgreSQL.
func NewMerchantRepo(pool *pgxpool.Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

// FindByID retrieves a merchant snapshot.
func (r *MerchantRepo) FindByID(ctx context.Context, tenantID, merchantID string) (model.Merchant, error) {
	query := `
		SELECT id, tenant_id, legal_name, dba_name, industry_tier,
		       time_in_business_months, monthly_revenue
		FROM merchants
		WHERE tenant_id = $1 AND id = $2
	`
	var (
		m       model.Merchant
		tierStr string
		months  *int
		revenue *decimal.Decimal
	)
	err := r.pool.QueryRow(ctx, query, tenantID, merchantID).Scan(
		&m.ID, &m.TenantID, &m.LegalName, &m.DBAName, &tierStr,
		&months, &revenue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Merchant{}, port.ErrMerchantNotFound
		}
		return model.Merchant{}, fmt.Errorf("find merchant: %w", err)
	}

	tier, err := valueobject.NewIndustryTier(tierStr)
	if err != nil {
		return model.Merchant{}, fmt.Errorf("parse industry tier: %w", err)
	}
	m.IndustryTier = tier
	m.TimeInBusinessMonths = months
	m.MonthlyRevenue = revenue
	return m, nil
}

// ListOwners retrieves the merchant's owner snapshots, primary first.
func (r *MerchantRepo) ListOwners(ctx context.Context, merchantID string) ([]model.OwnerSnapshot, error) {
	query := `
		SELECT id, merchant_id, full_name, ownership_pct, fico_score, is_primary
		FROM merchant_owners
		WHERE merchant_id = $1
		ORDER BY is_primary DESC, ownership_pct DESC
	`
	rows, err := r.pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}
	defer rows.Close()

	var owners []model.OwnerSnapshot
	for rows.Next() {
		var o model.OwnerSnapshot
		if err := rows.Scan(&o.ID, &o.MerchantID, &o.FullName, &o.OwnershipPct, &o.FICOScore, &o.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}
