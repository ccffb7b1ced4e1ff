package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/advancehub/underwriting-service/internal/domain/model"
)

// UCCFilingRepo implements port.UCCFilingRepository. Filings arrive from an
// external lien-search feed; this service only reads them.
type UCCFilingRepo struct {
	pool *pgxpool.Pool
}

// NewUCCFilingRepo creates a new repository backed by PostgreSQL.
func NewUCCFilingRepo(pool *pgxpool.Pool) *UCCFilingRepo {
	return &UCCFilingRepo{pool: pool}
}

// ListByMerchant retrieves all filings recorded against a merchant, newest
// first. An empty result is normal.
func (r *UCCFilingRepo) ListByMerchant(ctx context.Context, merchantID string) ([]model.UCCFiling, error) {
	query := `
		SELECT id, merchant_id, secured_party, filing_number, filed_at, status, collateral_description
		FROM ucc_filings
		WHERE merchant_id = $1
		ORDER BY filed_at DESC
	`
	rows, err := r.pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query ucc filings: %w", err)
	}
	defer rows.Close()

	var filings []model.UCCFiling
	for rows.Next() {
		var f model.UCCFiling
		if err := rows.Scan(&f.ID, &f.MerchantID, &f.SecuredParty, &f.FilingNumber, &f.FiledAt, &f.Status, &f.CollateralDsc); err != nil {
			return nil, fmt.Errorf("scan ucc filing: %w", err)
		}
		filings = append(filings, f)
	}
	return filings, rows.Err()
}
