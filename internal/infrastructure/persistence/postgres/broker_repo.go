package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/port"
)

// BrokerRepo implements port.BrokerRepository.
type BrokerRepo struct {
	pool *pgxpool.Pool
}

// NewBrokerRepo creates a new repository backed by PostgreSQL.
func NewBrokerRepo(pool *pgxpool.Pool) *BrokerRepo {
	return &BrokerRepo{pool: pool}
}

// FindByID retrieves a broker profile.
func (r *BrokerRepo) FindByID(ctx context.Context, tenantID, brokerID string) (model.Broker, error) {
	query := `
		SELECT id, tenant_id, name, commission_rate
		FROM brokers
		WHERE tenant_id = $1 AND id = $2
	`
	var b model.Broker
	err := r.pool.QueryRow(ctx, query, tenantID, brokerID).Scan(&b.ID, &b.TenantID, &b.Name, &b.CommissionRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Broker{}, port.ErrBrokerNotFound
		}
		return model.Broker{}, fmt.Errorf("find broker: %w", err)
	}
	return b, nil
}
