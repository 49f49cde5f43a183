package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/escalation-service/internal/domain"
)

type postgresCaseRepository struct {
	pool   *pgxpool.Pool
	key    string
	logger *zap.Logger
}

// NewPostgresCaseRepository stores the collection as a single jsonb row in
// the case_store table, keyed by the store key.
func NewPostgresCaseRepository(pool *pgxpool.Pool, key string, logger *zap.Logger) CaseRepository {
	return &postgresCaseRepository{pool: pool, key: key, logger: logger}
}

func (r *postgresCaseRepository) Load(ctx context.Context) ([]domain.Case, error) {
	const query = `SELECT payload FROM case_store WHERE store_key=$1`
	var raw []byte
	if err := r.pool.QueryRow(ctx, query, r.key).Scan(&raw); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("case blob unreadable, treating as empty", zap.Error(err))
		}
		return []domain.Case{}, nil
	}
	return decodeCases(raw, r.logger), nil
}

func (r *postgresCaseRepository) Save(ctx context.Context, cases []domain.Case) error {
	payload, err := encodeCases(cases)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO case_store (store_key, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (store_key) DO UPDATE SET payload=EXCLUDED.payload, updated_at=NOW()`
	_, err = r.pool.Exec(ctx, query, r.key, payload)
	return err
}
