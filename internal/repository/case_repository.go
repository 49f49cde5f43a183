package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/escalation-service/internal/domain"
)

// CaseRepository persists the case collection as a single opaque blob.
// Every mutation is a whole-collection replace; there are no partial
// writes, so swapping the backend never changes caller semantics.
type CaseRepository interface {
	Load(ctx context.Context) ([]domain.Case, error)
	Save(ctx context.Context, cases []domain.Case) error
}

type redisCaseRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisCaseRepository stores the collection as a JSON array under a
// single Redis key.
func NewRedisCaseRepository(client *redis.Client, key string, logger *zap.Logger) CaseRepository {
	return &redisCaseRepository{client: client, key: key, logger: logger}
}

// Load returns the stored collection. An absent key, an unreadable value,
// invalid JSON, or a payload that is not an array all degrade to an empty
// collection so the view stays renderable.
func (r *redisCaseRepository) Load(ctx context.Context) ([]domain.Case, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("case blob unreadable, treating as empty", zap.Error(err))
		}
		return []domain.Case{}, nil
	}
	return decodeCases(raw, r.logger), nil
}

// Save overwrites the blob unconditionally with the full collection.
func (r *redisCaseRepository) Save(ctx context.Context, cases []domain.Case) error {
	payload, err := encodeCases(cases)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, payload, 0).Err()
}

func encodeCases(cases []domain.Case) ([]byte, error) {
	if cases == nil {
		cases = []domain.Case{}
	}
	return json.Marshal(cases)
}

func decodeCases(raw []byte, logger *zap.Logger) []domain.Case {
	var cases []domain.Case
	if err := json.Unmarshal(raw, &cases); err != nil {
		logger.Warn("case blob malformed, treating as empty", zap.Error(err))
		return []domain.Case{}
	}
	if cases == nil {
		cases = []domain.Case{}
	}
	return cases
}
