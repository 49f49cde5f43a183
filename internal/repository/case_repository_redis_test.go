package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/escalation-service/internal/domain"
)

const testStoreKey = "escalatedCases_v1"

func newRedisRepo(t *testing.T) (CaseRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCaseRepository(client, testStoreKey, zap.NewNop()), mr
}

func sampleCases() []domain.Case {
	return []domain.Case{
		{
			ID:            "case-1",
			OrgNumber:     "990011",
			Department:    "Finance",
			Description:   "missing invoice",
			DateEscalated: "2024-01-01",
			DueDate:       "2024-01-10",
			Status:        domain.CaseStatusOpen,
		},
		{
			ID:            "case-2",
			OrgNumber:     "880022",
			Department:    "HR",
			DateEscalated: "2024-01-03",
			DueDate:       "2024-01-12",
			Status:        domain.CaseStatusReturned,
		},
	}
}

func TestRedisLoadAbsentKey(t *testing.T) {
	repo, _ := newRedisRepo(t)

	cases, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cases)
	assert.Empty(t, cases)
}

func TestRedisSaveLoadRoundTrip(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	want := sampleCases()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisLoadMalformedBlob(t *testing.T) {
	repo, mr := newRedisRepo(t)
	require.NoError(t, mr.Set(testStoreKey, `{"oops`))

	cases, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestRedisLoadWrongShape(t *testing.T) {
	repo, mr := newRedisRepo(t)
	require.NoError(t, mr.Set(testStoreKey, `{"cases":[]}`))

	cases, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestRedisLoadNullBlob(t *testing.T) {
	repo, mr := newRedisRepo(t)
	require.NoError(t, mr.Set(testStoreKey, `null`))

	cases, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cases)
	assert.Empty(t, cases)
}

func TestRedisSaveReplacesWholeValue(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCases()))

	replacement := sampleCases()[:1]
	require.NoError(t, repo.Save(ctx, replacement))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestRedisSaveNilCollection(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, nil))

	raw, err := mr.Get(testStoreKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
