package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anahush1701/payment-resilience/internal/domain"
	gormdb "github.com/anahush1701/payment-resilience/internal/infrastructure/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupIdempotencyRepo(t *testing.T) (domain.IdempotencyRepository, *gorm.DB) {
	t.Helper()
	db, err := gormdb.NewTestConnection()
	require.NoError(t, err)
	return NewIdempotencyRepo(db), db
}

func sampleRecord(key string, ttl time.Duration) *domain.IdempotencyRecord {
	return &domain.IdempotencyRecord{
		Key:                key,
		RequestFingerprint: "fp-1",
		Status:             domain.IdempotencyStatusProcessing,
		CreatedAt:          time.Now(),
		ExpiresAt:          time.Now().Add(ttl),
	}
}

func TestIdempotencyRepo_CreateAndFind(t *testing.T) {
	repo, _ := setupIdempotencyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleRecord("key-1", time.Hour)))

	found, err := repo.FindByKey(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "fp-1", found.RequestFingerprint)
	assert.Equal(t, domain.IdempotencyStatusProcessing, found.Status)
}

func TestIdempotencyRepo_FindUnknownKeyReturnsNil(t *testing.T) {
	repo, _ := setupIdempotencyRepo(t)

	found, err := repo.FindByKey(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestIdempotencyRepo_ExpiredRecordIsInvisible(t *testing.T) {
	repo, _ := setupIdempotencyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleRecord("key-exp", -time.Minute)))

	found, err := repo.FindByKey(ctx, "key-exp")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestIdempotencyRepo_UpdateTransitionsStatus(t *testing.T) {
	repo, _ := setupIdempotencyRepo(t)
	ctx := context.Background()

	record := sampleRecord("key-2", time.Hour)
	require.NoError(t, repo.Create(ctx, record))

	record.Status = domain.IdempotencyStatusCompleted
	record.PaymentID = "pay-9"
	record.ResponseBody = []byte(`{"id":"pay-9"}`)
	require.NoError(t, repo.Update(ctx, record))

	found, err := repo.FindByKey(ctx, "key-2")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusCompleted, found.Status)
	assert.Equal(t, "pay-9", found.PaymentID)
	assert.JSONEq(t, `{"id":"pay-9"}`, string(found.ResponseBody))
}

func TestIdempotencyRepo_DeleteExpiredRemovesOnlyExpired(t *testing.T) {
	repo, _ := setupIdempotencyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleRecord("live", time.Hour)))
	require.NoError(t, repo.Create(ctx, sampleRecord("dead", -time.Minute)))

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	found, err := repo.FindByKey(ctx, "live")
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestIdempotencyRepo_FindByKeyForUpdateInsideTx(t *testing.T) {
	repo, db := setupIdempotencyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleRecord("key-3", time.Hour)))

	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := repo.FindByKeyForUpdate(ctx, tx, "key-3")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "key-3", found.Key)
		return nil
	})
	require.NoError(t, err)
}

func TestIdempotencyRepo_FindByKeyForUpdateReturnsExpiredRow(t *testing.T) {
	repo, db := setupIdempotencyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleRecord("stale", -time.Minute)))

	// The expired row still occupies the key, so the claim-side lookup
	// must surface it for recycling even though reads treat it as gone.
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := repo.FindByKeyForUpdate(ctx, tx, "stale")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.ExpiresAt.Before(time.Now()))
		return nil
	})
	require.NoError(t, err)

	found, err := repo.FindByKey(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, found)
}
