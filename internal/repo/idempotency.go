// Package repo: idempotency records that let POST /chatbot/chat be retried
// without matching and logging a second time.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// ErrDuplicate indicates that an idempotency record already exists for the
// given (scope, key) pair.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("scope = ? AND key = ? AND expires_at > ?", scope, key, now.UTC()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique violation.
func CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key, requestHash string, turnID uint, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:          uuid.NewString(),
		Scope:       scope,
		Key:         key,
		TurnID:      turnID,
		Status:      status,
		RequestHash: requestHash,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// PurgeExpiredIdempotency removes records that expired at or before now and
// returns how many were deleted.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}

// isUniqueViolation covers gorm's translated error and the plain-text
// messages glebarez/sqlite and pgx return.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value")
}
