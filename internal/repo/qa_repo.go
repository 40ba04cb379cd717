// Package repo: Q&A rule persistence.
//
// Functions follow the thin repository approach: no validation or business
// rules, only query composition. Missing rows surface as ErrNotFound
// (gorm.ErrRecordNotFound); other DB errors are returned unchanged.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListQARules returns rules in store order (order_index, then id).
// When activeOnly is set, inactive rules are filtered out.
func ListQARules(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.QARule, error) {
	q := db.WithContext(ctx).Model(&domain.QARule{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []domain.QARule
	if err := q.Order("order_index ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetQARule fetches a rule by id, or ErrNotFound.
func GetQARule(ctx context.Context, db *gorm.DB, id uint) (*domain.QARule, error) {
	var r domain.QARule
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// NextOrderIndex returns max(order_index)+1. An empty table counts as max 0,
// so the first rule gets 1.
func NextOrderIndex(ctx context.Context, db *gorm.DB) (int, error) {
	var row struct {
		Max *int
	}
	if err := db.WithContext(ctx).Model(&domain.QARule{}).
		Select("MAX(order_index) AS max").Scan(&row).Error; err != nil {
		return 0, err
	}
	if row.Max == nil {
		return 1, nil
	}
	return *row.Max + 1, nil
}

// CreateQARule inserts r. When r.OrderIndex is negative the next free index
// is assigned inside the same transaction.
func CreateQARule(ctx context.Context, db *gorm.DB, r *domain.QARule) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.OrderIndex < 0 {
			next, err := NextOrderIndex(ctx, tx)
			if err != nil {
				return err
			}
			r.OrderIndex = next
		}
		return tx.Create(r).Error
	})
}

// SaveQARule writes every column of an existing rule. Returns ErrNotFound
// when no row has r.ID.
func SaveQARule(ctx context.Context, db *gorm.DB, r *domain.QARule) error {
	r.UpdatedAt = time.Now().UTC()
	res := db.WithContext(ctx).Model(r).
		Select("keywords", "question", "answer", "category", "is_active", "order_index", "updated_at").
		Updates(r)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteQARule hard-deletes a rule. Logged turns keep their dangling
// matched id.
func DeleteQARule(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.QARule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementHit bumps hit_count atomically in SQL.
func IncrementHit(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Model(&domain.QARule{}).Where("id = ?", id).
		UpdateColumn("hit_count", gorm.Expr("hit_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountQARules returns the number of stored rules.
func CountQARules(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.QARule{}).Count(&n).Error
	return n, err
}
