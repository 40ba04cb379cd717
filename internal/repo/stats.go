// Package repo: aggregate queries behind the chatbot stats endpoint. Each
// function is a single read; nothing is cached or materialized.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// TopRule is a rule summary ranked by hit count.
type TopRule struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
	HitCount int64  `json:"hit_count"`
}

// CountMatchedTurns counts turns that were answered by a rule.
func CountMatchedTurns(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ChatTurn{}).
		Where("matched_rule_id IS NOT NULL").Count(&n).Error
	return n, err
}

// CountDistinctVisitors counts distinct visitor ids across all turns.
func CountDistinctVisitors(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ChatTurn{}).
		Distinct("visitor_id").Count(&n).Error
	return n, err
}

// CountTurnsBetween counts turns created in [from, to).
//
// Bounds are compared in UTC because turns are stored in UTC.
func CountTurnsBetween(ctx context.Context, db *gorm.DB, from, to time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ChatTurn{}).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Count(&n).Error
	return n, err
}

// TopRules returns up to limit rules with a positive hit count, ordered by
// hit_count DESC, then order_index and id ascending. The slice is never nil.
func TopRules(ctx context.Context, db *gorm.DB, limit int) ([]TopRule, error) {
	out := make([]TopRule, 0, limit)
	err := db.WithContext(ctx).Model(&domain.QARule{}).
		Select("id", "question", "hit_count").
		Where("hit_count > 0").
		Order("hit_count DESC").
		Order("order_index ASC").
		Order("id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
