package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// CreateTurn appends a chat turn. CreatedAt is stamped in UTC when unset.
func CreateTurn(ctx context.Context, db *gorm.DB, t *domain.ChatTurn) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(t).Error
}

// GetTurn fetches a turn by id, or ErrNotFound.
func GetTurn(ctx context.Context, db *gorm.DB, id uint) (*domain.ChatTurn, error) {
	var t domain.ChatTurn
	if err := db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTurnsPage returns turns newest first, each joined with the question of
// its matched rule. Turns whose rule was deleted come back with a nil
// MatchedQuestion.
func ListTurnsPage(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.ChatTurnView, error) {
	out := make([]domain.ChatTurnView, 0, limit)
	err := db.WithContext(ctx).
		Table("chat_messages AS cm").
		Select("cm.*, qa.question AS matched_question").
		Joins("LEFT JOIN chatbot_qa AS qa ON qa.id = cm.matched_rule_id").
		Order("cm.created_at DESC").
		Order("cm.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountTurns returns the total number of logged turns.
func CountTurns(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ChatTurn{}).Count(&n).Error
	return n, err
}
