package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// GetConfig returns the configuration singleton, creating it with defaults
// when the row is missing.
func GetConfig(ctx context.Context, db *gorm.DB) (*domain.ChatbotConfig, error) {
	def := domain.DefaultChatbotConfig()
	var c domain.ChatbotConfig
	err := db.WithContext(ctx).
		Where(&domain.ChatbotConfig{ID: domain.ConfigID}).
		Attrs(def).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveConfig writes all columns of the singleton. The ID is forced to
// ConfigID so a second row can never appear.
func SaveConfig(ctx context.Context, db *gorm.DB, c *domain.ChatbotConfig) error {
	c.ID = domain.ConfigID
	c.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Save(c).Error
}

// CountConfigs returns the number of configuration rows.
func CountConfigs(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ChatbotConfig{}).Count(&n).Error
	return n, err
}
