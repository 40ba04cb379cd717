package services

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ConfigService reads and updates the chatbot configuration singleton.
type ConfigService struct {
	DB *gorm.DB
}

var configTracer = otel.Tracer("services/ConfigService")

// Get returns the current configuration, recreating the row with defaults
// if it was removed.
func (s *ConfigService) Get(ctx context.Context) (*domain.ChatbotConfig, error) {
	ctx, span := configTracer.Start(ctx, "Get")
	defer span.End()

	c, err := repo.GetConfig(ctx, s.DB)
	if err != nil {
		return nil, storage("get config", err)
	}
	return c, nil
}

// Update merges p into the stored configuration inside one transaction.
// An empty patch returns the current configuration.
func (s *ConfigService) Update(ctx context.Context, p domain.ChatbotConfigPatch) (*domain.ChatbotConfig, error) {
	ctx, span := configTracer.Start(ctx, "Update")
	defer span.End()

	if p.ResponseDelayMs != nil && *p.ResponseDelayMs < 0 {
		return nil, validationf("response_delay must be >= 0")
	}
	if p.ThemeColor != nil && !hexColor.MatchString(strings.TrimSpace(*p.ThemeColor)) {
		return nil, validationf("theme_color must be a hex colour like #10b981")
	}

	var out *domain.ChatbotConfig
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := repo.GetConfig(ctx, tx)
		if err != nil {
			return err
		}
		if !p.IsEmpty() {
			p.Apply(c)
			if err := repo.SaveConfig(ctx, tx, c); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, storage("update config", err)
	}
	return out, nil
}
