package repo

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// newTestDB opens a private in-memory database. With no models given the
// schema is left empty, which is handy for exercising error paths.
func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func allModels() []any {
	return []any{&domain.QARule{}, &domain.ChatbotConfig{}, &domain.ChatTurn{}, &domain.Admin{}, &domain.Idempotency{}}
}

func mustCreateRule(t *testing.T, db *gorm.DB, r domain.QARule) *domain.QARule {
	t.Helper()
	if err := CreateQARule(context.Background(), db, &r); err != nil {
		t.Fatalf("create rule: %v", err)
	}
	return &r
}

func ptr[T any](v T) *T { return &v }
