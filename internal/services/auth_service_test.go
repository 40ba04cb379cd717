package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/security"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	s := &AuthService{DB: newTestDB(t), Secret: "s3cret", TTL: time.Hour}
	created, err := s.EnsureAdmin(context.Background(), "admin", "admin123")
	if err != nil || !created {
		t.Fatalf("EnsureAdmin = %v, %v", created, err)
	}
	return s
}

func TestAuthService_EnsureAdminOnlyOnce(t *testing.T) {
	s := newAuth(t)
	created, err := s.EnsureAdmin(context.Background(), "other", "password1")
	if err != nil || created {
		t.Fatalf("second EnsureAdmin = %v, %v", created, err)
	}
	var n int64
	s.DB.Model(&domain.Admin{}).Count(&n)
	if n != 1 {
		t.Fatalf("admins = %d; want 1", n)
	}
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	s := newAuth(t)
	ctx := context.Background()

	tok, a, err := s.Login(ctx, " admin ", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if a.Username != "admin" || tok == "" {
		t.Fatalf("unexpected login result: %q %+v", tok, a)
	}
	got, err := s.Verify(ctx, tok)
	if err != nil || got.ID != a.ID {
		t.Fatalf("Verify = %+v, %v", got, err)
	}

	if _, _, err := s.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, _, err := s.Login(ctx, "nobody", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
	if _, _, err := s.Login(ctx, "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank login err = %v", err)
	}
}

func TestAuthService_VerifyRejects(t *testing.T) {
	s := newAuth(t)
	ctx := context.Background()

	if _, err := s.Verify(ctx, "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("garbage err = %v", err)
	}
	ghost, _ := security.GenerateAdminToken("s3cret", 42, "ghost", time.Hour)
	if _, err := s.Verify(ctx, ghost); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown admin err = %v", err)
	}
	other, _ := security.GenerateAdminToken("different", 1, "admin", time.Hour)
	if _, err := s.Verify(ctx, other); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("foreign secret err = %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	s := newAuth(t)
	ctx := context.Background()
	_, a, _ := s.Login(ctx, "admin", "admin123")

	if err := s.ChangePassword(ctx, a.ID, "admin123", "short"); !errors.Is(err, ErrValidation) {
		t.Fatalf("short password err = %v", err)
	}
	if err := s.ChangePassword(ctx, a.ID, "nope", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current err = %v", err)
	}
	if err := s.ChangePassword(ctx, 99, "admin123", "longenough"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown admin err = %v", err)
	}
	if err := s.ChangePassword(ctx, a.ID, "admin123", "longenough"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, err := s.Login(ctx, "admin", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, _, err := s.Login(ctx, "admin", "longenough"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
