// Package services – AuthService
//
// AuthService authenticates administrators: password login issuing a signed
// token, token verification for protected routes, password changes and the
// first-run admin account.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
	"github.com/tbourn/go-portfolio-backend/internal/security"
)

// MinPasswordRunes is the shortest password ChangePassword accepts.
const MinPasswordRunes = 8

// AuthService implements admin authentication.
type AuthService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
}

var authTracer = otel.Tracer("services/AuthService")

// Login checks credentials and returns a signed token for the admin. An
// unknown username and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	ctx, span := authTracer.Start(ctx, "Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, validationf("username and password are required")
	}
	a, err := repo.GetAdminByUsername(ctx, s.DB, username)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, storage("get admin", err)
	}
	if !security.CheckPassword(a.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := security.GenerateAdminToken(s.Secret, a.ID, a.Username, s.TTL)
	if err != nil {
		return "", nil, err
	}
	span.SetAttributes(attribute.Int64("admin.id", int64(a.ID)))
	return tok, a, nil
}

// Verify parses token and loads the admin it names.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Admin, error) {
	claims, err := security.ParseAdminToken(s.Secret, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.Admin(ctx, claims.AdminID)
}

// Admin loads an admin by id. A missing admin is ErrUnauthorized since ids
// come from tokens.
func (s *AuthService) Admin(ctx context.Context, id uint) (*domain.Admin, error) {
	a, err := repo.GetAdmin(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, storage("get admin", err)
	}
	return a, nil
}

// ParseToken validates a token without touching the database.
func (s *AuthService) ParseToken(token string) (*security.AdminClaims, error) {
	return security.ParseAdminToken(s.Secret, token)
}

// ChangePassword replaces the admin's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, current, next string) error {
	ctx, span := authTracer.Start(ctx, "ChangePassword")
	defer span.End()

	if current == "" || next == "" {
		return validationf("current and new password are required")
	}
	if utf8.RuneCountInString(next) < MinPasswordRunes {
		return validationf("new password must be at least %d characters", MinPasswordRunes)
	}
	a, err := s.Admin(ctx, adminID)
	if err != nil {
		return err
	}
	if !security.CheckPassword(a.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := security.HashPassword(next)
	if err != nil {
		return err
	}
	if err := repo.UpdateAdminPassword(ctx, s.DB, a.ID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUnauthorized
		}
		return storage("update password", err)
	}
	return nil
}

// EnsureAdmin creates the given account when no admin exists yet. It reports
// whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	n, err := repo.CountAdmins(ctx, s.DB)
	if err != nil {
		return false, storage("count admins", err)
	}
	if n > 0 {
		return false, nil
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return false, err
	}
	a := &domain.Admin{Username: strings.TrimSpace(username), PasswordHash: hash}
	if err := repo.CreateAdmin(ctx, s.DB, a); err != nil {
		return false, storage("create admin", err)
	}
	return true, nil
}
