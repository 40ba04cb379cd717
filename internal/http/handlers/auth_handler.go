// Auth HTTP handlers.
//
//   - POST /auth/login            (public)
//   - GET  /auth/verify           (admin)
//   - PUT  /auth/change-password  (admin)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
)

// AuthService authenticates administrators.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	Admin(ctx context.Context, id uint) (*domain.Admin, error)
	ChangePassword(ctx context.Context, adminID uint, current, next string) error
}

// LoginRequest is the JSON payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"admin123"`
}

// AdminInfo is the public view of an admin account.
type AdminInfo struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"admin"`
}

// LoginResponse carries the signed admin token.
type LoginResponse struct {
	Message string    `json:"message" example:"Login successful"`
	Token   string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Admin   AdminInfo `json:"admin"`
}

// VerifyResponse confirms a token is valid.
type VerifyResponse struct {
	Valid bool      `json:"valid" example:"true"`
	Admin AdminInfo `json:"admin"`
}

// ChangePasswordRequest is the JSON payload for PUT /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" example:"admin123"`
	NewPassword     string `json:"newPassword" example:"a-longer-secret"`
}

// Login godoc
// @ID          login
// @Summary     Admin login
// @Description Exchanges username and password for a bearer token.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.LoginRequest  true  "Credentials"
// @Success     200   {object}  handlers.LoginResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401   {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	tok, a, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   tok,
		Admin:   AdminInfo{ID: a.ID, Username: a.Username},
	})
}

// Verify godoc
// @ID          verifyToken
// @Summary     Verify admin token
// @Description Confirms the bearer token is valid and names an existing admin.
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.VerifyResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /auth/verify [get]
func (h *Handlers) Verify(c *gin.Context) {
	a, valid := h.currentAdmin(c)
	if !valid {
		return
	}
	ok(c, http.StatusOK, VerifyResponse{Valid: true, Admin: AdminInfo{ID: a.ID, Username: a.Username}})
}

// ChangePassword godoc
// @ID          changePassword
// @Summary     Change admin password
// @Description Replaces the password after checking the current one. The new password needs at least 8 characters.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.ChangePasswordRequest  true  "Current and new password"
// @Success     200   {object}  handlers.MessageResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthorized or wrong current password"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/change-password [put]
func (h *Handlers) ChangePassword(c *gin.Context) {
	id, found := middleware.AdminIDFrom(c)
	if !found {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

func (h *Handlers) currentAdmin(c *gin.Context) (*domain.Admin, bool) {
	id, found := middleware.AdminIDFrom(c)
	if !found {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return nil, false
	}
	a, err := h.auth.Admin(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return nil, false
	}
	return a, true
}
