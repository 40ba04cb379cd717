package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/security"
)

// Gin context keys set by RequireAdmin.
const (
	ctxKeyAdminID  = "adminID"
	ctxKeyUsername = "adminUsername"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*security.AdminClaims, error)
}

// RequireAdmin rejects requests without a valid "Authorization: Bearer" admin
// token with 401. On success the admin id and username are stored in the
// Gin context.
func RequireAdmin(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearerToken(c.Request)
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		claims, err := p.ParseToken(tok)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ctxKeyAdminID, claims.AdminID)
		c.Set(ctxKeyUsername, claims.Username)
		c.Next()
	}
}

// AdminIDFrom returns the admin id stored by RequireAdmin.
func AdminIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxKeyAdminID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// AdminUsernameFrom returns the username stored by RequireAdmin, or "".
func AdminUsernameFrom(c *gin.Context) string {
	v, _ := c.Get(ctxKeyUsername)
	return asString(v)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": GetRequestID(c),
		"code":       "unauthorized",
		"message":    msg,
	})
}
