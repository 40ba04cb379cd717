package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-portfolio-backend/internal/security"
)

func init() { gin.SetMode(gin.TestMode) }

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)
	return &buf
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const testSecret = "s3cret"

type secretParser string

func (p secretParser) ParseToken(tok string) (*security.AdminClaims, error) {
	return security.ParseAdminToken(string(p), tok)
}

type failingParser struct{}

func (failingParser) ParseToken(string) (*security.AdminClaims, error) {
	return nil, errors.New("nope")
}

func mustToken(t *testing.T, id uint) string {
	t.Helper()
	tok, err := security.GenerateAdminToken(testSecret, id, "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	return tok
}
