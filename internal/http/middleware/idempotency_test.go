package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type lookupCall struct {
	scope, key string
	n          int
}

func idemRouter(lookup IdempotencyLookup) *gin.Engine {
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{MaxLen: 16}, lookup))
	h := func(c *gin.Context) {
		key, _ := GetIdempotencyKey(c)
		c.JSON(http.StatusOK, gin.H{"key": key, "replay": IsReplay(c), "bypass": IsRateBypass(c)})
	}
	r.POST("/api/chatbot/chat", h)
	r.GET("/api/chatbot/chat", h)
	return r
}

func TestIdempotencyValidator_NoHeaderOrSafeMethod(t *testing.T) {
	var calls lookupCall
	r := idemRouter(func(_ context.Context, scope, key string, _ time.Time) (bool, error) {
		calls.n++
		return true, nil
	})
	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/chatbot/chat", nil))
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), `"replay":true`) {
		t.Fatalf("no header: %d %s", w.Code, w.Body)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/chatbot/chat", nil)
	req.Header.Set(HeaderIdempotencyKey, "bad key!!")
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Fatalf("GET must ignore the header, got %d", w.Code)
	}
	if calls.n != 0 {
		t.Fatalf("lookup called %d times", calls.n)
	}
}

func TestIdempotencyValidator_InvalidKeys(t *testing.T) {
	r := idemRouter(nil)
	for _, key := range []string{"has space", "x" + strings.Repeat("y", 16), "semi;colon"} {
		req := httptest.NewRequest(http.MethodPost, "/api/chatbot/chat", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		w := serve(r, req)
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"bad_request"`) {
			t.Fatalf("key %q: %d %s", key, w.Code, w.Body)
		}
	}
}

func TestIdempotencyValidator_LookupMissHitAndError(t *testing.T) {
	var calls lookupCall
	result := false
	var lookErr error
	r := idemRouter(func(_ context.Context, scope, key string, _ time.Time) (bool, error) {
		calls.scope, calls.key = scope, key
		calls.n++
		return result, lookErr
	})

	post := func() string {
		req := httptest.NewRequest(http.MethodPost, "/api/chatbot/chat", nil)
		req.Header.Set(HeaderIdempotencyKey, "k-1")
		return serve(r, req).Body.String()
	}

	if body := post(); !strings.Contains(body, `"key":"k-1"`) || !strings.Contains(body, `"replay":false`) {
		t.Fatalf("miss body = %s", body)
	}
	if calls.scope != "/api/chatbot/chat|ip:192.0.2.1" || calls.key != "k-1" {
		t.Fatalf("lookup got scope=%q key=%q", calls.scope, calls.key)
	}

	other := httptest.NewRequest(http.MethodPost, "/api/chatbot/chat", nil)
	other.RemoteAddr = "198.51.100.7:5555"
	other.Header.Set(HeaderIdempotencyKey, "k-1")
	serve(r, other)
	if calls.scope != "/api/chatbot/chat|ip:198.51.100.7" {
		t.Fatalf("scope must include the client IP, got %q", calls.scope)
	}

	result = true
	if body := post(); !strings.Contains(body, `"replay":true`) || !strings.Contains(body, `"bypass":true`) {
		t.Fatalf("hit body = %s", body)
	}

	_ = captureLogger(t)
	result, lookErr = false, errors.New("db down")
	if body := post(); !strings.Contains(body, `"replay":false`) {
		t.Fatalf("error body = %s", body)
	}
	if calls.n != 4 {
		t.Fatalf("lookup calls = %d", calls.n)
	}
}
