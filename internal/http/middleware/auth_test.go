package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/security"
)

func TestRequireAdmin(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/admin", RequireAdmin(secretParser(testSecret)), func(c *gin.Context) {
		id, ok := AdminIDFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok, "name": AdminUsernameFrom(c)})
	})

	expired, _ := security.GenerateAdminToken(testSecret, 1, "admin", -time.Minute)
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer   ", http.StatusUnauthorized},
		{"garbage", "Bearer a.b.c", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"valid", "Bearer " + mustToken(t, 3), http.StatusOK},
		{"lowercase scheme", "bearer " + mustToken(t, 3), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := serve(r, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d; want %d", w.Code, tc.want)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if tc.want == http.StatusUnauthorized {
				if body["code"] != "unauthorized" || body["request_id"] == "" {
					t.Fatalf("unexpected 401 body: %v", body)
				}
				return
			}
			if body["id"] != float64(3) || body["ok"] != true || body["name"] != "admin" {
				t.Fatalf("unexpected context values: %v", body)
			}
		})
	}
}

func TestAdminIDFrom_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := AdminIDFrom(c); ok {
		t.Fatalf("expected no admin id")
	}
	c.Set(ctxKeyAdminID, "3")
	if _, ok := AdminIDFrom(c); ok {
		t.Fatalf("non-uint value must not count")
	}
}
