// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/docs"
	"github.com/tbourn/go-portfolio-backend/internal/config"
	"github.com/tbourn/go-portfolio-backend/internal/http/handlers"
	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
	"github.com/tbourn/go-portfolio-backend/internal/services"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp"`
}

// Dependencies are the services RegisterRoutes mounts. NewDependencies builds
// the production set from a database handle and the configuration.
type Dependencies struct {
	Handlers handlers.Services
	Auth     middleware.TokenParser
	// Lookup answers whether an idempotency record is still valid. Nil
	// disables replay detection in the middleware.
	Lookup middleware.IdempotencyLookup
}

// NewDependencies wires the services over db.
func NewDependencies(db *gorm.DB, cfg config.Config) Dependencies {
	qa := &services.QAService{DB: db}
	conf := &services.ConfigService{DB: db}
	chatLog := &services.ChatLogService{DB: db}
	auth := &services.AuthService{DB: db, Secret: cfg.Auth.JWTSecret, TTL: cfg.Auth.JWTTTL}
	bot := &services.ChatbotService{
		DB:              db,
		Rules:           qa,
		Config:          conf,
		Log:             chatLog,
		Locale:          cfg.Chatbot.Locale,
		MaxMessageRunes: cfg.Chatbot.MaxMessageRunes,
		IdempotencyTTL:  cfg.IdempotencyTTL,
	}

	return Dependencies{
		Handlers: handlers.Services{
			QA:     qa,
			Config: conf,
			Chat:   bot,
			Log:    chatLog,
			Stats:  &services.StatsService{DB: db},
			Auth:   auth,
		},
		Auth: auth,
		Lookup: func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, scope, key, now)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return false, nil
				}
				return false, err
			}
			return rec != nil, nil
		},
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip (metrics excluded)
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per IP, bypass on replay or valid admin token)
//  10. CORS and Security headers
//
// The client IP used for rate limiting, idempotency scopes and the chat log
// honours forwarding headers only from cfg.TrustedProxies.
func RegisterRoutes(r *gin.Engine, deps Dependencies, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid trusted proxies; trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(maxBodyBytes))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, deps.Lookup))

	// 9) Token-bucket rate limiter
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	if deps.Auth != nil {
		rl.BypassAdmins(deps.Auth)
	}
	r.Use(rl.Handler())

	// 10) CORS posture and security headers
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:           cfg.Security.EnableHSTS,
		HSTSMaxAge:           cfg.Security.HSTSMaxAge,
		EnablePolicy:         true,
		CrossOriginResources: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", health)

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps.Handlers)
	requireAdmin := middleware.RequireAdmin(deps.Auth)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Public
		api.GET("/chatbot/config", h.GetConfig)
		api.POST("/chatbot/chat", h.Chat)
		api.POST("/auth/login", h.Login)

		// Admin
		admin := api.Group("", requireAdmin, middleware.NoStore())
		admin.PUT("/chatbot/config", h.UpdateConfig)
		admin.GET("/chatbot/qa", h.ListQA)
		admin.POST("/chatbot/qa", h.CreateQA)
		admin.PUT("/chatbot/qa/:id", h.UpdateQA)
		admin.DELETE("/chatbot/qa/:id", h.DeleteQA)
		admin.GET("/chatbot/messages", h.ListMessages)
		admin.GET("/chatbot/stats", h.Stats)
		admin.GET("/auth/verify", h.Verify)
		admin.PUT("/auth/change-password", h.ChangePassword)
	}
}

// health is the liveness probe. It is mounted outside the API base path.
func health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// corsMiddleware returns the CORS chain. With no configured origins every
// origin is allowed without credentials. Otherwise the allowlist is echoed
// back.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length", "Retry-After", middleware.HeaderIdempotencyReplayed},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		// Force ACAO: * even for requests without an Origin header.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
