// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/assistec/go-whats-backend/internal/ai"
	"github.com/assistec/go-whats-backend/internal/config"
	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/http/handlers"
	"github.com/assistec/go-whats-backend/internal/http/middleware"
	"github.com/assistec/go-whats-backend/internal/services"
	"github.com/assistec/go-whats-backend/internal/whatsapp"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: the messaging-platform webhook, the admin API (products, settings,
// logs), and the operational endpoints (/health, /metrics, /webhook/status).
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured logs with phone-number redaction
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP; webhooks carry no user identity)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db + per-settings factories.
	// AI and transport credentials live in the settings row, so clients are
	// constructed per invocation rather than at startup.
	newAIClient := func(s *domain.Settings) *ai.Client {
		return ai.NewClient(cfg.OpenRouterURL, s.OpenRouterKey, s.OpenRouterModel)
	}
	pipeline := &services.PipelineService{
		DB: db,
		NewAI: func(s *domain.Settings) (services.Analyzer, services.Responder) {
			c := newAIClient(s)
			return c, c
		},
		NewTransport: func(s *domain.Settings) services.Transport {
			return whatsapp.NewClient(cfg.EvolutionBaseURL, s.InstanceID, s.EvolutionToken)
		},
		IntentThreshold:  cfg.Pipeline.IntentThreshold,
		ContextThreshold: cfg.Pipeline.ContextThreshold,
	}
	status := &services.StatusService{
		DB: db,
		NewProber: func(s *domain.Settings) services.InstanceProber {
			return whatsapp.NewClient(cfg.EvolutionBaseURL, s.InstanceID, s.EvolutionToken)
		},
	}
	h := handlers.New(db, pipeline, status, newAIClient)

	// Webhook (mounted at root: the messaging platform posts here directly)
	r.POST("/webhook/whatsapp", h.ReceiveWebhook)
	r.GET("/webhook/status", h.WebhookStatus)

	// Admin API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Webhook aliases for deployments that proxy everything under the
		// API base path. Skipped when the base path is the root, where the
		// routes above already cover them.
		if api.BasePath() != "" && api.BasePath() != "/" {
			api.POST("/webhook/whatsapp", h.ReceiveWebhook)
			api.GET("/webhook/status", h.WebhookStatus)
		}

		// Products
		api.GET("/products", h.ListProducts)
		api.POST("/products", h.CreateProduct)
		api.GET("/products/:id", h.GetProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)

		// Settings
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)
		api.POST("/settings/test-connection", h.TestAIConnection)

		// Message logs
		api.GET("/logs", h.ListLogs)
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
