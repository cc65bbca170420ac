package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/capsohq/modelcache/catalog"
	"github.com/capsohq/modelcache/transports/lib"
)

// HealthHandler manages HTTP requests for health checks.
type HealthHandler struct {
	config *lib.Config
}

// NewHealthHandler creates a new health handler instance.
func NewHealthHandler(config *lib.Config) *HealthHandler {
	return &HealthHandler{config: config}
}

// RegisterRoutes registers the health-related routes.
func (h *HealthHandler) RegisterRoutes(r *router.Router, middlewares ...lib.Middleware) {
	r.GET("/health", lib.ChainMiddlewares(h.getHealth, middlewares...))
	r.GET("/api/internal/health/model-cache", lib.ChainMiddlewares(h.getModelCacheHealth, middlewares...))
}

// getHealth handles GET /health - liveness plus a config-store ping.
func (h *HealthHandler) getHealth(ctx *fasthttp.RequestCtx) {
	if h.config.ConfigStore == nil {
		SendJSON(ctx, map[string]any{"status": "ok", "components": map[string]any{"config_store": "disabled"}})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := h.config.ConfigStore.Ping(reqCtx); err != nil {
		SendError(ctx, fasthttp.StatusServiceUnavailable, "config store not available")
		return
	}
	SendJSON(ctx, map[string]any{"status": "ok", "components": map[string]any{"config_store": "ok"}})
}

// getModelCacheHealth handles GET /api/internal/health/model-cache.
func (h *HealthHandler) getModelCacheHealth(ctx *fasthttp.RequestCtx) {
	if h.config == nil || h.config.Catalog == nil {
		SendError(ctx, fasthttp.StatusServiceUnavailable, "model cache is not initialized")
		return
	}

	report := h.config.Catalog.GetFetchHealthReport()
	statusCode := fasthttp.StatusOK
	if report.Status == catalog.FetchHealthError {
		statusCode = fasthttp.StatusServiceUnavailable
	}
	SendJSONWithStatus(ctx, report, statusCode)
}
