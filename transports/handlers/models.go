package handlers

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/capsohq/modelcache/catalog"
	"github.com/capsohq/modelcache/schemas"
	"github.com/capsohq/modelcache/transports/lib"
)

// ModelsHandler serves the official-model endpoints for persisted providers
// and draft editing sessions.
type ModelsHandler struct {
	config *lib.Config
}

// NewModelsHandler creates a new models handler instance.
func NewModelsHandler(config *lib.Config) *ModelsHandler {
	return &ModelsHandler{config: config}
}

// RegisterRoutes registers the model-cache routes.
func (h *ModelsHandler) RegisterRoutes(r *router.Router, middlewares ...lib.Middleware) {
	r.GET("/api/providers/{name}/models", lib.ChainMiddlewares(h.getProviderModels, middlewares...))
	r.POST("/api/providers/{name}/refresh", lib.ChainMiddlewares(h.refreshProvider, middlewares...))
	r.DELETE("/api/providers/{name}/models", lib.ChainMiddlewares(h.clearProviderModels, middlewares...))

	r.POST("/api/drafts", lib.ChainMiddlewares(h.createDraft, middlewares...))
	r.POST("/api/drafts/{session}/models", lib.ChainMiddlewares(h.getDraftModels, middlewares...))
	r.POST("/api/drafts/{session}/seed", lib.ChainMiddlewares(h.seedDraft, middlewares...))
	r.POST("/api/drafts/{session}/promote", lib.ChainMiddlewares(h.promoteDraft, middlewares...))
	r.DELETE("/api/drafts/{session}", lib.ChainMiddlewares(h.discardDraft, middlewares...))
}

// getProviderModels handles GET /api/providers/{name}/models?force=.
func (h *ModelsHandler) getProviderModels(ctx *fasthttp.RequestCtx) {
	name := pathParam(ctx, "name")
	params, ok := h.config.LookupProvider(name)
	if !ok {
		SendError(ctx, fasthttp.StatusNotFound, "unknown provider: "+name)
		return
	}

	data, err := h.config.Catalog.GetOfficialModelsData(ctx, params, boolQuery(ctx, "force"))
	if err != nil {
		SendError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	SendJSON(ctx, data)
}

// refreshProvider handles POST /api/providers/{name}/refresh.
func (h *ModelsHandler) refreshProvider(ctx *fasthttp.RequestCtx) {
	name := pathParam(ctx, "name")
	params, ok := h.config.LookupProvider(name)
	if !ok {
		SendError(ctx, fasthttp.StatusNotFound, "unknown provider: "+name)
		return
	}

	data, err := h.config.Catalog.GetOfficialModelsData(ctx, params, true)
	if err != nil {
		SendError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	SendJSON(ctx, data)
}

// clearProviderModels handles DELETE /api/providers/{name}/models.
func (h *ModelsHandler) clearProviderModels(ctx *fasthttp.RequestCtx) {
	name := pathParam(ctx, "name")
	if err := h.config.Catalog.RemoveProvider(ctx, name); err != nil {
		SendError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	SendJSON(ctx, map[string]string{"status": "cleared"})
}

// createDraft handles POST /api/drafts - mint a new draft session.
func (h *ModelsHandler) createDraft(ctx *fasthttp.RequestCtx) {
	sessionID := catalog.NewSessionID()
	h.config.Catalog.EnsureDraftSession(sessionID)
	SendJSON(ctx, map[string]string{"session_id": sessionID})
}

// draftRequest is the body of draft fetch and seed calls: the draft's
// current inputs, plus the source provider name for seeding.
type draftRequest struct {
	ProviderName string                 `json:"provider_name,omitempty"`
	Params       schemas.ProviderParams `json:"params"`
}

// getDraftModels handles POST /api/drafts/{session}/models?force=. The
// draft's current inputs ride in the body because they have no durable
// identity to look up.
func (h *ModelsHandler) getDraftModels(ctx *fasthttp.RequestCtx) {
	session := pathParam(ctx, "session")
	var req draftRequest
	if err := sonic.Unmarshal(ctx.PostBody(), &req); err != nil {
		SendError(ctx, fasthttp.StatusBadRequest, "invalid draft payload: "+err.Error())
		return
	}

	data, err := h.config.Catalog.GetOfficialModelsForDraft(ctx, session, req.Params, boolQuery(ctx, "force"))
	if err != nil {
		SendError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	SendJSON(ctx, data)
}

// seedDraft handles POST /api/drafts/{session}/seed.
func (h *ModelsHandler) seedDraft(ctx *fasthttp.RequestCtx) {
	session := pathParam(ctx, "session")
	var req draftRequest
	if err := sonic.Unmarshal(ctx.PostBody(), &req); err != nil {
		SendError(ctx, fasthttp.StatusBadRequest, "invalid seed payload: "+err.Error())
		return
	}

	seeded := h.config.Catalog.SeedDraftFromProvider(session, req.ProviderName, req.Params)
	SendJSON(ctx, map[string]bool{"seeded": seeded})
}

// promoteRequest is the body of a draft promotion.
type promoteRequest struct {
	ProviderName     string `json:"provider_name"`
	AutoFetchEnabled bool   `json:"auto_fetch_enabled"`
}

// promoteDraft handles POST /api/drafts/{session}/promote.
func (h *ModelsHandler) promoteDraft(ctx *fasthttp.RequestCtx) {
	session := pathParam(ctx, "session")
	var req promoteRequest
	if err := sonic.Unmarshal(ctx.PostBody(), &req); err != nil {
		SendError(ctx, fasthttp.StatusBadRequest, "invalid promote payload: "+err.Error())
		return
	}
	if req.ProviderName == "" {
		SendError(ctx, fasthttp.StatusBadRequest, "provider_name is required")
		return
	}

	err := h.config.Catalog.PromoteDraft(ctx, session, req.ProviderName, req.AutoFetchEnabled)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownSession) {
			SendError(ctx, fasthttp.StatusNotFound, err.Error())
			return
		}
		SendError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	SendJSON(ctx, map[string]string{"status": "promoted"})
}

// discardDraft handles DELETE /api/drafts/{session}.
func (h *ModelsHandler) discardDraft(ctx *fasthttp.RequestCtx) {
	h.config.Catalog.DiscardDraft(pathParam(ctx, "session"))
	SendJSON(ctx, map[string]string{"status": "discarded"})
}
