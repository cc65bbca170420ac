// Package lib holds the shared configuration and plumbing for the HTTP
// transport.
package lib

import (
	"github.com/valyala/fasthttp"

	"github.com/capsohq/modelcache/catalog"
	"github.com/capsohq/modelcache/configstore"
	"github.com/capsohq/modelcache/schemas"
)

var logger schemas.Logger = schemas.NopLogger{}

// SetLogger sets the logger for the transport.
func SetLogger(l schemas.Logger) {
	logger = l
}

// Logger returns the transport logger.
func Logger() schemas.Logger {
	return logger
}

// Config wires the handlers to the engine and its collaborators.
type Config struct {
	Catalog     *catalog.Catalog
	ConfigStore configstore.ConfigStore

	// LookupProvider resolves a configured provider by name. Handlers use
	// it to turn a path parameter into fetch inputs.
	LookupProvider func(name string) (schemas.ProviderParams, bool)

	// ListProviders returns every configured provider, for refresh-all.
	ListProviders func() []schemas.ProviderParams
}

// Middleware wraps a fasthttp handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// ChainMiddlewares applies middlewares around handler, first middleware
// outermost.
func ChainMiddlewares(handler fasthttp.RequestHandler, middlewares ...Middleware) fasthttp.RequestHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
