// Package providers wires the per-kind listing clients into the resolver
// interface the catalog consumes.
package providers

import (
	"github.com/capsohq/modelcache/catalog"
	"github.com/capsohq/modelcache/providers/anthropic"
	"github.com/capsohq/modelcache/providers/deepseek"
	"github.com/capsohq/modelcache/providers/glm"
	"github.com/capsohq/modelcache/providers/moonshot"
	"github.com/capsohq/modelcache/providers/openai"
	"github.com/capsohq/modelcache/providers/qwen"
	"github.com/capsohq/modelcache/providers/volcengine"
	"github.com/capsohq/modelcache/schemas"
)

// Registry maps provider kinds to their listing clients. Clients are built
// once up front; lookups afterwards are read-only.
type Registry struct {
	listers map[schemas.ModelProvider]catalog.ModelLister
}

// NewRegistry builds a registry with every supported provider kind.
func NewRegistry(logger schemas.Logger) *Registry {
	return &Registry{
		listers: map[schemas.ModelProvider]catalog.ModelLister{
			schemas.OpenAI:           openai.New(schemas.OpenAI, openai.DefaultBaseURL, logger),
			schemas.OpenAICompatible: openai.New(schemas.OpenAICompatible, "", logger),
			schemas.Anthropic:        anthropic.New(logger),
			schemas.Qwen:             qwen.New(logger),
			schemas.Deepseek:         deepseek.New(logger),
			schemas.Moonshot:         moonshot.New(logger),
			schemas.Volcengine:       volcengine.New(logger),
			schemas.GLM:              glm.New(logger),
		},
	}
}

// ListerFor returns the listing client for kind. Kinds without listing
// support get a user-facing capability error, not a crash.
func (r *Registry) ListerFor(kind schemas.ModelProvider) (catalog.ModelLister, error) {
	lister, ok := r.listers[kind]
	if !ok {
		return nil, schemas.NewUnsupportedOperationError("fetching available models", kind)
	}
	return lister, nil
}
