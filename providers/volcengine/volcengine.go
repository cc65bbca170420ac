// Package volcengine implements the Volcengine model listing client via the
// shared OpenAI-compatible handler.
package volcengine

import (
	"github.com/capsohq/modelcache/providers/openai"
	"github.com/capsohq/modelcache/schemas"
)

// DefaultBaseURL is Volcengine's OpenAI-compatible Ark endpoint.
const DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

// New creates the Volcengine listing client.
func New(logger schemas.Logger) *openai.Provider {
	return openai.New(schemas.Volcengine, DefaultBaseURL, logger)
}
