// Package glm implements the GLM (Zhipu) model listing client via the
// shared OpenAI-compatible handler.
package glm

import (
	"github.com/capsohq/modelcache/providers/openai"
	"github.com/capsohq/modelcache/schemas"
)

// DefaultBaseURL is GLM's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://open.bigmodel.cn/api/paas/v4"

// New creates the GLM listing client.
func New(logger schemas.Logger) *openai.Provider {
	return openai.New(schemas.GLM, DefaultBaseURL, logger)
}
