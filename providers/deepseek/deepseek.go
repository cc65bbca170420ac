// Package deepseek implements the DeepSeek model listing client via the
// shared OpenAI-compatible handler.
package deepseek

import (
	"github.com/capsohq/modelcache/providers/openai"
	"github.com/capsohq/modelcache/schemas"
)

// DefaultBaseURL is DeepSeek's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.deepseek.com/v1"

// New creates the DeepSeek listing client.
func New(logger schemas.Logger) *openai.Provider {
	return openai.New(schemas.Deepseek, DefaultBaseURL, logger)
}
