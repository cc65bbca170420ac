// Package qwen implements the Qwen model listing client. Qwen exposes an
// OpenAI-compatible API, so listing delegates to the shared handler.
package qwen

import (
	"github.com/capsohq/modelcache/providers/openai"
	"github.com/capsohq/modelcache/schemas"
)

// DefaultBaseURL is Qwen's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://dashscope-us.aliyuncs.com/compatible-mode/v1"

// New creates the Qwen listing client.
func New(logger schemas.Logger) *openai.Provider {
	return openai.New(schemas.Qwen, DefaultBaseURL, logger)
}
