// Package moonshot implements the Moonshot model listing client via the
// shared OpenAI-compatible handler.
package moonshot

import (
	"github.com/capsohq/modelcache/providers/openai"
	"github.com/capsohq/modelcache/schemas"
)

// DefaultBaseURL is Moonshot's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.moonshot.ai/v1"

// New creates the Moonshot listing client.
func New(logger schemas.Logger) *openai.Provider {
	return openai.New(schemas.Moonshot, DefaultBaseURL, logger)
}
