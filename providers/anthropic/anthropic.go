// Package anthropic implements the Anthropic model listing client.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/capsohq/modelcache/providers/openai"
	providerUtils "github.com/capsohq/modelcache/providers/utils"
	"github.com/capsohq/modelcache/schemas"
)

// DefaultBaseURL is Anthropic's public API endpoint.
const DefaultBaseURL = "https://api.anthropic.com/v1"

// apiVersion is the anthropic-version header required on every request.
const apiVersion = "2023-06-01"

type listModelsResponse struct {
	Data []listedModel `json:"data"`
}

type listedModel struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Provider lists models from the Anthropic API. Anthropic uses x-api-key
// auth and a version header instead of the OpenAI bearer scheme; the
// response envelope is otherwise shaped the same.
type Provider struct {
	client *fasthttp.Client
	logger schemas.Logger
}

// New creates the Anthropic listing client.
func New(logger schemas.Logger) *Provider {
	return &Provider{
		client: providerUtils.NewHTTPClient(providerUtils.DefaultRequestTimeout),
		logger: logger,
	}
}

// GetProviderKey returns the provider kind this client serves.
func (p *Provider) GetProviderKey() schemas.ModelProvider {
	return schemas.Anthropic
}

// ListModels performs a list models request to Anthropic's API.
func (p *Provider) ListModels(ctx context.Context, params schemas.ProviderParams, credential string) ([]schemas.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseURL := params.NormalizedBaseURL()
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	headers := map[string]string{"anthropic-version": apiVersion}
	if credential != "" {
		headers["x-api-key"] = credential
	}
	body, err := openai.HandleListModelsRequest(p.client, baseURL+"/models", headers, params.ExtraHeaders)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schemas.Anthropic, err)
	}

	var parsed listModelsResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%s: parse models response: %w", schemas.Anthropic, err)
	}

	models := make([]schemas.Model, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		if strings.TrimSpace(m.ID) == "" {
			continue
		}
		models = append(models, schemas.Model{ID: m.ID, DisplayName: m.DisplayName})
	}
	return models, nil
}
