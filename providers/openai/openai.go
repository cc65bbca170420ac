// Package openai implements the OpenAI-compatible model listing client.
// Most hosted providers expose the same GET /models envelope, so other
// provider packages delegate here with their own defaults.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	providerUtils "github.com/capsohq/modelcache/providers/utils"
	"github.com/capsohq/modelcache/schemas"
)

// DefaultBaseURL is used when a provider configuration leaves the base URL
// empty and no kind-specific default applies.
const DefaultBaseURL = "https://api.openai.com/v1"

// listModelsResponse is the OpenAI /models envelope.
type listModelsResponse struct {
	Data []listedModel `json:"data"`
}

type listedModel struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	OwnedBy     string `json:"owned_by,omitempty"`
}

// Provider lists models from any OpenAI-compatible endpoint.
type Provider struct {
	kind           schemas.ModelProvider
	defaultBaseURL string
	client         *fasthttp.Client
	logger         schemas.Logger
}

// New creates a listing client for the given kind. defaultBaseURL is used
// when the provider configuration does not set one.
func New(kind schemas.ModelProvider, defaultBaseURL string, logger schemas.Logger) *Provider {
	if defaultBaseURL == "" {
		defaultBaseURL = DefaultBaseURL
	}
	return &Provider{
		kind:           kind,
		defaultBaseURL: strings.TrimRight(defaultBaseURL, "/"),
		client:         providerUtils.NewHTTPClient(providerUtils.DefaultRequestTimeout),
		logger:         logger,
	}
}

// GetProviderKey returns the provider kind this client serves.
func (p *Provider) GetProviderKey() schemas.ModelProvider {
	return p.kind
}

// ListModels performs the listing request and maps the response into the
// shared model shape.
func (p *Provider) ListModels(ctx context.Context, params schemas.ProviderParams, credential string) ([]schemas.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseURL := params.NormalizedBaseURL()
	if baseURL == "" {
		baseURL = p.defaultBaseURL
	}

	headers := map[string]string{}
	if credential != "" {
		headers["Authorization"] = "Bearer " + credential
	}
	body, err := HandleListModelsRequest(p.client, baseURL+"/models", headers, params.ExtraHeaders)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.kind, err)
	}

	var parsed listModelsResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%s: parse models response: %w", p.kind, err)
	}

	models := make([]schemas.Model, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		if m.ID == "" {
			continue
		}
		models = append(models, schemas.Model{ID: m.ID, DisplayName: m.DisplayName})
	}
	return models, nil
}

// HandleListModelsRequest performs a GET against url with the given headers
// and returns the raw response body. Non-2xx statuses become errors carrying
// the provider's message verbatim for diagnostics.
func HandleListModelsRequest(client *fasthttp.Client, url string, headers map[string]string, extraHeaders map[string]string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	for key, value := range extraHeaders {
		req.Header.Set(key, value)
	}

	if err := client.DoTimeout(req, resp, providerUtils.DefaultRequestTimeout+5*time.Second); err != nil {
		return nil, fmt.Errorf("list models request to %s: %w", url, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("list models request to %s returned %d: %s", url, status, strings.TrimSpace(string(body)))
	}
	return body, nil
}
