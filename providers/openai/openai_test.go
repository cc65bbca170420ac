package openai

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/capsohq/modelcache/schemas"
)

// newInmemClient serves handler on an in-memory listener and returns a client
// dialing it. Avoids binding real ports in tests.
func newInmemClient(t *testing.T, handler fasthttp.RequestHandler) *fasthttp.Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	go fasthttp.Serve(ln, handler) //nolint:errcheck
	t.Cleanup(func() { ln.Close() })
	return &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
}

func TestListModels_ParsesEnvelope(t *testing.T) {
	var gotPath, gotAuth, gotExtra string
	client := newInmemClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Path())
		gotAuth = string(ctx.Request.Header.Peek("Authorization"))
		gotExtra = string(ctx.Request.Header.Peek("X-Org"))
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"data":[{"id":"gpt-4o","display_name":"GPT-4o"},{"id":""},{"id":"gpt-4o-mini"}]}`)
	})

	provider := New(schemas.OpenAI, "", schemas.NopLogger{})
	provider.client = client

	params := schemas.ProviderParams{
		Kind:         schemas.OpenAI,
		BaseURL:      "http://models.test/v1/",
		ExtraHeaders: map[string]string{"X-Org": "acme"},
	}
	models, err := provider.ListModels(context.Background(), params, "sk-test")
	require.NoError(t, err)

	assert.Equal(t, "/v1/models", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "acme", gotExtra)
	require.Len(t, models, 2) // entries without an ID are dropped
	assert.Equal(t, schemas.Model{ID: "gpt-4o", DisplayName: "GPT-4o"}, models[0])
	assert.Equal(t, schemas.Model{ID: "gpt-4o-mini"}, models[1])
}

func TestListModels_NoCredentialOmitsAuthHeader(t *testing.T) {
	var sawAuth bool
	client := newInmemClient(t, func(ctx *fasthttp.RequestCtx) {
		sawAuth = len(ctx.Request.Header.Peek("Authorization")) > 0
		ctx.SetBodyString(`{"data":[]}`)
	})

	provider := New(schemas.OpenAICompatible, "http://models.test", schemas.NopLogger{})
	provider.client = client

	models, err := provider.ListModels(context.Background(), schemas.ProviderParams{Kind: schemas.OpenAICompatible}, "")
	require.NoError(t, err)
	assert.False(t, sawAuth)
	assert.Empty(t, models)
}

func TestListModels_NonOKCarriesProviderMessage(t *testing.T) {
	client := newInmemClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString(`{"error":{"message":"Incorrect API key provided"}}`)
	})

	provider := New(schemas.OpenAI, "http://models.test/v1", schemas.NopLogger{})
	provider.client = client

	_, err := provider.ListModels(context.Background(), schemas.ProviderParams{Kind: schemas.OpenAI}, "sk-bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestListModels_CancelledContext(t *testing.T) {
	provider := New(schemas.OpenAI, "http://models.test/v1", schemas.NopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := provider.ListModels(ctx, schemas.ProviderParams{Kind: schemas.OpenAI}, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListModels_MalformedBody(t *testing.T) {
	client := newInmemClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`not json`)
	})

	provider := New(schemas.OpenAI, "http://models.test/v1", schemas.NopLogger{})
	provider.client = client

	_, err := provider.ListModels(context.Background(), schemas.ProviderParams{Kind: schemas.OpenAI}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse models response")
}
