package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capsohq/modelcache/schemas"
)

func TestHashModels_OrderInvariant(t *testing.T) {
	a := []schemas.Model{{ID: "m1"}, {ID: "m2"}, {ID: "m3"}}
	b := []schemas.Model{{ID: "m3"}, {ID: "m1"}, {ID: "m2"}}
	assert.Equal(t, HashModels(a), HashModels(b))
}

func TestHashModels_ContentSensitive(t *testing.T) {
	a := []schemas.Model{{ID: "m1"}}
	b := []schemas.Model{{ID: "m1"}, {ID: "m2"}}
	c := []schemas.Model{{ID: "m1", DisplayName: "Model One"}}
	assert.NotEqual(t, HashModels(a), HashModels(b))
	assert.NotEqual(t, HashModels(a), HashModels(c))
}

func TestHashModels_UnsetOptionalFieldsDoNotParticipate(t *testing.T) {
	// A nil capabilities slice and an absent pointer serialize identically
	// to simply not setting them.
	a := []schemas.Model{{ID: "m1", Capabilities: nil, ContextWindow: nil}}
	b := []schemas.Model{{ID: "m1"}}
	assert.Equal(t, HashModels(a), HashModels(b))
}

func TestHashModels_Empty(t *testing.T) {
	assert.Equal(t, HashModels(nil), HashModels([]schemas.Model{}))
}

func TestComputeSignature_Deterministic(t *testing.T) {
	params := schemas.ProviderParams{
		Kind:       schemas.OpenAI,
		BaseURL:    "https://api.example.com/v1",
		Credential: schemas.PlainCredential("sk-secret"),
	}
	assert.Equal(t, ComputeSignature(params), ComputeSignature(params))
}

func TestComputeSignature_NormalizesBaseURL(t *testing.T) {
	a := schemas.ProviderParams{Kind: schemas.OpenAI, BaseURL: "https://api.example.com/v1"}
	b := schemas.ProviderParams{Kind: schemas.OpenAI, BaseURL: "  https://api.example.com/v1/ "}
	assert.Equal(t, ComputeSignature(a), ComputeSignature(b))
}

func TestComputeSignature_SensitiveToFetchInputs(t *testing.T) {
	base := schemas.ProviderParams{
		Kind:       schemas.OpenAI,
		BaseURL:    "https://api.example.com/v1",
		Credential: schemas.PlainCredential("sk-secret"),
	}

	otherURL := base
	otherURL.BaseURL = "https://other.example.com/v1"
	assert.NotEqual(t, ComputeSignature(base), ComputeSignature(otherURL))

	otherKind := base
	otherKind.Kind = schemas.Anthropic
	assert.NotEqual(t, ComputeSignature(base), ComputeSignature(otherKind))

	otherCred := base
	otherCred.Credential = schemas.PlainCredential("sk-other")
	assert.NotEqual(t, ComputeSignature(base), ComputeSignature(otherCred))
}

func TestComputeSignature_IgnoresExtraHeaders(t *testing.T) {
	// Deliberate approximation: headers can affect the HTTP response but do
	// not participate in staleness detection.
	base := schemas.ProviderParams{Kind: schemas.OpenAI, BaseURL: "https://api.example.com/v1"}
	withHeaders := base
	withHeaders.ExtraHeaders = map[string]string{"X-Org": "acme"}
	assert.Equal(t, ComputeSignature(base), ComputeSignature(withHeaders))
}

func TestComputeSignature_DoesNotLeakCredential(t *testing.T) {
	params := schemas.ProviderParams{
		Kind:       schemas.OpenAI,
		BaseURL:    "https://api.example.com/v1",
		Credential: schemas.PlainCredential("sk-super-secret-value"),
	}
	signature := ComputeSignature(params)
	assert.NotContains(t, signature.CredentialFingerprint, "sk-super-secret-value")
	assert.NotEmpty(t, signature.CredentialFingerprint)
}

func TestComputeSignature_NoCredential(t *testing.T) {
	params := schemas.ProviderParams{Kind: schemas.OpenAI, BaseURL: "https://api.example.com"}
	assert.Equal(t, "none", ComputeSignature(params).CredentialFingerprint)
}
