// Package schemas defines the shared types used across the model cache:
// provider parameters, model metadata, credentials, logging, and errors.
package schemas

import "strings"

// ModelProvider represents the kind of a configured provider endpoint.
type ModelProvider string

const (
	OpenAI           ModelProvider = "openai"
	Anthropic        ModelProvider = "anthropic"
	Qwen             ModelProvider = "qwen"
	Deepseek         ModelProvider = "deepseek"
	Moonshot         ModelProvider = "moonshot"
	Volcengine       ModelProvider = "volcengine"
	GLM              ModelProvider = "glm"
	OpenAICompatible ModelProvider = "openai-compatible"
)

// Model is one entry of a provider's official model list, optionally
// enriched with editor-curated metadata above what the provider reports.
type Model struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"display_name,omitempty"`
	Family          string   `json:"family,omitempty"`
	ContextWindow   *int     `json:"context_window,omitempty"`
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty"`
	Capabilities    []string `json:"capabilities,omitempty"`
	Deprecated      bool     `json:"deprecated,omitempty"`
}

// ProviderParams holds the inputs that determine what a "list models" fetch
// would return for a provider, whether persisted or still being edited.
type ProviderParams struct {
	Name                    string            `json:"name"`
	Kind                    ModelProvider     `json:"kind"`
	BaseURL                 string            `json:"base_url"`
	Credential              CredentialRef     `json:"credential"`
	ExtraHeaders            map[string]string `json:"extra_headers,omitempty"`
	AutoFetchOfficialModels bool              `json:"auto_fetch_official_models"`
}

// NormalizedBaseURL returns the base URL with surrounding whitespace and any
// trailing slash removed, so equivalent spellings compare equal.
func (p ProviderParams) NormalizedBaseURL() string {
	return strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
}

// CredentialKind discriminates how a provider's credential is supplied.
type CredentialKind string

const (
	CredentialNone   CredentialKind = "none"
	CredentialPlain  CredentialKind = "plain"
	CredentialSecret CredentialKind = "secret"
)

// CredentialRef is either no credential, a plain value, or a reference that
// an external resolver turns into a value. The raw value never appears in
// logs or signatures.
type CredentialRef struct {
	Kind      CredentialKind `json:"kind"`
	Value     string         `json:"value,omitempty"`
	SecretRef string         `json:"secret_ref,omitempty"`
}

// PlainCredential builds a CredentialRef carrying the value directly.
func PlainCredential(value string) CredentialRef {
	return CredentialRef{Kind: CredentialPlain, Value: value}
}

// SecretCredential builds a CredentialRef naming an externally stored secret.
func SecretCredential(ref string) CredentialRef {
	return CredentialRef{Kind: CredentialSecret, SecretRef: ref}
}

// NoCredential builds an empty CredentialRef.
func NoCredential() CredentialRef {
	return CredentialRef{Kind: CredentialNone}
}
