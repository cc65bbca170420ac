package catalog

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/capsohq/modelcache/schemas"
)

// canonicalJSON serializes with sorted object keys so equal values always
// produce identical bytes regardless of field declaration order.
var canonicalJSON = sonic.Config{SortMapKeys: true}.Froze()

// HashModels computes a content hash of a model list that is invariant
// under reordering of the list and of each model's fields. Optional fields
// that are unset are omitted from the serialized form.
//
// The hash is fast and non-cryptographic: a collision only perturbs the
// backoff heuristics, never the returned data.
func HashModels(models []schemas.Model) string {
	sorted := make([]schemas.Model, len(models))
	copy(sorted, models)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	payload, err := canonicalJSON.Marshal(sorted)
	if err != nil {
		// Model is a plain struct; sonic cannot fail on it. Fall back to a
		// representation that still changes when the list changes.
		payload = []byte(fmt.Sprintf("%+v", sorted))
	}
	return hashString(string(payload))
}

// FetchConfigSignature is a cheap equality witness over the inputs that
// determine what a fetch would return. It is compared, logged, and stored
// for draft sessions; the credential itself never appears in it.
type FetchConfigSignature struct {
	Kind                  schemas.ModelProvider `json:"kind"`
	BaseURL               string                `json:"base_url"`
	CredentialFingerprint string                `json:"credential_fingerprint"`
}

// ComputeSignature derives the signature for the given provider inputs.
// Two calls with return-equivalent inputs yield equal signatures; extra
// headers intentionally do not participate.
func ComputeSignature(params schemas.ProviderParams) FetchConfigSignature {
	return FetchConfigSignature{
		Kind:                  params.Kind,
		BaseURL:               params.NormalizedBaseURL(),
		CredentialFingerprint: credentialFingerprint(params.Credential),
	}
}

func credentialFingerprint(cred schemas.CredentialRef) string {
	switch cred.Kind {
	case schemas.CredentialPlain:
		return hashString(strings.TrimSpace(cred.Value))
	case schemas.CredentialSecret:
		return "ref:" + hashString(strings.TrimSpace(cred.SecretRef))
	default:
		return "none"
	}
}

func hashString(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}
