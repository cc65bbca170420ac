// Package secrets resolves provider credential references into usable
// values. Secret storage itself is external; these resolvers only look
// values up.
package secrets

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/capsohq/modelcache/schemas"
)

// StaticResolver resolves secret references from an in-memory map. Plain
// credentials pass through; no-credential resolves to the empty string.
type StaticResolver struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStaticResolver builds a resolver over the given reference -> value map.
func NewStaticResolver(values map[string]string) *StaticResolver {
	if values == nil {
		values = make(map[string]string)
	}
	return &StaticResolver{values: values}
}

// Set stores or replaces a secret value.
func (r *StaticResolver) Set(ref string, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[ref] = value
}

// Resolve implements credential resolution over the map.
func (r *StaticResolver) Resolve(_ context.Context, ref schemas.CredentialRef) (string, error) {
	switch ref.Kind {
	case schemas.CredentialPlain:
		return ref.Value, nil
	case schemas.CredentialSecret:
		r.mu.RLock()
		value, ok := r.values[ref.SecretRef]
		r.mu.RUnlock()
		if !ok || strings.TrimSpace(value) == "" {
			return "", schemas.NewCredentialMissingError(ref.SecretRef)
		}
		return value, nil
	default:
		return "", nil
	}
}

// EnvResolver treats a secret reference as the name of an environment
// variable.
type EnvResolver struct{}

// Resolve implements credential resolution over the environment.
func (EnvResolver) Resolve(_ context.Context, ref schemas.CredentialRef) (string, error) {
	switch ref.Kind {
	case schemas.CredentialPlain:
		return ref.Value, nil
	case schemas.CredentialSecret:
		value := os.Getenv(ref.SecretRef)
		if strings.TrimSpace(value) == "" {
			return "", schemas.NewCredentialMissingError(ref.SecretRef)
		}
		return value, nil
	default:
		return "", nil
	}
}
