package catalog

import (
	"slices"

	"github.com/capsohq/modelcache/schemas"
)

// FetchState is the cached result, error, and scheduling metadata for one
// provider identity or draft session. Timestamps are milliseconds since the
// epoch; zero means "never".
//
// Models always holds the last known-good list: a failed fetch records the
// error but never clears it. IsFetching is transient and is excluded from
// serialization, so it can never end up in durable storage.
type FetchState struct {
	LastFetchTime               int64           `json:"last_fetch_time"`
	Models                      []schemas.Model `json:"models"`
	ModelsHash                  string          `json:"models_hash,omitempty"`
	ConsecutiveIdenticalFetches int             `json:"consecutive_identical_fetches"`
	CurrentIntervalMs           int64           `json:"current_interval_ms"`
	LastError                   string          `json:"last_error,omitempty"`
	LastErrorTime               int64           `json:"last_error_time,omitempty"`
	IsFetching                  bool            `json:"-"`
}

// newFetchState returns the default state for a key that has never fetched.
func newFetchState(cfg Config) *FetchState {
	return &FetchState{
		Models:            []schemas.Model{},
		CurrentIntervalMs: cfg.InitialInterval.Milliseconds(),
	}
}

// Clone returns a deep copy. Seeding a draft from a persisted entry and
// migrating a draft back both go through Clone so the two stores never share
// a models slice.
func (s *FetchState) Clone() *FetchState {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Models = cloneModels(s.Models)
	return &clone
}

// isFresh reports whether the cached models can be served without a fetch.
// A state that never succeeded is never fresh.
func (s *FetchState) isFresh(nowMs int64) bool {
	if s.LastFetchTime == 0 {
		return false
	}
	return nowMs-s.LastFetchTime < s.CurrentIntervalMs
}

// recordFailure notes a failed or rejected fetch attempt. Models and the
// scheduling fields stay untouched.
func (s *FetchState) recordFailure(message string, nowMs int64) {
	s.LastError = message
	s.LastErrorTime = nowMs
	s.IsFetching = false
}

// recordSuccess installs a successful result and clears any prior error.
// The caller runs the backoff scheduler separately with the identical flag.
func (s *FetchState) recordSuccess(models []schemas.Model, hash string, nowMs int64) (identical bool) {
	identical = s.ModelsHash != "" && s.ModelsHash == hash
	s.LastFetchTime = nowMs
	s.Models = models
	s.ModelsHash = hash
	s.LastError = ""
	s.LastErrorTime = 0
	s.IsFetching = false
	return identical
}

func cloneModels(models []schemas.Model) []schemas.Model {
	if models == nil {
		return []schemas.Model{}
	}
	cloned := slices.Clone(models)
	for i := range cloned {
		cloned[i].Capabilities = slices.Clone(cloned[i].Capabilities)
		if cloned[i].ContextWindow != nil {
			v := *cloned[i].ContextWindow
			cloned[i].ContextWindow = &v
		}
		if cloned[i].MaxOutputTokens != nil {
			v := *cloned[i].MaxOutputTokens
			cloned[i].MaxOutputTokens = &v
		}
	}
	return cloned
}
