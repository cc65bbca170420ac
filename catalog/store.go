package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/capsohq/modelcache/configstore"
	"github.com/capsohq/modelcache/schemas"
)

// ConfigStore is the durable key/value collaborator the persisted state
// store writes through. The configstore package implements it; anything
// with these two methods works.
type ConfigStore interface {
	GetConfig(ctx context.Context, key string) (string, error)
	UpdateConfig(ctx context.Context, key string, value string) error
}

// configFetchStateKey is where the persisted store keeps the whole
// provider-name -> FetchState map, serialized as one JSON document.
const configFetchStateKey = "official-model-fetch-state"

// entry pairs a FetchState with the signature of the inputs that produced
// it. The signature is only tracked for draft sessions; persisted entries
// leave it nil.
type entry struct {
	state     *FetchState
	signature *FetchConfigSignature
}

// stateStore is one keyed map of fetch states. The persisted instance
// carries a ConfigStore and writes through on commit; the draft instance
// has none, making commit a no-op. This is the only structural difference
// between the two lifecycles.
//
// All methods assume the owning Catalog's lock is held.
type stateStore struct {
	cfg     Config
	entries map[string]*entry
	durable ConfigStore // nil for the draft store
}

func newStateStore(cfg Config, durable ConfigStore) *stateStore {
	return &stateStore{
		cfg:     cfg,
		entries: make(map[string]*entry),
		durable: durable,
	}
}

// get returns the entry for key, or nil.
func (s *stateStore) get(key string) *entry {
	return s.entries[key]
}

// ensure returns the existing entry or registers a fresh default one. It
// does not persist; the first commit after a mutation does.
func (s *stateStore) ensure(key string) *entry {
	if existing, ok := s.entries[key]; ok {
		return existing
	}
	created := &entry{state: newFetchState(s.cfg)}
	s.entries[key] = created
	return created
}

// remove deletes the entry and persists the shrunken map.
func (s *stateStore) remove(ctx context.Context, key string) error {
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.commit(ctx)
}

// commit writes the current map to durable storage. IsFetching is excluded
// from the FetchState JSON form, so transient fetch-in-progress flags never
// reach disk. Storage errors propagate to the caller unretried.
func (s *stateStore) commit(ctx context.Context) error {
	if s.durable == nil {
		return nil
	}

	persisted := make(map[string]*FetchState, len(s.entries))
	for key, ent := range s.entries {
		persisted[key] = ent.state
	}
	payload, err := sonic.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("marshal fetch states: %w", err)
	}
	if err := s.durable.UpdateConfig(ctx, configFetchStateKey, string(payload)); err != nil {
		return fmt.Errorf("persist fetch states: %w", err)
	}
	return nil
}

// load replaces the in-memory map with the persisted one. A missing key
// means a fresh installation and is not an error.
func (s *stateStore) load(ctx context.Context) error {
	if s.durable == nil {
		return nil
	}

	value, err := s.durable.GetConfig(ctx, configFetchStateKey)
	if err != nil {
		if errors.Is(err, configstore.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load fetch states: %w", err)
	}
	if value == "" {
		return nil
	}

	var persisted map[string]*FetchState
	if err := sonic.UnmarshalString(value, &persisted); err != nil {
		return fmt.Errorf("parse fetch states: %w", err)
	}
	for key, state := range persisted {
		if state.Models == nil {
			state.Models = []schemas.Model{}
		}
		if state.CurrentIntervalMs <= 0 {
			state.CurrentIntervalMs = s.cfg.InitialInterval.Milliseconds()
		}
		s.entries[key] = &entry{state: state}
	}
	return nil
}
