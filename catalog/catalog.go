package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/capsohq/modelcache/schemas"
)

// ModelLister is the external client capability that performs the actual
// "list available models" call for one provider kind.
type ModelLister interface {
	ListModels(ctx context.Context, params schemas.ProviderParams, credential string) ([]schemas.Model, error)
}

// ListerResolver maps a provider kind to its listing client. A kind without
// listing support returns an error wrapping schemas.ErrUnsupportedOperation.
type ListerResolver interface {
	ListerFor(kind schemas.ModelProvider) (ModelLister, error)
}

// CredentialResolver turns a credential reference into a usable value.
// A missing secret returns an error wrapping schemas.ErrCredentialMissing.
type CredentialResolver interface {
	Resolve(ctx context.Context, ref schemas.CredentialRef) (string, error)
}

// ErrUnknownSession is returned when a draft operation names a session that
// was never created. This indicates a usage bug, not an environmental
// condition, so unlike fetch errors it propagates.
var ErrUnknownSession = errors.New("unknown draft session")

// ModelsData is a point-in-time copy of one key's models and fetch state.
type ModelsData struct {
	Models []schemas.Model `json:"models"`
	State  FetchState      `json:"state"`
}

// Deps are the external collaborators a Catalog works against.
type Deps struct {
	// ConfigStore persists provider fetch states. Nil disables durability;
	// drafts never touch it.
	ConfigStore ConfigStore
	Listers     ListerResolver
	Secrets     CredentialResolver
	Logger      schemas.Logger
	// WellKnown overrides the built-in curated-metadata merge when set.
	WellKnown WellKnownMerger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Catalog is the official-model-list cache and adaptive refresh engine. It
// owns the persisted per-provider fetch states, the ephemeral draft-session
// states, and the in-flight fetch tracking that coalesces concurrent
// requests per key.
type Catalog struct {
	cfg       Config
	logger    schemas.Logger
	listers   ListerResolver
	secrets   CredentialResolver
	wellKnown WellKnownMerger
	now       func() time.Time
	bus       *eventBus

	mu        sync.Mutex
	providers *stateStore
	drafts    *stateStore
	inflight  map[string]*inflightFetch
}

// New builds a Catalog and loads any previously persisted fetch states.
func New(ctx context.Context, cfg Config, deps Deps) (*Catalog, error) {
	cfg.CheckAndSetDefaults()
	if deps.Listers == nil {
		return nil, errors.New("catalog: a ListerResolver is required")
	}
	if deps.Secrets == nil {
		return nil, errors.New("catalog: a CredentialResolver is required")
	}
	if deps.Logger == nil {
		deps.Logger = schemas.NopLogger{}
	}
	if deps.WellKnown == nil {
		deps.WellKnown = WellKnownMergeFunc(mergeWellKnown)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	c := &Catalog{
		cfg:       cfg,
		logger:    deps.Logger,
		listers:   deps.Listers,
		secrets:   deps.Secrets,
		wellKnown: deps.WellKnown,
		now:       deps.Now,
		bus:       newEventBus(),
		providers: newStateStore(cfg, deps.ConfigStore),
		drafts:    newStateStore(cfg, nil),
		inflight:  make(map[string]*inflightFetch),
	}
	if err := c.providers.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Subscribe returns a stream of state-transition events plus a cancel
// function. Events may be dropped when the subscriber lags; the stream is a
// change hint, not a durable log.
func (c *Catalog) Subscribe() (<-chan Event, func()) {
	return c.bus.subscribe()
}

// NewSessionID mints an opaque draft-session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// GetOfficialModels returns the official models for the named provider,
// fetching if the cache is not fresh or force is set. Fetch problems never
// surface here; inspect the state via GetOfficialModelsData for those. The
// returned error reports storage failures only.
func (c *Catalog) GetOfficialModels(ctx context.Context, params schemas.ProviderParams, force bool) ([]schemas.Model, error) {
	data, err := c.GetOfficialModelsData(ctx, params, force)
	return data.Models, err
}

// GetOfficialModelsData is GetOfficialModels plus the full fetch state, so
// callers can show last-known-good data together with any recorded error.
func (c *Catalog) GetOfficialModelsData(ctx context.Context, params schemas.ProviderParams, force bool) (ModelsData, error) {
	return c.fetchModels(ctx, fetchTarget{
		store:    c.providers,
		key:      params.Name,
		eventKey: ProviderKey(params.Name),
		draft:    false,
	}, params, force)
}

// Refresh forces a fetch for the named provider regardless of freshness.
func (c *Catalog) Refresh(ctx context.Context, params schemas.ProviderParams) ([]schemas.Model, error) {
	return c.GetOfficialModels(ctx, params, true)
}

// RefreshAll runs a cache-gated refresh for every provider with auto-fetch
// enabled. Each provider whose interval has elapsed fetches; fresh ones are
// left alone. Fetches across providers run concurrently.
func (c *Catalog) RefreshAll(ctx context.Context, providers []schemas.ProviderParams) {
	var wg sync.WaitGroup
	for _, params := range providers {
		if !params.AutoFetchOfficialModels {
			continue
		}
		wg.Add(1)
		go func(p schemas.ProviderParams) {
			defer wg.Done()
			if _, err := c.GetOfficialModelsData(ctx, p, false); err != nil {
				c.logger.Warn("refresh for provider %q could not persist state: %v", p.Name, err)
			}
		}(params)
	}
	wg.Wait()
}

// GetProviderState returns a copy of the named provider's fetch state.
func (c *Catalog) GetProviderState(name string) (FetchState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ent := c.providers.get(name)
	if ent == nil {
		return FetchState{}, false
	}
	return *ent.state.Clone(), true
}

// ProviderNames lists every provider with a tracked fetch state.
func (c *Catalog) ProviderNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.providers.entries))
	for name := range c.providers.entries {
		names = append(names, name)
	}
	return names
}

// RemoveProvider drops the provider's fetch state and persists the removal.
// Used when a provider is deleted or its cache is explicitly cleared.
func (c *Catalog) RemoveProvider(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.providers.remove(ctx, name)
}

func (c *Catalog) nowMs() int64 {
	return c.now().UnixMilli()
}
