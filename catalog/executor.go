package catalog

import (
	"context"
	"strings"

	"github.com/capsohq/modelcache/schemas"
)

// inflightFetch is the handle shared by every caller coalesced onto one
// outstanding fetch. The fields are written once, before done is closed.
type inflightFetch struct {
	done   chan struct{}
	models []schemas.Model
	state  FetchState
	err    error
}

// fetchTarget selects which store and validation rules a fetch uses. The
// persisted and draft paths run the same pipeline and differ only here.
// eventKey doubles as the in-flight map key: it carries the store prefix,
// so a provider and a draft session with the same bare key never coalesce.
type fetchTarget struct {
	store    *stateStore
	key      string
	eventKey string
	draft    bool
}

// fetchModels is the shared get-or-fetch pipeline: validate inputs, coalesce
// onto an in-flight fetch, serve fresh cache, otherwise fetch through the
// listing client and update the owning state.
//
// Fetch-path problems (validation, capability, credential, network) are
// recorded in the state and never returned; the error result carries
// storage failures only. Callers always get a model list, possibly stale or
// empty.
func (c *Catalog) fetchModels(ctx context.Context, target fetchTarget, params schemas.ProviderParams, force bool) (ModelsData, error) {
	var signature FetchConfigSignature
	if target.draft {
		signature = ComputeSignature(params)
	}

	var (
		ent     *entry
		pending *inflightFetch
	)
	for {
		nowMs := c.nowMs()

		c.mu.Lock()
		ent = target.store.ensure(target.key)

		if missing := missingRequiredFields(params, target.draft); len(missing) > 0 {
			ent.state.recordFailure("missing required fields: "+strings.Join(missing, ", "), nowMs)
			commitErr := target.store.commit(ctx)
			data := snapshotState(ent.state)
			c.mu.Unlock()
			c.bus.publish(Event{Key: target.eventKey, Kind: EventValidationError})
			return data, commitErr
		}

		if inflight, ok := c.inflight[target.eventKey]; ok {
			sameInputs := !target.draft || (ent.signature != nil && *ent.signature == signature)
			c.mu.Unlock()
			<-inflight.done
			if !sameInputs {
				// The fetch just waited on ran with different draft inputs,
				// so its result says nothing about these. Run the pipeline
				// again; the stored signature still reflects the old inputs,
				// so this call forces its own fetch.
				continue
			}
			state := inflight.state
			state.Models = cloneModels(state.Models)
			return ModelsData{Models: state.Models, State: state}, inflight.err
		}

		if target.draft {
			switch {
			case ent.signature == nil:
				sig := signature
				ent.signature = &sig
			case *ent.signature != signature:
				// The draft's inputs changed since the cached result was
				// produced; the cache is stale regardless of the interval.
				// Installed here, on the launch path, so the signature
				// always matches the inputs the fetch actually uses.
				*ent.signature = signature
				force = true
			}
		}

		if !force && ent.state.isFresh(nowMs) {
			data := snapshotState(ent.state)
			c.mu.Unlock()
			return data, nil
		}

		pending = &inflightFetch{done: make(chan struct{})}
		c.inflight[target.eventKey] = pending
		ent.state.IsFetching = true
		c.mu.Unlock()
		break
	}

	c.bus.publish(Event{Key: target.eventKey, Kind: EventFetchStarted})

	var (
		data      ModelsData
		commitErr error
		eventKind = EventFetchFailed
	)
	// The in-flight slot is released here even if a collaborator panics, so
	// a crashed fetch never wedges its key.
	defer func() {
		pending.models = data.Models
		pending.state = data.State
		pending.err = commitErr
		c.mu.Lock()
		ent.state.IsFetching = false
		delete(c.inflight, target.eventKey)
		c.mu.Unlock()
		close(pending.done)
		c.bus.publish(Event{Key: target.eventKey, Kind: eventKind})
	}()

	models, fetchErr := c.performFetch(ctx, params)

	nowMs := c.nowMs()
	c.mu.Lock()
	if fetchErr != nil {
		ent.state.recordFailure(fetchErr.Error(), nowMs)
		c.logger.Warn("fetching official models for %s failed: %v", target.eventKey, fetchErr)
	} else {
		hash := HashModels(models)
		identical := ent.state.recordSuccess(models, hash, nowMs)
		applyBackoff(ent.state, identical, c.cfg)
		eventKind = EventFetchSucceeded
		c.logger.Debug("fetched %d official models for %s (identical=%t, next interval %dms)",
			len(models), target.eventKey, identical, ent.state.CurrentIntervalMs)
	}
	commitErr = target.store.commit(ctx)
	data = snapshotState(ent.state)
	c.mu.Unlock()

	return data, commitErr
}

// performFetch resolves the credential, finds the listing client for the
// provider kind, performs the call, and enriches the result.
func (c *Catalog) performFetch(ctx context.Context, params schemas.ProviderParams) ([]schemas.Model, error) {
	credential, err := c.secrets.Resolve(ctx, params.Credential)
	if err != nil {
		return nil, err
	}
	lister, err := c.listers.ListerFor(params.Kind)
	if err != nil {
		return nil, err
	}
	raw, err := lister.ListModels(ctx, params, credential)
	if err != nil {
		return nil, err
	}
	return c.wellKnown.Merge(raw), nil
}

// missingRequiredFields lists the inputs a fetch cannot proceed without. A
// draft may still be nameless; a persisted provider may not.
func missingRequiredFields(params schemas.ProviderParams, draft bool) []string {
	var missing []string
	if !draft && strings.TrimSpace(params.Name) == "" {
		missing = append(missing, "name")
	}
	if params.Kind == "" {
		missing = append(missing, "kind")
	}
	if params.NormalizedBaseURL() == "" {
		missing = append(missing, "base URL")
	}
	return missing
}

// snapshotState deep-copies a state into the caller-facing form.
func snapshotState(state *FetchState) ModelsData {
	clone := state.Clone()
	return ModelsData{Models: clone.Models, State: *clone}
}
