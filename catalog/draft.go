package catalog

import (
	"context"
	"fmt"

	"github.com/capsohq/modelcache/schemas"
)

// GetOfficialModelsForDraft returns the official models for an in-progress
// provider edit, identified by an opaque session id. The draft's current
// inputs travel with every call: if they changed in a way that would alter
// the fetch outcome, the cached result is treated as stale and a fetch runs
// even inside the freshness window.
func (c *Catalog) GetOfficialModelsForDraft(ctx context.Context, sessionID string, draft schemas.ProviderParams, force bool) (ModelsData, error) {
	return c.fetchModels(ctx, fetchTarget{
		store:    c.drafts,
		key:      sessionID,
		eventKey: DraftKey(sessionID),
		draft:    true,
	}, draft, force)
}

// TriggerDraftRefresh starts a forced draft fetch without waiting for the
// result; observers learn the outcome through the event stream.
func (c *Catalog) TriggerDraftRefresh(ctx context.Context, sessionID string, draft schemas.ProviderParams) {
	go func() {
		if _, err := c.GetOfficialModelsForDraft(context.WithoutCancel(ctx), sessionID, draft, true); err != nil {
			c.logger.Warn("draft refresh for session %s failed to persist: %v", sessionID, err)
		}
	}()
}

// EnsureDraftSession lazily creates the session's default state and returns
// a copy of it. The signature stays unset until the first fetch attempt
// supplies the draft's inputs.
func (c *Catalog) EnsureDraftSession(sessionID string) ModelsData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshotState(c.drafts.ensure(sessionID).state)
}

// SeedDraftFromProvider copies the persisted state of providerName into the
// draft session, so editing an existing provider starts from its cached
// results instead of an empty list. The seed only happens when a persisted
// entry exists and the session has no entry yet; an existing draft is never
// overwritten. Reports whether the seed happened.
func (c *Catalog) SeedDraftFromProvider(sessionID string, providerName string, draft schemas.ProviderParams) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drafts.get(sessionID) != nil {
		return false
	}
	source := c.providers.get(providerName)
	if source == nil {
		return false
	}

	signature := ComputeSignature(draft)
	c.drafts.entries[sessionID] = &entry{
		state:     source.state.Clone(),
		signature: &signature,
	}
	return true
}

// SetDraftError records a validation failure for the session without
// attempting any network call. Models are left untouched.
func (c *Catalog) SetDraftError(sessionID string, message string) {
	c.mu.Lock()
	ent := c.drafts.ensure(sessionID)
	ent.state.recordFailure(message, c.nowMs())
	c.mu.Unlock()
	c.bus.publish(Event{Key: DraftKey(sessionID), Kind: EventValidationError})
}

// DiscardDraft deletes the session's in-memory state. Nothing was persisted
// for it, so there is nothing else to undo.
func (c *Catalog) DiscardDraft(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts.entries, sessionID)
}

// PromoteDraft migrates a draft session's state into the persisted store
// under the provider's final name, then discards the session. When the user
// turned auto-fetch of official models off before saving, the cached state
// is intentionally dropped instead of migrated.
//
// Promoting a session that was never created is a usage bug and returns
// ErrUnknownSession.
func (c *Catalog) PromoteDraft(ctx context.Context, sessionID string, providerName string, autoFetchEnabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	source := c.drafts.get(sessionID)
	if source == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}

	delete(c.drafts.entries, sessionID)
	if !autoFetchEnabled {
		return nil
	}

	migrated := source.state.Clone()
	migrated.IsFetching = false
	c.providers.entries[providerName] = &entry{state: migrated}
	return c.providers.commit(ctx)
}
