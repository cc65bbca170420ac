package catalog

import (
	"context"
	"time"

	"github.com/capsohq/modelcache/schemas"
)

// ProvidersFunc supplies the current set of configured providers each time
// the refresh loop wakes up, so configuration changes take effect without
// restarting the loop.
type ProvidersFunc func() []schemas.ProviderParams

// RunRefreshLoop periodically runs RefreshAll until the context is
// canceled. Each pass is cache-gated: a provider only fetches once its own
// adaptive interval has elapsed, so the tick just sets how often due states
// are checked. An immediate first pass warms caches at startup.
//
// Blocks; run it in its own goroutine.
func (c *Catalog) RunRefreshLoop(ctx context.Context, tick time.Duration, providersFn ProvidersFunc) {
	if tick <= 0 {
		tick = c.cfg.MinInterval
	}

	c.RefreshAll(ctx, providersFn())

	timer := time.NewTicker(tick)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			c.RefreshAll(ctx, providersFn())
		}
	}
}
