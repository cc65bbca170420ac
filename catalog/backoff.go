package catalog

// applyBackoff updates the state's refresh scheduling after a successful
// fetch. Identical results grow the interval: the counter keeps counting
// without reset, and the interval doubles each time the counter hits another
// multiple of the threshold, capped at MaxInterval. A changed result always
// resets both the counter and the interval so genuine changes are watched
// closely again.
func applyBackoff(state *FetchState, identical bool, cfg Config) {
	if !identical {
		state.ConsecutiveIdenticalFetches = 0
		state.CurrentIntervalMs = cfg.InitialInterval.Milliseconds()
		return
	}

	state.ConsecutiveIdenticalFetches++
	if state.ConsecutiveIdenticalFetches%cfg.IdenticalFetchesThreshold != 0 {
		return
	}

	doubled := state.CurrentIntervalMs * 2
	maxMs := cfg.MaxInterval.Milliseconds()
	if doubled > maxMs {
		doubled = maxMs
	}
	state.CurrentIntervalMs = doubled
}
