package catalog

import (
	"sort"
	"time"
)

// FetchHealthStatus classifies one provider's fetch state for reporting.
type FetchHealthStatus string

const (
	FetchHealthUnknown FetchHealthStatus = "unknown"
	FetchHealthHealthy FetchHealthStatus = "healthy"
	FetchHealthStale   FetchHealthStatus = "stale"
	FetchHealthError   FetchHealthStatus = "error"
)

// ProviderFetchHealth summarizes one provider's cached-list health.
type ProviderFetchHealth struct {
	Provider          string            `json:"provider"`
	Status            FetchHealthStatus `json:"status"`
	ModelCount        int               `json:"model_count"`
	LastFetchTime     int64             `json:"last_fetch_time,omitempty"`
	LastError         string            `json:"last_error,omitempty"`
	LastErrorTime     int64             `json:"last_error_time,omitempty"`
	CurrentIntervalMs int64             `json:"current_interval_ms"`
	IsFetching        bool              `json:"is_fetching"`
}

// FetchHealthSummary counts providers per status.
type FetchHealthSummary struct {
	TotalProviders   int `json:"total_providers"`
	HealthyProviders int `json:"healthy_providers"`
	StaleProviders   int `json:"stale_providers"`
	ErrorProviders   int `json:"error_providers"`
	UnknownProviders int `json:"unknown_providers"`
}

// FetchHealthReport is the roll-up served by the health endpoint.
type FetchHealthReport struct {
	Status            FetchHealthStatus     `json:"status"`
	GeneratedAt       time.Time             `json:"generated_at"`
	StaleAfterSeconds int64                 `json:"stale_after_seconds"`
	Summary           FetchHealthSummary    `json:"summary"`
	Providers         []ProviderFetchHealth `json:"providers"`
}

// GetFetchHealthReport reports the health of every tracked provider's
// official-model cache, sorted by provider name.
func (c *Catalog) GetFetchHealthReport() FetchHealthReport {
	now := c.now().UTC()
	nowMs := now.UnixMilli()

	c.mu.Lock()
	names := make([]string, 0, len(c.providers.entries))
	for name := range c.providers.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]ProviderFetchHealth, 0, len(names))
	summary := FetchHealthSummary{}
	for _, name := range names {
		state := c.providers.entries[name].state
		status := classifyFetchHealth(state, nowMs, c.cfg.StaleAfter)
		items = append(items, ProviderFetchHealth{
			Provider:          name,
			Status:            status,
			ModelCount:        len(state.Models),
			LastFetchTime:     state.LastFetchTime,
			LastError:         state.LastError,
			LastErrorTime:     state.LastErrorTime,
			CurrentIntervalMs: state.CurrentIntervalMs,
			IsFetching:        state.IsFetching,
		})

		summary.TotalProviders++
		switch status {
		case FetchHealthHealthy:
			summary.HealthyProviders++
		case FetchHealthStale:
			summary.StaleProviders++
		case FetchHealthError:
			summary.ErrorProviders++
		default:
			summary.UnknownProviders++
		}
	}
	c.mu.Unlock()

	reportStatus := FetchHealthUnknown
	switch {
	case summary.TotalProviders == 0:
		reportStatus = FetchHealthUnknown
	case summary.ErrorProviders > 0:
		reportStatus = FetchHealthError
	case summary.StaleProviders > 0:
		reportStatus = FetchHealthStale
	case summary.HealthyProviders > 0:
		reportStatus = FetchHealthHealthy
	}

	return FetchHealthReport{
		Status:            reportStatus,
		GeneratedAt:       now,
		StaleAfterSeconds: int64(c.cfg.StaleAfter.Seconds()),
		Summary:           summary,
		Providers:         items,
	}
}

func classifyFetchHealth(state *FetchState, nowMs int64, staleAfter time.Duration) FetchHealthStatus {
	switch {
	case state.LastFetchTime == 0 && state.LastError == "":
		return FetchHealthUnknown
	case state.LastError != "" && state.LastErrorTime >= state.LastFetchTime:
		return FetchHealthError
	case state.LastFetchTime == 0:
		return FetchHealthUnknown
	case nowMs-state.LastFetchTime > staleAfter.Milliseconds():
		return FetchHealthStale
	default:
		return FetchHealthHealthy
	}
}
