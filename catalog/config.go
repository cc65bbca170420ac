// Package catalog implements the official-model-list cache: per-provider
// fetch state, draft editing sessions, adaptive refresh scheduling, and
// deduplicated fetching through pluggable listing clients.
package catalog

import "time"

const (
	// DefaultInitialInterval is the refresh interval a fresh state starts
	// with, and the interval restored whenever a fetch detects a change.
	DefaultInitialInterval = 5 * time.Minute

	// DefaultMinInterval is the floor callers should respect when letting a
	// human override the interval. The scheduler itself never goes below
	// the initial interval.
	DefaultMinInterval = time.Minute

	// DefaultMaxInterval caps backoff growth.
	DefaultMaxInterval = 24 * time.Hour

	// DefaultIdenticalFetchesThreshold is how many consecutive identical
	// results it takes before the interval doubles.
	DefaultIdenticalFetchesThreshold = 2

	// DefaultStaleAfter is when a provider's last success is considered
	// stale in health reports.
	DefaultStaleAfter = 24 * time.Hour
)

// Config tunes the refresh scheduler and persistence behavior.
type Config struct {
	InitialInterval           time.Duration
	MinInterval               time.Duration
	MaxInterval               time.Duration
	IdenticalFetchesThreshold int
	StaleAfter                time.Duration
}

// CheckAndSetDefaults fills zero fields with the domain defaults.
func (c *Config) CheckAndSetDefaults() {
	if c.InitialInterval <= 0 {
		c.InitialInterval = DefaultInitialInterval
	}
	if c.MinInterval <= 0 {
		c.MinInterval = DefaultMinInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = DefaultMaxInterval
	}
	if c.IdenticalFetchesThreshold <= 0 {
		c.IdenticalFetchesThreshold = DefaultIdenticalFetchesThreshold
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = DefaultStaleAfter
	}
}
