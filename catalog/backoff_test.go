package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testBackoffConfig() Config {
	cfg := Config{}
	cfg.CheckAndSetDefaults()
	return cfg
}

func TestApplyBackoff_GrowthEveryThreshold(t *testing.T) {
	cfg := testBackoffConfig()
	state := newFetchState(cfg)

	// With threshold 2, the interval doubles on the 2nd, 4th, 6th...
	// identical fetch; the counter itself is never reset by growth.
	expected := []struct {
		counter  int
		interval int64
	}{
		{1, 300000},
		{2, 600000},
		{3, 600000},
		{4, 1200000},
		{5, 1200000},
		{6, 2400000},
	}
	for _, step := range expected {
		applyBackoff(state, true, cfg)
		assert.Equal(t, step.counter, state.ConsecutiveIdenticalFetches)
		assert.Equal(t, step.interval, state.CurrentIntervalMs)
	}
}

func TestApplyBackoff_ClosedFormGrowth(t *testing.T) {
	cfg := testBackoffConfig()
	state := newFetchState(cfg)

	// k rounds of `threshold` identical fetches yield initial * 2^k.
	for k := 1; k <= 5; k++ {
		for i := 0; i < cfg.IdenticalFetchesThreshold; i++ {
			applyBackoff(state, true, cfg)
		}
		expected := cfg.InitialInterval.Milliseconds() << k
		assert.Equal(t, expected, state.CurrentIntervalMs, "after %d rounds", k)
	}
}

func TestApplyBackoff_CappedAtMax(t *testing.T) {
	cfg := testBackoffConfig()
	state := newFetchState(cfg)

	for i := 0; i < 100; i++ {
		applyBackoff(state, true, cfg)
	}
	assert.Equal(t, cfg.MaxInterval.Milliseconds(), state.CurrentIntervalMs)

	// Staying identical keeps it pinned at the cap.
	applyBackoff(state, true, cfg)
	applyBackoff(state, true, cfg)
	assert.Equal(t, cfg.MaxInterval.Milliseconds(), state.CurrentIntervalMs)
}

func TestApplyBackoff_ResetOnChange(t *testing.T) {
	cfg := testBackoffConfig()
	state := newFetchState(cfg)

	for i := 0; i < 10; i++ {
		applyBackoff(state, true, cfg)
	}
	assert.Greater(t, state.CurrentIntervalMs, cfg.InitialInterval.Milliseconds())

	applyBackoff(state, false, cfg)
	assert.Equal(t, cfg.InitialInterval.Milliseconds(), state.CurrentIntervalMs)
	assert.Equal(t, 0, state.ConsecutiveIdenticalFetches)
}

func TestApplyBackoff_ChangeAlwaysResets(t *testing.T) {
	cfg := testBackoffConfig()

	// Regardless of how much backoff accumulated, one changed result
	// restores close watching.
	for _, rounds := range []int{1, 3, 7, 50} {
		state := newFetchState(cfg)
		for i := 0; i < rounds; i++ {
			applyBackoff(state, true, cfg)
		}
		applyBackoff(state, false, cfg)
		assert.Equal(t, cfg.InitialInterval.Milliseconds(), state.CurrentIntervalMs)
		assert.Equal(t, 0, state.ConsecutiveIdenticalFetches)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.CheckAndSetDefaults()
	assert.Equal(t, 5*time.Minute, cfg.InitialInterval)
	assert.Equal(t, time.Minute, cfg.MinInterval)
	assert.Equal(t, 24*time.Hour, cfg.MaxInterval)
	assert.Equal(t, 2, cfg.IdenticalFetchesThreshold)
}
