package config

import "time"

// PollingConfig bounds the fetch cycle
type PollingConfig struct {
	Interval     time.Duration
	FetchTimeout time.Duration
}

// DefaultPollingConfig refreshes every five seconds
var DefaultPollingConfig = PollingConfig{
	Interval:     5 * time.Second,
	FetchTimeout: 10 * time.Second,
}

// Polling returns the configured timings, falling back to the defaults for unset values
func (c *Config) Polling() PollingConfig {
	p := PollingConfig{
		Interval:     c.PollInterval,
		FetchTimeout: c.FetchTimeout,
	}
	if p.Interval <= 0 {
		p.Interval = DefaultPollingConfig.Interval
	}
	if p.FetchTimeout <= 0 {
		p.FetchTimeout = DefaultPollingConfig.FetchTimeout
	}
	return p
}
