package reconcile

import "time"

// Config holds the limits applied to reconciliation and dimension probing.
type Config struct {
	// TimeoutSeconds bounds the storage listing and the metadata query.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ProbeConcurrency caps the number of dimension probes in flight.
	ProbeConcurrency int `mapstructure:"probe_concurrency" default:"8"`
	// ProbeTimeoutSeconds bounds a single dimension probe.
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds" default:"5"`
	// ProbeBytes is how much of an object is fetched to read its header.
	ProbeBytes int64 `mapstructure:"probe_bytes" default:"65536"`
	// RequiredFolders are the folders the structure check expects to exist.
	RequiredFolders []string `mapstructure:"required_folders" default:"images,videos,uploads"`
}

// Timeout returns the load timeout, zero meaning unbounded.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ProbeTimeout returns the per-probe timeout, defaulting to five seconds.
func (c Config) ProbeTimeout() time.Duration {
	if c.ProbeTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// Concurrency returns the probe fan-out, defaulting to 8.
func (c Config) Concurrency() int {
	if c.ProbeConcurrency <= 0 {
		return 8
	}
	return c.ProbeConcurrency
}

// HeaderBytes returns the probe read size, defaulting to 64 KiB.
func (c Config) HeaderBytes() int64 {
	if c.ProbeBytes <= 0 {
		return 64 << 10
	}
	return c.ProbeBytes
}
