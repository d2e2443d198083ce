package probe

import "time"

// Default probe settings.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultTimeout = 15 * time.Second
	DefaultWorkers = 4
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // Per-request timeout
	Workers int           // Concurrent requests
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// Result is the outcome of asking one endpoint about a painting.
type Result struct {
	Endpoint  string
	Status    string
	Value     string
	Message   string
	RequestID string
	Latency   time.Duration
	// Raw is the response body as received.
	Raw []byte
	Err error
}
