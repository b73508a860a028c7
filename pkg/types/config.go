package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ReadOnly opens the relational store without write access.
	ReadOnly bool `json:"read_only" yaml:"read_only"`

	// MockLatency is the fixed delay the mock backend adds to every call.
	MockLatency time.Duration `json:"mock_latency" yaml:"mock_latency"`
}

// Supported backend names. sqlite is the remote relational store; mock is
// the process-local store used when no remote store is configured.
const (
	BackendSQLite = "sqlite"
	BackendMock   = "mock"
)

// DefaultMockLatency is the mock backend delay when none is configured.
const DefaultMockLatency = 80 * time.Millisecond

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrLatencyInvalid = errors.New("mock latency must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendMock:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.MockLatency < 0 {
		return ErrLatencyInvalid
	}
	return nil
}

// RemoteEnabled reports whether the config selects the remote relational
// store.
func (c Config) RemoteEnabled() bool {
	return c.Backend == BackendSQLite
}
