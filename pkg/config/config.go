package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/transport"
)

var (
	// ErrInvalidPort indicates a port outside the 16-bit range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidScopes indicates a scope list that failed to parse.
	ErrInvalidScopes = errors.New("invalid scope list")
)

// Config is the daemon configuration.
type Config struct {
	// Scopes is the escaped scope list the daemon operates in.
	Scopes string `yaml:"scopes" env:"OLA_SCOPES"`

	// Port is the SLP listen port.
	Port int `yaml:"port" env:"OLA_SLP_PORT"`

	// Interface restricts SLP traffic to one network interface.
	// Empty means all interfaces.
	Interface string `yaml:"interface" env:"OLA_INTERFACE"`

	// DisableMulticast turns off SLP multicast membership. Unicast
	// operation still works.
	DisableMulticast bool `yaml:"disable_multicast" env:"OLA_DISABLE_MULTICAST"`

	// DataDir is where the daemon keeps its state file and universe
	// preferences.
	DataDir string `yaml:"data_dir" env:"OLA_DATA_DIR"`

	// EventLog is the path of the CBOR protocol event log. Empty disables
	// event logging.
	EventLog string `yaml:"event_log" env:"OLA_EVENT_LOG"`

	// LogLevel sets the daemon log level (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"OLA_LOG_LEVEL"`

	// DisableMDNS turns off the _ola._tcp zeroconf advertisement.
	DisableMDNS bool `yaml:"disable_mdns" env:"OLA_DISABLE_MDNS"`

	// InstanceName is the zeroconf instance name. Empty derives one from
	// the hostname.
	InstanceName string `yaml:"instance_name" env:"OLA_INSTANCE_NAME"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scopes:   scope.DefaultScope,
		Port:     transport.DefaultPort,
		DataDir:  defaultDataDir(),
		LogLevel: "info",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ola"
	}
	return filepath.Join(home, ".ola")
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty; the file must then exist), and OLA_* environment
// variables, in that order. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 0xFFFF {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if _, err := c.ScopeSet(); err != nil {
		return err
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// ScopeSet parses the configured scope list. An empty list falls back to the
// default scope.
func (c Config) ScopeSet() (scope.Set, error) {
	set, err := scope.Parse(c.Scopes)
	if err != nil {
		return scope.Set{}, fmt.Errorf("%w: %v", ErrInvalidScopes, err)
	}
	if set.Empty() {
		return scope.Default(), nil
	}
	return set, nil
}

// StateFile returns the daemon state file path under DataDir.
func (c Config) StateFile() string {
	return filepath.Join(c.DataDir, "state.json")
}

// PreferencesFile returns the universe preferences path under DataDir.
func (c Config) PreferencesFile() string {
	return filepath.Join(c.DataDir, "universes.yaml")
}
