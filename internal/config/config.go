// Package config loads the layered namecheck configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chris-regnier/namecheck/internal/astcheck"
	"github.com/chris-regnier/namecheck/internal/naming"
)

// EnvMinNameLength overrides naming.min-name-length when set.
const EnvMinNameLength = "NAMECHECK_MIN_NAME_LENGTH"

// ProjectConfigName is the config file looked up in the working directory.
const ProjectConfigName = ".namecheck.yaml"

// CheckConfig toggles a single check and sets its SARIF level.
type CheckConfig struct {
	// Enabled is a pointer so a higher tier can explicitly disable a check.
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Severity string `yaml:"severity,omitempty"`
}

// IsEnabled reports whether the check runs; unset means enabled.
func (c CheckConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// CacheConfig configures the on-disk result cache.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// IsEnabled reports whether the cache is used; unset means enabled.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled        bool              `yaml:"enabled"`
	Endpoint       string            `yaml:"endpoint,omitempty"`
	Protocol       string            `yaml:"protocol,omitempty"` // grpc | http
	Insecure       bool              `yaml:"insecure,omitempty"`
	Headers        map[string]string `yaml:"headers,omitempty"`
	SampleRate     float64           `yaml:"sample_rate,omitempty"`
	ServiceName    string            `yaml:"service_name,omitempty"`
	ServiceVersion string            `yaml:"-"`
}

// Config holds the full namecheck configuration.
type Config struct {
	Naming    naming.Options         `yaml:"naming"`
	Checks    map[string]CheckConfig `yaml:"checks"`
	Exclude   []string               `yaml:"exclude,omitempty"`
	Cache     CacheConfig            `yaml:"cache"`
	Telemetry TelemetryConfig        `yaml:"telemetry"`
}

var severities = map[string]bool{"error": true, "warning": true, "note": true}

// Validate checks that the configuration is valid and ready to use
func (c *Config) Validate() error {
	if n := c.Naming.MinNameLength; n != nil && *n < 0 {
		return fmt.Errorf("naming: %w, got %d", naming.ErrInvalidMinNameLength, *n)
	}

	reg := astcheck.DefaultRegistry()
	for _, name := range sortedKeys(c.Checks) {
		if _, ok := reg.Get(name); !ok {
			return fmt.Errorf("checks: unknown check %q (known: %s)", name, strings.Join(reg.Names(), ", "))
		}
		if sev := c.Checks[name].Severity; sev != "" && !severities[sev] {
			return fmt.Errorf("checks.%s.severity must be 'error', 'warning' or 'note', got: %s", name, sev)
		}
	}

	switch c.Telemetry.Protocol {
	case "", "grpc", "http":
	default:
		return fmt.Errorf("telemetry.protocol must be 'grpc' or 'http', got: %s", c.Telemetry.Protocol)
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0 and 1, got: %g", c.Telemetry.SampleRate)
	}
	return nil
}

// Settings resolves the naming settings for the run.
func (c *Config) Settings() (naming.Settings, error) {
	return naming.NewSettings(c.Naming)
}

// ApplyEnv applies environment overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvMinNameLength)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinNameLength, err)
		}
		c.Naming.MinNameLength = &n
	}
	return nil
}

// EnabledChecks returns the registered checks not disabled by c, sorted by
// code. c is expected to come from MergeConfigs, which keys checks by name.
func (c *Config) EnabledChecks(reg *astcheck.Registry) []astcheck.Check {
	var enabled []astcheck.Check
	for _, check := range reg.Checks() {
		if c.checkConfig(check).IsEnabled() {
			enabled = append(enabled, check)
		}
	}
	return enabled
}

// Levels returns the configured SARIF level keyed by check name.
func (c *Config) Levels(reg *astcheck.Registry) map[string]string {
	levels := make(map[string]string)
	for _, check := range reg.Checks() {
		if sev := c.checkConfig(check).Severity; sev != "" {
			levels[check.Name()] = sev
		}
	}
	return levels
}

func (c *Config) checkConfig(check astcheck.Check) CheckConfig {
	return c.Checks[check.Name()]
}

// canonicalCheckKey maps a check code to its name. Unknown keys are kept so
// Validate can report them.
func canonicalCheckKey(reg *astcheck.Registry, key string) string {
	if check, ok := reg.Get(key); ok {
		return check.Name()
	}
	return key
}

// MergeConfigs merges configs in order of increasing precedence.
// Later configs override earlier ones. Non-zero fields override; exclude
// patterns accumulate. Checks configured by code are merged under their name.
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{
		Checks: make(map[string]CheckConfig),
	}
	reg := astcheck.DefaultRegistry()

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.Naming.MinNameLength != nil {
			n := *cfg.Naming.MinNameLength
			result.Naming.MinNameLength = &n
		}

		for _, key := range sortedKeys(cfg.Checks) {
			check := cfg.Checks[key]
			name := canonicalCheckKey(reg, key)
			existing := result.Checks[name]
			if check.Enabled != nil {
				existing.Enabled = check.Enabled
			}
			if check.Severity != "" {
				existing.Severity = check.Severity
			}
			result.Checks[name] = existing
		}

		result.Exclude = append(result.Exclude, cfg.Exclude...)

		if cfg.Cache.Enabled != nil {
			result.Cache.Enabled = cfg.Cache.Enabled
		}
		if cfg.Cache.Dir != "" {
			result.Cache.Dir = cfg.Cache.Dir
		}

		mergeTelemetry(&result.Telemetry, cfg.Telemetry)
	}

	return result
}

func mergeTelemetry(dst *TelemetryConfig, src TelemetryConfig) {
	if src.Enabled {
		dst.Enabled = true
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.Protocol != "" {
		dst.Protocol = src.Protocol
	}
	if src.Insecure {
		dst.Insecure = true
	}
	if len(src.Headers) > 0 {
		dst.Headers = src.Headers
	}
	if src.SampleRate != 0 {
		dst.SampleRate = src.SampleRate
	}
	if src.ServiceName != "" {
		dst.ServiceName = src.ServiceName
	}
}

// LoadFromFile reads a YAML config file. Returns nil, nil if the file doesn't exist.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadTiered loads system defaults, then machine config, then project config,
// and merges them in order of increasing precedence.
func LoadTiered(machinePath, projectPath string) (*Config, error) {
	system := SystemDefaults()

	machine, err := LoadFromFile(machinePath)
	if err != nil {
		return nil, fmt.Errorf("loading machine config: %w", err)
	}

	project, err := LoadFromFile(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return MergeConfigs(system, machine, project), nil
}

// MachineConfigPath returns the per-user config file location, or "" if the
// user config directory cannot be determined.
func MachineConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "namecheck", "config.yaml")
}

func sortedKeys(m map[string]CheckConfig) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
