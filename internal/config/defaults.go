package config

import "github.com/chris-regnier/namecheck/internal/naming"

// SystemDefaults returns built-in defaults: every check enabled at warning
// level and the default minimum name length.
func SystemDefaults() *Config {
	enabled := true
	cacheEnabled := true
	minLength := naming.DefaultMinNameLength
	return &Config{
		Naming: naming.Options{MinNameLength: &minLength},
		Checks: map[string]CheckConfig{
			"too-short-name":          {Enabled: &enabled, Severity: "warning"},
			"underscored-number-name": {Enabled: &enabled, Severity: "warning"},
		},
		Cache: CacheConfig{
			Enabled: &cacheEnabled,
			Dir:     ".namecheck/cache",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			Protocol:    "grpc",
			Insecure:    true,
			SampleRate:  1.0,
			ServiceName: "namecheck",
		},
	}
}
