package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chris-regnier/namecheck/internal/astcheck"
	"github.com/chris-regnier/namecheck/internal/naming"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func TestMergeChecks_HigherTierOverrides(t *testing.T) {
	system := &Config{
		Checks: map[string]CheckConfig{
			"too-short-name": {Enabled: boolPtr(true), Severity: "warning"},
		},
	}
	project := &Config{
		Checks: map[string]CheckConfig{
			"too-short-name": {Severity: "error"},
		},
	}
	merged := MergeConfigs(system, project)
	check := merged.Checks["too-short-name"]
	if check.Severity != "error" {
		t.Errorf("expected severity 'error', got %q", check.Severity)
	}
	if !check.IsEnabled() {
		t.Error("expected enabled to remain true")
	}
}

func TestMergeChecks_DisableCheck(t *testing.T) {
	system := &Config{
		Checks: map[string]CheckConfig{
			"underscored-number-name": {Enabled: boolPtr(true), Severity: "warning"},
		},
	}
	project := &Config{
		Checks: map[string]CheckConfig{
			"underscored-number-name": {Enabled: boolPtr(false)},
		},
	}
	merged := MergeConfigs(system, project)
	check := merged.Checks["underscored-number-name"]
	if check.IsEnabled() {
		t.Error("expected check to be disabled")
	}
	if check.Severity != "warning" {
		t.Errorf("expected severity preserved, got %q", check.Severity)
	}
}

func TestMergeChecks_CodeKeyMergesWithName(t *testing.T) {
	merged := MergeConfigs(
		SystemDefaults(),
		&Config{Checks: map[string]CheckConfig{"WPS111": {Enabled: boolPtr(false)}}},
		&Config{Checks: map[string]CheckConfig{"WPS114": {Severity: "error"}}},
	)
	if _, ok := merged.Checks["WPS111"]; ok {
		t.Error("expected code keys to be stored under the check name")
	}
	if merged.Checks["too-short-name"].IsEnabled() {
		t.Error("expected WPS111 entry to disable too-short-name")
	}
	if merged.Checks["underscored-number-name"].Severity != "error" {
		t.Errorf("expected WPS114 severity to apply, got %q", merged.Checks["underscored-number-name"].Severity)
	}
	if !merged.Checks["underscored-number-name"].IsEnabled() {
		t.Error("expected enabled flag from defaults to survive")
	}
}

func TestMergeChecks_UnknownKeyKeptForValidate(t *testing.T) {
	merged := MergeConfigs(SystemDefaults(), &Config{Checks: map[string]CheckConfig{"WPS999": {}}})
	if err := merged.Validate(); err == nil || !strings.Contains(err.Error(), "WPS999") {
		t.Fatalf("expected unknown check error, got %v", err)
	}
}

func TestMergeConfigs_NamingAndExclude(t *testing.T) {
	merged := MergeConfigs(
		SystemDefaults(),
		nil,
		&Config{Naming: naming.Options{MinNameLength: intPtr(3)}, Exclude: []string{"**/migrations/**"}},
		&Config{Exclude: []string{"**/vendor/**"}},
	)
	if *merged.Naming.MinNameLength != 3 {
		t.Errorf("expected min name length 3, got %d", *merged.Naming.MinNameLength)
	}
	if len(merged.Exclude) != 2 {
		t.Errorf("expected exclude patterns to accumulate, got %v", merged.Exclude)
	}
	if merged.Telemetry.ServiceName != "namecheck" {
		t.Errorf("expected telemetry defaults preserved, got %+v", merged.Telemetry)
	}
}

func TestSystemDefaults(t *testing.T) {
	cfg := SystemDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	settings, err := cfg.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.MinNameLength() != naming.DefaultMinNameLength {
		t.Errorf("expected default min name length, got %d", settings.MinNameLength())
	}
	if len(cfg.EnabledChecks(astcheck.DefaultRegistry())) != 2 {
		t.Error("expected both checks enabled by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"negative length", Config{Naming: naming.Options{MinNameLength: intPtr(-1)}}, "min-name-length"},
		{"unknown check", Config{Checks: map[string]CheckConfig{"bogus": {}}}, "unknown check"},
		{"bad severity", Config{Checks: map[string]CheckConfig{"WPS111": {Severity: "fatal"}}}, "severity"},
		{"bad protocol", Config{Telemetry: TelemetryConfig{Protocol: "udp"}}, "protocol"},
		{"bad sample rate", Config{Telemetry: TelemetryConfig{SampleRate: 2}}, "sample_rate"},
		{"zero length", Config{Naming: naming.Options{MinNameLength: intPtr(0)}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_NegativeLengthWrapsSentinel(t *testing.T) {
	cfg := Config{Naming: naming.Options{MinNameLength: intPtr(-3)}}
	if err := cfg.Validate(); !errors.Is(err, naming.ErrInvalidMinNameLength) {
		t.Fatalf("expected ErrInvalidMinNameLength, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := SystemDefaults()
	env := map[string]string{EnvMinNameLength: " 4 "}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if *cfg.Naming.MinNameLength != 4 {
		t.Errorf("expected 4, got %d", *cfg.Naming.MinNameLength)
	}

	env[EnvMinNameLength] = "four"
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Error("expected error for non-numeric value")
	}

	cfg = SystemDefaults()
	if err := cfg.ApplyEnv(func(string) string { return "" }); err != nil {
		t.Fatal(err)
	}
	if *cfg.Naming.MinNameLength != naming.DefaultMinNameLength {
		t.Error("unset variable must not change the config")
	}
}

func TestEnabledChecksAndLevels(t *testing.T) {
	cfg := MergeConfigs(SystemDefaults(), &Config{
		Checks: map[string]CheckConfig{
			"WPS111":                  {Enabled: boolPtr(false)},
			"underscored-number-name": {Severity: "error"},
		},
	})
	reg := astcheck.DefaultRegistry()

	enabled := cfg.EnabledChecks(reg)
	if len(enabled) != 1 || enabled[0].Code() != "WPS114" {
		t.Fatalf("expected only WPS114 enabled, got %v", enabled)
	}

	levels := cfg.Levels(reg)
	if levels["underscored-number-name"] != "error" {
		t.Errorf("expected error level, got %q", levels["underscored-number-name"])
	}
}

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigName)
	content := `naming:
  min-name-length: 3
checks:
  too-short-name:
    enabled: true
    severity: error
exclude:
  - "**/migrations/**"
telemetry:
  enabled: true
  protocol: http
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Naming.MinNameLength == nil || *cfg.Naming.MinNameLength != 3 {
		t.Errorf("expected min name length 3, got %v", cfg.Naming.MinNameLength)
	}
	if cfg.Checks["too-short-name"].Severity != "error" {
		t.Errorf("expected severity error, got %q", cfg.Checks["too-short-name"].Severity)
	}
	if len(cfg.Exclude) != 1 || !cfg.Telemetry.Enabled || cfg.Telemetry.Protocol != "http" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg, err := LoadFromFile("/nonexistent/path.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != nil {
		t.Error("expected nil config for missing file")
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("naming: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadTiered(t *testing.T) {
	dir := t.TempDir()
	machineConf := filepath.Join(dir, "machine.yaml")
	os.WriteFile(machineConf, []byte("naming:\n  min-name-length: 4\nchecks:\n  too-short-name:\n    severity: note\n"), 0644)
	projectConf := filepath.Join(dir, "project.yaml")
	os.WriteFile(projectConf, []byte("naming:\n  min-name-length: 3\n"), 0644)

	cfg, err := LoadTiered(machineConf, projectConf)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.Naming.MinNameLength != 3 {
		t.Errorf("expected project override 3, got %d", *cfg.Naming.MinNameLength)
	}
	if cfg.Checks["too-short-name"].Severity != "note" {
		t.Errorf("expected machine override severity 'note', got %q", cfg.Checks["too-short-name"].Severity)
	}
	if !cfg.Checks["underscored-number-name"].IsEnabled() {
		t.Error("expected system default check enabled")
	}
}
