package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every KV_* override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDBPath, EnvBackend, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, ConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := ConfigPath(), "/custom/config/kv/config.yml"; got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := ConfigPath(), filepath.Join(home, ".config", "kv", "config.yml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != "json" {
		t.Errorf("Backend = %q, want json", cfg.Backend)
	}
	if cfg.DBPath != "data.db" {
		t.Errorf("DBPath = %q, want data.db", cfg.DBPath)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Errorf("log settings = %q/%q, want warn/text", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	writeConfig(t, tmpDir, "db_path: ~/kv/store.sqlite\nbackend: sqlite\nlog_level: debug\nlog_format: json\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "kv/store.sqlite"); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log settings = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_LogLevelCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvLogLevel, "DEBUG")

	if _, err := Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	writeConfig(t, tmpDir, "db_path: from-file.db\nbackend: sqlite\n")

	t.Setenv(EnvDBPath, "from-env.db")
	t.Setenv(EnvBackend, "bolt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "from-env.db" {
		t.Errorf("DBPath = %q, want from-env.db", cfg.DBPath)
	}
	if cfg.Backend != "bolt" {
		t.Errorf("Backend = %q, want bolt", cfg.Backend)
	}
}

func TestLoad_BackendDefaultPath(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"json", "data.db"},
		{"sqlite", "data.sqlite"},
		{"bolt", "data.bolt"},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Setenv(EnvBackend, tt.backend)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.DBPath != tt.want {
				t.Errorf("DBPath = %q, want %q", cfg.DBPath, tt.want)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "backend: redis\n"},
		{"unknown log format", "log_format: xml\n"},
		{"unknown log level", "log_level: debgu\n"},
		{"malformed yaml", "backend: [json\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tmpDir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", tmpDir)
			writeConfig(t, tmpDir, tt.content)

			if _, err := Load(); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/data.db", filepath.Join(home, "data.db")},
		{"/abs/data.db", "/abs/data.db"},
		{"data.db", "data.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.input); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
