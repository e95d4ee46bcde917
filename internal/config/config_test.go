package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func load(t *testing.T, path string) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return LoadConfig(path)
}

func TestDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := load(t, "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".genstudio") {
		t.Errorf("DataDir = %s", cfg.DataDir)
	}
	if cfg.Session.Backend != "file" || cfg.Identity.Backend != "mock" {
		t.Errorf("backends = %s %s", cfg.Session.Backend, cfg.Identity.Backend)
	}
	if cfg.Identity.Latency != 800*time.Millisecond {
		t.Errorf("Latency = %v", cfg.Identity.Latency)
	}
	if Path() != filepath.Join(home, ".genstudio.yaml") {
		t.Errorf("Path = %s", Path())
	}
}

func TestFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "log_level: debug\nsession:\n  backend: redis\n  redis_db: 3\nidentity:\n  latency: 0s\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENSTUDIO_SESSION_REDIS_ADDR", "cache:6380")

	cfg, err := load(t, path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Session.Backend != "redis" || cfg.Session.RedisDB != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Session.RedisAddr != "cache:6380" {
		t.Errorf("RedisAddr = %s", cfg.Session.RedisAddr)
	}
	if cfg.Identity.Latency != 0 {
		t.Errorf("Latency = %v", cfg.Identity.Latency)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"session backend", map[string]string{"GENSTUDIO_SESSION_BACKEND": "etcd"}, "session.backend"},
		{"identity backend", map[string]string{"GENSTUDIO_IDENTITY_BACKEND": "ldap"}, "identity.backend"},
		{"postgres url", map[string]string{"GENSTUDIO_IDENTITY_BACKEND": "postgres"}, "database_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(t, filepath.Join(t.TempDir(), "missing.yaml"))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if _, err := load(t, path); err != nil {
		t.Fatal(err)
	}

	if err := SaveConfig("nope", "x"); err == nil {
		t.Fatal("unknown key accepted")
	}
	if err := SaveConfig("log_level", "warn"); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	cfg, err := load(t, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}
