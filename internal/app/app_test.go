package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/phravins/genstudio/internal/config"
	"github.com/phravins/genstudio/internal/notify"
	"github.com/phravins/genstudio/internal/project"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:   t.TempDir(),
		LogLevel:  "debug",
		LogFormat: "json",
		Workspace: t.TempDir(),
		Session:   config.SessionConfig{Backend: backend},
		Identity:  config.IdentityConfig{Backend: "mock"},
	}
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, Options{Notifier: notify.Nop{}, HashCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestFileBackendRestoresSession(t *testing.T) {
	cfg := testConfig(t, "file")
	ctx := context.Background()

	a := newApp(t, cfg)
	if _, err := a.Session.Login(ctx, "demo@example.com", "password123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := a.Projects.Generate(ctx, project.Request{Template: "Go CLI"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	a.Close()

	b := newApp(t, cfg)
	u, ok := b.Session.CurrentUser()
	if !ok || u.Email != "demo@example.com" || u.Points != 2 || u.ProjectsGenerated != 1 {
		t.Fatalf("restored = %+v %v", u, ok)
	}
	entries, _ := b.History.ForUser(u.ID)
	if len(entries) != 1 {
		t.Errorf("history = %+v", entries)
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "genstudio.log")); err != nil {
		t.Errorf("log file missing: %v", err)
	}
}

func TestMemoryBackendForgets(t *testing.T) {
	cfg := testConfig(t, "memory")
	a := newApp(t, cfg)
	if _, err := a.Session.Login(context.Background(), "admin@example.com", "admin123"); err != nil {
		t.Fatal(err)
	}
	a.Close()

	b := newApp(t, cfg)
	if b.Session.IsAuthenticated() {
		t.Error("memory backend should not survive a restart")
	}
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, "redis")
	cfg.Session.RedisAddr = mr.Addr()

	a := newApp(t, cfg)
	if _, err := a.Session.Login(context.Background(), "demo@example.com", "password123"); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("genstudio:current_user") {
		t.Error("session not written to redis")
	}
	a.Close()

	b := newApp(t, cfg)
	if !b.Session.IsAuthenticated() {
		t.Error("session not restored from redis")
	}
}

func TestRedisUnavailable(t *testing.T) {
	cfg := testConfig(t, "redis")
	cfg.Session.RedisAddr = "127.0.0.1:1"
	if _, err := New(context.Background(), cfg, Options{Notifier: notify.Nop{}}); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestCustomTemplates(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.TemplatesFile = filepath.Join(t.TempDir(), "templates.yaml")
	body := `templates:
  - name: Rust CLI
    description: clap based tool
    stack: Rust
    category: cli
    files:
      Cargo.toml: |
        [package]
        name = "{{.Name}}"
`
	if err := os.WriteFile(cfg.TemplatesFile, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	a := newApp(t, cfg)
	if _, ok := a.Catalog.Get("rust cli"); !ok {
		t.Error("custom template not merged")
	}
	if _, ok := a.Catalog.Get("Go CLI"); !ok {
		t.Error("built-ins lost")
	}
}

func TestBadTemplatesFile(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.TemplatesFile = filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(cfg.TemplatesFile, []byte("templates: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(context.Background(), cfg, Options{Notifier: notify.Nop{}, HashCost: bcrypt.MinCost}); err == nil {
		t.Fatal("expected a parse error")
	}
}
