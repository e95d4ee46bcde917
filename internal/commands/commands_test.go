package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/phravins/genstudio/internal/account"
)

type harness struct {
	t         *testing.T
	cfg       string
	workspace string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	workspace := filepath.Join(root, "ws")
	if err := os.Mkdir(workspace, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(root, "genstudio.yaml")
	body := "data_dir: " + filepath.Join(root, "data") + "\n" +
		"workspace: " + workspace + "\n" +
		"session:\n  backend: file\n" +
		"identity:\n  backend: mock\n  latency: 0s\n"
	if err := os.WriteFile(cfg, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return &harness{t: t, cfg: cfg, workspace: workspace}
}

// run executes one command line as its own process would.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	e := &env{hashCost: bcrypt.MinCost}
	defer e.close()

	root := newRoot(e)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", h.cfg}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func contains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestLoginGenerateLogout(t *testing.T) {
	h := newHarness(t)

	contains(t, h.mustRun("whoami"), "Not signed in")

	out, err := h.run("login", "--email", "demo@example.com", "--password", "nope")
	if !errors.Is(err, account.ErrInvalidCredentials) {
		t.Fatalf("bad login err = %v", err)
	}
	contains(t, out, "Invalid email or password")

	contains(t, h.mustRun("login", "-e", "DEMO@example.com", "-p", "password123"), "Welcome back, Demo User!")
	contains(t, h.mustRun("quota"), "Remaining generations: 3")

	out = h.mustRun("generate", "Go CLI", "tool")
	contains(t, out, "Created "+filepath.Join(h.workspace, "tool"))
	contains(t, out, "Generations left: 2")
	if _, err := os.Stat(filepath.Join(h.workspace, "tool", "main.go")); err != nil {
		t.Errorf("project not written: %v", err)
	}

	contains(t, h.mustRun("generate", "express", "--zip"), ".zip")
	contains(t, h.mustRun("quota"), "Remaining generations: 1")

	out = h.mustRun("history")
	contains(t, out, "tool")
	contains(t, out, "Node Express API")

	contains(t, h.mustRun("whoami"), "Demo User")

	contains(t, h.mustRun("logout"), "Signed out")
	if _, err := h.run("quota"); !errors.Is(err, account.ErrNotAuthenticated) {
		t.Errorf("quota after logout err = %v", err)
	}
	if _, err := h.run("generate", "Go CLI"); !errors.Is(err, account.ErrNotAuthenticated) {
		t.Errorf("generate after logout err = %v", err)
	}
}

func TestSignupPersistsAccount(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("signup", "--email", "new@example.com", "--name", "Newcomer", "--password", "s3cret!")
	contains(t, out, "Account created! You have 3 free generations.")

	out, err := h.run("signup", "--email", "NEW@example.com", "--name", "Again", "--password", "x")
	if !errors.Is(err, account.ErrEmailAlreadyInUse) {
		t.Fatalf("duplicate signup err = %v", err)
	}
	contains(t, out, "An account with this email already exists")
	contains(t, h.mustRun("whoami"), "Newcomer")

	h.mustRun("logout")
	contains(t, h.mustRun("login", "-e", "new@example.com", "-p", "s3cret!"), "Welcome back, Newcomer!")
}

func TestPointsAndQuota(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("points", "set", "5"); !errors.Is(err, account.ErrNotAuthenticated) {
		t.Fatalf("anonymous points set err = %v", err)
	}

	h.mustRun("login", "-e", "demo@example.com", "-p", "password123")
	contains(t, h.mustRun("points", "set", "0"), "Points set to 0")

	out := h.mustRun("quota")
	contains(t, out, "Remaining generations: 0")
	contains(t, out, "out of generations")

	if _, err := h.run("generate", "Go CLI"); !errors.Is(err, account.ErrQuotaExceeded) {
		t.Errorf("generate without points err = %v", err)
	}
	if _, err := h.run("points", "set", "--", "-1"); !errors.Is(err, account.ErrInvalidInput) {
		t.Errorf("negative points err = %v", err)
	}
	if _, err := h.run("points", "set", "ten"); !errors.Is(err, account.ErrInvalidInput) {
		t.Errorf("non-numeric points err = %v", err)
	}
}

func TestProIsUnlimited(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "-e", "admin@example.com", "-p", "admin123")
	for i := 0; i < 3; i++ {
		contains(t, h.mustRun("generate", "Go REST API"), "Generations left: unlimited")
	}
	contains(t, h.mustRun("quota"), "Projects generated: 3")
}

func TestTemplatesCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("templates", "list")
	for _, name := range []string{"Go REST API", "Python FastAPI", "Static Portfolio"} {
		contains(t, out, name)
	}

	out = h.mustRun("templates", "list", "--category", "cli")
	contains(t, out, "Go CLI")
	if strings.Contains(out, "FastAPI") {
		t.Errorf("category filter leaked:\n%s", out)
	}
	if _, err := h.run("templates", "list", "-c", "games"); err == nil {
		t.Error("unknown category should fail")
	}

	out = h.mustRun("templates", "search", "fastapi")
	contains(t, out, "Python FastAPI")
	contains(t, h.mustRun("templates", "search", "zzzzqqq"), "No templates match")

	out = h.mustRun("templates", "show", "go cli")
	contains(t, out, "module my-project")
	contains(t, out, "── README.md ──")
}

func TestPricing(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("pricing")
	for _, want := range []string{"Free", "Pro", "Team", "$19/month", "$49/month"} {
		contains(t, out, want)
	}
}

func TestConfigSetGet(t *testing.T) {
	h := newHarness(t)
	contains(t, h.mustRun("config", "set", "log_level", "debug"), "log_level = debug")
	contains(t, h.mustRun("config", "get", "log_level"), "debug")
	if _, err := h.run("config", "set", "colour", "blue"); err == nil {
		t.Error("unknown key accepted")
	}
	// the rewritten file still loads
	h.mustRun("whoami")
}

func TestProfileMarkdown(t *testing.T) {
	md := profileMarkdown(account.UserProfile{
		ID: "id-1", Email: "a@b.co", Name: "Ann", Points: 2,
		SubscriptionTier: account.TierPro, SubscriptionActive: true,
	}, account.Quota{CanGenerate: true, Unlimited: true})
	for _, want := range []string{"# Ann", "**Plan:** Pro (active)", "**Generations left:** unlimited"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestHistoryPrune(t *testing.T) {
	h := newHarness(t)

	contains(t, h.mustRun("history", "--prune", "30"), "Removed 0 entries older than 30 days")
	if _, err := h.run("history", "--prune", "-1"); !errors.Is(err, account.ErrInvalidInput) {
		t.Errorf("negative prune err = %v", err)
	}
}
