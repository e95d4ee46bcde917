package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/phravins/genstudio/internal/account"
)

func newTestDirectory(t *testing.T, opts ...MockOption) *MockDirectory {
	t.Helper()
	opts = append([]MockOption{WithHashCost(bcrypt.MinCost)}, opts...)
	d, err := NewMockDirectory(DefaultSeeds, opts...)
	if err != nil {
		t.Fatalf("NewMockDirectory failed: %v", err)
	}
	return d
}

func TestMockDirectory_Find(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantName string
	}{
		{"demo exact", "demo@example.com", "password123", nil, "Demo User"},
		{"demo mixed case", "Demo@Example.COM", "password123", nil, "Demo User"},
		{"admin", "admin@example.com", "admin123", nil, "Admin User"},
		{"surrounding spaces", "  demo@example.com ", "password123", nil, "Demo User"},
		{"wrong password", "demo@example.com", "password124", account.ErrInvalidCredentials, ""},
		{"password case matters", "demo@example.com", "PASSWORD123", account.ErrInvalidCredentials, ""},
		{"unknown email", "nobody@example.com", "password123", account.ErrInvalidCredentials, ""},
		{"empty", "", "", account.ErrInvalidCredentials, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := d.Find(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Find(%q) error = %v, want %v", tt.email, err, tt.wantErr)
			}
			if p.Name != tt.wantName {
				t.Errorf("Find(%q) name = %q, want %q", tt.email, p.Name, tt.wantName)
			}
		})
	}
}

func TestMockDirectory_RegisterThenFind(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()
	p := account.NewSignupProfile("new@example.com", "New User")

	if err := d.Register(ctx, p, "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	got, err := d.Find(ctx, "NEW@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Find after Register failed: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("Find returned id %q, want %q", got.ID, p.ID)
	}

	if err := d.Register(ctx, account.NewSignupProfile("demo@EXAMPLE.com", "Dup"), "x"); !errors.Is(err, account.ErrEmailAlreadyInUse) {
		t.Errorf("duplicate Register error = %v, want ErrEmailAlreadyInUse", err)
	}
}

func TestMockDirectory_AccountsFileSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	ctx := context.Background()

	first := newTestDirectory(t, WithAccountsFile(path))
	p := account.NewSignupProfile("kept@example.com", "Kept")
	if err := first.Register(ctx, p, "s3cret!"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	second := newTestDirectory(t, WithAccountsFile(path))
	exists, _ := second.Exists(ctx, "kept@example.com")
	if !exists {
		t.Fatal("registered account missing after reload")
	}
	if _, err := second.Find(ctx, "kept@example.com", "s3cret!"); err != nil {
		t.Errorf("Find after reload failed: %v", err)
	}
}

func TestMockDirectory_UpdateProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	ctx := context.Background()

	d := newTestDirectory(t, WithAccountsFile(path))
	p := account.NewSignupProfile("spender@example.com", "Spender")
	if err := d.Register(ctx, p, "pw123456"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	p.Points, p.ProjectsGenerated = 1, 2
	if err := d.UpdateProfile(ctx, p); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	reloaded := newTestDirectory(t, WithAccountsFile(path))
	got, err := reloaded.Find(ctx, "spender@example.com", "pw123456")
	if err != nil {
		t.Fatalf("Find after reload failed: %v", err)
	}
	if got.Points != 1 || got.ProjectsGenerated != 2 {
		t.Errorf("reloaded balance = %+v", got)
	}

	demo, _ := d.Find(ctx, "demo@example.com", "password123")
	spent := demo
	spent.Points = 0
	if err := d.UpdateProfile(ctx, spent); err != nil {
		t.Fatalf("UpdateProfile on seed failed: %v", err)
	}
	if again, _ := d.Find(ctx, "demo@example.com", "password123"); again != demo {
		t.Errorf("seed account changed: %+v", again)
	}
}

func TestDelayed_WaitsAndForwards(t *testing.T) {
	d := NewDelayed(newTestDirectory(t), 20*time.Millisecond)

	start := time.Now()
	ok, err := d.Exists(context.Background(), "demo@example.com")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Exists returned after %v, want at least 20ms", elapsed)
	}
}

func TestDelayed_HonoursCancellation(t *testing.T) {
	d := NewDelayed(newTestDirectory(t), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Find(ctx, "demo@example.com", "password123"); !errors.Is(err, context.Canceled) {
		t.Errorf("Find error = %v, want context.Canceled", err)
	}
}
