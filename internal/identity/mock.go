package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/phravins/genstudio/internal/account"
)

type record struct {
	Profile      account.UserProfile `json:"profile"`
	PasswordHash string              `json:"password_hash"`
}

// MockDirectory is an in-memory directory seeded with demo accounts.
// Registered accounts and their balances are kept in an optional JSON file so
// they survive restarts. Seed balances never change.
type MockDirectory struct {
	mu          sync.RWMutex
	records     map[string]record
	seeds       map[string]bool
	accountsLog string
	cost        int
}

// MockOption configures a MockDirectory.
type MockOption func(*MockDirectory)

// WithAccountsFile persists registered accounts to path.
func WithAccountsFile(path string) MockOption {
	return func(d *MockDirectory) { d.accountsLog = path }
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) MockOption {
	return func(d *MockDirectory) { d.cost = cost }
}

// NewMockDirectory hashes the seeds and loads previously registered accounts.
func NewMockDirectory(seeds []Seed, opts ...MockOption) (*MockDirectory, error) {
	d := &MockDirectory{
		records: make(map[string]record),
		seeds:   make(map[string]bool),
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(d)
	}

	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), d.cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password: %w", err)
		}
		key := account.NormalizeEmail(s.Profile.Email)
		d.records[key] = record{Profile: s.Profile, PasswordHash: string(hash)}
		d.seeds[key] = true
	}

	if d.accountsLog != "" {
		registered, err := d.loadRegistered()
		if err != nil {
			return nil, err
		}
		for _, r := range registered {
			key := account.NormalizeEmail(r.Profile.Email)
			if _, taken := d.records[key]; !taken {
				d.records[key] = r
			}
		}
	}
	return d, nil
}

func (d *MockDirectory) Find(_ context.Context, email, password string) (account.UserProfile, error) {
	d.mu.RLock()
	r, ok := d.records[account.NormalizeEmail(email)]
	d.mu.RUnlock()
	if !ok {
		return account.UserProfile{}, account.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(password)); err != nil {
		return account.UserProfile{}, account.ErrInvalidCredentials
	}
	return r.Profile, nil
}

func (d *MockDirectory) Exists(_ context.Context, email string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.records[account.NormalizeEmail(email)]
	return ok, nil
}

func (d *MockDirectory) Register(_ context.Context, p account.UserProfile, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	key := account.NormalizeEmail(p.Email)
	if _, ok := d.records[key]; ok {
		return account.ErrEmailAlreadyInUse
	}
	d.records[key] = record{Profile: p, PasswordHash: string(hash)}
	if err := d.saveRegistered(); err != nil {
		delete(d.records, key)
		return err
	}
	return nil
}

// UpdateProfile stores the new balance of a registered account.
func (d *MockDirectory) UpdateProfile(_ context.Context, p account.UserProfile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := account.NormalizeEmail(p.Email)
	prev, ok := d.records[key]
	if !ok || d.seeds[key] || prev.Profile.ID != p.ID {
		return nil
	}
	d.records[key] = record{Profile: p, PasswordHash: prev.PasswordHash}
	if err := d.saveRegistered(); err != nil {
		d.records[key] = prev
		return err
	}
	return nil
}

func (d *MockDirectory) loadRegistered() ([]record, error) {
	data, err := os.ReadFile(d.accountsLog)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", d.accountsLog, err)
	}
	return records, nil
}

// saveRegistered rewrites the accounts file from the non-seed records. Caller holds d.mu.
func (d *MockDirectory) saveRegistered() error {
	if d.accountsLog == "" {
		return nil
	}
	registered := make([]record, 0, len(d.records))
	for key, r := range d.records {
		if !d.seeds[key] {
			registered = append(registered, r)
		}
	}
	sort.Slice(registered, func(i, j int) bool {
		return registered[i].Profile.Email < registered[j].Profile.Email
	})
	data, err := json.MarshalIndent(registered, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(d.accountsLog), 0755); err != nil {
		return err
	}
	return os.WriteFile(d.accountsLog, data, 0600)
}
