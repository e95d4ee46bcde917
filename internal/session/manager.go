// Package session owns the signed-in account: its persisted slot and the
// state machine that logs users in and out and tracks their generation quota.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/phravins/genstudio/internal/account"
	"github.com/phravins/genstudio/internal/identity"
	"github.com/phravins/genstudio/internal/notify"
)

// Status is the lifecycle position of the manager.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// State is a point-in-time view handed to the UI.
type State struct {
	Status    Status
	User      *account.UserProfile
	IsLoading bool
}

func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// Manager coordinates login, signup, logout and quota bookkeeping.
// Auth operations run one at a time; a second call waits for the first.
type Manager struct {
	store    *Store
	dir      identity.Directory
	notifier notify.Notifier
	logger   zerolog.Logger

	initOnce sync.Once
	authMu   sync.Mutex

	mu      sync.RWMutex
	status  Status
	user    *account.UserProfile
	pending int
	subs    map[int]func(State)
	nextSub int
}

// Option configures a Manager.
type Option func(*Manager)

func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func NewManager(store *Store, dir identity.Directory, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		dir:      dir,
		notifier: notify.Nop{},
		logger:   zerolog.Nop(),
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init restores a persisted session. Only the first call does any work.
func (m *Manager) Init(ctx context.Context) {
	m.initOnce.Do(func() {
		m.setState(func() { m.status = StatusLoading })

		p, ok := m.store.Load(ctx)
		m.setState(func() {
			if ok {
				m.status, m.user = StatusAuthenticated, p
			} else {
				m.status, m.user = StatusAnonymous, nil
			}
		})
		if ok {
			m.logger.Info().Str("user_id", p.ID).Msg("session restored")
		} else {
			m.logger.Debug().Msg("no stored session")
		}
	})
}

// Login authenticates against the directory and persists the resulting profile.
// A failed attempt leaves the previous state untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (account.UserProfile, error) {
	m.authMu.Lock()
	defer m.authMu.Unlock()
	m.beginAuth()
	defer m.endAuth()

	if strings.TrimSpace(email) == "" || password == "" {
		m.notifier.Error("Invalid email or password")
		return account.UserProfile{}, fmt.Errorf("%w: %w: email and password are required", account.ErrInvalidCredentials, account.ErrInvalidInput)
	}

	p, err := m.dir.Find(ctx, email, password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			m.logger.Info().Str("email", account.NormalizeEmail(email)).Msg("login rejected")
			m.notifier.Error("Invalid email or password")
			return account.UserProfile{}, err
		}
		m.logger.Error().Err(err).Msg("identity lookup failed")
		m.notifier.Error("Sign in failed, please try again")
		return account.UserProfile{}, fmt.Errorf("login: %w", err)
	}

	if err := m.authenticate(ctx, p); err != nil {
		m.notifier.Error("Sign in failed, please try again")
		return account.UserProfile{}, err
	}
	m.logger.Info().Str("user_id", p.ID).Str("tier", string(p.SubscriptionTier)).Msg("login succeeded")
	m.notifier.Success(fmt.Sprintf("Welcome back, %s!", displayName(p)))
	return p, nil
}

// Signup creates a free-tier account, registers it and signs it in.
func (m *Manager) Signup(ctx context.Context, email, name, password string) (account.UserProfile, error) {
	m.authMu.Lock()
	defer m.authMu.Unlock()
	m.beginAuth()
	defer m.endAuth()

	if err := validateSignup(email, name, password); err != nil {
		m.notifier.Error(strings.TrimPrefix(err.Error(), account.ErrInvalidInput.Error()+": "))
		return account.UserProfile{}, err
	}

	exists, err := m.dir.Exists(ctx, email)
	if err != nil {
		m.logger.Error().Err(err).Msg("identity lookup failed")
		m.notifier.Error("Sign up failed, please try again")
		return account.UserProfile{}, fmt.Errorf("signup: %w", err)
	}
	if exists {
		m.notifier.Error("An account with this email already exists")
		return account.UserProfile{}, account.ErrEmailAlreadyInUse
	}

	p := account.NewSignupProfile(email, name)
	if err := m.dir.Register(ctx, p, password); err != nil {
		if errors.Is(err, account.ErrEmailAlreadyInUse) {
			m.notifier.Error("An account with this email already exists")
			return account.UserProfile{}, err
		}
		m.logger.Error().Err(err).Msg("account registration failed")
		m.notifier.Error("Sign up failed, please try again")
		return account.UserProfile{}, fmt.Errorf("signup: %w", err)
	}

	if err := m.authenticate(ctx, p); err != nil {
		m.notifier.Error("Sign up failed, please try again")
		return account.UserProfile{}, err
	}
	m.logger.Info().Str("user_id", p.ID).Msg("account created")
	m.notifier.Success(fmt.Sprintf("Account created! You have %d free generations.", p.Points))
	return p, nil
}

// Logout clears the stored session. The in-memory session is dropped even
// when the backend fails to delete the slot; the error is still returned.
// Clear and the reset share m.mu so a concurrent mutation cannot re-save
// the profile in between.
func (m *Manager) Logout(ctx context.Context) error {
	m.authMu.Lock()
	defer m.authMu.Unlock()

	m.mu.Lock()
	err := m.store.Clear(ctx)
	m.status, m.user = StatusAnonymous, nil
	st, subs := m.snapshotLocked(), m.subscribersLocked()
	m.mu.Unlock()
	publish(subs, st)

	if err != nil {
		m.logger.Error().Err(err).Msg("failed to clear stored session")
		m.notifier.Error("Signed out, but the saved session could not be removed")
		return err
	}
	m.logger.Info().Msg("signed out")
	m.notifier.Success("Signed out")
	return nil
}

// UpdatePoints replaces the point balance of the current user.
func (m *Manager) UpdatePoints(ctx context.Context, points int) error {
	if points < 0 {
		return fmt.Errorf("%w: points must not be negative", account.ErrInvalidInput)
	}
	return m.mutate(ctx, func(p *account.UserProfile) {
		p.Points = points
	})
}

// IncrementGenerationCount records one generated project. Free-tier users
// spend a point; the balance never drops below zero.
func (m *Manager) IncrementGenerationCount(ctx context.Context) error {
	return m.mutate(ctx, func(p *account.UserProfile) {
		p.ProjectsGenerated++
		if p.IsFree() && p.Points > 0 {
			p.Points--
		}
	})
}

// CheckQuota reports whether the current user may generate.
func (m *Manager) CheckQuota() account.Quota {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return account.QuotaFor(m.user)
}

func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// CurrentUser returns a copy of the signed-in profile.
func (m *Manager) CurrentUser() (account.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return account.UserProfile{}, false
	}
	return *m.user, true
}

func (m *Manager) IsLoading() bool {
	return m.Snapshot().IsLoading
}

func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

// Subscribe registers fn for every state change. The returned func unregisters it.
func (m *Manager) Subscribe(fn func(State)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// authenticate persists p and makes it the current user. Caller holds authMu.
func (m *Manager) authenticate(ctx context.Context, p account.UserProfile) error {
	m.mu.Lock()
	if err := m.store.Save(ctx, p); err != nil {
		m.mu.Unlock()
		m.logger.Error().Err(err).Msg("failed to persist session")
		return err
	}
	m.status, m.user = StatusAuthenticated, &p
	st, subs := m.snapshotLocked(), m.subscribersLocked()
	m.mu.Unlock()

	publish(subs, st)
	return nil
}

// mutate applies fn to a copy of the current profile, persists it and only
// then swaps it in. Anonymous sessions are left alone.
func (m *Manager) mutate(ctx context.Context, fn func(*account.UserProfile)) error {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return nil
	}
	next := *m.user
	fn(&next)
	if err := m.store.Save(ctx, next); err != nil {
		m.mu.Unlock()
		return err
	}
	m.user = &next
	st, subs := m.snapshotLocked(), m.subscribersLocked()
	m.mu.Unlock()

	publish(subs, st)

	if w, ok := m.dir.(identity.ProfileWriter); ok {
		if err := w.UpdateProfile(ctx, next); err != nil {
			m.logger.Warn().Err(err).Str("user_id", next.ID).Msg("directory balance sync failed")
		}
	}
	return nil
}

func (m *Manager) beginAuth() {
	m.setState(func() { m.pending++ })
}

func (m *Manager) endAuth() {
	m.setState(func() { m.pending-- })
}

func (m *Manager) setState(fn func()) {
	m.mu.Lock()
	fn()
	st, subs := m.snapshotLocked(), m.subscribersLocked()
	m.mu.Unlock()
	publish(subs, st)
}

func (m *Manager) snapshotLocked() State {
	st := State{
		Status:    m.status,
		IsLoading: m.status == StatusUninitialized || m.status == StatusLoading || m.pending > 0,
	}
	if m.user != nil {
		u := *m.user
		st.User = &u
	}
	return st
}

func (m *Manager) subscribersLocked() []func(State) {
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs
}

func publish(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}

func validateSignup(email, name, password string) error {
	if err := account.ValidateEmail(email); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", account.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", account.ErrInvalidInput)
	}
	return nil
}

func displayName(p account.UserProfile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}
