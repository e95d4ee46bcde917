package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/phravins/genstudio/internal/account"
	"github.com/phravins/genstudio/internal/kv"
)

// Key is the fixed slot the current profile is stored under.
const Key = "current_user"

// storedProfile mirrors account.UserProfile with pointers so missing fields are detectable.
type storedProfile struct {
	ID                 *string       `json:"id"`
	Email              *string       `json:"email"`
	Name               *string       `json:"name"`
	Points             *int          `json:"points"`
	ProjectsGenerated  *int          `json:"projectsGenerated"`
	SubscriptionTier   *account.Tier `json:"subscriptionTier"`
	SubscriptionActive *bool         `json:"subscriptionActive"`
}

// Store persists the single current profile in a key-value backend.
type Store struct {
	kv     kv.Store
	logger zerolog.Logger
}

func NewStore(backend kv.Store, logger zerolog.Logger) *Store {
	return &Store{kv: backend, logger: logger}
}

// Load returns the stored profile. Missing, unreadable or malformed data reports absent.
func (s *Store) Load(ctx context.Context) (*account.UserProfile, bool) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("session read failed, treating as signed out")
		return nil, false
	}
	p, err := decodeProfile(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("discarding stored session")
		return nil, false
	}
	return p, true
}

// Save validates and overwrites the stored profile.
func (s *Store) Save(ctx context.Context, p account.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear removes the stored profile.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func decodeProfile(data []byte) (*account.UserProfile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var sp storedProfile
	if err := dec.Decode(&sp); err != nil {
		return nil, fmt.Errorf("%w: %v", account.ErrMalformedSession, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", account.ErrMalformedSession)
	}
	if sp.ID == nil || sp.Email == nil || sp.Name == nil || sp.Points == nil ||
		sp.ProjectsGenerated == nil || sp.SubscriptionTier == nil || sp.SubscriptionActive == nil {
		return nil, fmt.Errorf("%w: missing required field", account.ErrMalformedSession)
	}

	p := account.UserProfile{
		ID:                 *sp.ID,
		Email:              *sp.Email,
		Name:               *sp.Name,
		Points:             *sp.Points,
		ProjectsGenerated:  *sp.ProjectsGenerated,
		SubscriptionTier:   *sp.SubscriptionTier,
		SubscriptionActive: *sp.SubscriptionActive,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", account.ErrMalformedSession, err)
	}
	return &p, nil
}
