package account

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// Tier enumerates subscription tiers.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
	TierTeam Tier = "team"
)

// SignupPoints is the free generation allowance granted to new accounts.
const SignupPoints = 3

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierPro, TierTeam:
		return true
	}
	return false
}

// Unlimited reports whether the tier generates without consuming points.
func (t Tier) Unlimited() bool {
	return t == TierPro || t == TierTeam
}

// UserProfile is the account record held by the current session.
type UserProfile struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Points             int    `json:"points"`
	ProjectsGenerated  int    `json:"projectsGenerated"`
	SubscriptionTier   Tier   `json:"subscriptionTier"`
	SubscriptionActive bool   `json:"subscriptionActive"`
}

// IsFree reports whether the profile is on the free tier.
func (p UserProfile) IsFree() bool {
	return p.SubscriptionTier == TierFree
}

// Validate checks the fields every stored or issued profile must carry.
func (p UserProfile) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	case strings.TrimSpace(p.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	case p.Points < 0:
		return fmt.Errorf("%w: points must not be negative", ErrInvalidInput)
	case p.ProjectsGenerated < 0:
		return fmt.Errorf("%w: projectsGenerated must not be negative", ErrInvalidInput)
	case !p.SubscriptionTier.Valid():
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, p.SubscriptionTier)
	}
	return nil
}

// NewSignupProfile fabricates the record for a freshly created account.
func NewSignupProfile(email, name string) UserProfile {
	return UserProfile{
		ID:                 uuid.NewString(),
		Email:              strings.TrimSpace(email),
		Name:               strings.TrimSpace(name),
		Points:             SignupPoints,
		ProjectsGenerated:  0,
		SubscriptionTier:   TierFree,
		SubscriptionActive: true,
	}
}

// NormalizeEmail returns the lookup key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail rejects empty or unparsable addresses.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidInput, email)
	}
	return nil
}
