// Package identity holds the account directories the session manager authenticates against.
package identity

import (
	"context"

	"github.com/phravins/genstudio/internal/account"
)

// Directory resolves credentials to starting profiles.
type Directory interface {
	// Find matches email case-insensitively and password exactly.
	// It returns account.ErrInvalidCredentials when nothing matches.
	Find(ctx context.Context, email, password string) (account.UserProfile, error)
	Exists(ctx context.Context, email string) (bool, error)
	// Register adds a signed-up account. Duplicate emails fail with account.ErrEmailAlreadyInUse.
	Register(ctx context.Context, p account.UserProfile, password string) error
}

// ProfileWriter is implemented by directories that keep balances in sync with the session.
type ProfileWriter interface {
	UpdateProfile(ctx context.Context, p account.UserProfile) error
}

// Seed is a built-in account of the mock directory.
type Seed struct {
	Profile  account.UserProfile
	Password string
}

// DefaultSeeds are the demo accounts available out of the box.
var DefaultSeeds = []Seed{
	{
		Profile: account.UserProfile{
			ID:                 "5f0c2f3e-8a51-4d0b-9a57-3c2d6c1e0a01",
			Email:              "demo@example.com",
			Name:               "Demo User",
			Points:             3,
			ProjectsGenerated:  0,
			SubscriptionTier:   account.TierFree,
			SubscriptionActive: true,
		},
		Password: "password123",
	},
	{
		Profile: account.UserProfile{
			ID:                 "9b7e4d21-1c6f-4e8a-b0d3-7f5a2e9c4b02",
			Email:              "admin@example.com",
			Name:               "Admin User",
			Points:             100,
			ProjectsGenerated:  0,
			SubscriptionTier:   account.TierPro,
			SubscriptionActive: true,
		},
		Password: "admin123",
	},
}
