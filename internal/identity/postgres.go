package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/phravins/genstudio/internal/account"
)

// Querier is the subset of pgxpool.Pool the directory needs.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id                  UUID PRIMARY KEY,
    email               TEXT NOT NULL,
    name                TEXT NOT NULL,
    password_hash       TEXT NOT NULL,
    points              INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
    projects_generated  INTEGER NOT NULL DEFAULT 0 CHECK (projects_generated >= 0),
    subscription_tier   TEXT NOT NULL DEFAULT 'free',
    subscription_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email));
`

const selectUserByEmail = `
SELECT id, email, name, password_hash, points, projects_generated, subscription_tier, subscription_active
FROM users
WHERE LOWER(email) = LOWER($1)
`

const insertUser = `
INSERT INTO users (id, email, name, password_hash, points, projects_generated, subscription_tier, subscription_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT DO NOTHING
`

const updateUserBalance = `
UPDATE users
SET points = $2,
    projects_generated = $3,
    subscription_tier = $4,
    subscription_active = $5,
    updated_at = NOW()
WHERE id = $1
`

// PostgresDirectory stores accounts in a users table.
type PostgresDirectory struct {
	db   Querier
	cost int
}

func NewPostgresDirectory(db Querier) *PostgresDirectory {
	return &PostgresDirectory{db: db, cost: bcrypt.DefaultCost}
}

// NewPool opens a pgx pool for the identity database.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = 4
	poolCfg.MinConns = 0
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the users table when missing.
func (d *PostgresDirectory) EnsureSchema(ctx context.Context) error {
	_, err := d.db.Exec(ctx, schemaSQL)
	return err
}

// Seed inserts the given accounts unless their emails are already taken.
func (d *PostgresDirectory) Seed(ctx context.Context, seeds []Seed) error {
	for _, s := range seeds {
		err := d.Register(ctx, s.Profile, s.Password)
		if err != nil && !errors.Is(err, account.ErrEmailAlreadyInUse) {
			return err
		}
	}
	return nil
}

func (d *PostgresDirectory) Find(ctx context.Context, email, password string) (account.UserProfile, error) {
	p, hash, err := d.lookup(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.UserProfile{}, account.ErrInvalidCredentials
	}
	if err != nil {
		return account.UserProfile{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return account.UserProfile{}, account.ErrInvalidCredentials
	}
	return p, nil
}

func (d *PostgresDirectory) Exists(ctx context.Context, email string) (bool, error) {
	_, _, err := d.lookup(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *PostgresDirectory) Register(ctx context.Context, p account.UserProfile, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	tag, err := d.db.Exec(ctx, insertUser,
		p.ID,
		p.Email,
		p.Name,
		string(hash),
		p.Points,
		p.ProjectsGenerated,
		string(p.SubscriptionTier),
		p.SubscriptionActive,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrEmailAlreadyInUse
	}
	return nil
}

// UpdateProfile writes the balance fields back so the next login sees them.
func (d *PostgresDirectory) UpdateProfile(ctx context.Context, p account.UserProfile) error {
	_, err := d.db.Exec(ctx, updateUserBalance,
		p.ID,
		p.Points,
		p.ProjectsGenerated,
		string(p.SubscriptionTier),
		p.SubscriptionActive,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (d *PostgresDirectory) lookup(ctx context.Context, email string) (account.UserProfile, string, error) {
	var (
		p    account.UserProfile
		hash string
		tier string
	)
	row := d.db.QueryRow(ctx, selectUserByEmail, account.NormalizeEmail(email))
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &hash, &p.Points, &p.ProjectsGenerated, &tier, &p.SubscriptionActive); err != nil {
		return account.UserProfile{}, "", err
	}
	p.SubscriptionTier = account.Tier(tier)
	return p, hash, nil
}
