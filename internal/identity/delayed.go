package identity

import (
	"context"
	"time"

	"github.com/phravins/genstudio/internal/account"
)

// Delayed adds a fixed latency in front of every directory call, the way a remote
// identity service would. Cancelling the context aborts the wait.
type Delayed struct {
	Directory
	Latency time.Duration
}

func NewDelayed(d Directory, latency time.Duration) *Delayed {
	return &Delayed{Directory: d, Latency: latency}
}

func (d *Delayed) wait(ctx context.Context) error {
	if d.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (d *Delayed) Find(ctx context.Context, email, password string) (account.UserProfile, error) {
	if err := d.wait(ctx); err != nil {
		return account.UserProfile{}, err
	}
	return d.Directory.Find(ctx, email, password)
}

func (d *Delayed) Exists(ctx context.Context, email string) (bool, error) {
	if err := d.wait(ctx); err != nil {
		return false, err
	}
	return d.Directory.Exists(ctx, email)
}

// Register does not add latency of its own; signup already waited in Exists.
func (d *Delayed) Register(ctx context.Context, p account.UserProfile, password string) error {
	return d.Directory.Register(ctx, p, password)
}

// UpdateProfile forwards to the wrapped directory when it keeps balances.
func (d *Delayed) UpdateProfile(ctx context.Context, p account.UserProfile) error {
	if w, ok := d.Directory.(ProfileWriter); ok {
		return w.UpdateProfile(ctx, p)
	}
	return nil
}
