package account

import "strconv"

// Quota is the answer to "may the current user generate a project".
type Quota struct {
	CanGenerate bool
	Remaining   int
	Unlimited   bool
}

// String renders the remaining allowance for display.
func (q Quota) String() string {
	if q.Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(q.Remaining)
}

// QuotaFor computes the quota of a profile. A nil profile is an anonymous session.
func QuotaFor(p *UserProfile) Quota {
	if p == nil {
		return Quota{}
	}
	if p.SubscriptionTier.Unlimited() {
		return Quota{CanGenerate: true, Unlimited: true}
	}
	return Quota{CanGenerate: p.Points > 0, Remaining: p.Points}
}
