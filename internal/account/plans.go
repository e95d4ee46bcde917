package account

// Plan describes a subscription tier on the pricing page.
type Plan struct {
	Tier        Tier
	Name        string
	PriceCents  int // monthly, USD
	Allowance   string
	Description string
	Features    []string
}

// Plans lists the tiers in display order.
var Plans = []Plan{
	{
		Tier:        TierFree,
		Name:        "Free",
		PriceCents:  0,
		Allowance:   "3 generations",
		Description: "Try the generator with a handful of projects",
		Features: []string{
			"All starter templates",
			"Zip download",
			"Project history",
		},
	},
	{
		Tier:        TierPro,
		Name:        "Pro",
		PriceCents:  1900,
		Allowance:   "Unlimited generations",
		Description: "For developers who scaffold every week",
		Features: []string{
			"Everything in Free",
			"Unlimited generations",
			"Custom template catalogs",
			"Priority support",
		},
	},
	{
		Tier:        TierTeam,
		Name:        "Team",
		PriceCents:  4900,
		Allowance:   "Unlimited generations",
		Description: "Shared templates and seats for small teams",
		Features: []string{
			"Everything in Pro",
			"Shared identity backend",
			"Shared session store",
			"Up to 10 seats",
		},
	},
}

// PlanFor returns the plan for a tier.
func PlanFor(t Tier) (Plan, bool) {
	for _, p := range Plans {
		if p.Tier == t {
			return p, true
		}
	}
	return Plan{}, false
}
