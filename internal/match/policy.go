package match

import "tally/internal/config"

// Policy holds the matcher's scoring weights, thresholds, and tolerances.
// The defaults are the reference policy; all values are tunable
// configuration, not business rules.
type Policy struct {
	// Additive score contributions.
	TitleWeight    int
	DurationWeight int
	DateWeight     int

	// MinScore is the emission threshold; AutoApproveScore marks a
	// candidate pre-selected for review.
	MinScore         int
	AutoApproveScore int

	// Signal tolerances.
	DurationToleranceSeconds int
	DateToleranceDays        int

	// SubstringGuard bounds the pairwise fallback scan: it runs only when
	// both input collections hold at most this many entities.
	SubstringGuard int
}

// DefaultPolicy returns the reference policy.
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.Default().Matching)
}

// PolicyFromConfig builds a Policy from the loaded configuration section.
func PolicyFromConfig(m config.Matching) Policy {
	return Policy{
		TitleWeight:              m.TitleWeight,
		DurationWeight:           m.DurationWeight,
		DateWeight:               m.DateWeight,
		MinScore:                 m.MinScore,
		AutoApproveScore:         m.AutoApproveScore,
		DurationToleranceSeconds: m.DurationToleranceSeconds,
		DateToleranceDays:        m.DateToleranceDays,
		SubstringGuard:           m.SubstringGuard,
	}
}

// containsWeight is the implicit weight of a substring-containment title
// match: half the exact-title weight, so containment alone never clears the
// default emission threshold without a second signal.
func (p Policy) containsWeight() int {
	return p.TitleWeight / 2
}
