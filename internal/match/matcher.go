package match

import (
	"log/slog"
	"sort"

	"tally/internal/ledger"
	"tally/internal/logging"
	"tally/internal/textkey"
	"tally/internal/timecmp"
)

// Basis tags which signals produced a candidate's score.
type Basis string

const (
	BasisTitle    Basis = "title"
	BasisDuration Basis = "duration"
	BasisDate     Basis = "date"
	BasisCombined Basis = "combined"
)

// Candidate is one ephemeral match proposal between a video-side entity and
// a product-side entity. Selected is mutable during review; everything else
// is fixed at proposal time. Candidates are destroyed once the review
// resolves.
type Candidate struct {
	VideoEntityID   string
	ProductEntityID string
	VideoTitle      string
	ProductTitle    string
	VideoID         string
	ProductID       string
	Basis           Basis
	Score           int
	AutoApprove     bool
	Selected        bool
}

// Matcher scores orphan pairs under a policy.
type Matcher struct {
	policy Policy
	logger *slog.Logger
}

// New constructs a Matcher. A nil logger disables logging.
func New(policy Policy, logger *slog.Logger) *Matcher {
	return &Matcher{
		policy: policy,
		logger: logging.NewComponentLogger(logger, "matcher"),
	}
}

// Propose produces the ranked candidate list for the given orphan
// collections. Exact normalized-title pairs are found through an index
// regardless of collection size; weaker pairwise signals (containment,
// duration/date-only) run only when both collections are within the
// policy's size guard.
func (m *Matcher) Propose(videos, products []*ledger.JoinedMetric) []Candidate {
	exhaustive := len(videos) <= m.policy.SubstringGuard && len(products) <= m.policy.SubstringGuard

	index := make(map[string][]*ledger.JoinedMetric, len(products))
	for _, product := range products {
		key := textkey.Normalize(matchTitle(product))
		if key == "" {
			continue
		}
		index[key] = append(index[key], product)
	}

	var candidates []Candidate
	for _, video := range videos {
		key := textkey.Normalize(matchTitle(video))
		if exact := index[key]; key != "" && len(exact) > 0 {
			for _, product := range exact {
				if candidate, ok := m.score(video, product); ok {
					candidates = append(candidates, candidate)
				}
			}
			continue
		}
		// The weaker pairwise signals only run below the size guard; above
		// it an exact-key miss simply leaves the entity orphaned.
		if !exhaustive {
			continue
		}
		for _, product := range products {
			if candidate, ok := m.score(video, product); ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].VideoTitle != candidates[j].VideoTitle {
			return candidates[i].VideoTitle < candidates[j].VideoTitle
		}
		return candidates[i].ProductTitle < candidates[j].ProductTitle
	})

	m.logger.Debug("candidate proposal complete",
		logging.Int("videos", len(videos)),
		logging.Int("products", len(products)),
		logging.Bool("exhaustive", exhaustive),
		logging.Int("candidates", len(candidates)))

	return candidates
}

// score evaluates one pair against the policy. ok=false when the pair does
// not clear the emission threshold.
func (m *Matcher) score(video, product *ledger.JoinedMetric) (Candidate, bool) {
	videoTitle := matchTitle(video)
	productTitle := matchTitle(product)
	videoKey := textkey.Normalize(videoTitle)
	productKey := textkey.Normalize(productTitle)

	score := 0
	var signals []Basis

	switch {
	case videoKey != "" && videoKey == productKey:
		score += m.policy.TitleWeight
		signals = append(signals, BasisTitle)
	case textkey.Contains(videoTitle, productTitle):
		score += m.policy.containsWeight()
		signals = append(signals, BasisTitle)
	}

	if timecmp.DurationsEqual(video.Duration, product.Duration, m.policy.DurationToleranceSeconds) {
		score += m.policy.DurationWeight
		signals = append(signals, BasisDuration)
	}
	if timecmp.DatesClose(video.Published, product.Published, m.policy.DateToleranceDays) {
		score += m.policy.DateWeight
		signals = append(signals, BasisDate)
	}

	if score < m.policy.MinScore || len(signals) == 0 {
		return Candidate{}, false
	}

	basis := signals[0]
	if len(signals) > 1 {
		basis = BasisCombined
	}

	auto := score >= m.policy.AutoApproveScore
	return Candidate{
		VideoEntityID:   video.ID,
		ProductEntityID: product.ID,
		VideoTitle:      videoTitle,
		ProductTitle:    productTitle,
		VideoID:         video.VideoID,
		ProductID:       product.ProductID,
		Basis:           basis,
		Score:           score,
		AutoApprove:     auto,
		Selected:        auto,
	}, true
}

// matchTitle compares on the untouched platform title so display renames
// never change matching behavior.
func matchTitle(entity *ledger.JoinedMetric) string {
	if entity.RawTitle != "" {
		return entity.RawTitle
	}
	return entity.Title
}
