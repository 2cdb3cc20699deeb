package review

import (
	"tally/internal/ledger"
	"tally/internal/logging"
	"tally/internal/match"
	"tally/internal/registry"
	"tally/internal/services"
)

// SkippedProposal reports one selected proposal that could not be applied.
type SkippedProposal struct {
	Candidate match.Candidate
	Reason    string
}

// CommitResult summarizes one commit.
type CommitResult struct {
	Kind    Kind
	Applied int
	Renamed int
	// Links holds the confirmed associations a caller should persist so
	// future runs resolve these pairs without re-matching.
	Links   []ledger.ContentLink
	Skipped []SkippedProposal
}

// Commit applies exactly the selected proposals to the registry and returns
// the session to idle. Unselected proposals are discarded without side
// effects. A proposal referencing an entity that no longer exists (merged
// away since staging) is skipped with a per-item warning; the rest of the
// batch still commits.
func (s *Session) Commit(reg *registry.Registry) (CommitResult, error) {
	if s.state != StateReviewing {
		return CommitResult{}, services.Wrap(services.ErrConflict, "review", "commit", "session is not reviewing", nil)
	}
	s.state = StateCommitted

	result := CommitResult{Kind: s.kind}
	switch s.kind {
	case KindNaming:
		result.Renamed = reg.ApplyNameSelections(s.names)
		result.Applied = result.Renamed
	default:
		result = s.commitMatches(reg)
	}

	s.reset()
	s.logger.Info("commit complete",
		logging.String("kind", string(result.Kind)),
		logging.Int("applied", result.Applied),
		logging.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *Session) commitMatches(reg *registry.Registry) CommitResult {
	result := CommitResult{Kind: KindMatches}
	for _, candidate := range s.candidates {
		if !candidate.Selected {
			continue
		}
		if _, ok := reg.Get(candidate.VideoEntityID); !ok {
			result.Skipped = append(result.Skipped, SkippedProposal{Candidate: candidate, Reason: "video entity no longer exists"})
			s.warnSkip(candidate, "video entity no longer exists")
			continue
		}
		if _, ok := reg.Get(candidate.ProductEntityID); !ok {
			result.Skipped = append(result.Skipped, SkippedProposal{Candidate: candidate, Reason: "product entity no longer exists"})
			s.warnSkip(candidate, "product entity no longer exists")
			continue
		}
		if _, err := reg.Consolidate(candidate.VideoEntityID, candidate.ProductEntityID); err != nil {
			result.Skipped = append(result.Skipped, SkippedProposal{Candidate: candidate, Reason: err.Error()})
			s.warnSkip(candidate, err.Error())
			continue
		}
		result.Applied++
		if candidate.VideoID != "" && candidate.ProductID != "" {
			result.Links = append(result.Links, ledger.ContentLink{
				VideoID:   candidate.VideoID,
				ProductID: candidate.ProductID,
			})
		}
	}
	return result
}

func (s *Session) warnSkip(candidate match.Candidate, reason string) {
	s.logger.Warn("proposal skipped",
		logging.String("video_title", candidate.VideoTitle),
		logging.String("product_title", candidate.ProductTitle),
		logging.String("reason", reason))
}
