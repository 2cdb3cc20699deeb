package review

import (
	"log/slog"

	"tally/internal/ledger"
	"tally/internal/logging"
	"tally/internal/match"
	"tally/internal/services"
)

// State is the verification workflow's position.
type State string

const (
	// StateIdle holds no staged data; the entry point.
	StateIdle State = "idle"
	// StateStaged holds proposals that do not yet affect the registry.
	StateStaged State = "staged"
	// StateReviewing presents proposals with mutable selection.
	StateReviewing State = "reviewing"
	// StateCommitted is the transient state while selected proposals are
	// applied; the session returns to idle when the commit finishes.
	StateCommitted State = "committed"
)

// Kind identifies which pipeline stage a staged payload belongs to.
type Kind string

const (
	KindMatches Kind = "matches"
	KindNaming  Kind = "naming"
)

// Session is one verification cycle. It owns the staged proposals and the
// selection state; the registry is only touched by Commit. Single-writer,
// like every engine structure.
type Session struct {
	state      State
	kind       Kind
	candidates []match.Candidate
	names      []ledger.NameSuggestion
	logger     *slog.Logger
}

// NewSession returns an idle session. A nil logger disables logging.
func NewSession(logger *slog.Logger) *Session {
	return &Session{
		state:  StateIdle,
		logger: logging.NewComponentLogger(logger, "review"),
	}
}

// State returns the current workflow state.
func (s *Session) State() State {
	return s.state
}

// Kind returns the staged payload kind; meaningful outside idle only.
func (s *Session) Kind() Kind {
	return s.kind
}

// StageCandidates stages match proposals for review, discarding any
// not-yet-committed payload from a previous cycle.
func (s *Session) StageCandidates(candidates []match.Candidate) {
	s.reset()
	s.kind = KindMatches
	s.candidates = make([]match.Candidate, len(candidates))
	copy(s.candidates, candidates)
	s.state = StateStaged
	s.logger.Info("candidates staged", logging.Int("count", len(candidates)))
}

// StageNames stages display-name suggestions, discarding any
// not-yet-committed payload from a previous cycle.
func (s *Session) StageNames(suggestions []ledger.NameSuggestion) {
	s.reset()
	s.kind = KindNaming
	s.names = make([]ledger.NameSuggestion, len(suggestions))
	copy(s.names, suggestions)
	s.state = StateStaged
	s.logger.Info("name suggestions staged", logging.Int("count", len(suggestions)))
}

// Begin moves a staged session into reviewing. Selection defaults were set
// at staging time (the matcher's auto-approve flag, or the collaborator's
// pre-selection for names).
func (s *Session) Begin() error {
	if s.state != StateStaged {
		return services.Wrap(services.ErrConflict, "review", "begin", "no staged proposals (state "+string(s.state)+")", nil)
	}
	s.state = StateReviewing
	return nil
}

// Len returns the number of staged items.
func (s *Session) Len() int {
	if s.kind == KindNaming {
		return len(s.names)
	}
	return len(s.candidates)
}

// Toggle flips the selection of one staged item.
func (s *Session) Toggle(index int) error {
	if s.state != StateReviewing {
		return services.Wrap(services.ErrConflict, "review", "toggle", "session is not reviewing", nil)
	}
	if index < 0 || index >= s.Len() {
		return services.Wrap(services.ErrNotFound, "review", "toggle", "no proposal at that position", nil)
	}
	if s.kind == KindNaming {
		s.names[index].Selected = !s.names[index].Selected
	} else {
		s.candidates[index].Selected = !s.candidates[index].Selected
	}
	return nil
}

// SetAll selects or deselects every staged item.
func (s *Session) SetAll(selected bool) error {
	if s.state != StateReviewing {
		return services.Wrap(services.ErrConflict, "review", "select all", "session is not reviewing", nil)
	}
	for i := range s.candidates {
		s.candidates[i].Selected = selected
	}
	for i := range s.names {
		s.names[i].Selected = selected
	}
	return nil
}

// Candidates returns a copy of the staged match proposals.
func (s *Session) Candidates() []match.Candidate {
	out := make([]match.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Names returns a copy of the staged name suggestions.
func (s *Session) Names() []ledger.NameSuggestion {
	out := make([]ledger.NameSuggestion, len(s.names))
	copy(out, s.names)
	return out
}

// Clear aborts the cycle from any state and returns to idle. Staged
// proposals are discarded; the registry is untouched.
func (s *Session) Clear() {
	s.reset()
	s.logger.Info("session cleared")
}

func (s *Session) reset() {
	s.state = StateIdle
	s.kind = ""
	s.candidates = nil
	s.names = nil
}
