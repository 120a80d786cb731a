package engine

import (
	"time"

	"digital.vasic.debate/internal/models"
)

// State is the complete record of one debate run: transcript,
// cross-examination exchanges, scores, round counters and the verdict. The
// engine is the single writer; everyone else sees snapshots.
type State struct {
	ID              string                    `json:"id"`
	Topic           string                    `json:"topic"`
	Phase           Phase                     `json:"phase"`
	Transcript      []models.DebateMessage    `json:"transcript"`
	CrossExams      []models.CrossExamination `json:"cross_exams"`
	Scores          []models.DebateScore      `json:"scores"`
	FreeDebateRound int                       `json:"free_debate_round"`
	Openings        map[models.Role]string    `json:"openings"`
	Closings        map[models.Role]string    `json:"closings"`
	Verdict         *models.DebateVerdict     `json:"verdict,omitempty"`
	StartedAt       time.Time                 `json:"started_at"`
	FinishedAt      time.Time                 `json:"finished_at,omitzero"`
}

func newState(id, topic string, now time.Time) *State {
	return &State{
		ID:        id,
		Topic:     topic,
		Phase:     PhaseInit,
		Openings:  make(map[models.Role]string, 2),
		Closings:  make(map[models.Role]string, 2),
		StartedAt: now,
	}
}

// clone deep-copies the state. Phase handlers work on a clone and the engine
// commits it wholesale, so a failed phase can never leave partial entries.
func (s *State) clone() *State {
	out := *s

	out.Transcript = append([]models.DebateMessage(nil), s.Transcript...)
	out.CrossExams = append([]models.CrossExamination(nil), s.CrossExams...)
	out.Scores = append([]models.DebateScore(nil), s.Scores...)

	out.Openings = make(map[models.Role]string, len(s.Openings))
	for k, v := range s.Openings {
		out.Openings[k] = v
	}
	out.Closings = make(map[models.Role]string, len(s.Closings))
	for k, v := range s.Closings {
		out.Closings[k] = v
	}

	if s.Verdict != nil {
		verdict := *s.Verdict
		verdict.Scores = append([]models.DebateScore(nil), s.Verdict.Scores...)
		out.Verdict = &verdict
	}
	return &out
}

// Snapshot is the read-only view of a committed state, handed to
// presentation consumers after every phase transition.
type Snapshot = State

// validateCommit checks the state machine invariants between a committed
// state and its candidate successor.
func validateCommit(prev, next *State, maxFreeDebateRounds int) error {
	if !canTransition(prev.Phase, next.Phase) {
		return &InvalidStateError{Phase: prev.Phase, Message: "illegal transition to " + string(next.Phase)}
	}
	if len(next.Transcript) < len(prev.Transcript) {
		return &InvalidStateError{Phase: prev.Phase, Message: "transcript is append-only"}
	}
	for i := range prev.Transcript {
		if next.Transcript[i] != prev.Transcript[i] {
			return &InvalidStateError{Phase: prev.Phase, Message: "committed transcript entries are immutable"}
		}
	}
	if next.FreeDebateRound < prev.FreeDebateRound {
		return &InvalidStateError{Phase: prev.Phase, Message: "free debate counter must not decrease"}
	}
	if next.FreeDebateRound > maxFreeDebateRounds {
		return &InvalidStateError{Phase: prev.Phase, Message: "free debate counter exceeds configured maximum"}
	}
	if (next.Verdict != nil) != next.Phase.Terminal() {
		return &InvalidStateError{Phase: prev.Phase, Message: "verdict must be set exactly when the debate is terminal"}
	}
	return nil
}
