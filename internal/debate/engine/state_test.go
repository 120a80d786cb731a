package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.debate/internal/models"
)

func committedState() *State {
	s := newState("debate-1", "topic", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.Phase = PhaseFreeDebate
	s.FreeDebateRound = 1
	s.Transcript = []models.DebateMessage{
		{Role: models.RoleModerator, RoundType: models.RoundOpening, RoundIndex: 0, Content: "intro"},
		{Role: models.RoleAffirmative, RoundType: models.RoundOpening, RoundIndex: 1, Content: "opening"},
	}
	return s
}

func TestValidateCommit_LegalAdvance(t *testing.T) {
	prev := committedState()

	next := prev.clone()
	next.Phase = PhaseClosing
	next.FreeDebateRound = 2
	next.Transcript = append(next.Transcript, models.DebateMessage{
		Role: models.RoleNegative, RoundType: models.RoundFreeDebate, RoundIndex: 2, Content: "rebuttal",
	})

	assert.NoError(t, validateCommit(prev, next, 2))
}

func TestValidateCommit_IllegalTransition(t *testing.T) {
	prev := committedState()
	next := prev.clone()
	next.Phase = PhaseOpening

	var stateErr *InvalidStateError
	assert.ErrorAs(t, validateCommit(prev, next, 3), &stateErr)
}

func TestValidateCommit_TranscriptMutation(t *testing.T) {
	prev := committedState()

	truncated := prev.clone()
	truncated.Phase = PhaseClosing
	truncated.FreeDebateRound = 3
	truncated.Transcript = truncated.Transcript[:1]
	assert.Error(t, validateCommit(prev, truncated, 3))

	rewritten := prev.clone()
	rewritten.Phase = PhaseClosing
	rewritten.FreeDebateRound = 3
	rewritten.Transcript[0].Content = "edited"
	assert.Error(t, validateCommit(prev, rewritten, 3))
}

func TestValidateCommit_FreeDebateCounter(t *testing.T) {
	prev := committedState()

	decreased := prev.clone()
	decreased.Phase = PhaseFreeDebate
	decreased.FreeDebateRound = 0
	assert.Error(t, validateCommit(prev, decreased, 3))

	exceeded := prev.clone()
	exceeded.Phase = PhaseClosing
	exceeded.FreeDebateRound = 4
	assert.Error(t, validateCommit(prev, exceeded, 3))
}

func TestValidateCommit_VerdictOnlyAtTerminal(t *testing.T) {
	prev := committedState()
	prev.Phase = PhaseJudgment

	early := prev.clone()
	early.Phase = PhaseTerminal
	assert.Error(t, validateCommit(prev, early, 3), "terminal without a verdict")

	done := prev.clone()
	done.Phase = PhaseTerminal
	done.Verdict = &models.DebateVerdict{Winner: models.WinnerDraw}
	assert.NoError(t, validateCommit(prev, done, 3))
}

func TestClone_IsDeep(t *testing.T) {
	s := committedState()
	s.Openings[models.RoleAffirmative] = "opening"
	s.Scores = []models.DebateScore{{Role: models.RoleAffirmative, Total: 77.25}}

	c := s.clone()
	c.Transcript[0].Content = "changed"
	c.Openings[models.RoleAffirmative] = "changed"
	c.Scores[0].Total = 0

	require.Equal(t, "intro", s.Transcript[0].Content)
	assert.Equal(t, "opening", s.Openings[models.RoleAffirmative])
	assert.Equal(t, 77.25, s.Scores[0].Total)
}
