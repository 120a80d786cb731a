// Package models defines the value types shared across the debate engine:
// speaker roles, round types, transcript messages, scores and the verdict,
// plus the request/response shapes exchanged with LLM providers.
package models

import "time"

// Role identifies the speaker of a message and the target of scoring.
type Role string

const (
	RoleModerator   Role = "moderator"
	RoleAffirmative Role = "affirmative"
	RoleNegative    Role = "negative"
	RoleJudge       Role = "judge"
)

// Valid reports whether r is one of the four debate roles.
func (r Role) Valid() bool {
	switch r {
	case RoleModerator, RoleAffirmative, RoleNegative, RoleJudge:
		return true
	}
	return false
}

// Debater reports whether r is one of the two debating sides.
func (r Role) Debater() bool {
	return r == RoleAffirmative || r == RoleNegative
}

// Opponent returns the opposing side. It is only meaningful for debater roles.
func (r Role) Opponent() Role {
	switch r {
	case RoleAffirmative:
		return RoleNegative
	case RoleNegative:
		return RoleAffirmative
	}
	return r
}

// DisplayName returns the human-readable name used in prompts and transcripts.
func (r Role) DisplayName() string {
	switch r {
	case RoleModerator:
		return "Moderator"
	case RoleAffirmative:
		return "Affirmative"
	case RoleNegative:
		return "Negative"
	case RoleJudge:
		return "Judge"
	}
	return string(r)
}

// RoundType tags a transcript entry and drives phase-specific prompt selection.
type RoundType string

const (
	RoundOpening          RoundType = "opening"
	RoundCrossExamination RoundType = "cross_examination"
	RoundFreeDebate       RoundType = "free_debate"
	RoundClosing          RoundType = "closing"
)

// Valid reports whether rt is one of the four round types.
func (rt RoundType) Valid() bool {
	switch rt {
	case RoundOpening, RoundCrossExamination, RoundFreeDebate, RoundClosing:
		return true
	}
	return false
}

// DisplayName returns the human-readable round name used in prompts.
func (rt RoundType) DisplayName() string {
	switch rt {
	case RoundOpening:
		return "Opening Statements"
	case RoundCrossExamination:
		return "Cross-Examination"
	case RoundFreeDebate:
		return "Free Debate"
	case RoundClosing:
		return "Closing Statements"
	}
	return string(rt)
}

// DebateMessage is a single committed contribution to the transcript.
// Messages are immutable once appended; only the phase controller appends.
// RoundIndex is the 1-based round number within its round type; the
// moderator's introduction carries RoundIndex 0.
type DebateMessage struct {
	Role       Role      `json:"role"`
	RoundType  RoundType `json:"round_type"`
	RoundIndex int       `json:"round_index"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// CrossExamination records one question/answer exchange. Two exchanges make
// up the cross-examination phase: the affirmative questions first, then the
// roles reverse.
type CrossExamination struct {
	Round      int       `json:"round"`
	Questioner Role      `json:"questioner"`
	Responder  Role      `json:"responder"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Timestamp  time.Time `json:"timestamp"`
}

// DebateScore is the judge's weighted evaluation of one scored message.
// Sub-scores are on a 0-100 scale; Total is the weighted sum.
type DebateScore struct {
	Role       Role      `json:"role"`
	RoundType  RoundType `json:"round_type"`
	RoundIndex int       `json:"round_index"`
	Logic      float64   `json:"logic"`
	Evidence   float64   `json:"evidence"`
	Rebuttal   float64   `json:"rebuttal"`
	Expression float64   `json:"expression"`
	Total      float64   `json:"total"`
	Comment    string    `json:"comment,omitempty"`
}

// Winner is the outcome of a debate.
type Winner string

const (
	WinnerAffirmative Winner = "affirmative"
	WinnerNegative    Winner = "negative"
	WinnerDraw        Winner = "draw"
)

// DebateVerdict is the final determination, created exactly once after the
// closing phase from the complete score list.
type DebateVerdict struct {
	Winner           Winner        `json:"winner"`
	AffirmativeTotal float64       `json:"affirmative_total"`
	NegativeTotal    float64       `json:"negative_total"`
	Rationale        string        `json:"rationale"`
	Scores           []DebateScore `json:"scores,omitempty"`
}
