// Package scoring converts judge evaluations into weighted debate scores and
// aggregates them into the final verdict. Everything here is a pure function
// of its inputs; the package never talks to a model.
package scoring

import (
	"math"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/debate/agents"
	"digital.vasic.debate/internal/models"
)

// Engine applies the configured weights and draw threshold.
type Engine struct {
	weights       config.ScoringWeights
	drawThreshold float64
}

// NewEngine creates a scoring engine from the rules.
func NewEngine(weights config.ScoringWeights, drawThreshold float64) *Engine {
	return &Engine{weights: weights, drawThreshold: drawThreshold}
}

// Score weights a judge evaluation into a DebateScore for one contribution.
func (e *Engine) Score(role models.Role, roundType models.RoundType, roundIndex int, eval *agents.Evaluation) models.DebateScore {
	total := e.weights.Logic*eval.Logic +
		e.weights.Evidence*eval.Evidence +
		e.weights.Rebuttal*eval.Rebuttal +
		e.weights.Expression*eval.Expression

	return models.DebateScore{
		Role:       role,
		RoundType:  roundType,
		RoundIndex: roundIndex,
		Logic:      eval.Logic,
		Evidence:   eval.Evidence,
		Rebuttal:   eval.Rebuttal,
		Expression: eval.Expression,
		Total:      total,
		Comment:    eval.Comment,
	}
}

// Verdict aggregates the complete score list into the final determination.
// The winner is the side with the higher total unless the relative
// difference is below the draw threshold.
func (e *Engine) Verdict(scores []models.DebateScore, rationale string) models.DebateVerdict {
	var affirmative, negative float64
	for _, s := range scores {
		switch s.Role {
		case models.RoleAffirmative:
			affirmative += s.Total
		case models.RoleNegative:
			negative += s.Total
		}
	}

	verdict := models.DebateVerdict{
		Winner:           e.winner(affirmative, negative),
		AffirmativeTotal: affirmative,
		NegativeTotal:    negative,
		Rationale:        rationale,
		Scores:           append([]models.DebateScore(nil), scores...),
	}
	return verdict
}

func (e *Engine) winner(affirmative, negative float64) models.Winner {
	max := math.Max(affirmative, negative)
	if max == 0 {
		return models.WinnerDraw
	}
	if math.Abs(affirmative-negative)/max < e.drawThreshold {
		return models.WinnerDraw
	}
	if affirmative > negative {
		return models.WinnerAffirmative
	}
	return models.WinnerNegative
}
