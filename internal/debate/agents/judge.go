package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/models"
)

// Evaluation is the judge's raw assessment of one contribution. Sub-scores
// are on a 0-100 scale; weighting them into a DebateScore is the scoring
// engine's job, not the judge's.
type Evaluation struct {
	Logic      float64 `json:"logic"`
	Evidence   float64 `json:"evidence"`
	Rebuttal   float64 `json:"rebuttal"`
	Expression float64 `json:"expression"`
	Comment    string  `json:"comment"`
}

// Judge evaluates scored contributions and writes the final rationale.
type Judge struct {
	cap *Capability
}

// NewJudge creates the judge agent.
func NewJudge(gateway *llm.Gateway, prompts *config.PromptSet, agentCfg config.AgentConfig, logger *logrus.Logger) (*Judge, error) {
	cap, err := NewCapability(models.RoleJudge, gateway, prompts, agentCfg, logger)
	if err != nil {
		return nil, err
	}
	return &Judge{cap: cap}, nil
}

// ScoreStatement asks the judge for the four sub-scores and a comment on one
// contribution. Output that cannot be mapped to an Evaluation fails with a
// ParseError.
func (j *Judge) ScoreStatement(ctx context.Context, topic string, roundType models.RoundType, position models.Role, content string) (*Evaluation, error) {
	raw, err := j.cap.generateStructured(ctx, config.PromptJudgeScoring, config.PromptData{
		Topic:     topic,
		Round:     roundType.DisplayName(),
		Position:  position.DisplayName(),
		Statement: content,
	})
	if err != nil {
		return nil, err
	}
	return parseEvaluation(raw)
}

// VerdictRationale asks the judge for the closing rationale over the full
// score list and transcript. The verdict numbers themselves are computed by
// the scoring engine; the judge only explains them.
func (j *Judge) VerdictRationale(ctx context.Context, topic string, scores []models.DebateScore, history []models.DebateMessage) (string, error) {
	return j.cap.generate(ctx, config.PromptFinalVerdict, config.PromptData{
		Topic:             topic,
		History:           FormatHistory(history, false),
		AffirmativeScores: formatScores(scores, models.RoleAffirmative),
		NegativeScores:    formatScores(scores, models.RoleNegative),
	})
}

// parseEvaluation maps the judge's JSON payload onto an Evaluation. Every
// numeric field is required and must be within [0, 100].
func parseEvaluation(raw string) (*Evaluation, error) {
	payload := extractJSON(raw)

	var fields struct {
		Logic      *float64 `json:"logic"`
		Evidence   *float64 `json:"evidence"`
		Rebuttal   *float64 `json:"rebuttal"`
		Expression *float64 `json:"expression"`
		Comment    string   `json:"comment"`
	}
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, &ParseError{Role: models.RoleJudge, Raw: raw, Err: err}
	}

	required := map[string]*float64{
		"logic":      fields.Logic,
		"evidence":   fields.Evidence,
		"rebuttal":   fields.Rebuttal,
		"expression": fields.Expression,
	}
	for name, value := range required {
		if value == nil {
			return nil, &ParseError{Role: models.RoleJudge, Field: name, Raw: raw, Err: fmt.Errorf("missing required numeric field")}
		}
		if *value < 0 || *value > 100 {
			return nil, &ParseError{Role: models.RoleJudge, Field: name, Raw: raw, Err: fmt.Errorf("score %.2f outside [0, 100]", *value)}
		}
	}

	return &Evaluation{
		Logic:      *fields.Logic,
		Evidence:   *fields.Evidence,
		Rebuttal:   *fields.Rebuttal,
		Expression: *fields.Expression,
		Comment:    fields.Comment,
	}, nil
}

// extractJSON strips markdown code fences some models wrap around JSON
// payloads even in structured mode.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// formatScores renders one side's per-round totals for the verdict prompt.
func formatScores(scores []models.DebateScore, role models.Role) string {
	var parts []string
	for _, s := range scores {
		if s.Role != role {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d: %.1f", s.RoundType.DisplayName(), s.RoundIndex, s.Total))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
