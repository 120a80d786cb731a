package agents

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/models"
)

// Debater argues one side of the motion. The same type serves both sides;
// the position is fixed at construction.
type Debater struct {
	cap   *Capability
	rules config.Rules
}

// NewDebater creates a debater for the affirmative or negative side.
func NewDebater(position models.Role, gateway *llm.Gateway, prompts *config.PromptSet, agentCfg config.AgentConfig, rules config.Rules, logger *logrus.Logger) (*Debater, error) {
	if !position.Debater() {
		return nil, fmt.Errorf("invalid debater position %q", position)
	}
	cap, err := NewCapability(position, gateway, prompts, agentCfg, logger)
	if err != nil {
		return nil, err
	}
	return &Debater{cap: cap, rules: rules}, nil
}

// Position returns the side this debater argues.
func (d *Debater) Position() models.Role { return d.cap.Role() }

// OpeningStatement produces the side's opening statement for the motion.
func (d *Debater) OpeningStatement(ctx context.Context, topic string) (string, error) {
	return d.cap.generate(ctx, statementPromptKeys[models.RoundOpening], config.PromptData{
		Topic:     topic,
		Position:  d.Position().DisplayName(),
		WordLimit: d.rules.OpeningWordLimit,
	})
}

// CrossQuestion produces one cross-examination question aimed at the
// opponent's statement.
func (d *Debater) CrossQuestion(ctx context.Context, topic, opponentStatement string) (string, error) {
	return d.cap.generate(ctx, config.PromptCrossQuestion, config.PromptData{
		Topic:     topic,
		Position:  d.Position().DisplayName(),
		Opponent:  d.Position().Opponent().DisplayName(),
		Statement: opponentStatement,
	})
}

// CrossAnswer answers the opponent's cross-examination question with the
// debate history as context.
func (d *Debater) CrossAnswer(ctx context.Context, topic, question string, history []models.DebateMessage) (string, error) {
	return d.cap.generate(ctx, config.PromptCrossAnswer, config.PromptData{
		Topic:    topic,
		Position: d.Position().DisplayName(),
		Question: question,
		History:  FormatHistory(history, false),
	})
}

// FreeDebate produces one free-debate contribution responding to the
// accumulated transcript.
func (d *Debater) FreeDebate(ctx context.Context, topic string, history []models.DebateMessage) (string, error) {
	return d.cap.generate(ctx, statementPromptKeys[models.RoundFreeDebate], config.PromptData{
		Topic:    topic,
		Position: d.Position().DisplayName(),
		History:  FormatHistory(history, false),
	})
}

// ClosingStatement produces the side's closing statement over the full
// debate history.
func (d *Debater) ClosingStatement(ctx context.Context, topic string, history []models.DebateMessage) (string, error) {
	return d.cap.generate(ctx, statementPromptKeys[models.RoundClosing], config.PromptData{
		Topic:     topic,
		Position:  d.Position().DisplayName(),
		History:   FormatHistory(history, false),
		WordLimit: d.rules.ClosingWordLimit,
	})
}
