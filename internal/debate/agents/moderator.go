package agents

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/models"
)

// Moderator hosts the debate. Its introduction is generated; round
// announcements are canned and never cost a reasoning call.
type Moderator struct {
	cap *Capability
}

// NewModerator creates the moderator agent.
func NewModerator(gateway *llm.Gateway, prompts *config.PromptSet, agentCfg config.AgentConfig, logger *logrus.Logger) (*Moderator, error) {
	cap, err := NewCapability(models.RoleModerator, gateway, prompts, agentCfg, logger)
	if err != nil {
		return nil, err
	}
	return &Moderator{cap: cap}, nil
}

// Introduce generates the moderator's introduction for the motion.
func (m *Moderator) Introduce(ctx context.Context, topic string) (string, error) {
	return m.cap.generate(ctx, config.PromptIntroduction, config.PromptData{Topic: topic})
}

// AnnounceRound returns the fixed announcement for a round.
func (m *Moderator) AnnounceRound(roundType models.RoundType) string {
	switch roundType {
	case models.RoundOpening:
		return "We now begin the opening statements. The affirmative side speaks first, followed by the negative side."
	case models.RoundCrossExamination:
		return "We now enter cross-examination. Each side will question the other in turn."
	case models.RoundFreeDebate:
		return "We now enter the free debate. Both sides will speak in alternation."
	case models.RoundClosing:
		return "We now enter the closing statements. The affirmative side summarizes first, followed by the negative side."
	}
	return fmt.Sprintf("We now enter the %s round.", roundType.DisplayName())
}
