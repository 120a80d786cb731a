// Package agents implements the role-bound conversational agents of the
// debate: the two debaters, the judge and the moderator. Each agent is a
// thin prompt-building strategy composed around a shared generation
// capability; the reasoning call itself always goes through the gateway.
package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/models"
)

// systemPromptKeys maps each role to its system prompt template.
var systemPromptKeys = map[models.Role]string{
	models.RoleModerator:   config.PromptModeratorSystem,
	models.RoleAffirmative: config.PromptAffirmativeSystem,
	models.RoleNegative:    config.PromptNegativeSystem,
	models.RoleJudge:       config.PromptJudgeSystem,
}

// statementPromptKeys is the dispatch table from round type to the prompt a
// debater uses for a statement turn. Cross-examination sub-turns dispatch on
// question/answer instead (see Debater).
var statementPromptKeys = map[models.RoundType]string{
	models.RoundOpening:    config.PromptOpening,
	models.RoundFreeDebate: config.PromptFreeDebate,
	models.RoundClosing:    config.PromptClosing,
}

// Capability is the shared call scaffolding composed into each role agent:
// gateway access, the role's system prompt, model parameters and prompt
// rendering. It replaces a base-class hierarchy with one reusable value.
type Capability struct {
	gateway      *llm.Gateway
	role         models.Role
	systemPrompt string
	params       models.ModelParameters
	prompts      *config.PromptSet
	logger       *logrus.Logger
}

// NewCapability builds the generation capability for one role.
func NewCapability(role models.Role, gateway *llm.Gateway, prompts *config.PromptSet, agentCfg config.AgentConfig, logger *logrus.Logger) (*Capability, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	systemKey, ok := systemPromptKeys[role]
	if !ok {
		return nil, fmt.Errorf("no system prompt key for role %q", role)
	}
	systemPrompt, err := prompts.Render(systemKey, config.PromptData{})
	if err != nil {
		return nil, err
	}
	return &Capability{
		gateway:      gateway,
		role:         role,
		systemPrompt: systemPrompt,
		params:       agentCfg.ModelParams(),
		prompts:      prompts,
		logger:       logger,
	}, nil
}

// Role returns the role this capability speaks as.
func (c *Capability) Role() models.Role { return c.role }

// generate renders the prompt template for key and performs a free-text
// reasoning call.
func (c *Capability) generate(ctx context.Context, key string, data config.PromptData) (string, error) {
	return c.generateMode(ctx, key, data, models.ResponseModeText)
}

// generateStructured renders the prompt template for key and performs a
// structured (JSON object) reasoning call. The raw payload is returned;
// parsing belongs to the calling agent.
func (c *Capability) generateStructured(ctx context.Context, key string, data config.PromptData) (string, error) {
	return c.generateMode(ctx, key, data, models.ResponseModeStructured)
}

func (c *Capability) generateMode(ctx context.Context, key string, data config.PromptData, mode models.ResponseMode) (string, error) {
	prompt, err := c.prompts.Render(key, data)
	if err != nil {
		return "", err
	}
	return c.gateway.Generate(ctx, llm.GenerateRequest{
		Role:         c.role,
		SystemPrompt: c.systemPrompt,
		Prompt:       prompt,
		Mode:         mode,
		Params:       c.params,
	})
}

// FormatHistory renders the transcript for inclusion in a prompt. Moderator
// announcements are omitted unless includeModerator is set; debaters argue
// against each other, not against the host.
func FormatHistory(messages []models.DebateMessage, includeModerator bool) string {
	var parts []string
	for _, msg := range messages {
		if msg.Role == models.RoleModerator && !includeModerator {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", msg.Role.DisplayName(), msg.Content))
	}
	return strings.Join(parts, "\n\n")
}
