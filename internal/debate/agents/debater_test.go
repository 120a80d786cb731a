package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/llm/llmtest"
	"digital.vasic.debate/internal/models"
)

func newTestDebater(t *testing.T, position models.Role, provider llm.Provider) *Debater {
	t.Helper()
	gw := llm.NewGateway(provider, quietLogger())
	debater, err := NewDebater(position, gw, testPrompts(t), config.AgentConfig{}, config.DefaultRules(), quietLogger())
	require.NoError(t, err)
	return debater
}

func TestNewDebater_RejectsNonDebaterRoles(t *testing.T) {
	gw := llm.NewGateway(llmtest.Responses(), quietLogger())

	for _, role := range []models.Role{models.RoleModerator, models.RoleJudge, models.Role("audience")} {
		_, err := NewDebater(role, gw, testPrompts(t), config.AgentConfig{}, config.DefaultRules(), quietLogger())
		assert.Error(t, err, "role %q must be rejected", role)
	}
}

func TestDebater_OpeningStatement(t *testing.T) {
	provider := llmtest.Responses("We affirm the motion because of three reasons.")
	debater := newTestDebater(t, models.RoleAffirmative, provider)

	statement, err := debater.OpeningStatement(context.Background(), "AI should be regulated")

	require.NoError(t, err)
	assert.Equal(t, "We affirm the motion because of three reasons.", statement)

	reqs := provider.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	assert.Contains(t, prompt, "AI should be regulated")
	assert.Contains(t, prompt, models.RoleAffirmative.DisplayName())
	assert.Contains(t, reqs[0].SystemPrompt, "affirmative")
}

func TestDebater_CrossQuestion_TargetsOpponentStatement(t *testing.T) {
	provider := llmtest.Responses("How do you reconcile your second claim?")
	debater := newTestDebater(t, models.RoleNegative, provider)

	question, err := debater.CrossQuestion(context.Background(), "topic", "opponent opening text")

	require.NoError(t, err)
	assert.NotEmpty(t, question)

	reqs := provider.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	assert.Contains(t, prompt, "opponent opening text")
	assert.Contains(t, prompt, models.RoleNegative.DisplayName())
}

func TestDebater_CrossAnswer_CarriesHistory(t *testing.T) {
	provider := llmtest.Responses("Our position is consistent because...")
	debater := newTestDebater(t, models.RoleAffirmative, provider)

	history := []models.DebateMessage{
		{Role: models.RoleModerator, RoundType: models.RoundOpening, RoundIndex: 0, Content: "welcome everyone"},
		{Role: models.RoleAffirmative, RoundType: models.RoundOpening, RoundIndex: 1, Content: "our opening"},
		{Role: models.RoleNegative, RoundType: models.RoundOpening, RoundIndex: 1, Content: "their opening"},
	}

	_, err := debater.CrossAnswer(context.Background(), "topic", "the question", history)
	require.NoError(t, err)

	reqs := provider.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	assert.Contains(t, prompt, "the question")
	assert.Contains(t, prompt, "our opening")
	assert.Contains(t, prompt, "their opening")
	assert.NotContains(t, prompt, "welcome everyone")
}

func TestDebater_ClosingStatement_UsesClosingWordLimit(t *testing.T) {
	provider := llmtest.Responses("In closing, we maintain our position.")
	rules := config.DefaultRules()
	rules.ClosingWordLimit = 123

	gw := llm.NewGateway(provider, quietLogger())
	debater, err := NewDebater(models.RoleNegative, gw, testPrompts(t), config.AgentConfig{}, rules, quietLogger())
	require.NoError(t, err)

	_, err = debater.ClosingStatement(context.Background(), "topic", nil)
	require.NoError(t, err)

	reqs := provider.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Messages[0].Content, "123")
}

func TestFormatHistory(t *testing.T) {
	messages := []models.DebateMessage{
		{Role: models.RoleModerator, Content: "welcome"},
		{Role: models.RoleAffirmative, Content: "first"},
		{Role: models.RoleNegative, Content: "second"},
	}

	withModerator := FormatHistory(messages, true)
	assert.Contains(t, withModerator, "welcome")
	assert.Contains(t, withModerator, models.RoleAffirmative.DisplayName()+": first")

	withoutModerator := FormatHistory(messages, false)
	assert.NotContains(t, withoutModerator, "welcome")
	assert.Contains(t, withoutModerator, "first")
	assert.Contains(t, withoutModerator, "second")

	assert.Empty(t, FormatHistory(nil, true))
}
