package agents

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/llm/llmtest"
	"digital.vasic.debate/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testPrompts(t *testing.T) *config.PromptSet {
	t.Helper()
	ps, err := config.ParsePrompts(config.DefaultPrompts())
	require.NoError(t, err)
	return ps
}

func newTestJudge(t *testing.T, provider llm.Provider) *Judge {
	t.Helper()
	gw := llm.NewGateway(provider, quietLogger())
	judge, err := NewJudge(gw, testPrompts(t), config.AgentConfig{}, quietLogger())
	require.NoError(t, err)
	return judge
}

func TestJudge_ScoreStatement(t *testing.T) {
	provider := llmtest.Responses(`{"logic": 80, "evidence": 70, "rebuttal": 75, "expression": 85, "comment": "well argued"}`)
	judge := newTestJudge(t, provider)

	eval, err := judge.ScoreStatement(context.Background(), "AI should be regulated", models.RoundOpening, models.RoleAffirmative, "statement text")

	require.NoError(t, err)
	assert.Equal(t, 80.0, eval.Logic)
	assert.Equal(t, 70.0, eval.Evidence)
	assert.Equal(t, 75.0, eval.Rebuttal)
	assert.Equal(t, 85.0, eval.Expression)
	assert.Equal(t, "well argued", eval.Comment)

	// The scoring call runs in structured mode.
	reqs := provider.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, models.ResponseModeStructured, reqs[0].ResponseMode)
}

func TestJudge_ScoreStatement_CodeFencedJSON(t *testing.T) {
	provider := llmtest.Responses("```json\n{\"logic\": 60, \"evidence\": 61, \"rebuttal\": 62, \"expression\": 63, \"comment\": \"ok\"}\n```")
	judge := newTestJudge(t, provider)

	eval, err := judge.ScoreStatement(context.Background(), "topic", models.RoundClosing, models.RoleNegative, "text")

	require.NoError(t, err)
	assert.Equal(t, 60.0, eval.Logic)
}

func TestJudge_ScoreStatement_MissingField(t *testing.T) {
	provider := llmtest.Responses(`{"logic": 80, "evidence": 70, "expression": 85, "comment": "no rebuttal score"}`)
	judge := newTestJudge(t, provider)

	_, err := judge.ScoreStatement(context.Background(), "topic", models.RoundOpening, models.RoleAffirmative, "text")

	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, models.RoleJudge, parseErr.Role)
	assert.Equal(t, "rebuttal", parseErr.Field)
}

func TestJudge_ScoreStatement_OutOfRange(t *testing.T) {
	provider := llmtest.Responses(`{"logic": 120, "evidence": 70, "rebuttal": 75, "expression": 85}`)
	judge := newTestJudge(t, provider)

	_, err := judge.ScoreStatement(context.Background(), "topic", models.RoundOpening, models.RoleAffirmative, "text")

	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "logic", parseErr.Field)
}

func TestJudge_ScoreStatement_NotJSON(t *testing.T) {
	provider := llmtest.Responses("I would rate this quite highly overall.")
	judge := newTestJudge(t, provider)

	_, err := judge.ScoreStatement(context.Background(), "topic", models.RoundOpening, models.RoleAffirmative, "text")

	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestJudge_VerdictRationale(t *testing.T) {
	provider := llmtest.Responses("The affirmative side carried the evidence.")
	judge := newTestJudge(t, provider)

	scores := []models.DebateScore{
		{Role: models.RoleAffirmative, RoundType: models.RoundOpening, RoundIndex: 1, Total: 77.25},
		{Role: models.RoleNegative, RoundType: models.RoundOpening, RoundIndex: 1, Total: 75.75},
	}
	history := []models.DebateMessage{
		{Role: models.RoleAffirmative, RoundType: models.RoundOpening, RoundIndex: 1, Content: "opening"},
	}

	rationale, err := judge.VerdictRationale(context.Background(), "topic", scores, history)

	require.NoError(t, err)
	assert.Equal(t, "The affirmative side carried the evidence.", rationale)

	// The verdict prompt includes both sides' totals.
	reqs := provider.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	assert.Contains(t, prompt, "77.2")
	assert.Contains(t, prompt, "75.8")
	assert.Equal(t, models.ResponseModeText, reqs[0].ResponseMode)
}

func TestParseEvaluation_Direct(t *testing.T) {
	eval, err := parseEvaluation(`{"logic": 0, "evidence": 100, "rebuttal": 50, "expression": 25}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, eval.Logic)
	assert.Equal(t, 100.0, eval.Evidence)
	assert.Empty(t, eval.Comment)
}
