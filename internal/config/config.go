// Package config loads and validates the debate configuration: competition
// rules, per-role model settings, and the prompt template set. Validation is
// fail-fast; a debate never starts on a broken configuration.
package config

import (
	"fmt"
	"math"

	"digital.vasic.debate/internal/models"
)

// WeightEpsilon is the tolerance when checking that scoring weights sum to 1.
const WeightEpsilon = 1e-6

// ConfigurationError reports an invalid or incomplete configuration.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Field, e.Message)
}

// Config is the full debate configuration handed to the engine at
// construction. There is no process-wide settings object; everything the
// engine needs arrives through this value.
type Config struct {
	Rules   Rules                       `yaml:"rules"`
	Agents  map[models.Role]AgentConfig `yaml:"agents"`
	Prompts map[string]string           `yaml:"prompts"`
}

// Rules are the competition parameters.
type Rules struct {
	// MaxFreeDebateRounds bounds the free-debate loop.
	MaxFreeDebateRounds int `yaml:"max_free_debate_rounds"`
	// CrossExamRounds is the number of cross-examination exchanges.
	CrossExamRounds int `yaml:"cross_exam_rounds"`
	// Weights are the scoring dimension weights; they must sum to 1.
	Weights ScoringWeights `yaml:"scoring_weights"`
	// DrawThreshold is the relative score difference below which the
	// debate is declared a draw.
	DrawThreshold float64 `yaml:"draw_threshold"`
	// ScoreCrossExamination scores each answered exchange when set.
	ScoreCrossExamination bool `yaml:"score_cross_examination"`
	// OpeningWordLimit and ClosingWordLimit bound statement length.
	OpeningWordLimit int `yaml:"opening_word_limit"`
	ClosingWordLimit int `yaml:"closing_word_limit"`
}

// ScoringWeights weight the four judge dimensions.
type ScoringWeights struct {
	Logic      float64 `yaml:"logic" json:"logic"`
	Evidence   float64 `yaml:"evidence" json:"evidence"`
	Rebuttal   float64 `yaml:"rebuttal" json:"rebuttal"`
	Expression float64 `yaml:"expression" json:"expression"`
}

// Sum returns the total of all four weights.
func (w ScoringWeights) Sum() float64 {
	return w.Logic + w.Evidence + w.Rebuttal + w.Expression
}

// AgentConfig selects and parameterizes the model behind one role.
type AgentConfig struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TopP        float64 `yaml:"top_p"`
}

// ModelParams converts the agent configuration into request parameters.
func (a AgentConfig) ModelParams() models.ModelParameters {
	return models.ModelParameters{
		Model:       a.Model,
		Temperature: a.Temperature,
		MaxTokens:   a.MaxTokens,
		TopP:        a.TopP,
	}
}

// DefaultRules returns the base competition protocol.
func DefaultRules() Rules {
	return Rules{
		MaxFreeDebateRounds: 3,
		CrossExamRounds:     2,
		Weights: ScoringWeights{
			Logic:      0.30,
			Evidence:   0.25,
			Rebuttal:   0.25,
			Expression: 0.20,
		},
		DrawThreshold:         0.05,
		ScoreCrossExamination: false,
		OpeningWordLimit:      800,
		ClosingWordLimit:      500,
	}
}

// DefaultConfig returns a runnable configuration with the built-in prompt
// set and one default agent entry per role.
func DefaultConfig() *Config {
	agents := make(map[models.Role]AgentConfig, 4)
	for _, role := range []models.Role{models.RoleModerator, models.RoleAffirmative, models.RoleNegative, models.RoleJudge} {
		agents[role] = AgentConfig{
			Provider:    "deepseek",
			BaseURL:     "https://api.deepseek.com/v1/chat/completions",
			APIKey:      "${DEEPSEEK_API_KEY}",
			Model:       "deepseek-chat",
			Temperature: 0.7,
			MaxTokens:   4000,
			TopP:        0.9,
		}
	}
	return &Config{
		Rules:   DefaultRules(),
		Agents:  agents,
		Prompts: DefaultPrompts(),
	}
}

// Validate checks the configuration and returns a ConfigurationError on the
// first violation.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}

	for _, role := range []models.Role{models.RoleModerator, models.RoleAffirmative, models.RoleNegative, models.RoleJudge} {
		if _, ok := c.Agents[role]; !ok {
			return &ConfigurationError{Field: "agents", Message: fmt.Sprintf("missing agent configuration for role %q", role)}
		}
	}

	for _, key := range RequiredPromptKeys {
		if _, ok := c.Prompts[key]; !ok {
			return &ConfigurationError{Field: "prompts", Message: fmt.Sprintf("missing required prompt template %q", key)}
		}
	}

	if _, err := ParsePrompts(c.Prompts); err != nil {
		return err
	}
	return nil
}

// Validate checks the rules block.
func (r Rules) Validate() error {
	if r.MaxFreeDebateRounds < 1 {
		return &ConfigurationError{Field: "rules.max_free_debate_rounds", Message: "must be at least 1"}
	}
	if r.CrossExamRounds < 1 {
		return &ConfigurationError{Field: "rules.cross_exam_rounds", Message: "must be at least 1"}
	}
	if sum := r.Weights.Sum(); math.Abs(sum-1.0) > WeightEpsilon {
		return &ConfigurationError{
			Field:   "rules.scoring_weights",
			Message: fmt.Sprintf("weights must sum to 1.0, got %.6f", sum),
		}
	}
	if r.DrawThreshold < 0 || r.DrawThreshold >= 1 {
		return &ConfigurationError{Field: "rules.draw_threshold", Message: "must be in [0, 1)"}
	}
	return nil
}
