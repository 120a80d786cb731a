package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"digital.vasic.debate/internal/models"
)

// Loader reads debate configuration files. File values overlay the built-in
// defaults, so a partial file is enough to customize one rule or one prompt.
type Loader struct {
	configPath string
}

// NewLoader creates a loader for the given path.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load reads, merges, substitutes and validates the configuration file.
func (l *Loader) Load() (*Config, error) {
	if l.configPath == "" {
		return nil, &ConfigurationError{Field: "path", Message: "configuration path is required"}
	}
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		return nil, &ConfigurationError{Field: "path", Message: fmt.Sprintf("configuration file does not exist: %s", l.configPath)}
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes parses a YAML document and merges it over the defaults.
func (l *Loader) LoadFromBytes(data []byte) (*Config, error) {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ConfigurationError{Field: "yaml", Message: fmt.Sprintf("failed to parse configuration: %v", err)}
	}

	cfg := DefaultConfig()
	mergeFileConfig(cfg, &file)
	substituteEnvVars(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig mirrors Config with pointer fields so absent keys are
// distinguishable from zero values during the merge.
type fileConfig struct {
	Rules   *fileRules                  `yaml:"rules"`
	Agents  map[models.Role]AgentConfig `yaml:"agents"`
	Prompts map[string]string           `yaml:"prompts"`
}

type fileRules struct {
	MaxFreeDebateRounds   *int            `yaml:"max_free_debate_rounds"`
	CrossExamRounds       *int            `yaml:"cross_exam_rounds"`
	Weights               *ScoringWeights `yaml:"scoring_weights"`
	DrawThreshold         *float64        `yaml:"draw_threshold"`
	ScoreCrossExamination *bool           `yaml:"score_cross_examination"`
	OpeningWordLimit      *int            `yaml:"opening_word_limit"`
	ClosingWordLimit      *int            `yaml:"closing_word_limit"`
}

func mergeFileConfig(cfg *Config, file *fileConfig) {
	if file.Rules != nil {
		r := file.Rules
		if r.MaxFreeDebateRounds != nil {
			cfg.Rules.MaxFreeDebateRounds = *r.MaxFreeDebateRounds
		}
		if r.CrossExamRounds != nil {
			cfg.Rules.CrossExamRounds = *r.CrossExamRounds
		}
		if r.Weights != nil {
			cfg.Rules.Weights = *r.Weights
		}
		if r.DrawThreshold != nil {
			cfg.Rules.DrawThreshold = *r.DrawThreshold
		}
		if r.ScoreCrossExamination != nil {
			cfg.Rules.ScoreCrossExamination = *r.ScoreCrossExamination
		}
		if r.OpeningWordLimit != nil {
			cfg.Rules.OpeningWordLimit = *r.OpeningWordLimit
		}
		if r.ClosingWordLimit != nil {
			cfg.Rules.ClosingWordLimit = *r.ClosingWordLimit
		}
	}
	for role, agent := range file.Agents {
		cfg.Agents[role] = agent
	}
	for key, prompt := range file.Prompts {
		cfg.Prompts[key] = prompt
	}
}

// substituteEnvVars expands ${VAR} placeholders in credential-bearing fields.
func substituteEnvVars(cfg *Config) {
	for role, agent := range cfg.Agents {
		agent.APIKey = os.ExpandEnv(agent.APIKey)
		agent.BaseURL = os.ExpandEnv(agent.BaseURL)
		cfg.Agents[role] = agent
	}
}
