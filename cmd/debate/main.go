// Command debate runs one complete debate from the command line: it loads
// the configuration, wires the four role agents to their providers, drives
// the protocol to the verdict and prints the transcript and result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/debate/agents"
	"digital.vasic.debate/internal/debate/engine"
	"digital.vasic.debate/internal/debate/scoring"
	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/models"
)

func main() {
	topic := flag.String("topic", "", "debate motion (required)")
	configPath := flag.String("config", "", "path to a YAML configuration file (optional, defaults apply)")
	rounds := flag.Int("rounds", 0, "override max free debate rounds (0 keeps the configured value)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	if *topic == "" {
		flag.Usage()
		logger.Fatal("a debate topic is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("configuration rejected")
	}
	if *rounds > 0 {
		cfg.Rules.MaxFreeDebateRounds = *rounds
		if err := cfg.Rules.Validate(); err != nil {
			logger.WithError(err).Fatal("configuration rejected")
		}
	}

	e, err := buildEngine(*topic, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to assemble debate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, err := e.Run(ctx)
	if err != nil {
		logger.WithError(err).Fatal("debate aborted")
	}

	printResult(final)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		for role, agent := range cfg.Agents {
			agent.APIKey = os.ExpandEnv(agent.APIKey)
			cfg.Agents[role] = agent
		}
		return cfg, cfg.Validate()
	}
	return config.NewLoader(path).Load()
}

func buildEngine(topic string, cfg *config.Config, logger *logrus.Logger) (*engine.Engine, error) {
	prompts, err := config.ParsePrompts(cfg.Prompts)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	gatewayMetrics := llm.NewMetrics(registry)

	gateways := make(map[models.Role]*llm.Gateway, 4)
	for _, role := range []models.Role{models.RoleModerator, models.RoleAffirmative, models.RoleNegative, models.RoleJudge} {
		agentCfg := cfg.Agents[role]
		provider := llm.NewOpenAIProvider(agentCfg.Provider, agentCfg.APIKey, agentCfg.BaseURL, agentCfg.Model)
		if err := provider.HealthCheck(); err != nil {
			return nil, fmt.Errorf("provider for role %q: %w", role, err)
		}
		gateways[role] = llm.NewGateway(provider, logger, llm.WithMetrics(gatewayMetrics))
	}

	moderator, err := agents.NewModerator(gateways[models.RoleModerator], prompts, cfg.Agents[models.RoleModerator], logger)
	if err != nil {
		return nil, err
	}
	affirmative, err := agents.NewDebater(models.RoleAffirmative, gateways[models.RoleAffirmative], prompts, cfg.Agents[models.RoleAffirmative], cfg.Rules, logger)
	if err != nil {
		return nil, err
	}
	negative, err := agents.NewDebater(models.RoleNegative, gateways[models.RoleNegative], prompts, cfg.Agents[models.RoleNegative], cfg.Rules, logger)
	if err != nil {
		return nil, err
	}
	judge, err := agents.NewJudge(gateways[models.RoleJudge], prompts, cfg.Agents[models.RoleJudge], logger)
	if err != nil {
		return nil, err
	}

	scorer := scoring.NewEngine(cfg.Rules.Weights, cfg.Rules.DrawThreshold)
	parties := engine.Participants{
		Moderator:   moderator,
		Affirmative: affirmative,
		Negative:    negative,
		Judge:       judge,
	}
	return engine.New(topic, cfg.Rules, parties, scorer, logger, engine.WithMetrics(engine.NewMetrics(registry)))
}

func printResult(final engine.Snapshot) {
	divider := strings.Repeat("=", 72)

	fmt.Println(divider)
	fmt.Printf("Motion: %s\n", final.Topic)
	fmt.Println(divider)

	for _, msg := range final.Transcript {
		fmt.Printf("\n[%s | %s %d] %s\n%s\n",
			msg.Role.DisplayName(), msg.RoundType.DisplayName(), msg.RoundIndex,
			msg.Timestamp.Format("15:04:05"), msg.Content)
	}

	fmt.Println()
	fmt.Println(divider)
	fmt.Println("Scores")
	fmt.Println(divider)
	for _, s := range final.Scores {
		fmt.Printf("%-12s %-20s round %d  logic %5.1f  evidence %5.1f  rebuttal %5.1f  expression %5.1f  total %6.2f\n",
			s.Role.DisplayName(), s.RoundType.DisplayName(), s.RoundIndex,
			s.Logic, s.Evidence, s.Rebuttal, s.Expression, s.Total)
	}

	if final.Verdict != nil {
		fmt.Println()
		fmt.Println(divider)
		fmt.Printf("Verdict: %s (affirmative %.2f, negative %.2f)\n",
			strings.ToUpper(string(final.Verdict.Winner)),
			final.Verdict.AffirmativeTotal, final.Verdict.NegativeTotal)
		fmt.Println(divider)
		fmt.Println(final.Verdict.Rationale)
	}
}
