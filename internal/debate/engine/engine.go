// Package engine implements the debate phase controller: a forward-only
// state machine that sequences the competition protocol, dispatches each
// turn to the right agent, and commits state atomically per phase. Phase
// handlers work on a deep copy of the state; a failed agent call discards
// the copy, so the committed state always reflects whole phases only.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"digital.vasic.debate/internal/config"
	"digital.vasic.debate/internal/debate/agents"
	"digital.vasic.debate/internal/debate/scoring"
	"digital.vasic.debate/internal/models"
)

// Participants bundles the role agents a debate needs.
type Participants struct {
	Moderator   *agents.Moderator
	Affirmative *agents.Debater
	Negative    *agents.Debater
	Judge       *agents.Judge
}

// Engine drives one debate from introduction to verdict. It owns all writes
// to the debate state; agents and the scorer only ever read snapshots and
// return new entries.
type Engine struct {
	rules   config.Rules
	parties Participants
	scorer  *scoring.Engine
	logger  *logrus.Logger
	metrics *Metrics
	clock   func() time.Time

	state *State
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the timestamp source; tests use a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithMetrics attaches engine metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an engine for one debate on the given topic.
func New(topic string, rules config.Rules, parties Participants, scorer *scoring.Engine, logger *logrus.Logger, opts ...Option) (*Engine, error) {
	if topic == "" {
		return nil, fmt.Errorf("debate topic is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if parties.Moderator == nil || parties.Affirmative == nil || parties.Negative == nil || parties.Judge == nil {
		return nil, fmt.Errorf("all four participants are required")
	}
	if parties.Affirmative.Position() != models.RoleAffirmative || parties.Negative.Position() != models.RoleNegative {
		return nil, fmt.Errorf("debaters are bound to the wrong sides")
	}

	e := &Engine{
		rules:   rules,
		parties: parties,
		scorer:  scorer,
		logger:  logger,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = newState(uuid.New().String(), topic, e.clock())
	return e, nil
}

// Snapshot returns a deep copy of the last committed state.
func (e *Engine) Snapshot() Snapshot { return *e.state.clone() }

// Phase returns the current committed phase.
func (e *Engine) Phase() Phase { return e.state.Phase }

// Finished reports whether the debate has reached its terminal phase.
func (e *Engine) Finished() bool { return e.state.Phase.Terminal() }

// Step executes the current phase and commits the result, returning the
// updated snapshot. One step is one phase execution; during free debate a
// step is one full round (both sides speak). On error the state is left
// exactly at its last committed point.
func (e *Engine) Step(ctx context.Context) (Snapshot, error) {
	if e.state.Phase.Terminal() {
		return e.Snapshot(), &InvalidStateError{Phase: PhaseTerminal, Message: "debate already concluded"}
	}
	if err := ctx.Err(); err != nil {
		return e.Snapshot(), err
	}

	start := e.clock()
	working := e.state.clone()

	next, err := e.runPhase(ctx, working)
	e.metrics.observePhase(e.state.Phase, err, time.Since(start))
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"debate_id": e.state.ID,
			"phase":     e.state.Phase,
		}).WithError(err).Error("phase aborted, state unchanged")
		return e.Snapshot(), err
	}

	working.Phase = next
	if err := validateCommit(e.state, working, e.rules.MaxFreeDebateRounds); err != nil {
		return e.Snapshot(), err
	}

	for _, msg := range working.Transcript[len(e.state.Transcript):] {
		e.metrics.observeTurn(string(msg.Role), string(msg.RoundType))
	}

	e.logger.WithFields(logrus.Fields{
		"debate_id":  e.state.ID,
		"from_phase": e.state.Phase,
		"to_phase":   next,
		"transcript": len(working.Transcript),
		"scores":     len(working.Scores),
	}).Info("phase committed")

	e.state = working
	return e.Snapshot(), nil
}

// Run steps the debate to its terminal phase, honoring cancellation between
// turns. It returns the final snapshot with the verdict set.
func (e *Engine) Run(ctx context.Context) (Snapshot, error) {
	for !e.Finished() {
		if _, err := e.Step(ctx); err != nil {
			return e.Snapshot(), err
		}
	}
	return e.Snapshot(), nil
}

func (e *Engine) runPhase(ctx context.Context, working *State) (Phase, error) {
	switch working.Phase {
	case PhaseInit:
		return e.runInit(ctx, working)
	case PhaseOpening:
		return e.runOpening(ctx, working)
	case PhaseCrossExamination:
		return e.runCrossExamination(ctx, working)
	case PhaseFreeDebate:
		return e.runFreeDebate(ctx, working)
	case PhaseClosing:
		return e.runClosing(ctx, working)
	case PhaseJudgment:
		return e.runJudgment(ctx, working)
	}
	return "", &InvalidStateError{Phase: working.Phase, Message: "unknown phase"}
}

// runInit has the moderator introduce the motion. The introduction is not
// scored.
func (e *Engine) runInit(ctx context.Context, working *State) (Phase, error) {
	intro, err := e.parties.Moderator.Introduce(ctx, working.Topic)
	if err != nil {
		return "", err
	}
	e.appendMessage(working, models.RoleModerator, models.RoundOpening, 0, intro)
	return PhaseOpening, nil
}

// runOpening collects both opening statements, scoring each immediately so
// later prompts can reference the judge's assessment.
func (e *Engine) runOpening(ctx context.Context, working *State) (Phase, error) {
	e.logger.WithField("debate_id", working.ID).Info(e.parties.Moderator.AnnounceRound(models.RoundOpening))

	for _, debater := range []*agents.Debater{e.parties.Affirmative, e.parties.Negative} {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		statement, err := debater.OpeningStatement(ctx, working.Topic)
		if err != nil {
			return "", err
		}
		working.Openings[debater.Position()] = statement
		e.appendMessage(working, debater.Position(), models.RoundOpening, 1, statement)

		if err := e.scoreStatement(ctx, working, debater.Position(), models.RoundOpening, 1, statement); err != nil {
			return "", err
		}
	}
	return PhaseCrossExamination, nil
}

// runCrossExamination runs the configured number of question/answer
// exchanges. The affirmative questions first; sides alternate each round.
// Exchanges are recorded, and scored only when the rules say so.
func (e *Engine) runCrossExamination(ctx context.Context, working *State) (Phase, error) {
	e.logger.WithField("debate_id", working.ID).Info(e.parties.Moderator.AnnounceRound(models.RoundCrossExamination))

	for round := 1; round <= e.rules.CrossExamRounds; round++ {
		questioner, responder := e.parties.Affirmative, e.parties.Negative
		if round%2 == 0 {
			questioner, responder = responder, questioner
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}
		question, err := questioner.CrossQuestion(ctx, working.Topic, working.Openings[responder.Position()])
		if err != nil {
			return "", err
		}
		e.appendMessage(working, questioner.Position(), models.RoundCrossExamination, round, question)

		if err := ctx.Err(); err != nil {
			return "", err
		}
		answer, err := responder.CrossAnswer(ctx, working.Topic, question, working.Transcript)
		if err != nil {
			return "", err
		}
		e.appendMessage(working, responder.Position(), models.RoundCrossExamination, round, answer)

		working.CrossExams = append(working.CrossExams, models.CrossExamination{
			Round:      round,
			Questioner: questioner.Position(),
			Responder:  responder.Position(),
			Question:   question,
			Answer:     answer,
			Timestamp:  e.clock(),
		})

		if e.rules.ScoreCrossExamination {
			if err := e.scoreStatement(ctx, working, responder.Position(), models.RoundCrossExamination, round, answer); err != nil {
				return "", err
			}
		}
	}
	return PhaseFreeDebate, nil
}

// runFreeDebate executes one full free-debate round: affirmative then
// negative, each scored. The counter advances only after both sides have
// spoken, and the phase hands off to closing once the configured maximum is
// reached.
func (e *Engine) runFreeDebate(ctx context.Context, working *State) (Phase, error) {
	if working.FreeDebateRound == 0 {
		e.logger.WithField("debate_id", working.ID).Info(e.parties.Moderator.AnnounceRound(models.RoundFreeDebate))
	}

	round := working.FreeDebateRound + 1
	for _, debater := range []*agents.Debater{e.parties.Affirmative, e.parties.Negative} {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		statement, err := debater.FreeDebate(ctx, working.Topic, working.Transcript)
		if err != nil {
			return "", err
		}
		e.appendMessage(working, debater.Position(), models.RoundFreeDebate, round, statement)

		if err := e.scoreStatement(ctx, working, debater.Position(), models.RoundFreeDebate, round, statement); err != nil {
			return "", err
		}
	}
	working.FreeDebateRound = round

	if working.FreeDebateRound < e.rules.MaxFreeDebateRounds {
		return PhaseFreeDebate, nil
	}
	return PhaseClosing, nil
}

// runClosing collects both closing statements, each scored.
func (e *Engine) runClosing(ctx context.Context, working *State) (Phase, error) {
	e.logger.WithField("debate_id", working.ID).Info(e.parties.Moderator.AnnounceRound(models.RoundClosing))

	for _, debater := range []*agents.Debater{e.parties.Affirmative, e.parties.Negative} {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		statement, err := debater.ClosingStatement(ctx, working.Topic, working.Transcript)
		if err != nil {
			return "", err
		}
		working.Closings[debater.Position()] = statement
		e.appendMessage(working, debater.Position(), models.RoundClosing, 1, statement)

		if err := e.scoreStatement(ctx, working, debater.Position(), models.RoundClosing, 1, statement); err != nil {
			return "", err
		}
	}
	return PhaseJudgment, nil
}

// runJudgment asks the judge for the closing rationale and computes the
// verdict from the complete score list.
func (e *Engine) runJudgment(ctx context.Context, working *State) (Phase, error) {
	rationale, err := e.parties.Judge.VerdictRationale(ctx, working.Topic, working.Scores, working.Transcript)
	if err != nil {
		return "", err
	}

	verdict := e.scorer.Verdict(working.Scores, rationale)
	working.Verdict = &verdict
	working.FinishedAt = e.clock()

	e.logger.WithFields(logrus.Fields{
		"debate_id":         working.ID,
		"winner":            verdict.Winner,
		"affirmative_total": verdict.AffirmativeTotal,
		"negative_total":    verdict.NegativeTotal,
	}).Info("verdict reached")

	return PhaseTerminal, nil
}

// scoreStatement runs the judge on one contribution and appends the weighted
// score. Every message in a scored round type gets exactly one score before
// the phase can advance.
func (e *Engine) scoreStatement(ctx context.Context, working *State, role models.Role, roundType models.RoundType, roundIndex int, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	eval, err := e.parties.Judge.ScoreStatement(ctx, working.Topic, roundType, role, content)
	if err != nil {
		return err
	}
	working.Scores = append(working.Scores, e.scorer.Score(role, roundType, roundIndex, eval))
	return nil
}

func (e *Engine) appendMessage(working *State, role models.Role, roundType models.RoundType, roundIndex int, content string) {
	working.Transcript = append(working.Transcript, models.DebateMessage{
		Role:       role,
		RoundType:  roundType,
		RoundIndex: roundIndex,
		Content:    content,
		Timestamp:  e.clock(),
	})
}
