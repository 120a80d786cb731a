package config

import (
	"fmt"
	"strings"
	"text/template"
)

// Prompt template keys. Every key must be present for a debate to start.
const (
	PromptModeratorSystem   = "moderator_system"
	PromptAffirmativeSystem = "affirmative_system"
	PromptNegativeSystem    = "negative_system"
	PromptJudgeSystem       = "judge_system"
	PromptIntroduction      = "introduction"
	PromptOpening           = "opening"
	PromptCrossQuestion     = "cross_question"
	PromptCrossAnswer       = "cross_answer"
	PromptFreeDebate        = "free_debate"
	PromptClosing           = "closing"
	PromptJudgeScoring      = "judge_scoring"
	PromptFinalVerdict      = "final_verdict"
)

// RequiredPromptKeys lists every template the protocol depends on.
var RequiredPromptKeys = []string{
	PromptModeratorSystem,
	PromptAffirmativeSystem,
	PromptNegativeSystem,
	PromptJudgeSystem,
	PromptIntroduction,
	PromptOpening,
	PromptCrossQuestion,
	PromptCrossAnswer,
	PromptFreeDebate,
	PromptClosing,
	PromptJudgeScoring,
	PromptFinalVerdict,
}

// PromptData is the rendering context handed to prompt templates. Fields are
// populated per turn; templates reference the ones they need.
type PromptData struct {
	Topic             string
	Position          string
	Opponent          string
	Round             string
	History           string
	Question          string
	Statement         string
	WordLimit         int
	AffirmativeScores string
	NegativeScores    string
}

// PromptSet holds the parsed prompt templates.
type PromptSet struct {
	templates map[string]*template.Template
}

// ParsePrompts parses raw template sources into a PromptSet. A template that
// fails to parse is a configuration error.
func ParsePrompts(raw map[string]string) (*PromptSet, error) {
	parsed := make(map[string]*template.Template, len(raw))
	for key, src := range raw {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, &ConfigurationError{
				Field:   "prompts." + key,
				Message: fmt.Sprintf("invalid template: %v", err),
			}
		}
		parsed[key] = tmpl
	}
	return &PromptSet{templates: parsed}, nil
}

// Has reports whether the set contains key.
func (ps *PromptSet) Has(key string) bool {
	_, ok := ps.templates[key]
	return ok
}

// Render executes the template for key with the given data.
func (ps *PromptSet) Render(key string, data PromptData) (string, error) {
	tmpl, ok := ps.templates[key]
	if !ok {
		return "", &ConfigurationError{Field: "prompts." + key, Message: "no such prompt template"}
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering prompt %q: %w", key, err)
	}
	return sb.String(), nil
}

// DefaultPrompts returns the built-in English prompt set.
func DefaultPrompts() map[string]string {
	return map[string]string{
		PromptModeratorSystem: "You are the moderator of a formal competitive debate. " +
			"You remain strictly neutral, keep the proceedings professional, and never argue for either side.",

		PromptAffirmativeSystem: "You are the affirmative side in a formal competitive debate. " +
			"You argue in favor of the motion with rigorous logic, concrete evidence, and persuasive delivery. " +
			"You never concede the motion and never speak for the opposing side.",

		PromptNegativeSystem: "You are the negative side in a formal competitive debate. " +
			"You argue against the motion with rigorous logic, concrete evidence, and persuasive delivery. " +
			"You never concede the motion and never speak for the opposing side.",

		PromptJudgeSystem: "You are an impartial judge in a formal competitive debate. " +
			"You evaluate arguments strictly on their merits using the stated criteria and respond only in the requested JSON format.",

		PromptIntroduction: "Provide an opening introduction for the following debate.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Requirements:\n" +
			"- Briefly introduce the background of the motion\n" +
			"- Explain the debate format: opening statements, cross-examination, free debate, closing statements, and judgment\n" +
			"- Stay neutral and professional\n" +
			"- Keep it under 200 words",

		PromptOpening: "You are the {{.Position}} side. Deliver your opening statement.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Requirements:\n" +
			"- State your side's position clearly\n" +
			"- Present your two or three strongest arguments\n" +
			"- Support each argument with reasoning or evidence\n" +
			"- Keep it under {{.WordLimit}} words",

		PromptCrossQuestion: "You are the {{.Position}} side in the cross-examination phase.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Your opponent's statement:\n{{.Statement}}\n\n" +
			"Ask one sharp, pointed question that exposes the weakest point of the opponent's statement. " +
			"Ask only the question itself, in two sentences or fewer.",

		PromptCrossAnswer: "You are the {{.Position}} side in the cross-examination phase.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Debate so far:\n{{.History}}\n\n" +
			"The opposing side asks:\n{{.Question}}\n\n" +
			"Answer the question directly and defend your side's position. Keep it under 150 words.",

		PromptFreeDebate: "You are the {{.Position}} side in the free debate phase.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Debate so far:\n{{.History}}\n\n" +
			"Respond to the most recent points from the opposing side, rebut their strongest claim, " +
			"and advance your own case. Keep it under 150 words.",

		PromptClosing: "You are the {{.Position}} side. Deliver your closing statement.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Debate so far:\n{{.History}}\n\n" +
			"Requirements:\n" +
			"- Summarize your side's strongest arguments\n" +
			"- Address the key points of contention\n" +
			"- End with a clear appeal for your position\n" +
			"- Keep it under {{.WordLimit}} words",

		PromptJudgeScoring: "Score the following {{.Round}} contribution by the {{.Position}} side.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Contribution:\n{{.Statement}}\n\n" +
			"Score each dimension from 0 to 100 and give a one-sentence comment. " +
			"Respond with a JSON object of exactly this shape:\n" +
			`{"logic": <number>, "evidence": <number>, "rebuttal": <number>, "expression": <number>, "comment": "<string>"}`,

		PromptFinalVerdict: "The debate has concluded. Write the judge's closing rationale.\n\n" +
			"Motion: {{.Topic}}\n\n" +
			"Affirmative round totals: {{.AffirmativeScores}}\n" +
			"Negative round totals: {{.NegativeScores}}\n\n" +
			"Debate transcript:\n{{.History}}\n\n" +
			"Summarize how each side performed, name the decisive arguments, and explain the outcome " +
			"implied by the totals. Keep it under 250 words.",
	}
}
