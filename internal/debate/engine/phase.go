package engine

// Phase is one stage of the debate protocol. Transitions are forward-only;
// only the free debate self-loops.
type Phase string

const (
	PhaseInit             Phase = "init"
	PhaseOpening          Phase = "opening"
	PhaseCrossExamination Phase = "cross_examination"
	PhaseFreeDebate       Phase = "free_debate"
	PhaseClosing          Phase = "closing"
	PhaseJudgment         Phase = "judgment"
	PhaseTerminal         Phase = "terminal"
)

// transitions is the closed transition graph. A phase may only hand off to
// the phases listed here.
var transitions = map[Phase][]Phase{
	PhaseInit:             {PhaseOpening},
	PhaseOpening:          {PhaseCrossExamination},
	PhaseCrossExamination: {PhaseFreeDebate},
	PhaseFreeDebate:       {PhaseFreeDebate, PhaseClosing},
	PhaseClosing:          {PhaseJudgment},
	PhaseJudgment:         {PhaseTerminal},
	PhaseTerminal:         {},
}

// canTransition reports whether from may hand off to to.
func canTransition(from, to Phase) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Terminal reports whether p is the absorbing final phase.
func (p Phase) Terminal() bool { return p == PhaseTerminal }
