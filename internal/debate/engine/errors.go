package engine

import "fmt"

// InvalidStateError reports a breach of the state machine's invariants: a
// transition requested from the terminal phase, an illegal hand-off, or a
// scored message left without its score. It is a programming error and
// always fatal for the run.
type InvalidStateError struct {
	Phase   Phase
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state in phase %q: %s", e.Phase, e.Message)
}
