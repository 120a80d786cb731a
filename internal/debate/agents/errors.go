package agents

import (
	"fmt"

	"digital.vasic.debate/internal/models"
)

// ParseError reports agent output that failed structured validation, such as
// a judge evaluation missing a required numeric field. It is permanent for
// the turn that produced it.
type ParseError struct {
	Role  models.Role
	Field string
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("failed to parse %s output: field %q: %v", e.Role, e.Field, e.Err)
	}
	return fmt.Sprintf("failed to parse %s output: %v", e.Role, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
