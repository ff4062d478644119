package workflow

import (
	"errors"
	"fmt"

	"bugdesk.app/api-server/internal/model"
)

// ErrUnauthorized is the root of every permission failure the engine and the
// policy produce. Callers match with errors.Is and map it to a 401.
var ErrUnauthorized = errors.New("unauthorized")

var (
	// ErrNotLoggedIn is returned when Apply is invoked without an actor.
	ErrNotLoggedIn = fmt.Errorf("%w: user not logged in", ErrUnauthorized)

	// ErrIssueNotChanged is returned when the role rules leave the issue
	// identical to its snapshot. A silent no-op would let a caller believe
	// an edit succeeded, so it is rejected instead.
	ErrIssueNotChanged = fmt.Errorf("%w: issue not changed", ErrUnauthorized)
)

// UnknownRoleError reports a role outside the closed vocabulary. It is a
// distinct type so that a policy misconfiguration never degrades into a
// silent "no capability" answer.
type UnknownRoleError struct {
	Role model.Role
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Role)
}
