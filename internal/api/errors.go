package api

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated means the session check did not confirm a logged-in
// user. Callers fail closed and send the user to the login page.
var ErrNotAuthenticated = errors.New("not authenticated")

// StatusError is returned when the server answers with a non-2xx status and
// a body that is not a usable API reply.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}
