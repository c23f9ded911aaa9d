package ecs

import "fmt"

// InvariantError is the panic value raised by Assert in debug builds.
type InvariantError struct {
	Msg string
}

func (e InvariantError) Error() string { return "invariant violated: " + e.Msg }

// Assert checks an invariant. Built with the simdebug tag a violation panics;
// otherwise it returns false and the caller treats the subject as orphaned.
func Assert(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	if debugAsserts {
		panic(InvariantError{Msg: fmt.Sprintf(format, args...)})
	}
	return false
}
