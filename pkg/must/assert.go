// Package must holds the one assertion helper used for programming-error
// invariants (spec.md §7's "Programming errors abort with an assertion"),
// formalizing the teacher's existing convention of a bare
// panic(fmt.Sprintf(...)) for out-of-range/invalid-state conditions that
// should never happen given a correctly constructed scene.
package must

import "fmt"

// Assertf panics with a formatted message if cond is false. It is for
// invariants a caller's own logic guarantees, never for user input or I/O
// failures, which return ordinary errors instead.
func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
