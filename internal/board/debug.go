package board

import "fmt"

// strictChecks controls whether API preconditions are verified. When on,
// a contract violation (placing onto an occupied square, querying attacks
// with the mover inside the occupancy) panics with a diagnostic; when off,
// callers are trusted and violations give undefined results.
//
// Off by default. Tests switch it on in TestMain.
var strictChecks bool

// SetStrictChecks enables or disables precondition checking and returns the
// previous setting. Not safe to call concurrently with board operations.
func SetStrictChecks(on bool) bool {
	prev := strictChecks
	strictChecks = on
	return prev
}

// StrictChecks reports whether precondition checking is enabled.
func StrictChecks() bool {
	return strictChecks
}

// check panics with the formatted message when strict checking is on and
// the condition does not hold.
func check(cond bool, format string, args ...any) {
	if strictChecks && !cond {
		panic("board: " + fmt.Sprintf(format, args...))
	}
}
