package corosched

import (
	"fmt"
	"os"
)

// fatal reports a programmer-contract violation or resource-exhaustion
// condition and aborts. This class of failure has no recovery path: any
// partial state left behind would leave the scheduler undefined. Go has no
// process-abort primitive short of panic, so fatal prints to stderr and
// then panics.
func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, "corosched: "+msg)
	panic("corosched: " + msg)
}
