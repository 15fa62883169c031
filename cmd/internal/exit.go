package internal

import (
	"fmt"
	"os"
	"strings"
)

const (
	// ExitFailed means that the command ran, but couldn't do everything it was asked to.
	ExitFailed = 1
	// ExitUsage means that the command couldn't start because of invalid arguments or configuration.
	ExitUsage = 2
)

// Fatal will Echo the message and os.Exit with ExitFailed.
func Fatal(msg string, args ...any) {
	Exit(ExitFailed, msg, args...)
}

// Usage will Echo the message and os.Exit with ExitUsage.
func Usage(msg string, args ...any) {
	Exit(ExitUsage, msg, args...)
}

// Exit will Echo the message and os.Exit with the given code.
func Exit(code int, msg string, args ...any) {
	Echo(msg, args...)
	os.Exit(code)
}

// Echo will emit the given message to stderr without any logging formatting.
func Echo(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(os.Stderr, msg, args...)
}
