// Package detector decides whether a resolver session may ask the operator questions.
package detector

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// SessionMode tells whether an operator is available to answer prompts.
type SessionMode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto SessionMode = iota
	// ModeInteractive allows confirmation prompts.
	ModeInteractive
	// ModeUnattended never prompts; trust decisions default to deny.
	ModeUnattended
)

// String returns the flag spelling of the mode.
func (m SessionMode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeUnattended:
		return "unattended"
	default:
		return "auto"
	}
}

// Unattended reports whether the mode forbids prompting.
func (m SessionMode) Unattended() bool {
	return m == ModeUnattended
}

// DetectSession returns the mode implied by the environment: unattended
// when stdin is not a terminal or a CI variable is set.
func DetectSession() SessionMode {
	return detect(term.IsTerminal(int(os.Stdin.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) SessionMode {
	ci = strings.ToLower(strings.TrimSpace(ci))
	if !isTTY || ci == "true" || ci == "1" {
		return ModeUnattended
	}
	return ModeInteractive
}

// ResolveMode applies the user's --mode flag to the detected mode.
// userFlag is one of "auto", "interactive", "unattended" (alias "ci"), or empty.
func ResolveMode(detected SessionMode, userFlag string) SessionMode {
	switch strings.ToLower(userFlag) {
	case "interactive":
		return ModeInteractive
	case "unattended", "ci":
		return ModeUnattended
	default:
		return detected
	}
}
