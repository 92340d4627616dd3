package auth

import (
	"strings"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

// ResetKeyword typed in place of the password resets it to the default.
// Matched case-insensitively.
const ResetKeyword = "reset"

// Decision is the outcome of an authentication attempt.
type Decision int

const (
	// DecisionMismatch rejects the attempt; no state changes.
	DecisionMismatch Decision = iota
	// DecisionLoggedIn grants admin access.
	DecisionLoggedIn
	// DecisionResetPrompt means the reset keyword was entered but not yet
	// confirmed; the caller should ask for confirmation.
	DecisionResetPrompt
	// DecisionReset means a confirmed reset: the stored password must be
	// set to the default and persisted immediately. It does NOT log in.
	DecisionReset
)

// Authenticate evaluates a password attempt against the stored password.
// Input is trimmed; an empty stored password compares against the
// default. The reset keyword takes precedence over a literal match.
func Authenticate(input, stored string, confirmedReset bool) Decision {
	input = strings.TrimSpace(input)

	if strings.EqualFold(input, ResetKeyword) {
		if confirmedReset {
			return DecisionReset
		}
		return DecisionResetPrompt
	}

	if stored == "" {
		stored = sitecfg.DefaultPassword
	}
	if input == stored {
		return DecisionLoggedIn
	}
	return DecisionMismatch
}
