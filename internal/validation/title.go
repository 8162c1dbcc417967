// ABOUTME: Title validation rules shared by the service and every client.
// ABOUTME: Checks run in a fixed order and stop at the first failure.

package validation

import (
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is counted in runes, not bytes.
const MaxTitleLength = 100

// Reason is the machine-readable cause of a rejected title.
type Reason string

const (
	ReasonEmpty           Reason = "EMPTY"
	ReasonTooLong         Reason = "TOO_LONG"
	ReasonContainsNewline Reason = "CONTAINS_NEWLINE"
	ReasonContainsTab     Reason = "CONTAINS_TAB"
)

var messages = map[Reason]string{
	ReasonEmpty:           "Title is required.",
	ReasonTooLong:         "Title must be 100 characters or fewer.",
	ReasonContainsNewline: "Title must not contain a newline.",
	ReasonContainsTab:     "Title must not contain a tab.",
}

// ValidationError reports why a title was rejected. Error returns the
// user-facing message unchanged.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func reject(r Reason) *ValidationError {
	return &ValidationError{Reason: r, Message: messages[r]}
}

// ValidateTitle returns nil when title is acceptable, otherwise a
// *ValidationError. Titles are not trimmed.
func ValidateTitle(title string) error {
	if title == "" {
		return reject(ReasonEmpty)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return reject(ReasonTooLong)
	}
	if strings.ContainsRune(title, '\n') {
		return reject(ReasonContainsNewline)
	}
	if strings.ContainsRune(title, '\t') {
		return reject(ReasonContainsTab)
	}
	return nil
}

// Message returns the user-facing text for a reason.
func Message(r Reason) string {
	return messages[r]
}
