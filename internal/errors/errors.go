package errors

import (
	"errors"
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// Kind classifies a recoverable failure. Kinds are comparable with errors.Is
// against any *OpError carrying them.
type Kind string

// Failure kinds. None of them is fatal to the session.
const (
	KindBackendUnavailable Kind = "backend unavailable"
	KindEncryption         Kind = "encryption failure"
	KindDecryption         Kind = "decryption failure"
	KindPersistenceIO      Kind = "persistence i/o failure"
	KindClipboardAccess    Kind = "clipboard access failure"
)

func (k Kind) Error() string {
	return string(k)
}

// ErrEmptySecret is the only failure reported synchronously as actionable.
var ErrEmptySecret = UserError{
	Message:    "Password cannot be empty",
	Suggestion: "Enter a non-empty password",
}

// OpError wraps a failure with its kind and the operation that produced it
type OpError struct {
	Kind Kind
	Op   string // Operation: "encrypt", "decrypt", "load", "save", "read", "write"...
	Err  error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s during %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s during %s", e.Kind, e.Op)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, KindX) match on the failure kind.
func (e *OpError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Wrap builds an *OpError. A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *OpError in err's chain.
func KindOf(err error) (Kind, bool) {
	var op *OpError
	if errors.As(err, &op) {
		return op.Kind, true
	}
	return "", false
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	if _, ok := err.(UserError); ok {
		return err
	}
	if _, ok := err.(ConfigError); ok {
		return err
	}

	if kind, ok := KindOf(err); ok {
		switch kind {
		case KindClipboardAccess:
			return UserError{
				Message:    "Clipboard is not accessible",
				Suggestion: "On Linux install xclip, xsel or wl-clipboard and make sure a display is available",
				Err:        err,
			}
		case KindPersistenceIO:
			return UserError{
				Message:    "Could not access the credential file",
				Suggestion: "Check permissions of the data directory or set PWCLIP_DATA_DIR",
				Err:        err,
			}
		case KindEncryption:
			return UserError{
				Message:    "The secure store rejected the password",
				Suggestion: "Unlock your keyring or run 'pwclip doctor' to see which backend is in use",
				Err:        err,
			}
		}
	}

	// Unwrap to get the root cause
	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	errStr := rootErr.Error()

	if strings.Contains(errStr, "yaml:") {
		return ConfigError{
			Message:    "Invalid YAML format",
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	// Return original error if we can't simplify it
	return err
}
