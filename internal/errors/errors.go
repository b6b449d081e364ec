// Package errors provides the structured error types returned by tool handlers.
// Every failure a caller can see carries an ErrorCode for programmatic handling
// and a Message that is safe to show as plain text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a tool failure.
type ErrorCode string

const (
	// CodeConfigurationMissing means write credentials were never configured
	// or the session could not be established at startup.
	CodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"

	// CodeAuthenticationInvalid means the live identity probe failed.
	CodeAuthenticationInvalid ErrorCode = "AUTHENTICATION_INVALID"

	// CodeUnsupportedArgument means an enumerated argument had a value outside its set.
	CodeUnsupportedArgument ErrorCode = "UNSUPPORTED_ARGUMENT"

	// CodeInvalidArgument means a required argument was missing or malformed.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// CodeRemoteFailure means the Reddit API call itself failed.
	CodeRemoteFailure ErrorCode = "REMOTE_OPERATION_FAILURE"
)

// ToolError is a failure surfaced to the tool caller.
type ToolError struct {
	Code    ErrorCode
	Message string // user-facing text, rendered verbatim
	Err     error  // underlying cause, logged but not shown
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewConfigurationMissing builds the refusal returned when no session exists.
// action is the verb phrase used in the message, e.g. "create post".
func NewConfigurationMissing(action string) *ToolError {
	return &ToolError{
		Code:    CodeConfigurationMissing,
		Message: fmt.Sprintf("Cannot %s: Reddit authentication is not configured properly or failed to initialize.", action),
	}
}

// NewAuthenticationInvalid builds the refusal returned when the identity probe fails.
func NewAuthenticationInvalid(action string, cause error) *ToolError {
	return &ToolError{
		Code:    CodeAuthenticationInvalid,
		Message: fmt.Sprintf("Cannot %s: Reddit client is not authenticated. Please check credentials or run the auth command.", action),
		Err:     cause,
	}
}

// NewUnsupportedArgument rejects a value outside an enumerated set.
// what is the human name of the argument ("content type", "vote direction").
func NewUnsupportedArgument(what, value, supported string) *ToolError {
	return &ToolError{
		Code:    CodeUnsupportedArgument,
		Message: fmt.Sprintf("Unsupported %s: %s. Supported %s are %s", what, value, pluralize(what), supported),
	}
}

// NewInvalidArgument rejects a missing or malformed argument with a fixed message.
func NewInvalidArgument(message string) *ToolError {
	return &ToolError{
		Code:    CodeInvalidArgument,
		Message: message,
	}
}

// NewRemoteFailure wraps an error returned by the Reddit API.
// prefix is the sentence start, e.g. "Failed to create Reddit post".
func NewRemoteFailure(prefix string, cause error) *ToolError {
	return &ToolError{
		Code:    CodeRemoteFailure,
		Message: fmt.Sprintf("%s: %v", prefix, cause),
		Err:     cause,
	}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a ToolError.
func CodeOf(err error) ErrorCode {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// IsCode reports whether err is a ToolError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// pluralize turns "content type" into "types", "vote direction" into "directions".
func pluralize(what string) string {
	fields := strings.Fields(what)
	if len(fields) == 0 {
		return "values"
	}
	return fields[len(fields)-1] + "s"
}
