package domain

import "fmt"

// Error codes for domain errors
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeFileNotFound  = "FILE_NOT_FOUND"
	ErrCodeNotGitRepo    = "NOT_GIT_REPO"
	ErrCodeConfigError   = "CONFIG_ERROR"
	ErrCodeForbiddenTool = "FORBIDDEN_TOOL"
	ErrCodeLoopDetected  = "LOOP_DETECTED"
	ErrCodeTraceError    = "TRACE_ERROR"
	ErrCodeOutputError   = "OUTPUT_ERROR"
)

// DomainError represents a domain-specific error with a stable code
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an error for invalid input
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates an error for missing files or paths
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("path does not exist: %s", path), cause)
}

// NewNotGitRepoError creates an error for paths outside version control
func NewNotGitRepoError(path string) error {
	return NewDomainError(ErrCodeNotGitRepo, fmt.Sprintf("not a git repository: %s", path), nil)
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewForbiddenToolError creates an error for a guardrail rejection.
// The offending command is always named so the caller can report it.
func NewForbiddenToolError(command string) error {
	return NewDomainError(ErrCodeForbiddenTool, fmt.Sprintf("forbidden tool access attempt: %s", command), nil)
}

// NewLoopDetectedError creates an error for a tripped loop guard.
// Kept distinct from CONFIG_ERROR so callers can tell a runaway edit
// batch apart from a malformed configuration.
func NewLoopDetectedError(edits, threshold int) error {
	return NewDomainError(ErrCodeLoopDetected,
		fmt.Sprintf("loop guard triggered: %d planned edits meets threshold %d", edits, threshold), nil)
}

// NewTraceError creates an error for trace scanning problems
func NewTraceError(message string, cause error) error {
	return NewDomainError(ErrCodeTraceError, message, cause)
}

// NewOutputError creates an error for report rendering problems
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}
