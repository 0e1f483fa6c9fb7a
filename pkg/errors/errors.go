package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")
)

// Market-data provider errors

var (
	// ErrProviderUnavailable indicates the market data provider is unreachable
	ErrProviderUnavailable = errors.New("market data provider unavailable")

	// ErrInvalidTicker indicates an unknown or malformed ticker symbol
	ErrInvalidTicker = errors.New("invalid ticker symbol")

	// ErrInvalidPeriod indicates a history period outside the supported set
	ErrInvalidPeriod = errors.New("invalid history period")

	// ErrEmptyHistory indicates the provider returned no price bars
	ErrEmptyHistory = errors.New("empty price history")

	// ErrEmptyProfile indicates the provider returned no company data
	ErrEmptyProfile = errors.New("empty company profile")

	// ErrRateLimited indicates the provider rejected the call for rate limiting
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Search provider errors

var (
	// ErrSearchFailed indicates the search provider call failed
	ErrSearchFailed = errors.New("search request failed")

	// ErrSearchRejected indicates the provider answered but reported failure
	ErrSearchRejected = errors.New("search rejected by provider")

	// ErrMissingQuery indicates no query could be resolved from the arguments
	ErrMissingQuery = errors.New("missing search query")
)

// Agent and report errors

var (
	// ErrAgentNotFound indicates an unknown agent type was requested
	ErrAgentNotFound = errors.New("agent not found")

	// ErrToolNotFound indicates a tool name missing from the registry
	ErrToolNotFound = errors.New("tool not found")

	// ErrModelNotFound indicates an unknown model identifier
	ErrModelNotFound = errors.New("model not found")

	// ErrNoFinalResponse indicates the runner finished without a final answer
	ErrNoFinalResponse = errors.New("agent did not produce a final response")

	// ErrArtifactStore indicates the report artifact could not be persisted
	ErrArtifactStore = errors.New("artifact store failure")
)

// DomainError wraps an error with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// MultiError wraps multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("multiple errors (%d): %v", len(m.Errors), m.Errors[0])
}

// Add adds an error to the list
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (m *MultiError) HasErrors() bool {
	return len(m.Errors) > 0
}

// ToError returns the MultiError as an error, or nil if no errors
func (m *MultiError) ToError() error {
	if !m.HasErrors() {
		return nil
	}
	return m
}

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
