package errors

import "maps"

// ErrorCategory groups errors by what the user has to fix.
type ErrorCategory string

const (
	// CategoryConfig covers handbook.yaml and .env problems.
	CategoryConfig ErrorCategory = "config"
	// CategoryValidation covers content that cannot be routed, such as a
	// chapter outside guide/framework/language/chapter.
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	CategoryContent    ErrorCategory = "content"
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryLedger     ErrorCategory = "ledger"

	CategoryInternal ErrorCategory = "internal"
)

// exitCodes maps categories to process exit codes. Unlisted categories
// exit with 1.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   4,
	CategoryConfig:     7,
	CategoryInternal:   10,
	CategoryContent:    11,
	CategoryBuild:      11,
	CategoryFileSystem: 11,
	CategoryLedger:     11,
}

// ExitCode returns the process exit code for the category.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return 1
}

// ErrorSeverity says how far an error reaches.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // aborts the build
	SeverityError   ErrorSeverity = "error"   // fails the operation
	SeverityWarning ErrorSeverity = "warning" // logged, build continues
)

// ErrorContext holds structured details such as the offending path.
type ErrorContext map[string]any

// Set stores value under key, allocating the map if needed.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = ErrorContext{}
	}
	c[key] = value
	return c
}

// Get returns the value stored under key.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

func (c ErrorContext) clone() ErrorContext {
	out := make(ErrorContext, len(c)+1)
	maps.Copy(out, c)
	return out
}
