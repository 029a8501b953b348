// Package errors provides the classified error primitives used across the
// handbook builder.
//
// A ClassifiedError carries a category (config, validation, content, ...),
// a severity and a small context map. The CLI adapter turns them into exit
// codes and log records.
//
// Example usage:
//
//	err := errors.ValidationError("malformed content path").
//		WithContext("path", raw).
//		WithCause(cause).
//		Build()
package errors
