// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInconsistentState indicates the projection diverged from chain
	// truth: an entity the chain guarantees to exist is missing. Fatal;
	// the pipeline must halt rather than continue from a bad base state.
	CodeInconsistentState Code = "INCONSISTENT_STATE"

	// CodeInvalidMetadata indicates a decoded payload failed schema or
	// semantic validation (malformed bytes, unknown permission code,
	// unsupported message type).
	CodeInvalidMetadata Code = "INVALID_METADATA"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Event envelope errors
	CodeEventMalformed  Code = "EVENT_MALFORMED"
	CodeEventOutOfOrder Code = "EVENT_OUT_OF_ORDER"
)
