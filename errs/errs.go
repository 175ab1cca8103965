// Package errs defines the sentinel errors returned by the mummy codec and
// schema layer.
//
// Call sites wrap these with additional detail using fmt.Errorf("%w: ...", ...)
// so callers can still test the error kind with errors.Is while getting a
// human-readable message.
package errs

import "errors"

var (
	// ErrUnencodable is returned when a value has no wire representation and
	// either no default callback was given or the default's result is itself
	// unencodable.
	ErrUnencodable = errors.New("mummy: value has no wire representation")

	// ErrDepthExceeded is returned when the recursion guard trips during
	// encode or decode (depth >= 256).
	ErrDepthExceeded = errors.New("mummy: recursion depth exceeded")

	// ErrTruncated is returned when the decoder needs more bytes than remain
	// in the input.
	ErrTruncated = errors.New("mummy: truncated input")

	// ErrInvalidTag is returned for an unknown type byte or a nested
	// compression envelope.
	ErrInvalidTag = errors.New("mummy: invalid or nested tag")

	// ErrInvalidBody is returned for a structurally invalid body: malformed
	// UTF-8, a decimal digit outside 0-9, a non-null tzinfo, etc.
	ErrInvalidBody = errors.New("mummy: invalid body")

	// ErrCompressionUnavailable is returned when decoding a payload whose
	// compression flag is set but no LZF implementation is linked.
	ErrCompressionUnavailable = errors.New("mummy: payload requires compression support that is not linked")

	// ErrInvalidMessage is returned when a message fails validation against
	// its schema.
	ErrInvalidMessage = errors.New("mummy: message does not match schema")

	// ErrInvalidSchema is returned when a schema itself fails its
	// well-formedness check at construction time.
	ErrInvalidSchema = errors.New("mummy: schema is not well-formed")
)

// ValidationError reports the offending (sub-message, sub-schema) pair from a
// failed Message.Validate call, per spec section 4.6.
type ValidationError struct {
	Message any
	Schema  any
}

func (e *ValidationError) Error() string {
	return "mummy: message does not match schema"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidMessage
}

// SchemaError reports the offending sub-schema from a failed schema
// well-formedness check.
type SchemaError struct {
	Schema any
}

func (e *SchemaError) Error() string {
	return "mummy: schema is not well-formed"
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidSchema
}
