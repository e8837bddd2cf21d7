package store

import "errors"

var (
	// ErrMalformedInput is returned when a text-form parameter does not
	// parse as a JSON document, or a bulk operation descriptor is invalid.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidObjectID is returned by ObjectIDFromHex for text that is
	// not a valid 24-character hex object id.
	ErrInvalidObjectID = errors.New("invalid object id")

	// ErrNotConnected is returned when an operation is attempted on a
	// client that was never connected or has been shut down.
	ErrNotConnected = errors.New("client not connected")
)
