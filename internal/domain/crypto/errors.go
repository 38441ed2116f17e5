package crypto

import "errors"

var (
	// ErrUnavailableCapability is returned when the platform cryptography capability is
	// missing from the current execution context. Callers must not proceed.
	ErrUnavailableCapability = errors.New("platform cryptography capability unavailable; run in a secure context")

	// ErrKeyImportFailure is returned when key material is malformed or incompatible with the requested algorithm.
	ErrKeyImportFailure = errors.New("key import failed")

	// ErrPlatformOperationFailure wraps any other failure reported by the platform engine.
	ErrPlatformOperationFailure = errors.New("platform operation failed")

	// ErrMalformedSignatureEncoding is returned when a signature is not valid base64 after padding normalization.
	ErrMalformedSignatureEncoding = errors.New("malformed signature encoding")

	// ErrInvalidByteCount is returned for a negative random byte count.
	ErrInvalidByteCount = errors.New("byte count must not be negative")
)
