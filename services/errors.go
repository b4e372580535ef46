package services

import "errors"

// Sentinel errors returned by the service layer. Route handlers translate
// these into HTTP problem responses.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("operation not permitted")
	ErrAlreadyDecided     = errors.New("change request already decided")
	ErrSignatureInvalid   = errors.New("payment signature mismatch")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrValidationFailed   = errors.New("payload validation failed")
)
