package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEnvelope indicates the endpoint answered without a textual completion field.
	ErrMalformedEnvelope = errors.New("malformed completion envelope")

	// ErrInvalidContent indicates a well-formed envelope whose content is unusable.
	ErrInvalidContent = errors.New("invalid content")
)

// ErrorKind classifies gateway failures.
type ErrorKind string

const (
	KindTimeout           ErrorKind = "timeout"
	KindTransport         ErrorKind = "transport"
	KindMalformedEnvelope ErrorKind = "malformed_envelope"
)

// GatewayError is returned once the gateway has exhausted its attempts.
type GatewayError struct {
	Kind     ErrorKind
	Attempts int
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s after %d attempt(s): %v", e.Kind, e.Attempts, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsGatewayKind reports whether err is a GatewayError of the given kind.
func IsGatewayKind(err error, kind ErrorKind) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == kind
}
