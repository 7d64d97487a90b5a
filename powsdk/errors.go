package powsdk

import "errors"

// Service-side errors the validator's RPC surface can return. The engine
// treats ErrBlockNotReady as retriable during publishing and ErrUnknownBlock
// as terminal for ancestor iteration; everything else surfaces as-is.
var (
	ErrUnknownBlock  = errors.New("unknown block")
	ErrBlockNotReady = errors.New("block not ready")
	ErrInvalidState  = errors.New("invalid state")
)

// ServiceError wraps a transport or RPC-level failure from the validator
// service that doesn't fit one of the well-known sentinels above.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "service: " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
