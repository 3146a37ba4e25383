// Package errs defines the error kinds surfaced across the relay core.
// These are kinds, not exhaustive types: callers distinguish them with
// errors.As, not string matching.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package errs

import "fmt"

// InvalidRequest signals that a caller supplied bad input: an unknown
// interface type, an address conflict, a mismatched content type, or a
// converter decode failure. It surfaces to the caller at the API boundary.
type InvalidRequest struct{ what string }

func NewInvalidRequest(format string, a ...any) *InvalidRequest {
	return &InvalidRequest{fmt.Sprintf(format, a...)}
}

func (e *InvalidRequest) Error() string { return "invalid request: " + e.what }

// InternalError signals a broken invariant: duplicate producer
// registration, an unknown content identifier at send time, double
// registration of a content codec. Programmer error; the current
// operation is aborted and the error is logged, never surfaced to a
// remote peer.
type InternalError struct{ what string }

func NewInternalError(format string, a ...any) *InternalError {
	return &InternalError{fmt.Sprintf(format, a...)}
}

func (e *InternalError) Error() string { return "internal error: " + e.what }

// SerializationError signals that a codec saw malformed data, on either
// the encode or the decode path.
type SerializationError struct{ what string }

func NewSerializationError(format string, a ...any) *SerializationError {
	return &SerializationError{fmt.Sprintf(format, a...)}
}

func (e *SerializationError) Error() string { return "serialization error: " + e.what }

// ConnectionError signals transport-level loss.
type ConnectionError struct{ what string }

func NewConnectionError(format string, a ...any) *ConnectionError {
	return &ConnectionError{fmt.Sprintf(format, a...)}
}

func (e *ConnectionError) Error() string { return "connection error: " + e.what }

// DeadConnection is a signal, not an error to surface to an operator.
type DeadConnection struct{ what string }

func NewDeadConnection(format string, a ...any) *DeadConnection {
	return &DeadConnection{fmt.Sprintf(format, a...)}
}

func (e *DeadConnection) Error() string { return "dead connection: " + e.what }

// MaxNumberExceeded signals that a quota (connections, interfaces,
// in-flight messages) has been exceeded.
type MaxNumberExceeded struct{ what string }

func NewMaxNumberExceeded(format string, a ...any) *MaxNumberExceeded {
	return &MaxNumberExceeded{fmt.Sprintf(format, a...)}
}

func (e *MaxNumberExceeded) Error() string { return "max number exceeded: " + e.what }

// AlreadyDead signals that a termination callback was registered against
// an object that has already finished dying.
type AlreadyDead struct{ what string }

func NewAlreadyDead(format string, a ...any) *AlreadyDead {
	return &AlreadyDead{fmt.Sprintf(format, a...)}
}

func (e *AlreadyDead) Error() string { return "already dead: " + e.what }
