package s2n

import (
	"errors"
	"fmt"
)

// FatalError indicates the Connection can no longer make progress and must
// be torn down. Negotiate never retries after one of these; the caller
// should close the underlying transport.
//
// grounded on the FatalError/TemporaryError/InternalError wrapper
// convention.
type FatalError struct{ Err error }

func (e *FatalError) Error() string { return fmt.Sprintf("fatal error: %s", e.Err.Error()) }
func (e *FatalError) Unwrap() error { return e.Err }

// TemporaryError indicates the Connection is still usable but the
// operation that produced it did not complete; the caller may retry.
type TemporaryError struct{ Err error }

func (e *TemporaryError) Error() string { return fmt.Sprintf("temporary error: %s", e.Err.Error()) }
func (e *TemporaryError) Unwrap() error { return e.Err }
func (e *TemporaryError) Temporary() bool { return true }

// InternalError indicates a bug in this package, not a peer or network
// fault: an invariant the state machine assumed did not hold.
type InternalError struct{ Err error }

func (e *InternalError) Error() string { return fmt.Sprintf("internal error: %s", e.Err.Error()) }
func (e *InternalError) Unwrap() error { return e.Err }

func newInternalError(format string, args ...any) error {
	return &InternalError{Err: fmt.Errorf(format, args...)}
}

//nolint:err113
var (
	// errBadMessage is the s2n BAD_MESSAGE condition: a handshake message
	// arrived with a record type, message type, or ordering the state
	// machine did not expect.
	errBadMessage = &FatalError{Err: errors.New("bad message")}

	// errClosed indicates an earlier Negotiate call on the Connection
	// failed and it cannot continue negotiating. A completed handshake is
	// not closed: Negotiate on it returns NotBlocked and no error.
	errClosed = &FatalError{Err: errors.New("connection is closed")}

	// errWouldBlockRead is returned internally by a RecordLayer.Read that
	// has no data ready; it signals negotiate to report BlockedOnRead
	// without being itself a handshake failure.
	errWouldBlockRead = &TemporaryError{Err: errors.New("blocked on read")}

	// errWouldBlockWrite mirrors errWouldBlockRead for the write path.
	errWouldBlockWrite = &TemporaryError{Err: errors.New("blocked on write")}

	// errRenegotiationNotSupported is returned when ApplicationData
	// arrives before HANDSHAKE_OVER, i.e. a renegotiation attempt
	// (this driver fails closed rather than support renegotiation). It
	// wraps errBadMessage, so errors.Is matches either sentinel.
	errRenegotiationNotSupported = fmt.Errorf("renegotiation is not supported: %w", errBadMessage)

	// errShortCCS is returned when a ChangeCipherSpec record's payload is
	// not exactly one byte, per s2n_recv.c.
	errShortCCS = &FatalError{Err: errors.New("change_cipher_spec record must be exactly one byte")}

	// errNoConfigProvided is returned by NewConnection when cfg is nil.
	errNoConfigProvided = &FatalError{Err: errors.New("no config provided")}

	// errNoRecordLayer is returned by NewConnection when cfg.RecordLayer
	// is nil; the driver has no way to reach the wire without one.
	errNoRecordLayer = &FatalError{Err: errors.New("config has no RecordLayer")}

	// errVerifyDataMismatch is returned when a peer's Finished message
	// does not match the verify_data this side computed over the same
	// transcript digest, per RFC 5246 §7.4.9.
	errVerifyDataMismatch = &FatalError{Err: errors.New("finished verify_data mismatch")}
)

// isTemporary reports whether err is (or wraps) something that says it
// is safe to retry later, the signal negotiate uses to distinguish
// "come back later" from failure. It checks the Temporary() bool
// interface rather than this package's own *TemporaryError concrete
// type, since a caller's RecordLayer (e.g. pkg/recordlayer) is free to
// report blocked I/O with its own error type, as
// github.com/pion/transport/v3/packetio.Buffer does past a read
// deadline.
func isTemporary(err error) bool {
	var temp interface{ Temporary() bool }
	return errors.As(err, &temp) && temp.Temporary()
}
