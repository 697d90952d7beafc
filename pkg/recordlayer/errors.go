package recordlayer

import "errors"

//nolint:err113
var (
	errFragmentTooLarge = errors.New("recordlayer: fragment exceeds 2^14 bytes")
	errHeaderTooShort   = errors.New("recordlayer: buffer shorter than a record header")
)

// TemporaryError is returned by Read/Flush when the transport has no
// data or capacity available right now; the caller should try again
// later rather than treat it as a fatal fault.
type TemporaryError struct{ Err error }

func (e *TemporaryError) Error() string { return e.Err.Error() }
func (e *TemporaryError) Unwrap() error { return e.Err }
func (e *TemporaryError) Temporary() bool { return true }
