package s2n

import "github.com/pion/logging"

// Config carries the capabilities and policy a Connection needs from its
// caller. After a Config is passed to NewConnection it must not be
// modified.
//
// grounded on config.go (the small, non-functional-
// options shape; the 656-line options.go API was not adopted — see
// DESIGN.md).
type Config struct {
	// RecordLayer moves bytes on and off the wire; see capabilities.go.
	RecordLayer RecordLayer

	// Random supplies random bytes for hello messages. If nil,
	// a crypto/rand-backed source is used.
	Random RandomSource

	// Codecs produces and consumes handshake message bodies other than
	// ServerHello, which this package codecs itself.
	Codecs Codecs

	// Alerts processes inbound alert records, if set.
	Alerts AlertProcessor

	// CipherSuites selects/validates the ServerHello cipher_suite field.
	// If nil, ServerHello negotiation always fails with an InternalError
	// rather than silently picking a suite.
	CipherSuites CipherSuiteSelector

	// Extensions optionally encodes/decodes the ServerHello extensions
	// block. If nil, this driver sends none and ignores any received.
	Extensions ServerExtensions

	// Flow resolves which successor state applies at a table branch
	// point. Required only if the negotiated flight ever reaches a state
	// with more than one legal next state; see FlowSelector.
	Flow FlowSelector

	// Delay is invoked after a read-path handler failure, before the
	// error is returned, to dampen timing side channels. If nil, no
	// delay is introduced.
	Delay Delay

	// MaxSupportedVersion caps the protocol version this driver will
	// offer or accept, as an internal major*10+minor value. Defaults to
	// MaxSupportedVersion (TLS 1.2) when zero.
	MaxSupportedVersion int

	// LoggerFactory builds the per-Connection logger. Defaults to a
	// disabled logger when nil.
	LoggerFactory logging.LoggerFactory
}

func (c *Config) loggerFactory() logging.LoggerFactory {
	if c.LoggerFactory != nil {
		return c.LoggerFactory
	}
	return &disabledLoggerFactory{}
}

func (c *Config) maxSupportedVersion() int {
	if c.MaxSupportedVersion == 0 {
		return MaxSupportedVersion
	}
	return c.MaxSupportedVersion
}

type disabledLoggerFactory struct{}

func (d *disabledLoggerFactory) NewLogger(string) logging.LeveledLogger {
	return logging.NewDefaultLeveledLoggerForScope("s2n", logging.LogLevelDisabled, nil)
}
