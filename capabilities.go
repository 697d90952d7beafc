package s2n

// RecordLayer is the capability this driver consumes to move bytes on
// and off the wire. The driver never touches a socket
// itself; it calls through this interface so record-layer framing,
// encryption, and transport are always supplied by the caller.
//
// grounded on the flightConn interface in handshaker.go: a small
// capability surface the state machine drives through, rather than
// owning transport directly.
type RecordLayer interface {
	// ReadRecord returns the content type and payload of the next
	// record, or an error whose Temporary() method reports true if none
	// is available yet.
	ReadRecord() (ContentType, []byte, error)

	// WriteRecord writes one record of the given content type. It must
	// not fragment internally; the caller (handshakeWriteIO) has already
	// split payload to MaxWritePayload().
	WriteRecord(ContentType, []byte) error

	// MaxWritePayload returns the largest payload a single WriteRecord
	// call may carry, e.g. 2^14 for unencrypted TLS records.
	MaxWritePayload() int

	// Flush pushes any buffered output to the transport. Returns an
	// error whose Temporary() method reports true if the transport cannot
	// accept more right now.
	Flush() error
}

// RandomSource supplies cryptographically random bytes for ClientHello/
// ServerHello random fields and session IDs.
//
// grounded on the rand.Reader injection pattern used throughout
// pkg/crypto helpers (e.g. signaturehash.SelectSignatureScheme takes an
// explicit rand source rather than reaching for a package global).
type RandomSource interface {
	Fill(b []byte) error
}

// AlertProcessor handles an inbound alert record's payload. The driver
// calls it and does not itself change handshake.state
// in response — a fatal alert is expected to close the connection via
// whatever mechanism the caller's RecordLayer/transport wires up.
type AlertProcessor interface {
	ProcessAlert(payload []byte) error
}

// Codecs produces and consumes every handshake message body this
// package does not codec itself (everything but ServerHello): the
// concrete bodies of ClientHello, certificates, key exchange, and
// Finished are out of scope for this package (see SPEC_FULL.md EXT);
// callers needing full certificate/key-exchange semantics supply their
// own Codecs, or use StubCodecs to exercise the state machine alone.
type Codecs interface {
	// Recv is called to consume and interpret the inbound body for the
	// given state: a handshake message body reassembled in the
	// handshake.io buffer, or the one-byte ChangeCipherSpec payload.
	// conn is provided so implementations can read/set the negotiated
	// version and other pending parameters this driver exposes through
	// Connection's exported accessors.
	Recv(conn *Connection, state HandshakeState, body []byte) error

	// Send is called to produce the message body to place in the
	// handshake.io buffer for the given state.
	Send(conn *Connection, state HandshakeState) ([]byte, error)
}

// CipherSuiteSelector picks the cipher suite advertised or accepted in
// ServerHello. Cipher-suite semantics themselves (key exchange, cipher,
// MAC) are out of scope for this package; the driver only
// needs a 2-byte value to place on or read from the wire.
//
// grounded on s2n_set_cipher_as_client/s2n_set_cipher_as_server's call
// sites in s2n_server_hello.c — cipher_suite selection is a single
// injected decision point, not something the handshake driver computes.
type CipherSuiteSelector interface {
	// SelectCipherSuite is called by a server sending ServerHello.
	SelectCipherSuite() (uint16, error)
	// AcceptCipherSuite is called by a client receiving ServerHello, to
	// validate (and record) the server's choice.
	AcceptCipherSuite(id uint16) error
}

// ServerExtensions optionally encodes/decodes the ServerHello
// extensions block as an opaque blob. Per-extension parsing (key_share,
// ALPN, etc.) is out of scope; see DESIGN.md, "Dropped teacher material".
type ServerExtensions interface {
	EncodeExtensions() ([]byte, error)
	DecodeExtensions([]byte) error
}

// FlowSelector resolves a branch point in the state machine table: some
// states have more than one legal successor (e.g. SERVER_HELLO may be
// followed by SERVER_CERT, SERVER_KEY, SERVER_CERT_REQ, or
// SERVER_HELLO_DONE, depending on what the flight actually needs), and
// this driver has no certificate/key-exchange logic of its own to decide
// which applies. candidates is always action.next for the
// current state, taken verbatim from table.go, so NextState only ever
// needs to choose among them, never invent a new target.
//
// grounded on s2n_conn_set_handshake_type/handshake_type_check_conditions
// in s2n_handshake_io.c, which decide the analogous branch from
// negotiated cipher suite and config, generalized here to an injected
// decision so this package stays free of that policy.
type FlowSelector interface {
	NextState(conn *Connection, state HandshakeState, candidates []HandshakeState) (HandshakeState, error)
}

// SSLv2Support is an optional capability a Codecs implementation may
// additionally provide: recognizing and translating an SSLv2-compatible
// ClientHello, per
// s2n_handshake_io.c's isSSLv2 branch.
type SSLv2Support interface {
	RecvSSLv2ClientHello(conn *Connection, body []byte) error
}

// Delay introduces a timing-uniform pause after a read-path handler
// failure, so a peer cannot use response latency as an oracle to tell
// one failure reason from another. If nil, no delay is introduced.
//
// grounded on s2n_sleep_delay's call site in s2n_handshake_io.c:319-322,
// invoked only from the read-path handler-failure branch — never from
// handshake_write_io, which has no equivalent call.
type Delay interface {
	SleepDelay()
}
