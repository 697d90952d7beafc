package s2n

// writer identifies which role transmits at a given state, or 'B' when
// the state belongs to both/neither (the terminal state).
//
// grounded on the char writer field of struct s2n_handshake_action in
// original_source/tls/s2n_handshake_io.c.
type writer byte

const (
	writerClient writer = 'C'
	writerServer writer = 'S'
	writerBoth   writer = 'B'
)

func (w writer) String() string {
	return string(byte(w))
}

// messageType is the TLS handshake message type byte, per RFC 5246 §7.4.
// Only meaningful when the action's RecordType is ContentTypeHandshake.
//
// grounded on handshake.go's handshakeType constant block from the
// teacher (retrieved copy was an empty package-main stub; the constants
// below are reconstructed from the RFC section references it carried).
type messageType uint8

const (
	messageTypeClientHello        messageType = 1
	messageTypeServerHello        messageType = 2
	messageTypeCertificate        messageType = 11
	messageTypeServerKeyExchange  messageType = 12
	messageTypeCertificateRequest messageType = 13
	messageTypeServerHelloDone    messageType = 14
	messageTypeCertificateVerify  messageType = 15
	messageTypeClientKeyExchange  messageType = 16
	messageTypeFinished           messageType = 20
	messageTypeCertificateStatus  messageType = 22
)

// handshakeAction is one row of the state machine table: the
// record type this state is carried in, the handshake message type (when
// applicable), which role writes, and the per-role handler.
//
// grounded on struct s2n_handshake_action in s2n_handshake_io.c. The
// source's `int (*handler[2])(struct s2n_connection *)` function-pointer
// pair becomes an exhaustive Go switch in dispatchSend/dispatchRecv below,
// to avoid heap allocation per dispatch.
type handshakeAction struct {
	recordType  ContentType
	messageType messageType
	writer      writer
	next        []HandshakeState // legal next states, for validation
}

// table is the immutable state machine, indexed by HandshakeState. It is
// package-level and never mutated after init, matching the
// "Global state is limited to: the immutable state-machine table."
var table = [...]handshakeAction{
	StateClientHello: {
		recordType: ContentTypeHandshake, messageType: messageTypeClientHello, writer: writerClient,
		next: []HandshakeState{StateServerHello},
	},
	StateServerHello: {
		recordType: ContentTypeHandshake, messageType: messageTypeServerHello, writer: writerServer,
		next: []HandshakeState{StateServerCert, StateServerKey, StateServerCertReq, StateServerHelloDone},
	},
	StateServerCert: {
		recordType: ContentTypeHandshake, messageType: messageTypeCertificate, writer: writerServer,
		next: []HandshakeState{StateServerKey, StateServerCertReq, StateServerHelloDone, StateServerCertStatus},
	},
	StateServerCertStatus: {
		recordType: ContentTypeHandshake, messageType: messageTypeCertificateStatus, writer: writerServer,
		next: []HandshakeState{StateServerKey, StateServerHelloDone},
	},
	StateServerKey: {
		recordType: ContentTypeHandshake, messageType: messageTypeServerKeyExchange, writer: writerServer,
		next: []HandshakeState{StateServerCertReq, StateServerHelloDone},
	},
	StateServerCertReq: {
		recordType: ContentTypeHandshake, messageType: messageTypeCertificateRequest, writer: writerServer,
		next: []HandshakeState{StateServerHelloDone},
	},
	StateServerHelloDone: {
		recordType: ContentTypeHandshake, messageType: messageTypeServerHelloDone, writer: writerServer,
		next: []HandshakeState{StateClientCert, StateClientKey},
	},
	StateClientCert: {
		recordType: ContentTypeHandshake, messageType: messageTypeCertificate, writer: writerClient,
		next: []HandshakeState{StateClientKey},
	},
	StateClientKey: {
		recordType: ContentTypeHandshake, messageType: messageTypeClientKeyExchange, writer: writerClient,
		next: []HandshakeState{StateClientCertVerify, StateClientChangeCipherSpec},
	},
	StateClientCertVerify: {
		recordType: ContentTypeHandshake, messageType: messageTypeCertificateVerify, writer: writerClient,
		next: []HandshakeState{StateClientChangeCipherSpec},
	},
	StateClientChangeCipherSpec: {
		recordType: ContentTypeChangeCipherSpec, writer: writerClient,
		next: []HandshakeState{StateClientFinished},
	},
	StateClientFinished: {
		recordType: ContentTypeHandshake, messageType: messageTypeFinished, writer: writerClient,
		next: []HandshakeState{StateServerChangeCipherSpec},
	},
	StateServerChangeCipherSpec: {
		recordType: ContentTypeChangeCipherSpec, writer: writerServer,
		next: []HandshakeState{StateServerFinished},
	},
	StateServerFinished: {
		recordType: ContentTypeHandshake, messageType: messageTypeFinished, writer: writerServer,
		next: []HandshakeState{StateHandshakeOver},
	},
	StateHandshakeOver: {
		recordType: ContentTypeApplicationData, writer: writerBoth,
	},
}

// actionFor returns the table row for s, or an InternalError if s is out
// of range (a programming error).
func actionFor(s HandshakeState) (handshakeAction, error) {
	if !s.valid() {
		return handshakeAction{}, newInternalError("invalid handshake state %d", s)
	}
	return table[s], nil
}

// legalNext reports whether next is a legal transition target from s,
// per the table above.
func legalNext(s, next HandshakeState) bool {
	a, err := actionFor(s)
	if err != nil {
		return false
	}
	if s == StateHandshakeOver {
		return false
	}
	for _, n := range a.next {
		if n == next {
			return true
		}
	}
	return false
}
