package s2n

import "encoding/binary"

// StubCodecs is a minimal Codecs implementation covering every
// handshake state this package's table names besides ServerHello (which
// this package codecs itself). It does not perform real certificate
// validation or key exchange — those are out of scope (see SPEC_FULL.md
// EXT) — but it produces and consumes well-formed, mutually consistent
// messages so a Connection pair can drive Negotiate() to
// HANDSHAKE_OVER end to end, e.g. for the loopback example and tests.
//
// grounded on the exhaustive switch-on-handshake-message-type dispatch
// shape in client_handlers.go/server_handlers.go.
type StubCodecs struct {
	// CipherSuite is the single suite this stub always offers/accepts.
	CipherSuite uint16
}

var _ Codecs = (*StubCodecs)(nil)
var _ SSLv2Support = (*StubCodecs)(nil)
var _ CipherSuiteSelector = (*StubCodecs)(nil)
var _ FlowSelector = (*StubCodecs)(nil)

// NextState always takes the shortest legal path: no certificate, no
// server key exchange, no client certificate request. It never needs
// candidates beyond choosing among them, since StubCodecs never asks
// the state machine to enter a flight it doesn't also implement Send/
// Recv for.
func (s *StubCodecs) NextState(conn *Connection, state HandshakeState, candidates []HandshakeState) (HandshakeState, error) {
	switch state {
	case StateServerHello:
		return StateServerHelloDone, nil
	case StateServerHelloDone:
		return StateClientKey, nil
	case StateClientKey:
		return StateClientChangeCipherSpec, nil
	default:
		return candidates[0], nil
	}
}

func (s *StubCodecs) SelectCipherSuite() (uint16, error) { return s.CipherSuite, nil }

func (s *StubCodecs) AcceptCipherSuite(id uint16) error {
	if id != s.CipherSuite {
		return errBadMessage
	}
	return nil
}

func (s *StubCodecs) RecvSSLv2ClientHello(conn *Connection, body []byte) error {
	conn.SetClientVersion(TLS1_2.Internal())
	conn.SetActualVersion(TLS1_2.Internal())
	return nil
}

// Send produces the body for every state this stub owns.
func (s *StubCodecs) Send(conn *Connection, state HandshakeState) ([]byte, error) {
	switch state {
	case StateClientHello:
		return s.sendClientHello(conn)
	case StateServerCert, StateServerCertStatus, StateServerKey, StateServerCertReq,
		StateServerHelloDone, StateClientCert, StateClientKey, StateClientCertVerify:
		return []byte{}, nil
	case StateClientChangeCipherSpec, StateServerChangeCipherSpec:
		return []byte{0x01}, nil
	case StateClientFinished:
		return finishedBody(conn, RoleClient), nil
	case StateServerFinished:
		return finishedBody(conn, RoleServer), nil
	default:
		return nil, newInternalError("StubCodecs has no Send case for state %s", state)
	}
}

// Recv consumes the body for every state this stub owns.
func (s *StubCodecs) Recv(conn *Connection, state HandshakeState, body []byte) error {
	switch state {
	case StateClientHello:
		return s.recvClientHello(conn, body)
	case StateServerCert, StateServerCertStatus, StateServerKey, StateServerCertReq,
		StateServerHelloDone, StateClientCert, StateClientKey, StateClientCertVerify:
		return nil
	case StateClientChangeCipherSpec, StateServerChangeCipherSpec:
		if len(body) != 1 || body[0] != 0x01 {
			return errBadMessage
		}
		return nil
	case StateClientFinished:
		return checkFinished(conn, RoleClient, body)
	case StateServerFinished:
		return checkFinished(conn, RoleServer, body)
	default:
		return newInternalError("StubCodecs has no Recv case for state %s", state)
	}
}

// sendClientHello writes the minimal ClientHello a server-role StubCodecs
// needs to see: version, 32-byte random, empty session_id, a one-entry
// cipher_suites list, and null-only compression_methods.
func (s *StubCodecs) sendClientHello(conn *Connection) ([]byte, error) {
	body := make([]byte, 0, 2+randomLength+1+2+2+1+1)
	v := versionFromInternal(conn.cfg.maxSupportedVersion())
	body = append(body, v.Major, v.Minor)

	random := make([]byte, randomLength)
	if err := conn.Random().Fill(random); err != nil {
		return nil, err
	}
	body = append(body, random...)

	body = append(body, 0x00) // session_id length

	suites := make([]byte, 2)
	binary.BigEndian.PutUint16(suites, s.CipherSuite)
	body = append(body, 0x00, 0x02)
	body = append(body, suites...)

	body = append(body, 0x01, 0x00) // compression_methods: [null]

	conn.SetClientVersion(v.Internal())
	conn.SetActualVersion(v.Internal())
	return body, nil
}

func (s *StubCodecs) recvClientHello(conn *Connection, body []byte) error {
	if len(body) < 2+randomLength+1 {
		return errBadMessage
	}
	v := ProtocolVersion{Major: body[0], Minor: body[1]}
	conn.SetClientVersion(v.Internal())
	if v.Internal() < conn.cfg.maxSupportedVersion() {
		conn.SetActualVersion(v.Internal())
	} else {
		conn.SetActualVersion(conn.cfg.maxSupportedVersion())
	}
	return nil
}

func finishedBody(conn *Connection, side Role) []byte {
	return conn.FinishedDigest(side)
}

func checkFinished(conn *Connection, side Role, body []byte) error {
	want := conn.FinishedDigest(side)
	if len(body) != len(want) {
		return errVerifyDataMismatch
	}
	for i := range body {
		if body[i] != want[i] {
			return errVerifyDataMismatch
		}
	}
	return nil
}
