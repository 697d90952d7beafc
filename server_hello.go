package s2n

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/cryptobyte"
)

const (
	randomLength    = 32
	maxSessionIDLen = 32
	compressionNull = 0
)

// marshalServerHello builds this server's ServerHello body
// §4.2), following s2n_server_hello_send in s2n_server_hello.c: the
// 4-byte GMT time plus 28 random bytes, an empty session_id (this driver
// does not implement session resumption), the selected cipher_suite, a
// forced-null compression_method, and an opaque extensions blob if the
// caller's Config.Extensions produced one.
//
// grounded on handshake_message_server_hello.go's Marshal from the
// teacher; the raw byte-slice arithmetic there is replaced with
// cryptobyte.Builder, the wire-encoding library the corpus uses
// elsewhere for length-prefixed TLS structures.
func (c *Connection) marshalServerHello() ([]byte, error) {
	if c.clientVersion < c.actualVersion {
		c.actualVersion = c.clientVersion
	}
	c.pending.signatureDigest = selectSignatureDigestAlgorithm(c.actualVersion)

	var random [randomLength]byte
	binary.BigEndian.PutUint32(random[:4], uint32(time.Now().Unix())) //nolint:gosec
	if err := c.cfg.Random.Fill(random[4:]); err != nil {
		return nil, err
	}
	c.pending.serverRandom = random

	if c.cfg.CipherSuites == nil {
		return nil, newInternalError("no CipherSuiteSelector configured")
	}
	cipherSuite, err := c.cfg.CipherSuites.SelectCipherSuite()
	if err != nil {
		return nil, err
	}
	c.pending.cipherSuite = cipherSuite

	var ext []byte
	if c.cfg.Extensions != nil {
		ext, err = c.cfg.Extensions.EncodeExtensions()
		if err != nil {
			return nil, err
		}
	}

	var b cryptobyte.Builder
	v := versionFromInternal(c.actualVersion)
	b.AddUint8(v.Major)
	b.AddUint8(v.Minor)
	b.AddBytes(random[:])
	b.AddUint8(0) // session_id length: resumption unsupported
	b.AddUint16(cipherSuite)
	b.AddUint8(compressionNull)
	if len(ext) > 0 {
		b.AddUint16LengthPrefixed(func(child *cryptobyte.Builder) {
			child.AddBytes(ext)
		})
	}
	return b.Bytes()
}

// unmarshalServerHello parses a peer's ServerHello body into pending
// connection state, following s2n_server_hello_recv.
//
// grounded on handshake_message_server_hello.go's Unmarshal, replacing
// its manual offset arithmetic with cryptobyte.String.
func (c *Connection) unmarshalServerHello(body []byte) error {
	s := cryptobyte.String(body)

	var major, minor uint8
	if !s.ReadUint8(&major) || !s.ReadUint8(&minor) {
		return errBadMessage
	}
	serverVersion := ProtocolVersion{Major: major, Minor: minor}.Internal()
	if serverVersion > c.actualVersion {
		return errBadMessage
	}
	c.actualVersion = serverVersion
	if !inSupportedRange(c.actualVersion) {
		return errBadMessage
	}
	c.pending.signatureDigest = selectSignatureDigestAlgorithm(c.actualVersion)

	var random []byte
	if !s.ReadBytes(&random, randomLength) {
		return errBadMessage
	}
	copy(c.pending.serverRandom[:], random)

	var sessionID cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&sessionID) {
		return errBadMessage
	}
	if len(sessionID) > maxSessionIDLen {
		return errBadMessage
	}
	c.pending.sessionID = append([]byte(nil), sessionID...)

	var cipherSuite uint16
	if !s.ReadUint16(&cipherSuite) {
		return errBadMessage
	}
	if c.cfg.CipherSuites == nil {
		return newInternalError("no CipherSuiteSelector configured")
	}
	if err := c.cfg.CipherSuites.AcceptCipherSuite(cipherSuite); err != nil {
		return err
	}
	c.pending.cipherSuite = cipherSuite

	var compression uint8
	if !s.ReadUint8(&compression) {
		return errBadMessage
	}
	if compression != compressionNull {
		return errBadMessage
	}
	c.pending.compressionMethod = compression

	if len(s) < 2 {
		return nil
	}
	var ext cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&ext) {
		return errBadMessage
	}
	if c.cfg.Extensions != nil {
		return c.cfg.Extensions.DecodeExtensions(ext)
	}
	return nil
}
