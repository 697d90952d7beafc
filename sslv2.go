package s2n

// contentTypeSSLv2ClientHello is a sentinel ContentType a RecordLayer may
// return from ReadRecord to signal that the record it just parsed had the
// high bit of its first header byte set — the legacy SSLv2-compatible
// ClientHello framing
// section. It is never a value in RFC 5246 §6.2.1's range (20-23), so it
// cannot collide with a real content type.
//
// grounded on the isSSLv2 out-parameter of s2n_read_full_record in
// s2n_recv.c: record-header parsing (and therefore SSLv2 detection)
// belongs to the record layer, an external collaborator,
// so this driver only defines the signal a RecordLayer implementation
// uses to report it.
const contentTypeSSLv2ClientHello ContentType = 0

func isSSLv2ClientHello(recordType ContentType, payload []byte) bool {
	return recordType == contentTypeSSLv2ClientHello
}

// handleSSLv2ClientHello implements s2n_handshake_io.c's isSSLv2 branch:
// legal only at CLIENT_HELLO, hashes the 3 type+version bytes stripped
// from the record header separately from the body, then hands the body
// to the Codecs capability's SSLv2Support extension if the caller
// provided one.
func (c *Connection) handleSSLv2ClientHello(payload []byte) error {
	if c.handshake.state != StateClientHello {
		return errBadMessage
	}
	if len(payload) < 3 {
		return errBadMessage
	}

	c.transcript.update(payload[:3])
	c.transcript.update(payload[3:])

	sslv2, ok := c.cfg.Codecs.(SSLv2Support)
	if !ok {
		return newInternalError("record layer reported an SSLv2 ClientHello but Codecs does not implement SSLv2Support")
	}
	if err := sslv2.RecvSSLv2ClientHello(c, payload[3:]); err != nil {
		c.sleepDelay()
		return err
	}

	next, err := c.resolveNextState(c.handshake.state)
	if err != nil {
		return err
	}
	if err := validateTransition(c.handshake.state, next); err != nil {
		return err
	}
	c.advanceState(next)
	return nil
}
