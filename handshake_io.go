package s2n

// BlockedStatus reports why Negotiate returned without finishing, so the
// caller knows whether to wait for more input, more output capacity, or
// nothing at all.
type BlockedStatus int

const (
	// NotBlocked means the handshake completed (or the call needs no
	// further I/O to make progress right now).
	NotBlocked BlockedStatus = iota
	// BlockedOnRead means Negotiate needs more bytes from the peer.
	BlockedOnRead
	// BlockedOnWrite means Negotiate needs the transport to accept more
	// bytes before it can continue.
	BlockedOnWrite
)

func (b BlockedStatus) String() string {
	switch b {
	case NotBlocked:
		return "not_blocked"
	case BlockedOnRead:
		return "blocked_on_read"
	case BlockedOnWrite:
		return "blocked_on_write"
	default:
		return "unknown"
	}
}

const handshakeHeaderLength = 4

// maxHandshakeMessageLength caps a single handshake message's body,
// matching s2n's S2N_MAXIMUM_HANDSHAKE_MESSAGE_LENGTH. It is well below
// 1<<24 (the largest value the 3-byte length field can even encode) so
// this is a real bound, not a check the wire format already enforces.
const maxHandshakeMessageLength = 64 * 1024

// Negotiate drives the handshake state machine forward as far as it can
// go without blocking, returning the reason it stopped. Call it
// repeatedly (after satisfying whatever BlockedStatus it reports) until
// it returns NotBlocked with State() == StateHandshakeOver.
//
// grounded on s2n_negotiate() in s2n_handshake_io.c: a single-threaded,
// non-blocking drive loop, replacing the goroutine/channel/timer
// handshakeFSM.Run in handshaker.go — that concurrency
// model does not fit the cooperative single-threaded contract this driver
// requires.
func (c *Connection) Negotiate() (BlockedStatus, error) {
	if c.closed {
		return NotBlocked, errClosed
	}

	this := c.role.writerLetter()

	for {
		action, err := actionFor(c.handshake.state)
		if err != nil {
			c.closed = true
			return NotBlocked, err
		}
		if action.writer == writerBoth {
			return NotBlocked, nil
		}

		if err := c.cfg.RecordLayer.Flush(); err != nil {
			if isTemporary(err) {
				return BlockedOnWrite, nil
			}
			c.closed = true
			return NotBlocked, err
		}

		if action.writer == this {
			if err := c.handshakeWriteIO(); err != nil {
				if isTemporary(err) {
					return BlockedOnWrite, nil
				}
				c.closed = true
				return NotBlocked, err
			}
		} else {
			if err := c.handshakeReadIO(); err != nil {
				if isTemporary(err) {
					return BlockedOnRead, nil
				}
				c.closed = true
				return NotBlocked, err
			}
		}
	}
}

// handshakeWriteIO produces the current state's outbound message (if the
// handshake.io buffer is empty), fragments it to the record layer's max
// payload, writes one record, and — once the whole message has been
// flushed — advances handshake.state.
//
// grounded on handshake_write_io() in s2n_handshake_io.c.
func (c *Connection) handshakeWriteIO() error {
	if err := validateSendState(c.role, c.handshake.state); err != nil {
		return err
	}

	action, err := actionFor(c.handshake.state)
	if err != nil {
		return err
	}

	if c.handshake.io.available() == 0 {
		if err := c.produceMessage(action); err != nil {
			return err
		}
	}

	maxPayload := c.cfg.RecordLayer.MaxWritePayload()
	n := c.handshake.io.available()
	if n > maxPayload {
		n = maxPayload
	}
	out := c.handshake.io.raw(n)

	if err := c.cfg.RecordLayer.WriteRecord(action.recordType, out); err != nil {
		return err
	}
	if action.recordType == ContentTypeHandshake {
		c.transcript.update(out)
	}

	if err := c.cfg.RecordLayer.Flush(); err != nil {
		return err
	}

	if c.handshake.io.available() == 0 {
		c.handshake.io.wipe()
		next, err := c.resolveNextState(c.handshake.state)
		if err != nil {
			return err
		}
		if err := validateTransition(c.handshake.state, next); err != nil {
			return err
		}
		c.advanceState(next)
	}
	return nil
}

// produceMessage builds the body for the current state into handshake.io,
// prepending the 4-byte handshake header when the state carries a
// handshake message (as opposed to ChangeCipherSpec, which has no
// header).
func (c *Connection) produceMessage(action handshakeAction) error {
	var body []byte
	var err error
	if c.handshake.state == StateServerHello {
		body, err = c.marshalServerHello()
	} else if c.cfg.Codecs != nil {
		body, err = c.cfg.Codecs.Send(c, c.handshake.state)
	} else {
		return newInternalError("no codec available to send state %s", c.handshake.state)
	}
	if err != nil {
		return err
	}

	if action.recordType == ContentTypeHandshake {
		header := make([]byte, handshakeHeaderLength)
		header[0] = byte(action.messageType)
		putUint24(header[1:4], uint32(len(body)))
		c.handshake.io.write(header)
	}
	c.handshake.io.write(body)
	return nil
}

// handshakeReadIO reads and dispatches exactly one record's worth of
// input: ChangeCipherSpec and Alert records are handled and terminate
// the call; a Handshake record may hold one or more (possibly
// fragmented) messages, each dispatched to the state machine as it
// completes.
//
// grounded on handshake_read_io() in s2n_handshake_io.c, including its
// SSLv2 special case and its explicit
// BAD_MESSAGE-on-ApplicationData renegotiation refusal.
func (c *Connection) handshakeReadIO() error {
	if err := validateRecvState(c.role, c.handshake.state); err != nil {
		return err
	}

	recordType, payload, err := c.cfg.RecordLayer.ReadRecord()
	if err != nil {
		return err
	}

	if isSSLv2ClientHello(recordType, payload) {
		return c.handleSSLv2ClientHello(payload)
	}

	switch recordType {
	case ContentTypeApplicationData:
		return errRenegotiationNotSupported
	case ContentTypeChangeCipherSpec:
		return c.handleChangeCipherSpec(payload)
	case ContentTypeAlert:
		if c.cfg.Alerts != nil {
			if err := c.cfg.Alerts.ProcessAlert(payload); err != nil {
				return err
			}
		}
		return nil
	case ContentTypeHandshake:
		return c.handleHandshakeRecord(payload)
	default:
		// An unrecognized content type is ignored: the record is
		// simply dropped, not treated as a fault.
		return nil
	}
}

func (c *Connection) handleChangeCipherSpec(payload []byte) error {
	if len(payload) != 1 {
		return errShortCCS
	}
	if c.cfg.Codecs == nil {
		return newInternalError("no codec available to receive state %s", c.handshake.state)
	}
	if err := c.cfg.Codecs.Recv(c, c.handshake.state, payload); err != nil {
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

func (c *Connection) handleHandshakeRecord(record []byte) error {
	c.in.write(record)
	defer c.in.wipe()

	for c.in.available() > 0 {
		msgType, body, needMore, err := c.readFullHandshakeMessage()
		if err != nil {
			return err
		}
		if needMore {
			return nil
		}

		action, err := actionFor(c.handshake.state)
		if err != nil {
			return err
		}
		if messageType(msgType) != action.messageType {
			return errBadMessage
		}

		if c.handshake.state == StateServerHello {
			err = c.unmarshalServerHello(body)
		} else if c.cfg.Codecs != nil {
			err = c.cfg.Codecs.Recv(c, c.handshake.state, body)
		} else {
			err = newInternalError("no codec available to receive state %s", c.handshake.state)
		}
		c.handshake.io.wipe()
		if err != nil {
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
	}
	return nil
}

// readFullHandshakeMessage moves bytes from conn.in into handshake.io
// until one complete handshake message (header + body) has accumulated,
// hashing it into the transcript as soon as it is complete. needMore is
// true when conn.in ran out before the message did — the caller must
// read another record and call again.
//
// grounded on read_full_handshake_message() in s2n_handshake_io.c.
func (c *Connection) readFullHandshakeMessage() (msgType uint8, body []byte, needMore bool, err error) {
	current := c.handshake.io.available()
	if current < handshakeHeaderLength {
		need := handshakeHeaderLength - current
		if c.in.available() < need {
			c.in.copyTo(&c.handshake.io, c.in.available())
			return 0, nil, true, nil
		}
		c.in.copyTo(&c.handshake.io, need)
	}

	header := c.handshake.io.peek(handshakeHeaderLength)
	msgType = header[0]
	length := uint32(header[1])<<16 | uint32(header[2])<<8 | uint32(header[3])
	if length > maxHandshakeMessageLength {
		return 0, nil, false, errBadMessage
	}

	total := handshakeHeaderLength + int(length)
	toTake := total - c.handshake.io.available()
	if toTake > c.in.available() {
		toTake = c.in.available()
	}
	if toTake > 0 {
		c.in.copyTo(&c.handshake.io, toTake)
	}

	if c.handshake.io.available() == total {
		full := c.handshake.io.peek(total)
		c.transcript.update(full)
		return msgType, full[handshakeHeaderLength:], false, nil
	}
	return 0, nil, true, nil
}

// sleepDelay invokes cfg.Delay, if configured, to dampen the timing
// side channel a read-path handler failure would otherwise open up.
func (c *Connection) sleepDelay() {
	if c.cfg.Delay != nil {
		c.cfg.Delay.SleepDelay()
	}
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}
