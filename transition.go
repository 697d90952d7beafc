package s2n

// validateSendState checks that it is this Connection's turn to write at
// its current state: the table's writer for conn's state must name conn's
// own role.
//
// grounded on validate_send_state() in s2n_handshake_io.c, called at the
// top of handshake_write_io().
func validateSendState(role Role, state HandshakeState) error {
	a, err := actionFor(state)
	if err != nil {
		return err
	}
	if a.writer == writerBoth {
		return newInternalError("no party may write at state %s", state)
	}
	if a.writer != role.writerLetter() {
		return newInternalError("state %s expects %s to write, not %s", state, a.writer, role)
	}
	return nil
}

// validateRecvState checks that it is the peer's turn to write at conn's
// current state: the table's writer must name the OTHER role.
//
// grounded on validate_recv_state() in s2n_handshake_io.c, called at the
// top of read_full_handshake_message()/handshake_read_io().
func validateRecvState(role Role, state HandshakeState) error {
	a, err := actionFor(state)
	if err != nil {
		return err
	}
	if a.writer == writerBoth {
		return newInternalError("no party may write at state %s", state)
	}
	if a.writer == role.writerLetter() {
		return newInternalError("state %s expects the peer to write, not %s", state, role)
	}
	return nil
}

// validateTransition checks that moving from current to next is a legal
// edge in the table. Called after a handler completes,
// before handshake.state is advanced to next.
//
// grounded on validate_transition() in s2n_handshake_io.c.
func validateTransition(current, next HandshakeState) error {
	if !current.valid() || !next.valid() {
		return newInternalError("invalid handshake state in transition %d -> %d", current, next)
	}
	if !legalNext(current, next) {
		return &FatalError{Err: &invalidTransitionError{from: current, to: next}}
	}
	return nil
}

// resolveNextState picks the successor state a completing handler at
// conn's current state should advance to: the table's sole next entry
// when there is only one, or conn.cfg.Flow's choice among the table's
// candidates when there is more than one.
func (c *Connection) resolveNextState(state HandshakeState) (HandshakeState, error) {
	action, err := actionFor(state)
	if err != nil {
		return 0, err
	}
	switch len(action.next) {
	case 0:
		return 0, newInternalError("state %s has no successor to resolve", state)
	case 1:
		return action.next[0], nil
	default:
		if c.cfg.Flow == nil {
			return 0, newInternalError("state %s has %d legal successors but no FlowSelector configured", state, len(action.next))
		}
		return c.cfg.Flow.NextState(c, state, action.next)
	}
}

type invalidTransitionError struct {
	from, to HandshakeState
}

func (e *invalidTransitionError) Error() string {
	return "invalid handshake state transition: " + e.from.String() + " -> " + e.to.String()
}
