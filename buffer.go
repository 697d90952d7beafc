package s2n

// growBuffer is a dual-cursor byte buffer: bytes are appended at the tail
// and consumed from the head, matching the s2n_stuffer write/read-cursor
// semantics used for conn.in, conn.headerIn, and conn.handshake.io.
// Unlike a datagram-oriented
// fragment buffer, messages arrive in order over a reliable stream, so
// no offset bookkeeping or out-of-order reassembly is needed — just
// append and drain.
//
// grounded on fragment_buffer.go's buffer-ownership shape (its
// cache/pop split becomes append/raw/drain here, simplified for in-order
// delivery).
type growBuffer struct {
	data []byte
	read int
}

// available returns the number of unread bytes remaining.
func (b *growBuffer) available() int {
	return len(b.data) - b.read
}

// write appends p to the tail of the buffer.
func (b *growBuffer) write(p []byte) {
	b.data = append(b.data, p...)
}

// raw returns the next n unread bytes without copying and advances the
// read cursor past them. n must not exceed available(); callers that
// need a bound check should call available() first.
//
// grounded on s2n_stuffer_raw_read, used by handshake_write_io to borrow
// a fragment-sized slice straight out of conn.handshake.io.
func (b *growBuffer) raw(n int) []byte {
	out := b.data[b.read : b.read+n]
	b.read += n
	return out
}

// copyTo drains up to n bytes from b into dst, returning the number of
// bytes actually moved (min(n, b.available())).
//
// grounded on s2n_stuffer_copy, used by read_full_handshake_message to
// move bytes from conn.in into conn.handshake.io.
func (b *growBuffer) copyTo(dst *growBuffer, n int) int {
	if n > b.available() {
		n = b.available()
	}
	dst.write(b.data[b.read : b.read+n])
	b.read += n
	return n
}

// peek returns the next n unread bytes without advancing the cursor.
func (b *growBuffer) peek(n int) []byte {
	return b.data[b.read : b.read+n]
}

// wipe discards all data and resets both cursors to zero, matching
// s2n_stuffer_wipe. The backing array is reused.
func (b *growBuffer) wipe() {
	b.data = b.data[:0]
	b.read = 0
}

// compact drops already-read bytes from the front of the backing array,
// so a long-lived buffer (conn.in across many records) doesn't grow
// without bound while only ever being appended to.
func (b *growBuffer) compact() {
	if b.read == 0 {
		return
	}
	n := copy(b.data, b.data[b.read:])
	b.data = b.data[:n]
	b.read = 0
}
