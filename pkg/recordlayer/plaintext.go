package recordlayer

import (
	"errors"
	"io"

	"github.com/gilwalzer/s2n"
)

var _ s2n.RecordLayer = (*PlaintextRecordLayer)(nil)

// Transport is the minimal capability PlaintextRecordLayer needs from
// whatever moves bytes between peers. A Transport is expected to behave
// non-blockingly: when no data is currently available, Read must return
// an error satisfying `interface{ Temporary() bool }` with Temporary()
// true (as github.com/pion/transport/v3/packetio.Buffer does once a read
// deadline has passed), rather than blocking the calling goroutine.
type Transport interface {
	io.Reader
	io.Writer
}

// PlaintextRecordLayer is a reference s2n.RecordLayer: it frames
// handshake/ChangeCipherSpec/Alert/ApplicationData payloads as TLS
// records and exchanges them over a Transport, without ever encrypting
// them. It exists so the driver can be exercised and demonstrated
// end-to-end without pulling in cipher-suite code, which is out of
// scope.
//
// grounded on RecordLayer.Marshal/Unmarshal in record_layer.go from the
// teacher, generalized from a one-shot datagram codec to a buffered
// stream reader/writer (TLS rides a reliable stream; DTLS's
// unpackDatagram multi-record-per-packet handling does not apply).
type PlaintextRecordLayer struct {
	transport Transport
	version   Version

	readBuf  []byte // bytes read from transport not yet consumed
	writeBuf []byte // bytes queued for the next Flush
}

// New creates a PlaintextRecordLayer that stamps outbound records with
// version and reads/writes through transport.
func New(transport Transport, version Version) *PlaintextRecordLayer {
	return &PlaintextRecordLayer{transport: transport, version: version}
}

// ReadRecord implements s2n.RecordLayer.
func (p *PlaintextRecordLayer) ReadRecord() (ContentType, []byte, error) {
	for len(p.readBuf) < HeaderSize {
		if err := p.fill(); err != nil {
			return 0, nil, err
		}
	}

	var hdr Header
	if err := hdr.Unmarshal(p.readBuf); err != nil {
		return 0, nil, err
	}

	total := HeaderSize + int(hdr.Length)
	for len(p.readBuf) < total {
		if err := p.fill(); err != nil {
			return 0, nil, err
		}
	}

	payload := append([]byte(nil), p.readBuf[HeaderSize:total]...)
	p.readBuf = p.readBuf[total:]
	return hdr.ContentType, payload, nil
}

// fill performs one Read from the transport, appending whatever arrived
// to readBuf, and translates a Temporary transport error into this
// package's TemporaryError.
func (p *PlaintextRecordLayer) fill() error {
	buf := make([]byte, MaxFragmentLength+HeaderSize)
	n, err := p.transport.Read(buf)
	if n > 0 {
		p.readBuf = append(p.readBuf, buf[:n]...)
	}
	if err != nil {
		var temp interface{ Temporary() bool }
		if errors.As(err, &temp) && temp.Temporary() {
			return &TemporaryError{Err: err}
		}
		return err
	}
	if n == 0 {
		return &TemporaryError{Err: errNoDataYet}
	}
	return nil
}

var errNoDataYet = errors.New("recordlayer: no data available") //nolint:err113

// WriteRecord implements s2n.RecordLayer.
func (p *PlaintextRecordLayer) WriteRecord(ct ContentType, payload []byte) error {
	hdr := Header{ContentType: ct, Version: p.version, Length: uint16(len(payload))}
	raw, err := hdr.Marshal()
	if err != nil {
		return err
	}
	p.writeBuf = append(p.writeBuf, raw...)
	p.writeBuf = append(p.writeBuf, payload...)
	return nil
}

// MaxWritePayload implements s2n.RecordLayer.
func (p *PlaintextRecordLayer) MaxWritePayload() int {
	return MaxFragmentLength
}

// Flush implements s2n.RecordLayer.
func (p *PlaintextRecordLayer) Flush() error {
	for len(p.writeBuf) > 0 {
		n, err := p.transport.Write(p.writeBuf)
		if n > 0 {
			p.writeBuf = p.writeBuf[n:]
		}
		if err != nil {
			var temp interface{ Temporary() bool }
			if errors.As(err, &temp) && temp.Temporary() {
				return &TemporaryError{Err: err}
			}
			return err
		}
	}
	return nil
}
