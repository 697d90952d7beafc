// Package recordlayer is a reference implementation of the s2n.RecordLayer
// capability: it frames payloads into plaintext TLS records and reads
// them back off an arbitrary transport. Cipher-suite encryption is out
// of scope — see the module's DESIGN.md, "Dropped teacher material" — so this layer
// only ever produces and consumes plaintext records.
package recordlayer

import (
	"encoding/binary"

	"github.com/gilwalzer/s2n"
	"golang.org/x/crypto/cryptobyte"
)

// HeaderSize is the fixed 5-byte TLS record header: content type (1),
// protocol version (2), length (2).
//
// grounded on RecordLayerHeader.Marshal/Unmarshal in record_layer_header.go
// cut down from DTLS's 13-byte header (which adds a
// 2-byte epoch and 6-byte sequence number this driver's transport, a
// reliable ordered stream, does not need) to TLS's 5-byte one, and
// recoded with cryptobyte in place of raw slice arithmetic.
const HeaderSize = 5

// MaxFragmentLength is the largest payload one record may carry,
// RFC 5246 §6.2.1's 2^14 limit.
const MaxFragmentLength = 1 << 14

// Header is the 5-byte record header.
type Header struct {
	ContentType ContentType
	Version     Version
	Length      uint16
}

// ContentType is an alias for s2n.ContentType, not a distinct type: this
// package implements s2n.RecordLayer, so ReadRecord/WriteRecord must
// return/accept the exact type the interface names.
type ContentType = s2n.ContentType

// Version is an alias for s2n.ProtocolVersion, the 2-byte (major, minor)
// pair carried in every record.
type Version = s2n.ProtocolVersion

func (h Header) Marshal() ([]byte, error) {
	if h.Length > MaxFragmentLength {
		return nil, errFragmentTooLarge
	}
	var b cryptobyte.Builder
	b.AddUint8(uint8(h.ContentType))
	b.AddUint8(h.Version.Major)
	b.AddUint8(h.Version.Minor)
	b.AddUint16(h.Length)
	return b.Bytes()
}

func (h *Header) Unmarshal(data []byte) error {
	if len(data) < HeaderSize {
		return errHeaderTooShort
	}
	h.ContentType = ContentType(data[0])
	h.Version = Version{Major: data[1], Minor: data[2]}
	h.Length = binary.BigEndian.Uint16(data[3:5])
	return nil
}
