package s2n

// ProtocolVersion is the wire (major, minor) pair carried in the record
// header and in ClientHello/ServerHello, together with its internal
// major*10+minor encoding.
//
// grounded on pkg/protocol/version.go's Version type.
//
// https://tools.ietf.org/html/rfc5246#section-6.2.1
type ProtocolVersion struct {
	Major, Minor uint8
}

// Internal returns the major*10+minor encoding used throughout this
// driver for version comparisons.
func (v ProtocolVersion) Internal() int {
	return int(v.Major)*10 + int(v.Minor)
}

// Equal reports whether two protocol versions are the same wire value.
func (v ProtocolVersion) Equal(o ProtocolVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor
}

// Known TLS wire versions and their internal encodings.
var (
	SSLv3  = ProtocolVersion{Major: 3, Minor: 0} // 30
	TLS1_0 = ProtocolVersion{Major: 3, Minor: 1} // 31
	TLS1_1 = ProtocolVersion{Major: 3, Minor: 2} // 32
	TLS1_2 = ProtocolVersion{Major: 3, Minor: 3} // 33
)

const (
	// MinSupportedVersion is the lowest actual_protocol_version this
	// driver will negotiate.
	MinSupportedVersion = 30
	// MaxSupportedVersion is the highest actual_protocol_version this
	// driver will negotiate.
	MaxSupportedVersion = 33
)

// versionFromInternal converts the major*10+minor encoding back to wire
// bytes; only defined for values obtained from Internal().
func versionFromInternal(v int) ProtocolVersion {
	return ProtocolVersion{Major: uint8(v / 10), Minor: uint8(v % 10)} //nolint:gosec
}

// inSupportedRange reports whether an internal-encoded version lies in
// [SSLv3, TLS1.2].
func inSupportedRange(v int) bool {
	return v >= MinSupportedVersion && v <= MaxSupportedVersion
}
