package s2n

// SignatureDigestAlgorithm records which digest a certificate signature
// (in ServerKeyExchange/CertificateVerify) is computed over. This driver
// selects the value but never itself signs or verifies — that belongs to
// the Codecs capability supplied by the caller.
//
// grounded on signature_algorithm.go's enum-with-map shape from the
// teacher, values taken from s2n_server_hello.c's literal selection.
type SignatureDigestAlgorithm int

const (
	// SignatureDigestMD5SHA1 concatenates MD5 and SHA-1 digests, as
	// required for TLS 1.0 and TLS 1.1 signatures.
	SignatureDigestMD5SHA1 SignatureDigestAlgorithm = iota
	// SignatureDigestSHA1 is used for TLS 1.2 in this driver, matching
	// s2n_server_hello.c's literal default (TLS 1.2 connections that
	// negotiate a different signature_algorithms extension value
	// override this via the Codecs capability).
	SignatureDigestSHA1
)

func (a SignatureDigestAlgorithm) String() string {
	switch a {
	case SignatureDigestMD5SHA1:
		return "md5_sha1"
	case SignatureDigestSHA1:
		return "sha1"
	default:
		return "unknown"
	}
}

// selectSignatureDigestAlgorithm picks the default digest for a
// negotiated protocol version, per s2n_server_hello.c: SHA-1 alone at
// TLS 1.2, MD5+SHA-1 below it.
func selectSignatureDigestAlgorithm(actualVersion int) SignatureDigestAlgorithm {
	if actualVersion == TLS1_2.Internal() {
		return SignatureDigestSHA1
	}
	return SignatureDigestMD5SHA1
}
