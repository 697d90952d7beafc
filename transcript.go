package s2n

import (
	"crypto/md5"  //nolint:gosec // TLS 1.0/1.1 PRF requires MD5+SHA-1 concatenation
	"crypto/sha1" //nolint:gosec // required by the TLS 1.0/1.1 Finished PRF
	"crypto/sha256"
	"hash"
)

// transcript accumulates six independent rolling hashes over every
// handshake message byte exchanged so far, split by hash algorithm and by
// which side's Finished verify_data they feed.
// TLS 1.0/1.1 Finished messages need MD5+SHA-1; TLS 1.2 needs SHA-256; the
// driver keeps all six running so the version doesn't need to be settled
// before hashing starts.
//
// grounded on s2n_conn_update_handshake_hashes in s2n_handshake_io.c,
// which updates six hash.Hash-equivalent accumulators per call; the
// "push everything, select at the end" shape follows handshake_cache.go's
// push/combinedHandshake split, specialized here to running hashes
// instead of a replayable byte cache.
type transcript struct {
	clientMD5, serverMD5       hash.Hash
	clientSHA1, serverSHA1     hash.Hash
	clientSHA256, serverSHA256 hash.Hash
}

func newTranscript() *transcript {
	return &transcript{
		clientMD5:    md5.New(),  //nolint:gosec
		serverMD5:    md5.New(),  //nolint:gosec
		clientSHA1:   sha1.New(), //nolint:gosec
		serverSHA1:   sha1.New(), //nolint:gosec
		clientSHA256: sha256.New(),
		serverSHA256: sha256.New(),
	}
}

// update feeds data into all six hashers, in the order they must never
// observe diverging inputs: every handshake message, in wire order,
// regardless of which side sent it or which content type carried it.
//
// grounded on s2n_conn_update_handshake_hashes; the read path calls this
// once per complete (reassembled) handshake message, the write path once
// per outbound record fragment, and the SSLv2 path twice (header bytes,
// then body). Each byte is still hashed exactly once, in wire order.
func (t *transcript) update(data []byte) {
	t.clientMD5.Write(data)
	t.serverMD5.Write(data)
	t.clientSHA1.Write(data)
	t.serverSHA1.Write(data)
	t.clientSHA256.Write(data)
	t.serverSHA256.Write(data)
}

// clientMD5SHA1 returns the concatenated MD5||SHA-1 digest of everything
// hashed so far, the TLS 1.0/1.1 PRF input for the client's Finished
// verify_data.
func (t *transcript) clientMD5SHA1() []byte {
	return concatSums(t.clientMD5, t.clientSHA1)
}

// serverMD5SHA1 mirrors clientMD5SHA1 for the server's Finished message.
func (t *transcript) serverMD5SHA1() []byte {
	return concatSums(t.serverMD5, t.serverSHA1)
}

// clientSHA256Sum returns the TLS 1.2 PRF input for the client's
// Finished verify_data.
func (t *transcript) clientSHA256Sum() []byte {
	return t.clientSHA256.Sum(nil)
}

// serverSHA256Sum mirrors clientSHA256Sum for the server's Finished
// message.
func (t *transcript) serverSHA256Sum() []byte {
	return t.serverSHA256.Sum(nil)
}

func concatSums(a, b hash.Hash) []byte {
	out := make([]byte, 0, a.Size()+b.Size())
	out = a.Sum(out)
	return b.Sum(out)
}
