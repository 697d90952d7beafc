package s2n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSignatureDigestAlgorithm(t *testing.T) {
	assert.Equal(t, SignatureDigestSHA1, selectSignatureDigestAlgorithm(TLS1_2.Internal()))
	assert.Equal(t, SignatureDigestMD5SHA1, selectSignatureDigestAlgorithm(TLS1_1.Internal()))
	assert.Equal(t, SignatureDigestMD5SHA1, selectSignatureDigestAlgorithm(TLS1_0.Internal()))
}

func TestSignatureDigestAlgorithmString(t *testing.T) {
	assert.Equal(t, "md5_sha1", SignatureDigestMD5SHA1.String())
	assert.Equal(t, "sha1", SignatureDigestSHA1.String())
	assert.Equal(t, "unknown", SignatureDigestAlgorithm(99).String())
}
