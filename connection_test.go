package s2n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnectionRequiresConfig(t *testing.T) {
	_, err := NewConnection(RoleClient, nil)
	assert.ErrorIs(t, err, errNoConfigProvided)
}

func TestNewConnectionRequiresRecordLayer(t *testing.T) {
	_, err := NewConnection(RoleClient, &Config{})
	assert.ErrorIs(t, err, errNoRecordLayer)
}

func TestNewConnectionDefaultsRandomSource(t *testing.T) {
	cfg := &Config{RecordLayer: noopRecordLayer{}}
	conn, err := NewConnection(RoleClient, cfg)
	require.NoError(t, err)
	assert.NotNil(t, conn.Random())

	buf := make([]byte, 8)
	assert.NoError(t, conn.Random().Fill(buf))
}

func TestNewConnectionStartsAtClientHello(t *testing.T) {
	conn := newTestConnection(t, RoleServer, &Config{})
	assert.Equal(t, StateClientHello, conn.State())
	assert.Equal(t, RoleServer, conn.Role())
}

func TestConnectionVersionAccessors(t *testing.T) {
	conn := newTestConnection(t, RoleClient, &Config{})
	conn.SetClientVersion(TLS1_1.Internal())
	conn.SetActualVersion(TLS1_0.Internal())

	assert.Equal(t, TLS1_1.Internal(), conn.ClientVersion())
	assert.Equal(t, TLS1_0.Internal(), conn.ActualVersion())
}

func TestTranscriptSumSelectsDigestByVersionAndSide(t *testing.T) {
	conn := newTestConnection(t, RoleClient, &Config{})
	conn.transcript.update([]byte("client hello"))
	conn.transcript.update([]byte("server hello"))

	conn.actualVersion = TLS1_2.Internal()
	clientTLS12 := conn.TranscriptSum(RoleClient)
	serverTLS12 := conn.TranscriptSum(RoleServer)
	assert.Len(t, clientTLS12, 32)
	assert.Len(t, serverTLS12, 32)
	assert.NotEqual(t, clientTLS12, serverTLS12)

	conn.actualVersion = TLS1_1.Internal()
	clientPre12 := conn.TranscriptSum(RoleClient)
	serverPre12 := conn.TranscriptSum(RoleServer)
	assert.Len(t, clientPre12, 36) // MD5 (16) + SHA-1 (20)
	assert.Len(t, serverPre12, 36)
	assert.NotEqual(t, clientPre12, serverPre12)

	assert.NotEqual(t, clientTLS12, clientPre12)
}

func TestAdvanceStateSnapshotsFinishedDigestOnlyAtFinishedStates(t *testing.T) {
	conn := newTestConnection(t, RoleClient, &Config{})
	conn.actualVersion = TLS1_2.Internal()
	conn.transcript.update([]byte("client hello"))

	conn.advanceState(StateServerHello)
	assert.Nil(t, conn.FinishedDigest(RoleClient))
	assert.Nil(t, conn.FinishedDigest(RoleServer))

	conn.advanceState(StateClientFinished)
	snapshot := conn.FinishedDigest(RoleClient)
	assert.NotNil(t, snapshot)

	// Further transcript updates (the Finished message itself being
	// hashed) must not change the already-captured snapshot.
	conn.transcript.update([]byte("client finished body"))
	assert.Equal(t, snapshot, conn.FinishedDigest(RoleClient))
}

func TestCryptoRandSourceFillsRequestedLength(t *testing.T) {
	var src cryptoRandSource
	buf := make([]byte, 32)
	require.NoError(t, src.Fill(buf))
}
