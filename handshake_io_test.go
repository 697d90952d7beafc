package s2n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRecordLayer captures every WriteRecord call and serves queued
// ReadRecord responses in order, letting tests drive handshake_io.go's
// read/write helpers directly without a real transport.
type recordingRecordLayer struct {
	maxPayload int
	written    []writtenRecord
	flushes    int

	reads    []readResult
	readIdx  int
}

type writtenRecord struct {
	ct      ContentType
	payload []byte
}

type readResult struct {
	ct      ContentType
	payload []byte
	err     error
}

func (r *recordingRecordLayer) ReadRecord() (ContentType, []byte, error) {
	if r.readIdx >= len(r.reads) {
		return 0, nil, errWouldBlockRead
	}
	res := r.reads[r.readIdx]
	r.readIdx++
	return res.ct, res.payload, res.err
}

func (r *recordingRecordLayer) WriteRecord(ct ContentType, payload []byte) error {
	r.written = append(r.written, writtenRecord{ct: ct, payload: append([]byte(nil), payload...)})
	return nil
}

func (r *recordingRecordLayer) MaxWritePayload() int {
	if r.maxPayload == 0 {
		return 1 << 14
	}
	return r.maxPayload
}

func (r *recordingRecordLayer) Flush() error {
	r.flushes++
	return nil
}

func TestProduceMessageServerHelloUsesItsOwnCodec(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	conn := newTestConnection(t, RoleServer, &Config{
		Codecs:       codecs,
		CipherSuites: codecs,
		Random:       fakeRandom{fill: 0x11},
	})
	conn.handshake.state = StateServerHello
	conn.clientVersion = TLS1_2.Internal()

	action, err := actionFor(StateServerHello)
	require.NoError(t, err)
	require.NoError(t, conn.produceMessage(action))
	assert.Positive(t, conn.handshake.io.available())
}

func TestProduceMessageNoCodecIsInternalError(t *testing.T) {
	conn := newTestConnection(t, RoleServer, &Config{})
	conn.handshake.state = StateServerCert

	action, err := actionFor(StateServerCert)
	require.NoError(t, err)

	err = conn.produceMessage(action)
	var internal *InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestHandshakeWriteIOFragmentsAcrossMaxPayload(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	rl := &recordingRecordLayer{maxPayload: 16}
	conn := newTestConnection(t, RoleClient, &Config{
		RecordLayer: rl,
		Codecs:      codecs,
		Flow:        codecs,
		Random:      fakeRandom{fill: 0x22},
	})

	for conn.handshake.state == StateClientHello {
		require.NoError(t, conn.handshakeWriteIO())
	}

	assert.Equal(t, StateServerHello, conn.State())
	assert.Greater(t, len(rl.written), 1, "client hello body should have been split across multiple records")
	for _, rec := range rl.written {
		assert.LessOrEqual(t, len(rec.payload), 16)
		assert.Equal(t, ContentTypeHandshake, rec.ct)
	}
}

func TestHandshakeWriteIOWrongTurnIsInternalError(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	conn := newTestConnection(t, RoleServer, &Config{Codecs: codecs, Flow: codecs})

	err := conn.handshakeWriteIO()
	var internal *InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestHandshakeReadIOApplicationDataBeforeHandshakeOverIsRefused(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	rl := &recordingRecordLayer{reads: []readResult{{ct: ContentTypeApplicationData, payload: []byte("x")}}}
	conn := newTestConnection(t, RoleServer, &Config{RecordLayer: rl, Codecs: codecs, Flow: codecs})
	conn.handshake.state = StateClientHello

	err := conn.handshakeReadIO()
	assert.ErrorIs(t, err, errRenegotiationNotSupported)
}

func TestHandshakeReadIOUnknownContentTypeIsIgnored(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	rl := &recordingRecordLayer{reads: []readResult{{ct: ContentType(99), payload: []byte("x")}}}
	conn := newTestConnection(t, RoleServer, &Config{RecordLayer: rl, Codecs: codecs, Flow: codecs})
	conn.handshake.state = StateClientHello

	require.NoError(t, conn.handshakeReadIO())
	assert.Equal(t, StateClientHello, conn.State(), "an unrecognized record must not advance the state machine")
}

type fakeAlertProcessor struct {
	processed []byte
	err       error
}

func (f *fakeAlertProcessor) ProcessAlert(payload []byte) error {
	f.processed = append([]byte(nil), payload...)
	return f.err
}

func TestHandshakeReadIODispatchesAlerts(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	alerts := &fakeAlertProcessor{}
	rl := &recordingRecordLayer{reads: []readResult{{ct: ContentTypeAlert, payload: []byte{0x02, 0x28}}}}
	conn := newTestConnection(t, RoleServer, &Config{RecordLayer: rl, Codecs: codecs, Flow: codecs, Alerts: alerts})
	conn.handshake.state = StateClientHello

	require.NoError(t, conn.handshakeReadIO())
	assert.Equal(t, []byte{0x02, 0x28}, alerts.processed)
	assert.Equal(t, StateClientHello, conn.State(), "an alert never advances handshake.state on its own")
}

func TestHandleChangeCipherSpecRejectsWrongLength(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	conn := newTestConnection(t, RoleClient, &Config{Codecs: codecs, Flow: codecs})
	conn.handshake.state = StateClientChangeCipherSpec

	err := conn.handleChangeCipherSpec([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, errShortCCS)

	err = conn.handleChangeCipherSpec(nil)
	assert.ErrorIs(t, err, errShortCCS)
}

func TestHandleChangeCipherSpecAdvancesState(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	conn := newTestConnection(t, RoleClient, &Config{Codecs: codecs, Flow: codecs})
	conn.handshake.state = StateClientChangeCipherSpec

	require.NoError(t, conn.handleChangeCipherSpec([]byte{0x01}))
	assert.Equal(t, StateClientFinished, conn.State())
}

func TestReadFullHandshakeMessageAcrossFragments(t *testing.T) {
	conn := newTestConnection(t, RoleServer, &Config{})
	conn.handshake.state = StateClientHello

	body := make([]byte, 40)
	for i := range body {
		body[i] = byte(i)
	}
	header := []byte{byte(messageTypeClientHello), 0, 0, byte(len(body))}
	full := append(append([]byte(nil), header...), body...)

	conn.in.write(full[:3])
	_, _, needMore, err := conn.readFullHandshakeMessage()
	require.NoError(t, err)
	assert.True(t, needMore, "partial header should ask for more")

	conn.in.write(full[3:10])
	_, _, needMore, err = conn.readFullHandshakeMessage()
	require.NoError(t, err)
	assert.True(t, needMore, "partial body should ask for more")

	conn.in.write(full[10:])
	msgType, gotBody, needMore, err := conn.readFullHandshakeMessage()
	require.NoError(t, err)
	assert.False(t, needMore)
	assert.Equal(t, uint8(messageTypeClientHello), msgType)
	assert.Equal(t, body, gotBody)
}

func TestReadFullHandshakeMessageRejectsOversizeLength(t *testing.T) {
	conn := newTestConnection(t, RoleServer, &Config{})

	header := []byte{byte(messageTypeClientHello), 0xFF, 0xFF, 0xFF}
	conn.in.write(header)

	_, _, _, err := conn.readFullHandshakeMessage()
	assert.ErrorIs(t, err, errBadMessage)
}

func TestHandleHandshakeRecordRejectsWrongMessageType(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	conn := newTestConnection(t, RoleServer, &Config{Codecs: codecs, Flow: codecs})
	conn.handshake.state = StateClientHello

	// ClientChangeCipherSpec's message type where ClientHello is expected.
	record := []byte{byte(messageTypeFinished), 0, 0, 0}
	err := conn.handleHandshakeRecord(record)
	assert.ErrorIs(t, err, errBadMessage)
}

func TestHandleHandshakeRecordFinishedAdvancesState(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	conn := newTestConnection(t, RoleClient, &Config{Codecs: codecs, Flow: codecs})
	conn.actualVersion = TLS1_2.Internal()

	conn.advanceState(StateClientFinished)
	body, err := codecs.Send(conn, StateClientFinished)
	require.NoError(t, err)
	header := []byte{byte(messageTypeFinished), 0, 0, byte(len(body))}
	record := append(header, body...)

	conn.handshake.state = StateClientFinished
	require.NoError(t, conn.handleHandshakeRecord(record))
	assert.Equal(t, StateServerChangeCipherSpec, conn.State())
}

func TestHandleChangeCipherSpecInvokesDelayOnHandlerFailure(t *testing.T) {
	codecs := &failingRecvCodecs{StubCodecs: &StubCodecs{CipherSuite: 0xC02F}, err: errBadMessage}
	delay := &fakeDelay{}
	conn := newTestConnection(t, RoleClient, &Config{Codecs: codecs, Delay: delay})
	conn.handshake.state = StateClientChangeCipherSpec

	err := conn.handleChangeCipherSpec([]byte{0x01})
	assert.ErrorIs(t, err, errBadMessage)
	assert.Equal(t, 1, delay.calls)
}

func TestHandleChangeCipherSpecDoesNotDelayOnSuccess(t *testing.T) {
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	delay := &fakeDelay{}
	conn := newTestConnection(t, RoleClient, &Config{Codecs: codecs, Flow: codecs, Delay: delay})
	conn.handshake.state = StateClientChangeCipherSpec

	require.NoError(t, conn.handleChangeCipherSpec([]byte{0x01}))
	assert.Equal(t, 0, delay.calls)
}

func TestHandleHandshakeRecordInvokesDelayOnHandlerFailure(t *testing.T) {
	codecs := &failingRecvCodecs{StubCodecs: &StubCodecs{CipherSuite: 0xC02F}, err: errBadMessage}
	delay := &fakeDelay{}
	conn := newTestConnection(t, RoleClient, &Config{Codecs: codecs, Delay: delay})
	conn.handshake.state = StateClientFinished

	body := []byte("bogus finished body")
	header := []byte{byte(messageTypeFinished), 0, 0, byte(len(body))}
	record := append(header, body...)

	err := conn.handleHandshakeRecord(record)
	assert.ErrorIs(t, err, errBadMessage)
	assert.Equal(t, 1, delay.calls)
}

func TestHandleHandshakeRecordDoesNotDelayOnSuccess(t *testing.T) {
	delay := &fakeDelay{}
	codecs := &StubCodecs{CipherSuite: 0xC02F}
	conn := newTestConnection(t, RoleClient, &Config{Codecs: codecs, Flow: codecs, Delay: delay})
	conn.actualVersion = TLS1_2.Internal()
	conn.advanceState(StateClientFinished)

	body, err := codecs.Send(conn, StateClientFinished)
	require.NoError(t, err)
	header := []byte{byte(messageTypeFinished), 0, 0, byte(len(body))}
	record := append(header, body...)

	require.NoError(t, conn.handleHandshakeRecord(record))
	assert.Equal(t, 0, delay.calls)
}
