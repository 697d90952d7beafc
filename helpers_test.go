package s2n

// fakeRandom fills every byte with a fixed value so tests get
// deterministic, inspectable random fields instead of crypto/rand
// output.
type fakeRandom struct{ fill byte }

func (f fakeRandom) Fill(b []byte) error {
	for i := range b {
		b[i] = f.fill
	}
	return nil
}

// fakeCipherSuites always offers/accepts the same suite, for tests that
// don't care about negotiation policy.
type fakeCipherSuites struct {
	suite  uint16
	accept error
}

func (f *fakeCipherSuites) SelectCipherSuite() (uint16, error) { return f.suite, nil }
func (f *fakeCipherSuites) AcceptCipherSuite(id uint16) error {
	if f.accept != nil {
		return f.accept
	}
	if id != f.suite {
		return errBadMessage
	}
	return nil
}

// fakeDelay counts SleepDelay calls instead of actually sleeping, so
// tests can assert on when the read path invokes it.
type fakeDelay struct{ calls int }

func (f *fakeDelay) SleepDelay() { f.calls++ }

// failingRecvCodecs wraps a *StubCodecs but always fails Recv with err,
// for exercising a read-path handler-failure branch without needing a
// genuinely malformed message body.
type failingRecvCodecs struct {
	*StubCodecs
	err error
}

func (f *failingRecvCodecs) Recv(*Connection, HandshakeState, []byte) error { return f.err }

// noopRecordLayer satisfies RecordLayer without touching any transport;
// tests that never call Negotiate only need NewConnection to accept a
// non-nil RecordLayer.
type noopRecordLayer struct{}

func (noopRecordLayer) ReadRecord() (ContentType, []byte, error) { return 0, nil, errWouldBlockRead }
func (noopRecordLayer) WriteRecord(ContentType, []byte) error    { return nil }
func (noopRecordLayer) MaxWritePayload() int                     { return 1 << 14 }
func (noopRecordLayer) Flush() error                             { return nil }

func newTestConnection(t testingT, role Role, cfg *Config) *Connection {
	if cfg.RecordLayer == nil {
		cfg.RecordLayer = noopRecordLayer{}
	}
	conn, err := NewConnection(role, cfg)
	if err != nil {
		t.Fatalf("NewConnection: %v", err)
	}
	return conn
}

// testingT is the subset of *testing.T newTestConnection needs, so this
// helper file doesn't have to import "testing" just for a type name used
// only as a parameter constraint.
type testingT interface {
	Fatalf(format string, args ...any)
}
