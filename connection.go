package s2n

import (
	"crypto/rand"

	"github.com/pion/logging"
)

// pendingParams holds the crypto parameters negotiated but not yet used
// to protect records — cipher_suite, compression, and key material. This
// driver never selects ciphers or derives keys itself (out of scope, see
// DESIGN.md, "Dropped teacher material"); the fields exist as opaque write targets
// for the codecs supplied through Config, mirroring struct
// s2n_handshake's pending_* fields in the original source.
type pendingParams struct {
	cipherSuite       uint16
	compressionMethod uint8
	clientRandom      [32]byte
	serverRandom      [32]byte
	sessionID         []byte
	signatureDigest   SignatureDigestAlgorithm
}

// handshakeStatus is the mutable part of the state machine: current
// state and the per-message reassembly buffer. Unlike the source's
// conn->handshake, there is no separate next_state field — this driver
// resolves the successor state fresh at each transition via
// resolveNextState, rather than precomputing a full handshake_type
// bitmask up front (see FlowSelector).
//
// grounded on struct s2n_handshake in s2n_connection.h (referenced from
// s2n_handshake_io.c), generalized to Go value types.
type handshakeStatus struct {
	state HandshakeState
	io    growBuffer
}

// Connection is one handshake driver instance: everything the
// data model requires and nothing else. It is not safe for concurrent
// use; a single-threaded owner is assumed per Connection, so no
// internal locking is provided (a goroutine/channel-based
// Conn being replaced by a synchronous value here — see DESIGN.md).
type Connection struct {
	role Role
	cfg  *Config
	log  logging.LeveledLogger

	handshake handshakeStatus
	pending   pendingParams
	transcript *transcript

	// Record-layer buffers. in holds the current inbound handshake
	// record's bytes not yet moved into handshake.io; headerIn is not
	// written by this package. Outbound records are queued by the
	// RecordLayer, not here.
	in, headerIn growBuffer

	actualVersion int // negotiated version, internal encoding
	clientVersion int // version the client offered, internal encoding

	closed   bool
	inStatus recordProtectionStatus

	// finishedDigest[role] is the transcript digest snapshotted the
	// instant the state machine enters that role's *_FINISHED state —
	// before that message's own bytes are hashed into transcript on
	// either side. This is the value Finished's verify_data is computed
	// and checked against; capturing it here (in advanceState) keeps
	// both the Send and Recv path for *_FINISHED working from the same
	// pre-message hash state, matching RFC 5246 §7.4.9.
	finishedDigest [2][]byte
}

// recordProtectionStatus tracks whether conn.in currently holds
// plaintext or protected bytes, mirroring the source's ENCRYPTED marker
// used to decide whether handshake.io needs to be re-drained.
type recordProtectionStatus int

const (
	statusPlaintext recordProtectionStatus = iota
	statusEncrypted
)

// NewConnection creates a Connection in its initial state (CLIENT_HELLO).
//
// grounded on createConn in conn.go, stripped of transport ownership and
// the goroutine/channel machinery: this package drives the handshake
// synchronously through Negotiate rather than owning a background
// worker.
func NewConnection(role Role, cfg *Config) (*Connection, error) {
	if cfg == nil {
		return nil, errNoConfigProvided
	}
	if cfg.RecordLayer == nil {
		return nil, errNoRecordLayer
	}
	if cfg.Random == nil {
		cfg.Random = cryptoRandSource{}
	}

	c := &Connection{
		role:       role,
		cfg:        cfg,
		log:        cfg.loggerFactory().NewLogger("s2n"),
		transcript: newTranscript(),
		handshake: handshakeStatus{
			state: StateClientHello,
		},
	}
	return c, nil
}

// Role reports which side of the handshake this Connection plays.
func (c *Connection) Role() Role { return c.role }

// State reports the current handshake state.
func (c *Connection) State() HandshakeState { return c.handshake.state }

// ActualVersion returns the negotiated protocol version (internal
// major*10+minor encoding), or zero before ServerHello completes.
func (c *Connection) ActualVersion() int { return c.actualVersion }

// SetActualVersion records the negotiated protocol version. Called by a
// caller-supplied Codecs implementation while processing ClientHello,
// since ClientHello itself is out of this package's scope but the
// version it carries feeds ServerHello's own negotiation.
func (c *Connection) SetActualVersion(v int) { c.actualVersion = v }

// ClientVersion returns the version the client offered in ClientHello.
func (c *Connection) ClientVersion() int { return c.clientVersion }

// SetClientVersion records the version the client offered.
func (c *Connection) SetClientVersion(v int) { c.clientVersion = v }

// Random returns the RandomSource this Connection was configured with.
func (c *Connection) Random() RandomSource { return c.cfg.Random }

// TranscriptSum returns the running handshake-message digest a Finished
// message's verify_data would be computed over: MD5||SHA-1 below TLS
// 1.2, SHA-256 at TLS 1.2, per side. A Codecs implementation uses this to
// compute Finished verify_data without this package needing to know
// about master-secret derivation (out of scope, see SPEC_FULL.md DOMAIN
// STACK).
func (c *Connection) TranscriptSum(side Role) []byte {
	tls12 := c.actualVersion == TLS1_2.Internal()
	switch {
	case side == RoleClient && tls12:
		return c.transcript.clientSHA256Sum()
	case side == RoleClient:
		return c.transcript.clientMD5SHA1()
	case tls12:
		return c.transcript.serverSHA256Sum()
	default:
		return c.transcript.serverMD5SHA1()
	}
}

// FinishedDigest returns the transcript digest snapshotted when the
// state machine entered side's *_FINISHED state, the value a Codecs
// implementation should use to build or check that side's Finished
// verify_data. See the finishedDigest field comment for why this must
// not be TranscriptSum's live value.
func (c *Connection) FinishedDigest(side Role) []byte {
	return c.finishedDigest[side]
}

// advanceState moves the state machine to next, snapshotting the
// Finished-message transcript digest at the moment either side's
// *_FINISHED state is entered.
func (c *Connection) advanceState(next HandshakeState) {
	if next == StateClientFinished {
		c.finishedDigest[RoleClient] = c.TranscriptSum(RoleClient)
	} else if next == StateServerFinished {
		c.finishedDigest[RoleServer] = c.TranscriptSum(RoleServer)
	}
	c.handshake.state = next
}

// cryptoRandSource is the default RandomSource, backed by crypto/rand.
type cryptoRandSource struct{}

func (cryptoRandSource) Fill(b []byte) error {
	_, err := rand.Read(b)
	return err
}
