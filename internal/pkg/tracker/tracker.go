package tracker

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/log"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/transport"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/watch"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/temoto/alive/v2"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// DefaultServerAddress is the discovery broadcast endpoint.
const DefaultServerAddress = "255.255.255.255:6969"

// DefaultServerTimeout is how long the server may stay silent before the
// watchdog tears the session down.
const DefaultServerTimeout = 5000 * time.Millisecond

const (
	discoveryInterval = time.Second
	heartbeatInterval = time.Second
	maxDatagram       = 1500
)

// session groups the background tasks of one Init/Deinit cycle.
// Stopping the alive group is the cancellation signal for all of them.
type session struct {
	alive *alive.Alive
}

// Tracker emulates one hardware tracker talking to one server.
type Tracker struct {
	mac             [6]byte
	firmwareVersion string
	board           firmware.BoardType
	mcu             firmware.McuType
	serverAddr      *net.UDPAddr
	serverTimeout   time.Duration
	debug           bool
	runID           uuid.UUID

	// bind is swapped out by tests.
	bind func() (transport.Conn, error)

	mu            sync.Mutex
	state         State
	conn          transport.Conn
	sess          *session
	sensors       []Sensor
	lastHeartbeat time.Time

	status *watch.Value[Status]
}

// Cfg configures a Tracker.
type Cfg func(*Tracker) error

// WithServerAddress sets the server endpoint as host:port.
func WithServerAddress(hostport string) Cfg {
	return func(t *Tracker) error {
		addr, err := transport.ResolveServer(hostport)
		if err != nil {
			return err
		}
		t.serverAddr = addr
		return nil
	}
}

// WithServerTimeout sets the server liveness timeout.
func WithServerTimeout(d time.Duration) Cfg {
	return func(t *Tracker) error {
		if d <= 0 {
			return errors.New("server timeout must be positive")
		}
		t.serverTimeout = d
		return nil
	}
}

// WithBoardType sets the board tag announced in the handshake.
func WithBoardType(b firmware.BoardType) Cfg {
	return func(t *Tracker) error {
		t.board = b
		return nil
	}
}

// WithMcuType sets the MCU tag announced in the handshake.
func WithMcuType(m firmware.McuType) Cfg {
	return func(t *Tracker) error {
		t.mcu = m
		return nil
	}
}

// WithDebug enables per-packet trace logging.
func WithDebug(debug bool) Cfg {
	return func(t *Tracker) error {
		t.debug = debug
		return nil
	}
}

// New creates a Tracker with the given identity and configuration.
func New(mac [6]byte, firmwareVersion string, cfgs ...Cfg) (*Tracker, error) {
	t := &Tracker{
		mac:             mac,
		firmwareVersion: firmwareVersion,
		board:           firmware.BoardUnknown,
		mcu:             firmware.McuUnknown,
		serverTimeout:   DefaultServerTimeout,
		runID:           uuid.New(),
		bind:            transport.Bind,
		state:           State{Status: StatusInitializing},
		status:          watch.NewValue(StatusInitializing),
	}
	for _, cfg := range cfgs {
		if err := cfg(t); err != nil {
			return nil, errors.Wrap(err, "apply Tracker cfg failed")
		}
	}
	if t.serverAddr == nil {
		addr, err := transport.ResolveServer(DefaultServerAddress)
		if err != nil {
			return nil, err
		}
		t.serverAddr = addr
	}
	return t, nil
}

// GetState returns a snapshot of the session state.
func (t *Tracker) GetState() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SubscribeStatus returns a read handle on status transitions. The handle
// observes only the latest value; intermediate transitions may coalesce.
func (t *Tracker) SubscribeStatus() *watch.Receiver[Status] {
	return t.status.Subscribe()
}

func (t *Tracker) logFields() logrus.Fields {
	return logrus.Fields{
		"run": t.runID.String(),
		"mac": log.MacToField(t.mac),
	}
}

// Init starts a session and blocks until the server confirms the
// connection, the context is cancelled, or the session is torn down.
// Calling Init on a session that already left "initializing" is a no-op.
func (t *Tracker) Init(ctx context.Context) error {
	t.mu.Lock()
	if t.state.Status != StatusInitializing {
		t.mu.Unlock()
		return nil
	}
	conn, err := t.bind()
	if err != nil {
		t.mu.Unlock()
		return errors.Wrap(err, "bind tracker socket failed")
	}
	sess := &session{alive: alive.NewAlive()}
	t.conn = conn
	t.sess = sess
	t.state.Status = StatusIdle
	t.lastHeartbeat = time.Now()
	t.mu.Unlock()
	t.status.Set(StatusIdle)

	logger.WithFields(t.logFields()).WithField("local", conn.LocalAddr().String()).
		Info("tracker session started")

	go t.receiveLoop(sess, conn)
	go t.runHeartbeat(sess, conn)
	go t.runWatchdog(sess)

	// The first handshake goes out immediately; the tick only paces the
	// retries and the connected-exit check.
	ticker := time.NewTicker(discoveryInterval)
	defer ticker.Stop()
	for {
		if t.status.Latest() == StatusConnected {
			return nil
		}
		if err := t.sendHandshake(conn); err != nil {
			logger.WithFields(t.logFields()).WithError(err).Warn("send handshake failed")
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "discovery aborted")
		case <-sess.alive.StopChan():
			return ErrSessionClosed
		case <-ticker.C:
		}
	}
}

// Deinit releases the socket, stops the session tasks and returns the
// session to "initializing". Calling Deinit on an uninitialized session is
// a no-op. The sequence counter and sensor registry are not reset.
func (t *Tracker) Deinit() error {
	return t.deinitSession(nil)
}

// deinitSession is the teardown path shared by Deinit and the watchdog.
// A non-nil sess makes it conditional: a session task may only tear down
// the session it belongs to, so a stale task racing a Deinit/Init cycle
// cannot destroy its replacement.
func (t *Tracker) deinitSession(sess *session) error {
	t.mu.Lock()
	if t.state.Status == StatusInitializing || t.sess == nil {
		t.mu.Unlock()
		return nil
	}
	if sess != nil && t.sess != sess {
		t.mu.Unlock()
		return nil
	}
	conn := t.conn
	cur := t.sess
	t.conn = nil
	t.sess = nil
	t.state.Status = StatusInitializing
	t.mu.Unlock()
	t.status.Set(StatusInitializing)

	cur.alive.Stop()
	logger.WithFields(t.logFields()).Info("tracker session stopped")
	if err := conn.Close(); err != nil {
		return errors.Wrap(err, "release tracker socket failed")
	}
	return nil
}

// receiveLoop reads inbound datagrams for the lifetime of the session,
// updating session state and dispatching each decoded packet. It keeps
// running after Init returns so ping echoes and watchdog feeding continue
// while connected.
func (t *Tracker) receiveLoop(sess *session, conn transport.Conn) {
	if !sess.alive.Add(1) {
		return
	}
	defer sess.alive.Done()

	buf := make([]byte, maxDatagram)
	for {
		n, addr, err := conn.ReceiveFrom(buf)
		if err != nil {
			if !sess.alive.IsRunning() || errors.Is(err, net.ErrClosed) {
				return
			}
			logger.WithFields(t.logFields()).WithError(err).Warn("receive failed")
			continue
		}
		if t.debug {
			logger.WithFields(t.logFields()).
				WithField("from", addr.String()).
				WithField("size", n).
				Debug("received datagram")
		}
		seq, payload, err := firmware.Decode(buf[:n])
		if err != nil {
			logger.WithFields(t.logFields()).WithError(err).Warn("drop malformed datagram")
			continue
		}
		if !t.observeInbound(sess, payload) {
			// the session was torn down between decode and observation
			return
		}
		t.dispatch(conn, seq, payload)
	}
}

// observeInbound applies the side effects every well-formed datagram has:
// the first one confirms the connection, every one refreshes the lossy
// receipt timestamp, and server heartbeats feed the watchdog. It reports
// whether sess is still the current session; a datagram decoded just
// before a concurrent Deinit completed belongs to a dead session and must
// be dropped, not observed, or it would pull the status out of
// "initializing" with no socket behind it.
func (t *Tracker) observeInbound(sess *session, payload firmware.ClientBound) bool {
	now := time.Now()
	t.mu.Lock()
	if t.sess != sess {
		t.mu.Unlock()
		return false
	}
	connected := false
	if t.state.Status != StatusConnected {
		t.state.Status = StatusConnected
		connected = true
	}
	t.state.LastReceivedPacketTime = uint16(now.UnixMilli())
	if _, ok := payload.(firmware.ServerHeartbeat); ok {
		t.lastHeartbeat = now
	}
	t.mu.Unlock()
	if connected {
		t.status.Set(StatusConnected)
		logger.WithFields(t.logFields()).Info("connected to server")
	}
	return true
}

// dispatch reacts to a decoded packet. Failures are logged, never fatal:
// this loop has no caller to report to.
func (t *Tracker) dispatch(conn transport.Conn, seq uint64, payload firmware.ClientBound) {
	var err error
	switch p := payload.(type) {
	case firmware.ServerHeartbeat:
		err = t.sendOn(conn, firmware.Heartbeat{})
	case firmware.ServerPing:
		err = t.sendOn(conn, firmware.Ping{Challenge: p.Challenge})
	case firmware.Discovery:
		// servers should not send this to a client; drop it
	case firmware.HandshakeResponse:
		// connection confirmation already handled in observeInbound
	default:
		logger.WithFields(t.logFields()).WithFields(log.InboundToFields(seq, payload)).
			Warn("unrecognized packet")
	}
	if err != nil {
		logger.WithFields(t.logFields()).WithFields(log.InboundToFields(seq, payload)).
			WithError(err).Warn("reply failed")
	}
}

// sendHandshake announces the tracker identity. Handshakes always carry
// sequence number 0 and do not consume the shared counter.
func (t *Tracker) sendHandshake(conn transport.Conn) error {
	b, err := firmware.Encode(0, firmware.Handshake{
		Board:    t.board,
		Imu:      firmware.ImuUnknown,
		Mcu:      t.mcu,
		Build:    firmware.FirmwareBuild,
		Firmware: t.firmwareVersion,
		Mac:      t.mac,
	})
	if err != nil {
		return errors.Wrap(err, "encode handshake failed")
	}
	return conn.SendTo(b, t.serverAddr)
}

// sendOn encodes a packet with a freshly incremented sequence number and
// sends it on the given socket.
func (t *Tracker) sendOn(conn transport.Conn, p firmware.ServerBound) error {
	t.mu.Lock()
	t.state.PacketNumber++
	seq := t.state.PacketNumber
	t.mu.Unlock()

	b, err := firmware.Encode(seq, p)
	if err != nil {
		return errors.Wrap(err, "encode packet failed")
	}
	if t.debug {
		logger.WithFields(t.logFields()).
			WithField("seq", seq).
			WithField("size", len(b)).
			Debugf("sending %T", p)
	}
	return conn.SendTo(b, t.serverAddr)
}

// sendPacket is the send path of the public telemetry operations.
func (t *Tracker) sendPacket(p firmware.ServerBound) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return ErrNotInitialized
	}
	return t.sendOn(conn, p)
}
