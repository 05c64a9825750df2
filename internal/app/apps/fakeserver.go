package apps

import (
	"context"
	"encoding/binary"
	"net"
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/session"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/validate"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FakeServerAppCfg configures a FakeServerApp.
type FakeServerAppCfg interface {
	ApplyFakeServerApp(*FakeServerApp) error
}

// FakeServerApp is a development sink standing in for a real aggregation
// server: it greets handshakes, heartbeats known trackers once per second
// and keeps per-tracker session state (packet and gap counts). Useful for
// running the emulator without any server installed.
type FakeServerApp struct {
	Port int `validate:"min=1,max=65535"`

	store session.Store
}

// NewFakeServerApp creates a new FakeServerApp.
func NewFakeServerApp(cfgs ...FakeServerAppCfg) (*FakeServerApp, error) {
	app := &FakeServerApp{Port: 6969}
	for _, cfg := range cfgs {
		if err := cfg.ApplyFakeServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply FakeServerApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate FakeServerApp failed")
	}
	app.store = session.NewMemoryStore()
	return app, nil
}

// Run listens until the context is cancelled.
func (app *FakeServerApp) Run(ctx context.Context, _ []string) error {
	if app.store == nil {
		app.store = session.NewMemoryStore()
	}
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: app.Port})
	if err != nil {
		return errors.Wrap(err, "listen failed")
	}
	logger.WithField("addr", conn.LocalAddr().String()).Info("fake server listening")

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()
	go app.heartbeatClients(ctx, conn)

	buf := make([]byte, 1500)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read failed")
		}
		if n < 12 {
			continue
		}
		tag := firmware.PacketType(binary.BigEndian.Uint32(buf[:4]))
		seq := binary.BigEndian.Uint64(buf[4:12])

		key := addr.String()
		if err := app.store.Observe(key, seq, time.Now()); err != nil {
			if err := app.store.New(key); err != nil {
				logger.WithError(err).Warn("register tracker failed")
				continue
			}
			logger.WithField("from", key).Info("welcoming a brand new tracker")
			_ = app.store.Observe(key, seq, time.Now())
		}

		fields := logrus.Fields{"from": key, "tag": uint32(tag), "seq": seq}
		switch tag {
		case firmware.TypeHandshake:
			_, _ = conn.WriteToUDP([]byte("\x03Hey OVR =D 5"), addr)
			logger.WithFields(fields).Info("tracker handshake")
		case firmware.TypeHeartbeat:
			logger.WithFields(fields).Debug("tracker heartbeat")
		default:
			logger.WithFields(fields).Debug("tracker telemetry")
		}
	}
}

// heartbeatClients sends the 1 Hz server heartbeat to every known tracker.
func (app *FakeServerApp) heartbeatClients(ctx context.Context, conn *net.UDPConn) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// server heartbeat: tag 1, sequence 0
			beat := make([]byte, 12)
			binary.BigEndian.PutUint32(beat[:4], 1)
			for _, sess := range app.store.All() {
				addr, err := net.ResolveUDPAddr("udp4", sess.Addr)
				if err != nil {
					continue
				}
				_, _ = conn.WriteToUDP(beat, addr)
			}
		}
	}
}
