package tracker

import (
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/transport"
)

// runHeartbeat emits a liveness packet every second for the lifetime of
// the session. It terminates when it observes the session back in
// "initializing" or when the session task group stops, whichever comes
// first; the status broadcast's terminal-value guarantee makes the former
// reliable on its own.
func (t *Tracker) runHeartbeat(sess *session, conn transport.Conn) {
	if !sess.alive.Add(1) {
		return
	}
	defer sess.alive.Done()

	rx := t.status.Subscribe()
	defer rx.Close()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-sess.alive.StopChan():
			return
		case <-rx.Changed():
			if rx.Latest() == StatusInitializing {
				return
			}
		case <-ticker.C:
			if err := t.sendOn(conn, firmware.Heartbeat{}); err != nil {
				logger.WithFields(t.logFields()).WithError(err).Warn("send heartbeat failed")
			}
		}
	}
}
