package tracker

import "time"

// runWatchdog enforces the maximum silence interval from the server. It
// checks once per timeout period whether a server heartbeat arrived within
// the window and tears the session down if not. Watchdog-forced teardown
// is identical to an explicit Deinit: the socket is released and the
// session tasks stop, so repeated Init/Deinit cycles never accumulate
// watchdogs. Reconnection afterwards is the caller's Init call.
//
// The teardown is scoped to the watchdog's own session: the select can pick
// the tick even when the stop channel is already closed, and by then the
// caller may have started a replacement session the stale watchdog must not
// touch.
func (t *Tracker) runWatchdog(sess *session) {
	if !sess.alive.Add(1) {
		return
	}
	defer sess.alive.Done()

	ticker := time.NewTicker(t.serverTimeout)
	defer ticker.Stop()
	for {
		select {
		case <-sess.alive.StopChan():
			return
		case <-ticker.C:
			t.mu.Lock()
			last := t.lastHeartbeat
			t.mu.Unlock()
			if elapsed := time.Since(last); elapsed > t.serverTimeout {
				logger.WithFields(t.logFields()).
					WithField("elapsed", elapsed.String()).
					Warn("server heartbeat timeout, tearing session down")
				if err := t.deinitSession(sess); err != nil {
					logger.WithFields(t.logFields()).WithError(err).Warn("deinit after timeout failed")
				}
				return
			}
		}
	}
}
