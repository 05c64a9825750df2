// Package tracker emulates a motion-tracking device's network client.
//
// A Tracker performs the following steps:
//  1. Init binds a broadcast-capable UDP socket on an ephemeral port and
//     moves the session from "initializing" to "idle".
//  2. It spawns three session tasks: the receive/dispatch loop, the
//     heartbeat emitter and the liveness watchdog, then sends a Handshake
//     once per second until the server answers.
//  3. The first well-formed datagram from the server moves the session to
//     "connected-to-server" and unblocks Init.
//  4. While connected, the tracker answers server heartbeats and pings,
//     emits its own heartbeat every second, and accepts telemetry sends
//     (rotation, acceleration, battery, temperature, signal strength,
//     magnetometer accuracy, user actions) from the caller.
//  5. If the server stays silent past the configured timeout, the
//     watchdog tears the session down; reconnection is the caller's
//     decision via another Init call.
//  6. Deinit releases the socket, stops the session tasks and returns the
//     session to "initializing".
//
// An instance of Tracker holds the session state for the whole process
// lifetime: the outbound sequence counter and the sensor registry survive
// Deinit/Init cycles, so a server can detect gaps across reconnects and
// sensor ids are never reused.
//
// Status transitions are published on a single-slot, latest-value-wins
// broadcast; external observers subscribe through SubscribeStatus.
package tracker
