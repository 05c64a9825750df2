package tracker

// Status is the connection state of a tracker session.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusIdle         Status = "idle"
	StatusConnected    Status = "connected-to-server"
)

// State is a point-in-time snapshot of the session.
//
// LastReceivedPacketTime is the low 16 bits of the wall-clock millisecond
// timestamp of the last inbound datagram. It is intentionally lossy and
// only useful for debug display; timeout decisions use a full-precision
// clock internally.
type State struct {
	Status                 Status
	PacketNumber           uint64
	LastReceivedPacketTime uint16
}
