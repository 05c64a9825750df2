package firmware

import "encoding/binary"

// ClientBound is a decoded inbound packet payload.
type ClientBound interface {
	clientBound()
}

// ServerHeartbeat is the server's periodic liveness packet.
type ServerHeartbeat struct{}

// ServerPing asks the tracker to echo the challenge back.
type ServerPing struct {
	Challenge [4]byte
}

// Discovery is a server broadcast probing for trackers. Trackers never
// act on it; it is decoded so the dispatch loop can drop it silently.
type Discovery struct{}

// HandshakeResponse acknowledges a handshake. Version is best effort: the
// classic server replies with a bare ASCII greeting rather than a tagged
// packet, in which case the raw text lands here.
type HandshakeResponse struct {
	Version string
}

// Unknown preserves the tag of an unrecognized packet for logging.
type Unknown struct {
	Tag uint32
}

func (ServerHeartbeat) clientBound()   {}
func (ServerPing) clientBound()        {}
func (Discovery) clientBound()         {}
func (HandshakeResponse) clientBound() {}
func (Unknown) clientBound()           {}

const (
	tagDiscovery         = 0
	tagServerHeartbeat   = 1
	tagHandshakeResponse = 3
	tagServerPing        = 10
)

// Decode parses an inbound datagram into its sequence number and payload.
//
// The classic handshake greeting ("\x03Hey OVR =D ...") predates the tagged
// header and is detected by its leading byte; it carries no sequence number.
func Decode(b []byte) (uint64, ClientBound, error) {
	if len(b) > 0 && b[0] == 0x03 && !hasTaggedHeader(b) {
		return 0, HandshakeResponse{Version: string(b[1:])}, nil
	}
	if len(b) < headerLen {
		return 0, nil, ErrTruncatedPacket
	}
	tag := binary.BigEndian.Uint32(b[:4])
	seq := binary.BigEndian.Uint64(b[4:12])
	body := b[headerLen:]

	switch tag {
	case tagDiscovery:
		return seq, Discovery{}, nil
	case tagServerHeartbeat:
		return seq, ServerHeartbeat{}, nil
	case tagHandshakeResponse:
		return seq, HandshakeResponse{Version: string(body)}, nil
	case tagServerPing:
		if len(body) < 4 {
			return 0, nil, ErrTruncatedPacket
		}
		var p ServerPing
		copy(p.Challenge[:], body[:4])
		return seq, p, nil
	default:
		return seq, Unknown{Tag: tag}, nil
	}
}

// hasTaggedHeader reports whether the datagram plausibly starts with a
// 4-byte tag, i.e. the leading byte belongs to a big-endian uint32 small
// enough to be a known tag space (all defined tags are < 256).
func hasTaggedHeader(b []byte) bool {
	return len(b) >= headerLen && b[0] == 0 && b[1] == 0 && b[2] == 0
}
