package firmware

import "github.com/pkg/errors"

// ErrTruncatedPacket indicates an inbound datagram too short for its claimed shape.
var ErrTruncatedPacket = errors.New("truncated packet")

// ErrStringTooLong indicates a string field that does not fit its length prefix.
var ErrStringTooLong = errors.New("string exceeds 255 bytes")
