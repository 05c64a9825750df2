// Package firmware implements the binary UDP wire format spoken between a
// tracker and the SlimeVR-compatible server.
//
// Every datagram starts with a 4-byte big-endian packet type tag followed by
// an 8-byte big-endian sequence number, then the payload fields of the
// concrete packet. Strings are length-prefixed with a single byte and floats
// are IEEE-754 big-endian.
//
// The two directions use disjoint vocabularies: ServerBound packets are
// built and encoded by the tracker, ClientBound packets are decoded from
// inbound datagrams. Unknown inbound tags decode into Unknown rather than
// failing, so callers can log and drop them; only truncated input is a
// decode error.
package firmware
