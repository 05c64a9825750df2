// Package transport wraps the UDP socket a tracker speaks through.
//
// A tracker binds one broadcast-capable socket on an ephemeral local port
// per session. Send and receive are safe for concurrent use; Close unblocks
// a pending ReceiveFrom.
package transport

import (
	"net"

	"github.com/pkg/errors"
)

// Conn is the datagram socket surface the tracker needs. Tests substitute
// an in-memory fake.
type Conn interface {
	SendTo(b []byte, addr *net.UDPAddr) error
	ReceiveFrom(buf []byte) (int, *net.UDPAddr, error)
	LocalAddr() net.Addr
	Close() error
}

type udpConn struct {
	conn *net.UDPConn
}

// Bind opens a UDP socket on an ephemeral local port. The socket can send
// to broadcast addresses: the runtime enables SO_BROADCAST on datagram
// sockets, so no explicit toggle is needed.
func Bind() (Conn, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, errors.Wrap(err, "bind udp socket failed")
	}
	return &udpConn{conn: conn}, nil
}

func (c *udpConn) SendTo(b []byte, addr *net.UDPAddr) error {
	if _, err := c.conn.WriteToUDP(b, addr); err != nil {
		return errors.Wrapf(err, "send %d bytes to %s failed", len(b), addr)
	}
	return nil
}

func (c *udpConn) ReceiveFrom(buf []byte) (int, *net.UDPAddr, error) {
	n, addr, err := c.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, nil, errors.Wrap(err, "receive failed")
	}
	return n, addr, nil
}

func (c *udpConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *udpConn) Close() error {
	return errors.Wrap(c.conn.Close(), "close socket failed")
}

// ResolveServer parses the configured server endpoint into a UDP address.
func ResolveServer(hostport string) (*net.UDPAddr, error) {
	addr, err := net.ResolveUDPAddr("udp4", hostport)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve server address %q failed", hostport)
	}
	return addr, nil
}
