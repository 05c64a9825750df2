package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBindEphemeralPort(t *testing.T) {
	c, err := Bind()
	require.NoError(t, err)
	defer c.Close()

	addr, ok := c.LocalAddr().(*net.UDPAddr)
	require.True(t, ok)
	require.NotZero(t, addr.Port)
}

func TestSendReceiveLoopback(t *testing.T) {
	a, err := Bind()
	require.NoError(t, err)
	defer a.Close()
	b, err := Bind()
	require.NoError(t, err)
	defer b.Close()

	dest := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: b.LocalAddr().(*net.UDPAddr).Port}
	payload := []byte{0x01, 0x02, 0x03}

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 1500)
		n, _, err := b.ReceiveFrom(buf)
		if err == nil {
			got <- append([]byte(nil), buf[:n]...)
		}
	}()

	require.NoError(t, a.SendTo(payload, dest))
	select {
	case recv := <-got:
		require.Equal(t, payload, recv)
	case <-time.After(2 * time.Second):
		t.Fatal("datagram not received")
	}
}

func TestCloseUnblocksReceive(t *testing.T) {
	c, err := Bind()
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		_, _, err := c.ReceiveFrom(buf)
		errc <- err
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, c.Close())
	select {
	case err := <-errc:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("receive did not unblock on close")
	}
}

func TestResolveServer(t *testing.T) {
	addr, err := ResolveServer("255.255.255.255:6969")
	require.NoError(t, err)
	require.Equal(t, 6969, addr.Port)
	require.True(t, addr.IP.Equal(net.IPv4bcast))

	_, err = ResolveServer("not an address")
	require.Error(t, err)
}
