package apps

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func freeUDPPort(t *testing.T) int {
	t.Helper()
	l, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	port := l.LocalAddr().(*net.UDPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestFleetAgainstFakeServer(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	port := freeUDPPort(t)
	path := writeConfig(t, fmt.Sprintf(`
server:
  address: "127.0.0.1:%d"
  timeout: 2s
trackers:
  count: 2
  board: slimevr
  mcu: esp32
  sensors:
    - { type: bno085, status: ok }
sim:
  rate: 20ms
  telemetry_every: 1s
`, port))

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		server := &FakeServerApp{Port: port}
		require.NoError(t, server.Run(ctx, nil))
	}()
	go func() {
		defer wg.Done()
		app := &RunApp{ConfigPath: path}
		require.NoError(t, app.Run(ctx, []string{"run"}))
	}()
	wg.Wait()
}
