package tracker

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"

	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal aggregation-server stand-in on loopback: it
// greets the first handshake, then heartbeats the client on a short tick.
type fakeServer struct {
	conn *net.UDPConn

	mu     sync.Mutex
	client *net.UDPAddr
	tags   map[firmware.PacketType]int
}

func startFakeServer(t *testing.T) (*fakeServer, func()) {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)

	s := &fakeServer{conn: conn, tags: make(map[firmware.PacketType]int)}
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		buf := make([]byte, 1500)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			if n < 4 {
				continue
			}
			tag := firmware.PacketType(binary.BigEndian.Uint32(buf[:4]))
			s.mu.Lock()
			s.tags[tag]++
			first := s.client == nil
			if first {
				s.client = addr
			}
			s.mu.Unlock()
			if first && tag == firmware.TypeHandshake {
				_, _ = conn.WriteToUDP([]byte("\x03Hey OVR =D 5"), addr)
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(300 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				addr := s.client
				s.mu.Unlock()
				if addr == nil {
					continue
				}
				beat := make([]byte, 12)
				binary.BigEndian.PutUint32(beat[:4], 1)
				_, _ = conn.WriteToUDP(beat, addr)
			}
		}
	}()

	return s, func() {
		close(stop)
		_ = conn.Close()
		wg.Wait()
	}
}

func (s *fakeServer) count(tag firmware.PacketType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags[tag]
}

func TestTrackerAgainstLoopbackServer(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	server, shutdown := startFakeServer(t)
	defer shutdown()
	port := server.conn.LocalAddr().(*net.UDPAddr).Port

	tr, err := New(testMac, "tracker-emulation-go integ",
		WithServerAddress(fmt.Sprintf("127.0.0.1:%d", port)),
		WithServerTimeout(2*time.Second),
		WithBoardType(firmware.BoardSlimeVR),
		WithMcuType(firmware.McuEsp32),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, tr.Init(ctx))
	require.Equal(t, StatusConnected, tr.GetState().Status)

	sensor, err := tr.AddSensor(firmware.ImuBno085, firmware.SensorOk)
	require.NoError(t, err)
	require.Equal(t, uint8(0), sensor.ID)

	require.NoError(t, tr.SendRotation(sensor.ID, firmware.DataNormal, firmware.Quaternion{W: 1}, 3))
	require.NoError(t, tr.SendBatteryLevel(87.5, 4.02))

	require.Eventually(t, func() bool {
		return server.count(firmware.TypeSensorInfo) >= 1 &&
			server.count(firmware.TypeRotationData) >= 1 &&
			server.count(firmware.TypeBattery) >= 1 &&
			server.count(firmware.TypeHeartbeat) >= 1
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, tr.Deinit())
	require.Equal(t, StatusInitializing, tr.GetState().Status)
}
