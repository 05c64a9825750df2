package apps

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFleetDefaults(t *testing.T) {
	fleet, err := LoadFleet(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	require.Equal(t, "255.255.255.255:6969", fleet.Server.Address)
	require.Equal(t, 5*time.Second, fleet.Server.Timeout.Std())
	require.Equal(t, 1, fleet.Trackers.Count)
	require.Equal(t, "DE:AD:BE:EF:00:00", fleet.Trackers.MacSeed)
	require.Len(t, fleet.Trackers.Sensors, 1)
	require.Equal(t, 50*time.Millisecond, fleet.Sim.Rate.Std())
}

func TestLoadFleetParsesValues(t *testing.T) {
	fleet, err := LoadFleet(writeConfig(t, `
server:
  address: "127.0.0.1:7000"
  timeout: 250ms
trackers:
  count: 3
  board: slimevr
  mcu: esp32
  sensors:
    - { type: bno085, status: ok }
    - { type: mpu6050, status: offline }
sim:
  rate: 20ms
  period: 3s
`))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", fleet.Server.Address)
	require.Equal(t, 250*time.Millisecond, fleet.Server.Timeout.Std())
	require.Equal(t, 3, fleet.Trackers.Count)
	require.Len(t, fleet.Trackers.Sensors, 2)
	require.Equal(t, 20*time.Millisecond, fleet.Sim.Rate.Std())
	require.Equal(t, 3*time.Second, fleet.Sim.Period.Std())
}

func TestLoadFleetRejectsInvalid(t *testing.T) {
	_, err := LoadFleet(writeConfig(t, `
trackers:
  sensors:
    - { type: bno085, status: sleepy }
`))
	require.Error(t, err)

	_, err = LoadFleet(writeConfig(t, `
server:
  address: "not an address"
`))
	require.Error(t, err)

	_, err = LoadFleet(writeConfig(t, `
server:
  timeout: soon
`))
	require.Error(t, err)

	_, err = LoadFleet(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewRunAppRequiresConfigPath(t *testing.T) {
	_, err := NewRunApp()
	require.Error(t, err)
}

func TestBuildFleetDerivesMacs(t *testing.T) {
	fleet := Fleet{}
	fleet.applyDefaults()
	fleet.Trackers.Count = 3
	fleet.Server.Address = "127.0.0.1:6969"

	trackers, err := buildFleet(fleet)
	require.NoError(t, err)
	require.Len(t, trackers, 3)
}

func TestBuildFleetRejectsBadSeed(t *testing.T) {
	fleet := Fleet{}
	fleet.applyDefaults()
	fleet.Trackers.MacSeed = "not-a-mac"

	_, err := buildFleet(fleet)
	require.Error(t, err)
}
