package firmware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBoardType(t *testing.T) {
	b, err := ParseBoardType("slimevr")
	require.NoError(t, err)
	require.Equal(t, BoardSlimeVR, b)

	b, err = ParseBoardType("")
	require.NoError(t, err)
	require.Equal(t, BoardUnknown, b)

	_, err = ParseBoardType("toaster")
	require.Error(t, err)
}

func TestParseImuType(t *testing.T) {
	i, err := ParseImuType("BNO085")
	require.NoError(t, err)
	require.Equal(t, ImuBno085, i)

	_, err = ParseImuType("abacus")
	require.Error(t, err)
}

func TestParseSensorStatus(t *testing.T) {
	s, err := ParseSensorStatus("ok")
	require.NoError(t, err)
	require.Equal(t, SensorOk, s)

	s, err = ParseSensorStatus("offline")
	require.NoError(t, err)
	require.Equal(t, SensorOffline, s)

	_, err = ParseSensorStatus("sleepy")
	require.Error(t, err)
}

func TestParseMcuType(t *testing.T) {
	m, err := ParseMcuType("esp32")
	require.NoError(t, err)
	require.Equal(t, McuEsp32, m)

	_, err = ParseMcuType("z80")
	require.Error(t, err)
}
