package firmware

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseBoardType maps a configuration string to a board tag.
func ParseBoardType(s string) (BoardType, error) {
	for b := BoardUnknown; b <= BoardGloveImuSlimeVRDev; b++ {
		if b.String() == strings.ToLower(s) {
			return b, nil
		}
	}
	if strings.ToLower(s) == "unknown" || s == "" {
		return BoardUnknown, nil
	}
	return BoardUnknown, errors.Errorf("unknown board type %q", s)
}

// ParseMcuType maps a configuration string to an MCU tag.
func ParseMcuType(s string) (McuType, error) {
	for m := McuUnknown; m <= McuHaritora; m++ {
		if m.String() == strings.ToLower(s) {
			return m, nil
		}
	}
	if strings.ToLower(s) == "unknown" || s == "" {
		return McuUnknown, nil
	}
	return McuUnknown, errors.Errorf("unknown mcu type %q", s)
}

// ParseImuType maps a configuration string to an IMU tag.
func ParseImuType(s string) (ImuType, error) {
	for i := ImuUnknown; i <= ImuIcm45605; i++ {
		if i.String() == strings.ToLower(s) {
			return i, nil
		}
	}
	if strings.ToLower(s) == "unknown" || s == "" {
		return ImuUnknown, nil
	}
	return ImuUnknown, errors.Errorf("unknown imu type %q", s)
}

// ParseSensorStatus maps a configuration string to a sensor status.
func ParseSensorStatus(s string) (SensorStatus, error) {
	switch strings.ToLower(s) {
	case "ok", "":
		return SensorOk, nil
	case "offline":
		return SensorOffline, nil
	default:
		return SensorOk, errors.Errorf("unknown sensor status %q", s)
	}
}
