package firmware

import "fmt"

// BoardType identifies the tracker's circuit board in the handshake.
type BoardType uint32

const (
	BoardUnknown            BoardType = 0
	BoardSlimeVRLegacy      BoardType = 1
	BoardSlimeVRDev         BoardType = 2
	BoardNodeMCU            BoardType = 3
	BoardCustom             BoardType = 4
	BoardWRoom32            BoardType = 5
	BoardWemosD1Mini        BoardType = 6
	BoardTTGOTBase          BoardType = 7
	BoardESP01              BoardType = 8
	BoardSlimeVR            BoardType = 9
	BoardLolinC3Mini        BoardType = 10
	BoardBeetle32C3         BoardType = 11
	BoardESP32C3DevKitM1    BoardType = 12
	BoardOwoTrack           BoardType = 13
	BoardWrangler           BoardType = 14
	BoardMocopi             BoardType = 15
	BoardWemosWroom02       BoardType = 16
	BoardXiaoEsp32C3        BoardType = 17
	BoardHaritora           BoardType = 18
	BoardESP32C6DevKitC1    BoardType = 19
	BoardGloveImuSlimeVRDev BoardType = 20
)

func (b BoardType) String() string {
	switch b {
	case BoardSlimeVRLegacy:
		return "slimevr-legacy"
	case BoardSlimeVRDev:
		return "slimevr-dev"
	case BoardNodeMCU:
		return "nodemcu"
	case BoardCustom:
		return "custom"
	case BoardWRoom32:
		return "wroom32"
	case BoardWemosD1Mini:
		return "wemos-d1-mini"
	case BoardTTGOTBase:
		return "ttgo-tbase"
	case BoardESP01:
		return "esp01"
	case BoardSlimeVR:
		return "slimevr"
	case BoardLolinC3Mini:
		return "lolin-c3-mini"
	case BoardBeetle32C3:
		return "beetle32c3"
	case BoardESP32C3DevKitM1:
		return "esp32-c3-devkit-m1"
	case BoardOwoTrack:
		return "owotrack"
	case BoardWrangler:
		return "wrangler"
	case BoardMocopi:
		return "mocopi"
	case BoardWemosWroom02:
		return "wemos-wroom02"
	case BoardXiaoEsp32C3:
		return "xiao-esp32-c3"
	case BoardHaritora:
		return "haritora"
	case BoardESP32C6DevKitC1:
		return "esp32-c6-devkit-c1"
	case BoardGloveImuSlimeVRDev:
		return "glove-imu-slimevr-dev"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(b))
	}
}

// McuType identifies the tracker's microcontroller in the handshake.
type McuType uint32

const (
	McuUnknown         McuType = 0
	McuEsp8266         McuType = 1
	McuEsp32           McuType = 2
	McuOwoTrackAndroid McuType = 3
	McuWrangler        McuType = 4
	McuOwoTrackIos     McuType = 5
	McuEsp32C3         McuType = 6
	McuMocopi          McuType = 7
	McuHaritora        McuType = 8
)

func (m McuType) String() string {
	switch m {
	case McuEsp8266:
		return "esp8266"
	case McuEsp32:
		return "esp32"
	case McuOwoTrackAndroid:
		return "owotrack-android"
	case McuWrangler:
		return "wrangler"
	case McuOwoTrackIos:
		return "owotrack-ios"
	case McuEsp32C3:
		return "esp32-c3"
	case McuMocopi:
		return "mocopi"
	case McuHaritora:
		return "haritora"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(m))
	}
}

// ImuType identifies the inertial measurement unit backing a sensor.
type ImuType uint8

const (
	ImuUnknown    ImuType = 0
	ImuMpu9250    ImuType = 1
	ImuMpu6500    ImuType = 2
	ImuBno080     ImuType = 3
	ImuBno085     ImuType = 4
	ImuBno055     ImuType = 5
	ImuMpu6050    ImuType = 6
	ImuBno086     ImuType = 7
	ImuBmi160     ImuType = 8
	ImuIcm20948   ImuType = 9
	ImuIcm42688   ImuType = 10
	ImuBmi270     ImuType = 11
	ImuLsm6ds3trc ImuType = 12
	ImuLsm6dsv    ImuType = 13
	ImuLsm6dso    ImuType = 14
	ImuLsm6dsr    ImuType = 15
	ImuIcm45686   ImuType = 16
	ImuIcm45605   ImuType = 17
)

func (i ImuType) String() string {
	switch i {
	case ImuMpu9250:
		return "mpu9250"
	case ImuMpu6500:
		return "mpu6500"
	case ImuBno080:
		return "bno080"
	case ImuBno085:
		return "bno085"
	case ImuBno055:
		return "bno055"
	case ImuMpu6050:
		return "mpu6050"
	case ImuBno086:
		return "bno086"
	case ImuBmi160:
		return "bmi160"
	case ImuIcm20948:
		return "icm20948"
	case ImuIcm42688:
		return "icm42688"
	case ImuBmi270:
		return "bmi270"
	case ImuLsm6ds3trc:
		return "lsm6ds3trc"
	case ImuLsm6dsv:
		return "lsm6dsv"
	case ImuLsm6dso:
		return "lsm6dso"
	case ImuLsm6dsr:
		return "lsm6dsr"
	case ImuIcm45686:
		return "icm45686"
	case ImuIcm45605:
		return "icm45605"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(i))
	}
}

// SensorStatus reports whether a sensor is delivering data.
type SensorStatus uint8

const (
	SensorOk      SensorStatus = 1
	SensorOffline SensorStatus = 2
)

func (s SensorStatus) String() string {
	switch s {
	case SensorOk:
		return "ok"
	case SensorOffline:
		return "offline"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// SensorDataType qualifies a rotation sample.
type SensorDataType uint8

const (
	DataNormal     SensorDataType = 1
	DataCorrection SensorDataType = 2
)

func (d SensorDataType) String() string {
	switch d {
	case DataNormal:
		return "normal"
	case DataCorrection:
		return "correction"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(d))
	}
}

// UserActionType is a gesture or button action reported to the server.
type UserActionType uint8

const (
	ActionReset         UserActionType = 2
	ActionResetYaw      UserActionType = 3
	ActionResetMounting UserActionType = 4
	ActionPauseTracking UserActionType = 5
)

func (a UserActionType) String() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionResetYaw:
		return "reset-yaw"
	case ActionResetMounting:
		return "reset-mounting"
	case ActionPauseTracking:
		return "pause-tracking"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// Quaternion is a rotation sample in x, y, z, w component order.
type Quaternion struct {
	X, Y, Z, W float32
}

// Vector3 is an acceleration sample in m/s².
type Vector3 struct {
	X, Y, Z float32
}
