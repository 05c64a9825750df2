package firmware

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// PacketType is the 4-byte tag that opens every datagram.
type PacketType uint32

const (
	TypeHeartbeat      PacketType = 0
	TypeHandshake      PacketType = 3
	TypeAcceleration   PacketType = 4
	TypePing           PacketType = 10
	TypeBattery        PacketType = 12
	TypeSensorInfo     PacketType = 15
	TypeRotationData   PacketType = 17
	TypeMagAccuracy    PacketType = 18
	TypeSignalStrength PacketType = 19
	TypeTemperature    PacketType = 20
	TypeUserAction     PacketType = 21
)

// headerLen is the tag plus the sequence number.
const headerLen = 4 + 8

// FirmwareBuild is the protocol build number announced in the handshake.
const FirmwareBuild = 13

// ServerBound is an outbound packet payload built by the tracker.
type ServerBound interface {
	packetType() PacketType
	appendPayload(b []byte) ([]byte, error)
}

// Encode serializes a server-bound payload with the given sequence number.
func Encode(seq uint64, p ServerBound) ([]byte, error) {
	b := make([]byte, 0, 64)
	b = binary.BigEndian.AppendUint32(b, uint32(p.packetType()))
	b = binary.BigEndian.AppendUint64(b, seq)
	b, err := p.appendPayload(b)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %d payload failed", p.packetType())
	}
	return b, nil
}

func appendFloat32(b []byte, f float32) []byte {
	return binary.BigEndian.AppendUint32(b, math.Float32bits(f))
}

func appendString(b []byte, s string) ([]byte, error) {
	if len(s) > 255 {
		return nil, ErrStringTooLong
	}
	b = append(b, byte(len(s)))
	return append(b, s...), nil
}

// Heartbeat is the 1 Hz liveness packet.
type Heartbeat struct{}

func (Heartbeat) packetType() PacketType { return TypeHeartbeat }

func (Heartbeat) appendPayload(b []byte) ([]byte, error) { return b, nil }

// Handshake announces the tracker's identity during discovery.
// It is always sent with sequence number 0.
type Handshake struct {
	Board    BoardType
	Imu      ImuType
	Mcu      McuType
	ImuInfo  [3]uint32
	Build    uint32
	Firmware string
	Mac      [6]byte
}

func (Handshake) packetType() PacketType { return TypeHandshake }

func (h Handshake) appendPayload(b []byte) ([]byte, error) {
	b = binary.BigEndian.AppendUint32(b, uint32(h.Board))
	b = binary.BigEndian.AppendUint32(b, uint32(h.Imu))
	b = binary.BigEndian.AppendUint32(b, uint32(h.Mcu))
	for _, v := range h.ImuInfo {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = binary.BigEndian.AppendUint32(b, h.Build)
	b, err := appendString(b, h.Firmware)
	if err != nil {
		return nil, err
	}
	return append(b, h.Mac[:]...), nil
}

// Ping echoes a server challenge to prove liveness.
type Ping struct {
	Challenge [4]byte
}

func (Ping) packetType() PacketType { return TypePing }

func (p Ping) appendPayload(b []byte) ([]byte, error) {
	return append(b, p.Challenge[:]...), nil
}

// SensorInfo announces a newly registered sensor.
type SensorInfo struct {
	SensorID uint8
	Status   SensorStatus
	Type     ImuType
}

func (SensorInfo) packetType() PacketType { return TypeSensorInfo }

func (s SensorInfo) appendPayload(b []byte) ([]byte, error) {
	return append(b, s.SensorID, uint8(s.Status), uint8(s.Type)), nil
}

// RotationData carries one orientation sample.
type RotationData struct {
	SensorID uint8
	DataType SensorDataType
	Quat     Quaternion
	Accuracy uint8
}

func (RotationData) packetType() PacketType { return TypeRotationData }

func (r RotationData) appendPayload(b []byte) ([]byte, error) {
	b = append(b, r.SensorID, uint8(r.DataType))
	b = appendFloat32(b, r.Quat.X)
	b = appendFloat32(b, r.Quat.Y)
	b = appendFloat32(b, r.Quat.Z)
	b = appendFloat32(b, r.Quat.W)
	return append(b, r.Accuracy), nil
}

// Acceleration carries one linear acceleration sample.
type Acceleration struct {
	Vector   Vector3
	SensorID uint8
}

func (Acceleration) packetType() PacketType { return TypeAcceleration }

func (a Acceleration) appendPayload(b []byte) ([]byte, error) {
	b = appendFloat32(b, a.Vector.X)
	b = appendFloat32(b, a.Vector.Y)
	b = appendFloat32(b, a.Vector.Z)
	return append(b, a.SensorID), nil
}

// Battery reports pack voltage and charge percentage.
type Battery struct {
	Voltage    float32
	Percentage float32
}

func (Battery) packetType() PacketType { return TypeBattery }

func (p Battery) appendPayload(b []byte) ([]byte, error) {
	b = appendFloat32(b, p.Voltage)
	return appendFloat32(b, p.Percentage), nil
}

// Temperature reports a sensor die temperature in °C.
type Temperature struct {
	SensorID uint8
	Celsius  float32
}

func (Temperature) packetType() PacketType { return TypeTemperature }

func (t Temperature) appendPayload(b []byte) ([]byte, error) {
	b = append(b, t.SensorID)
	return appendFloat32(b, t.Celsius), nil
}

// SignalStrength reports the RSSI observed by a sensor in dBm.
type SignalStrength struct {
	SensorID uint8
	Rssi     int8
}

func (SignalStrength) packetType() PacketType { return TypeSignalStrength }

func (s SignalStrength) appendPayload(b []byte) ([]byte, error) {
	return append(b, s.SensorID, byte(s.Rssi)), nil
}

// MagAccuracy reports magnetometer calibration accuracy in radians.
type MagAccuracy struct {
	SensorID uint8
	Accuracy float32
}

func (MagAccuracy) packetType() PacketType { return TypeMagAccuracy }

func (m MagAccuracy) appendPayload(b []byte) ([]byte, error) {
	b = append(b, m.SensorID)
	return appendFloat32(b, m.Accuracy), nil
}

// UserAction reports a user gesture such as a reset tap.
type UserAction struct {
	Action UserActionType
}

func (UserAction) packetType() PacketType { return TypeUserAction }

func (u UserAction) appendPayload(b []byte) ([]byte, error) {
	return append(b, uint8(u.Action)), nil
}
