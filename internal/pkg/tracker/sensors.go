package tracker

import (
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/firmware"

	"github.com/pkg/errors"
)

// Sensor is one virtual IMU registered on the tracker. IDs are assigned in
// registration order and never reused, even across Deinit/Init cycles.
type Sensor struct {
	ID     uint8
	Type   firmware.ImuType
	Status firmware.SensorStatus
}

// AddSensor registers a sensor and announces it to the server. The sensor
// keeps its registry slot even if the announce send fails; registry
// membership and announce delivery are deliberately not transactional.
func (t *Tracker) AddSensor(sensorType firmware.ImuType, status firmware.SensorStatus) (Sensor, error) {
	t.mu.Lock()
	sensor := Sensor{
		ID:     uint8(len(t.sensors)),
		Type:   sensorType,
		Status: status,
	}
	t.sensors = append(t.sensors, sensor)
	t.mu.Unlock()

	if err := t.sendPacket(firmware.SensorInfo{
		SensorID: sensor.ID,
		Status:   sensor.Status,
		Type:     sensor.Type,
	}); err != nil {
		return sensor, errors.Wrap(err, "announce sensor failed")
	}
	return sensor, nil
}

// Sensors returns a snapshot of the registry in registration order.
func (t *Tracker) Sensors() []Sensor {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Sensor, len(t.sensors))
	copy(out, t.sensors)
	return out
}

// SendRotation sends one orientation sample for a sensor. Payload ranges
// are the caller's responsibility.
func (t *Tracker) SendRotation(sensorID uint8, dataType firmware.SensorDataType, quat firmware.Quaternion, accuracy uint8) error {
	return t.sendPacket(firmware.RotationData{
		SensorID: sensorID,
		DataType: dataType,
		Quat:     quat,
		Accuracy: accuracy,
	})
}

// SendAcceleration sends one linear acceleration sample for a sensor.
func (t *Tracker) SendAcceleration(sensorID uint8, vec firmware.Vector3) error {
	return t.sendPacket(firmware.Acceleration{
		Vector:   vec,
		SensorID: sensorID,
	})
}

// SendBatteryLevel reports pack voltage and charge percentage.
func (t *Tracker) SendBatteryLevel(percentage, voltage float32) error {
	return t.sendPacket(firmware.Battery{
		Voltage:    voltage,
		Percentage: percentage,
	})
}

// SendTemperature reports a sensor die temperature in °C.
func (t *Tracker) SendTemperature(sensorID uint8, celsius float32) error {
	return t.sendPacket(firmware.Temperature{
		SensorID: sensorID,
		Celsius:  celsius,
	})
}

// SendSignalStrength reports the RSSI observed by a sensor in dBm.
func (t *Tracker) SendSignalStrength(sensorID uint8, rssi int8) error {
	return t.sendPacket(firmware.SignalStrength{
		SensorID: sensorID,
		Rssi:     rssi,
	})
}

// SendMagnetometerAccuracy reports magnetometer calibration accuracy in
// radians.
func (t *Tracker) SendMagnetometerAccuracy(sensorID uint8, accuracy float32) error {
	return t.sendPacket(firmware.MagAccuracy{
		SensorID: sensorID,
		Accuracy: accuracy,
	})
}

// SendUserAction reports a user gesture such as a reset tap.
func (t *Tracker) SendUserAction(action firmware.UserActionType) error {
	return t.sendPacket(firmware.UserAction{Action: action})
}
