package forwarder

import (
	"encoding/json"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jd3nn1s/imubridge"
	"github.com/pkg/errors"
	"time"
)

const mqttDisconnectMs = 250

// to allow testing
var mqttNewClient = func(opts *mqtt.ClientOptions) mqtt.Client {
	return mqtt.NewClient(opts)
}

// MQTTForwarder publishes snapshots as JSON, one topic per snapshot kind
// under a common prefix. IMU snapshots split on orientation presence:
// <prefix>/data with an orientation estimate, <prefix>/data_raw without.
type MQTTForwarder struct {
	client mqtt.Client
	prefix string
}

func NewMQTTForwarder(broker, clientID, prefix string) (*MQTTForwarder, error) {
	if prefix == "" {
		prefix = "imu"
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqttNewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "unable to connect to MQTT broker %s", broker)
	}
	return &MQTTForwarder{
		client: client,
		prefix: prefix,
	}, nil
}

func (m *MQTTForwarder) Close() error {
	m.client.Disconnect(mqttDisconnectMs)
	return nil
}

type imuPayload struct {
	FrameID string    `json:"frame_id"`
	Stamp   time.Time `json:"stamp"`

	// w, x, y, z; absent when the snapshot has no orientation estimate
	Orientation        *[4]float64 `json:"orientation,omitempty"`
	AngularVelocity    [3]float64  `json:"angular_velocity"`
	LinearAcceleration [3]float64  `json:"linear_acceleration"`

	OrientationCovariance        [9]float64 `json:"orientation_covariance"`
	AngularVelocityCovariance    [9]float64 `json:"angular_velocity_covariance"`
	LinearAccelerationCovariance [9]float64 `json:"linear_acceleration_covariance"`
}

type magneticFieldPayload struct {
	FrameID       string     `json:"frame_id"`
	Stamp         time.Time  `json:"stamp"`
	MagneticField [3]float64 `json:"magnetic_field"`
	Covariance    [9]float64 `json:"magnetic_field_covariance"`
}

type temperaturePayload struct {
	FrameID     string    `json:"frame_id"`
	Stamp       time.Time `json:"stamp"`
	Temperature float64   `json:"temperature"`
}

type pressurePayload struct {
	FrameID  string    `json:"frame_id"`
	Stamp    time.Time `json:"stamp"`
	Pressure float64   `json:"fluid_pressure"`
}

func newImuPayload(snap *imubridge.ImuSnapshot) imuPayload {
	p := imuPayload{
		FrameID:                      snap.FrameID,
		Stamp:                        snap.Stamp,
		AngularVelocity:              vec3(snap.AngularVelocity),
		LinearAcceleration:           vec3(snap.LinearAcceleration),
		OrientationCovariance:        snap.OrientationCovariance,
		AngularVelocityCovariance:    snap.AngularVelocityCovariance,
		LinearAccelerationCovariance: snap.LinearAccelerationCovariance,
	}
	if snap.HasOrientation() {
		p.Orientation = &[4]float64{
			snap.Orientation.Real,
			snap.Orientation.Imag,
			snap.Orientation.Jmag,
			snap.Orientation.Kmag,
		}
	}
	return p
}

func (m *MQTTForwarder) PublishImu(snap *imubridge.ImuSnapshot) error {
	topic := m.prefix + "/data"
	if !snap.HasOrientation() {
		topic = m.prefix + "/data_raw"
	}
	return m.publish(topic, newImuPayload(snap))
}

func (m *MQTTForwarder) PublishMagneticField(snap *imubridge.MagneticFieldSnapshot) error {
	return m.publish(m.prefix+"/mag", magneticFieldPayload{
		FrameID:       snap.FrameID,
		Stamp:         snap.Stamp,
		MagneticField: vec3(snap.MagneticField),
		Covariance:    snap.Covariance,
	})
}

func (m *MQTTForwarder) PublishTemperature(snap *imubridge.TemperatureSnapshot) error {
	return m.publish(m.prefix+"/temperature", temperaturePayload{
		FrameID:     snap.FrameID,
		Stamp:       snap.Stamp,
		Temperature: snap.Temperature,
	})
}

func (m *MQTTForwarder) PublishFluidPressure(snap *imubridge.FluidPressureSnapshot) error {
	return m.publish(m.prefix+"/atm_pressure", pressurePayload{
		FrameID:  snap.FrameID,
		Stamp:    snap.Stamp,
		Pressure: snap.Pressure,
	})
}

func (m *MQTTForwarder) publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "unable to marshal payload for %s", topic)
	}
	if token := m.client.Publish(topic, 0, false, data); token.Wait() && token.Error() != nil {
		return errors.Wrapf(token.Error(), "unable to publish to %s", topic)
	}
	return nil
}
