package imubridge

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"time"
)

// FrameIDAircraft is the frame id carried by the internal NED/aircraft
// snapshot; the published ENU/baselink snapshot carries the configured
// frame id.
const FrameIDAircraft = "aircraft"

// ImuSnapshot is a unit-normalized inertial snapshot in a single frame.
// Orientation follows (w, x, y, z) = (Real, Imag, Jmag, Kmag); vectors are
// SI. A snapshot derived from an acceleration/gyro source carries no
// orientation estimate, signaled by the unknown-covariance sentinel in
// OrientationCovariance.
type ImuSnapshot struct {
	FrameID string
	Stamp   time.Time

	Orientation        quat.Number
	AngularVelocity    r3.Vec
	LinearAcceleration r3.Vec

	OrientationCovariance        Covariance3
	AngularVelocityCovariance    Covariance3
	LinearAccelerationCovariance Covariance3
}

// HasOrientation reports whether the orientation field holds an estimate.
// The unknown-covariance sentinel means consumers must ignore Orientation.
func (s *ImuSnapshot) HasOrientation() bool {
	return s.OrientationCovariance[0] >= 0
}

// MagneticFieldSnapshot is the body-frame magnetic field in tesla.
type MagneticFieldSnapshot struct {
	FrameID       string
	Stamp         time.Time
	MagneticField r3.Vec
	Covariance    Covariance3
}

// TemperatureSnapshot is the reported temperature in °C.
type TemperatureSnapshot struct {
	FrameID     string
	Stamp       time.Time
	Temperature float64
}

// FluidPressureSnapshot is the absolute barometric pressure in pascal.
type FluidPressureSnapshot struct {
	FrameID  string
	Stamp    time.Time
	Pressure float64
}

// Sink receives published snapshots. Implementations must not retain or
// mutate a snapshot beyond the call.
type Sink interface {
	PublishImu(*ImuSnapshot) error
	PublishMagneticField(*MagneticFieldSnapshot) error
	PublishTemperature(*TemperatureSnapshot) error
	PublishFluidPressure(*FluidPressureSnapshot) error
}
