package forwarder

import (
	"github.com/jd3nn1s/imubridge"
	"gonum.org/v1/gonum/spatial/r3"
)

type Header struct {
	Type uint8
}

const (
	TypeImu           = 1
	TypeMagneticField = 2
	TypeTemperature   = 3
	TypePressure      = 4
)

// Frame tags on wire records.
const (
	FrameEnuBaselink uint8 = 1
	FrameNedAircraft uint8 = 2
)

type Imu struct {
	StampNs        int64
	Frame          uint8
	HasOrientation uint8

	Orientation        [4]float64
	AngularVelocity    [3]float64
	LinearAcceleration [3]float64

	OrientationCov        [9]float64
	AngularVelocityCov    [9]float64
	LinearAccelerationCov [9]float64
}

type MagneticField struct {
	StampNs    int64
	Frame      uint8
	Field      [3]float64
	Covariance [9]float64
}

type Temperature struct {
	StampNs     int64
	Frame       uint8
	Temperature float64
}

type Pressure struct {
	StampNs  int64
	Frame    uint8
	Pressure float64
}

func frameTag(frameID string) uint8 {
	if frameID == imubridge.FrameIDAircraft {
		return FrameNedAircraft
	}
	return FrameEnuBaselink
}

func vec3(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func imuRecord(snap *imubridge.ImuSnapshot) Imu {
	rec := Imu{
		StampNs: snap.Stamp.UnixNano(),
		Frame:   frameTag(snap.FrameID),
		Orientation: [4]float64{
			snap.Orientation.Real,
			snap.Orientation.Imag,
			snap.Orientation.Jmag,
			snap.Orientation.Kmag,
		},
		AngularVelocity:       vec3(snap.AngularVelocity),
		LinearAcceleration:    vec3(snap.LinearAcceleration),
		OrientationCov:        snap.OrientationCovariance,
		AngularVelocityCov:    snap.AngularVelocityCovariance,
		LinearAccelerationCov: snap.LinearAccelerationCovariance,
	}
	if snap.HasOrientation() {
		rec.HasOrientation = 1
	}
	return rec
}

func magneticFieldRecord(snap *imubridge.MagneticFieldSnapshot) MagneticField {
	return MagneticField{
		StampNs:    snap.Stamp.UnixNano(),
		Frame:      frameTag(snap.FrameID),
		Field:      vec3(snap.MagneticField),
		Covariance: snap.Covariance,
	}
}

func temperatureRecord(snap *imubridge.TemperatureSnapshot) Temperature {
	return Temperature{
		StampNs:     snap.Stamp.UnixNano(),
		Frame:       frameTag(snap.FrameID),
		Temperature: snap.Temperature,
	}
}

func pressureRecord(snap *imubridge.FluidPressureSnapshot) Pressure {
	return Pressure{
		StampNs:  snap.Stamp.UnixNano(),
		Frame:    frameTag(snap.FrameID),
		Pressure: snap.Pressure,
	}
}
