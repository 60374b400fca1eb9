package imubridge

// MessageKind tags a decoded telemetry message for dispatch. The numeric
// values are part of the record/replay wire format and must not be reordered.
type MessageKind uint8

const (
	KindAttitude MessageKind = iota + 1
	KindAttitudeQuaternion
	KindHighresImu
	KindRawImu
	KindScaledImu
	KindScaledPressure
	KindConnection
)

func (k MessageKind) String() string {
	switch k {
	case KindAttitude:
		return "attitude"
	case KindAttitudeQuaternion:
		return "attitude_quaternion"
	case KindHighresImu:
		return "highres_imu"
	case KindRawImu:
		return "raw_imu"
	case KindScaledImu:
		return "scaled_imu"
	case KindScaledPressure:
		return "scaled_pressure"
	case KindConnection:
		return "connection"
	}
	return "unknown"
}

// Message is any decoded telemetry message the bridge can dispatch on.
type Message interface {
	Kind() MessageKind
}

// Attitude is an Euler-angle attitude report in the NED/aircraft convention.
// Angles are radians, rates rad/s.
type Attitude struct {
	TimeBootMs uint32
	Roll       float32
	Pitch      float32
	Yaw        float32
	RollSpeed  float32
	PitchSpeed float32
	YawSpeed   float32
}

func (Attitude) Kind() MessageKind { return KindAttitude }

// AttitudeQuaternion is a quaternion attitude report in the NED/aircraft
// convention. Q1..Q4 are (w, x, y, z); rates are rad/s.
type AttitudeQuaternion struct {
	TimeBootMs uint32
	Q1         float32
	Q2         float32
	Q3         float32
	Q4         float32
	RollSpeed  float32
	PitchSpeed float32
	YawSpeed   float32
}

func (AttitudeQuaternion) Kind() MessageKind { return KindAttitudeQuaternion }

// HighresImu is the combined high-resolution inertial report. Acceleration is
// m/s², rates rad/s, magnetic field Gauss, pressure millibar, temperature °C.
// FieldsUpdated flags which groups carry valid data (see hrFields* masks).
type HighresImu struct {
	TimeUsec      uint64
	XAcc          float32
	YAcc          float32
	ZAcc          float32
	XGyro         float32
	YGyro         float32
	ZGyro         float32
	XMag          float32
	YMag          float32
	ZMag          float32
	AbsPressure   float32
	Temperature   float32
	FieldsUpdated uint16
}

func (HighresImu) Kind() MessageKind { return KindHighresImu }

// FieldsUpdated group masks for HighresImu.
const (
	hrFieldsAccel       uint16 = 0x0007  // bits 0-2: xacc..zacc
	hrFieldsGyro        uint16 = 0x0038  // bits 3-5: xgyro..zgyro
	hrFieldsMag         uint16 = 0x01c0  // bits 6-8: xmag..zmag
	hrFieldsAbsPressure uint16 = 1 << 9  // bit 9: abs_pressure
	hrFieldsTemperature uint16 = 1 << 12 // bit 12: temperature
)

// RawImu is the legacy uncalibrated inertial report. Rates are milli-rad/s
// and the magnetic field follows the milli-scale convention; acceleration is
// raw counts except on the ArduPilot family, which reports milli-g.
type RawImu struct {
	TimeUsec uint64
	XAcc     int16
	YAcc     int16
	ZAcc     int16
	XGyro    int16
	YGyro    int16
	ZGyro    int16
	XMag     int16
	YMag     int16
	ZMag     int16
}

func (RawImu) Kind() MessageKind { return KindRawImu }

// ScaledImu is the legacy calibrated inertial report: acceleration milli-g,
// rates milli-rad/s, magnetic field milli-scale.
type ScaledImu struct {
	TimeBootMs uint32
	XAcc       int16
	YAcc       int16
	ZAcc       int16
	XGyro      int16
	YGyro      int16
	ZGyro      int16
	XMag       int16
	YMag       int16
	ZMag       int16
}

func (ScaledImu) Kind() MessageKind { return KindScaledImu }

// ScaledPressure carries barometric pressure in millibar and temperature in
// hundredths of a degree Celsius.
type ScaledPressure struct {
	TimeBootMs  uint32
	PressAbs    float32
	PressDiff   float32
	Temperature int16
}

func (ScaledPressure) Kind() MessageKind { return KindScaledPressure }

// ConnectionEvent reports a transport connection state change. Both
// directions reset the source priority latches.
type ConnectionEvent struct {
	Connected bool
}

func (ConnectionEvent) Kind() MessageKind { return KindConnection }

// Autopilot identifies the flight controller family. It decides whether the
// RawImu acceleration field is interpretable (milli-g on ArduPilot, opaque
// counts elsewhere).
type Autopilot uint8

const (
	AutopilotGeneric Autopilot = iota
	AutopilotArduPilot
	AutopilotPX4
)
