package imubridge

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"math"
)

// Two fixed rotations relate the telemetry's native frames to the published
// conventions: the world-frame NED↔ENU permutation and the 180° roll between
// the aircraft body frame and baselink.
var (
	nedEnuQ           = quaternionFromRPY(math.Pi, 0, math.Pi/2)
	aircraftBaselinkQ = quaternionFromRPY(math.Pi, 0, 0)

	aircraftBaselinkRot = r3.Rotation(aircraftBaselinkQ)
)

// quaternionFromRPY builds the intrinsic ZYX rotation qz(yaw) ⊗ qy(pitch) ⊗
// qx(roll) as quaternion products, never as independent Euler rotations.
func quaternionFromRPY(roll, pitch, yaw float64) quat.Number {
	sr, cr := math.Sincos(roll / 2)
	sp, cp := math.Sincos(pitch / 2)
	sy, cy := math.Sincos(yaw / 2)
	qx := quat.Number{Real: cr, Imag: sr}
	qy := quat.Number{Real: cp, Jmag: sp}
	qz := quat.Number{Real: cy, Kmag: sy}
	return quat.Mul(quat.Mul(qz, qy), qx)
}

// orientationNedToEnu re-expresses a world-frame orientation from the NED
// convention in ENU.
func orientationNedToEnu(q quat.Number) quat.Number {
	return quat.Mul(nedEnuQ, q)
}

// orientationAircraftToBaselink re-expresses an aircraft-body orientation as
// a baselink orientation.
func orientationAircraftToBaselink(q quat.Number) quat.Number {
	return quat.Mul(q, aircraftBaselinkQ)
}

// attitudeEnuBaselink converts a NED→aircraft attitude into the published
// ENU→baselink attitude: body rotation first, then the world-frame rotation.
func attitudeEnuBaselink(q quat.Number) quat.Number {
	return orientationAircraftToBaselink(orientationNedToEnu(q))
}

// vectorAircraftToBaselink rotates a body-frame vector (gyro, acceleration,
// magnetic field) into baselink: (x, y, z) → (x, -y, -z). The world NED↔ENU
// rotation never applies to body-frame vectors.
func vectorAircraftToBaselink(v r3.Vec) r3.Vec {
	return aircraftBaselinkRot.Rotate(v)
}
