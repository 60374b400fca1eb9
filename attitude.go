package imubridge

import (
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Euler attitude, ignored once a quaternion attitude source is present.
func (b *Bridge) handleAttitude(m Attitude) {
	if ok, _ := b.state.admit(KindAttitude); !ok {
		return
	}

	// The report describes the rotation aircraft->NED. Change it to
	// aircraft->base_link and finally to base_link->ENU.
	orientationNed := quaternionFromRPY(float64(m.Roll), float64(m.Pitch), float64(m.Yaw))
	orientationEnu := attitudeEnuBaselink(orientationNed)

	// Angular velocity is expressed in the aircraft frame; only the static
	// body rotation applies.
	gyroNed := r3.Vec{X: float64(m.RollSpeed), Y: float64(m.PitchSpeed), Z: float64(m.YawSpeed)}
	gyroEnu := vectorAircraftToBaselink(gyroNed)

	b.publishImuData(b.clock.FromBootMillis(m.TimeBootMs), orientationEnu, orientationNed, gyroEnu, gyroNed)
}

func (b *Bridge) handleAttitudeQuaternion(m AttitudeQuaternion) {
	_, first := b.state.admit(KindAttitudeQuaternion)
	if first {
		log.Info("attitude quaternion source detected")
	}

	orientationNed := quat.Number{
		Real: float64(m.Q1),
		Imag: float64(m.Q2),
		Jmag: float64(m.Q3),
		Kmag: float64(m.Q4),
	}
	orientationEnu := attitudeEnuBaselink(orientationNed)

	gyroNed := r3.Vec{X: float64(m.RollSpeed), Y: float64(m.PitchSpeed), Z: float64(m.YawSpeed)}
	gyroEnu := vectorAircraftToBaselink(gyroNed)

	b.publishImuData(b.clock.FromBootMillis(m.TimeBootMs), orientationEnu, orientationNed, gyroEnu, gyroNed)
}
