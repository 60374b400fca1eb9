package imubridge

import (
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
	"time"
)

func (b *Bridge) handleHighresImu(m HighresImu) {
	_, first := b.state.admit(KindHighresImu)
	if first {
		log.Info("high resolution IMU detected")
	}
	stamp := b.clock.FromBootMicros(m.TimeUsec)

	// Accelerometer and gyroscope share one availability check.
	if m.FieldsUpdated&(hrFieldsAccel|hrFieldsGyro) != 0 {
		gyro := vectorAircraftToBaselink(r3.Vec{X: float64(m.XGyro), Y: float64(m.YGyro), Z: float64(m.ZGyro)})
		accelNed := r3.Vec{X: float64(m.XAcc), Y: float64(m.YAcc), Z: float64(m.ZAcc)}
		accelEnu := vectorAircraftToBaselink(accelNed)

		b.publishImuDataRaw(stamp, gyro, accelEnu, accelNed)
	}

	if m.FieldsUpdated&hrFieldsMag != 0 {
		field := vectorAircraftToBaselink(r3.Scale(gaussToTesla,
			r3.Vec{X: float64(m.XMag), Y: float64(m.YMag), Z: float64(m.ZMag)}))

		b.publishMag(stamp, field)
	}

	if m.FieldsUpdated&hrFieldsAbsPressure != 0 {
		b.publishFluidPressure(stamp, float64(m.AbsPressure)*millibarToPascal)
	}

	if m.FieldsUpdated&hrFieldsTemperature != 0 {
		b.publishTemperature(stamp, float64(m.Temperature))
	}
}

// Legacy raw IMU, used only while neither the high resolution nor the scaled
// source has been seen. Acceleration is milli-g on ArduPilot and opaque
// counts everywhere else.
func (b *Bridge) handleRawImu(m RawImu) {
	if ok, _ := b.state.admit(KindRawImu); !ok {
		return
	}
	stamp := b.clock.FromBootMicros(m.TimeUsec)

	gyro := vectorAircraftToBaselink(r3.Scale(milliRSToRadSec,
		r3.Vec{X: float64(m.XGyro), Y: float64(m.YGyro), Z: float64(m.ZGyro)}))
	accelNed := r3.Vec{X: float64(m.XAcc), Y: float64(m.YAcc), Z: float64(m.ZAcc)}
	accelEnu := vectorAircraftToBaselink(accelNed)

	if b.autopilot == AutopilotArduPilot {
		accelNed = r3.Scale(milliGToMS2, accelNed)
		accelEnu = r3.Scale(milliGToMS2, accelEnu)
	}

	b.publishImuDataRaw(stamp, gyro, accelEnu, accelNed)

	if b.autopilot != AutopilotArduPilot {
		if b.shouldWarnRawAccel(time.Now()) {
			log.Warn("raw IMU acceleration scale is only known on ArduPilot")
			log.Warn("published raw snapshot keeps the unscaled acceleration report")
		}
		b.cache.record(r3.Vec{}, r3.Vec{})
	}

	field := vectorAircraftToBaselink(r3.Scale(milliTToTesla,
		r3.Vec{X: float64(m.XMag), Y: float64(m.YMag), Z: float64(m.ZMag)}))
	b.publishMag(stamp, field)
}

func (b *Bridge) handleScaledImu(m ScaledImu) {
	ok, first := b.state.admit(KindScaledImu)
	if !ok {
		return
	}
	if first {
		log.Info("scaled IMU source used")
	}
	stamp := b.clock.FromBootMillis(m.TimeBootMs)

	gyro := vectorAircraftToBaselink(r3.Scale(milliRSToRadSec,
		r3.Vec{X: float64(m.XGyro), Y: float64(m.YGyro), Z: float64(m.ZGyro)}))
	accelNed := r3.Scale(milliGToMS2, r3.Vec{X: float64(m.XAcc), Y: float64(m.YAcc), Z: float64(m.ZAcc)})
	accelEnu := vectorAircraftToBaselink(accelNed)

	b.publishImuDataRaw(stamp, gyro, accelEnu, accelNed)

	field := vectorAircraftToBaselink(r3.Scale(milliTToTesla,
		r3.Vec{X: float64(m.XMag), Y: float64(m.YMag), Z: float64(m.ZMag)}))
	b.publishMag(stamp, field)
}
