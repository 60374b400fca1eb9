package imubridge

import (
	"context"
	"time"
)

// Simulator is a synthetic telemetry source for running the bridge without a
// flight controller. It emits a quaternion attitude sweep, high resolution
// inertial data and a standalone pressure stream.
type Simulator struct{}

func (s *Simulator) Close() error {
	return nil
}

func (s *Simulator) Start(ctx context.Context, cb Callbacks) error {
	if cb.Connection != nil {
		cb.Connection(ConnectionEvent{Connected: true})
	}

	start := time.Now()
	bootMs := func() uint32 {
		return uint32(time.Since(start) / time.Millisecond)
	}
	bootUs := func() uint64 {
		return uint64(time.Since(start) / time.Microsecond)
	}

	go func() {
		roll := 0.0
		rate := 0.5
		for {
			select {
			case <-time.Tick(time.Millisecond * 20):
			case <-ctx.Done():
				return
			}
			roll += rate * 0.02
			if roll >= 0.5 {
				rate = -0.5
			} else if roll <= -0.5 {
				rate = 0.5
			}

			if cb.AttitudeQuaternion == nil {
				continue
			}
			q := quaternionFromRPY(roll, 0, 0)
			cb.AttitudeQuaternion(AttitudeQuaternion{
				TimeBootMs: bootMs(),
				Q1:         float32(q.Real),
				Q2:         float32(q.Imag),
				Q3:         float32(q.Jmag),
				Q4:         float32(q.Kmag),
				RollSpeed:  float32(rate),
			})
		}
	}()

	go func() {
		xacc := float32(0)
		step := float32(0.05)
		for {
			select {
			case <-time.Tick(time.Millisecond * 20):
			case <-ctx.Done():
				return
			}
			xacc += step
			if xacc >= 2 {
				step = -0.05
			} else if xacc <= -2 {
				step = 0.05
			}

			if cb.HighresImu == nil {
				continue
			}
			cb.HighresImu(HighresImu{
				TimeUsec:      bootUs(),
				XAcc:          xacc,
				ZAcc:          -9.80665,
				XGyro:         xacc * 0.1,
				XMag:          0.21,
				ZMag:          0.42,
				AbsPressure:   1013.25,
				Temperature:   21.5,
				FieldsUpdated: hrFieldsAccel | hrFieldsGyro | hrFieldsMag | hrFieldsAbsPressure | hrFieldsTemperature,
			})
		}
	}()

	go func() {
		temp := int16(2000)
		step := int16(10)
		for {
			select {
			case <-time.Tick(time.Millisecond * 125):
			case <-ctx.Done():
				return
			}
			temp += step
			if temp == 4000 {
				step = -10
			} else if temp == 2000 {
				step = 10
			}

			if cb.ScaledPressure == nil {
				continue
			}
			cb.ScaledPressure(ScaledPressure{
				TimeBootMs:  bootMs(),
				PressAbs:    1013.25,
				Temperature: temp,
			})
		}
	}()

	<-ctx.Done()
	return ctx.Err()
}
