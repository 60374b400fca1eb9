package imubridge

import (
	"context"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"sync"
	"time"
)

var rawAccelWarnInterval = time.Minute

// Bridge turns decoded flight-controller telemetry into unit-normalized,
// covariance-annotated sensor snapshots. Every admitted message yields an
// ENU/baselink representation that is published to the sinks; attitude
// messages additionally keep a NED/aircraft twin for in-process consumers.
// Handle, Reset and the accessors serialize on an internal mutex, so sources
// may call in from different goroutines.
type Bridge struct {
	mu    sync.Mutex
	state sourceState
	cache accelCache

	frameID   string
	clock     SyncClock
	autopilot Autopilot

	linearAccelerationCov Covariance3
	angularVelocityCov    Covariance3
	orientationCov        Covariance3
	magneticCov           Covariance3
	unkOrientationCov     Covariance3

	handlers map[MessageKind]func(Message)
	sinks    []Sink

	attitudeEnu ImuSnapshot
	attitudeNed ImuSnapshot
	hasAttitude bool

	lastRawAccelWarn time.Time
}

func NewBridge(cfg Config) *Bridge {
	if cfg.FrameID == "" {
		cfg.FrameID = "base_link"
	}
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	b := &Bridge{
		frameID:               cfg.FrameID,
		clock:                 clock,
		linearAccelerationCov: covarianceFromStdDev(cfg.LinearAccelerationStdDev),
		angularVelocityCov:    covarianceFromStdDev(cfg.AngularVelocityStdDev),
		orientationCov:        covarianceFromStdDev(cfg.OrientationStdDev),
		magneticCov:           covarianceFromStdDev(cfg.MagneticStdDev),
		unkOrientationCov:     covarianceFromStdDev(0),
	}
	b.handlers = map[MessageKind]func(Message){
		KindAttitude:           func(m Message) { b.handleAttitude(m.(Attitude)) },
		KindAttitudeQuaternion: func(m Message) { b.handleAttitudeQuaternion(m.(AttitudeQuaternion)) },
		KindHighresImu:         func(m Message) { b.handleHighresImu(m.(HighresImu)) },
		KindRawImu:             func(m Message) { b.handleRawImu(m.(RawImu)) },
		KindScaledImu:          func(m Message) { b.handleScaledImu(m.(ScaledImu)) },
		KindScaledPressure:     func(m Message) { b.handleScaledPressure(m.(ScaledPressure)) },
		KindConnection:         func(m Message) { b.handleConnection(m.(ConnectionEvent)) },
	}
	return b
}

func (b *Bridge) AddSink(s Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, s)
}

// SetAutopilot records the autopilot family reported by the transport's
// heartbeat stream. Raw IMU acceleration scaling depends on it.
func (b *Bridge) SetAutopilot(ap Autopilot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.autopilot = ap
}

// Reset drops all source precedence latches, as on a connection state
// change. The acceleration cache is intentionally kept.
func (b *Bridge) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.reset()
}

// LastAttitudeEnu returns the most recent published ENU/baselink attitude
// snapshot. ok is false until the first attitude message is admitted.
func (b *Bridge) LastAttitudeEnu() (snap ImuSnapshot, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attitudeEnu, b.hasAttitude
}

// LastAttitudeNed returns the internal NED/aircraft twin of the last
// attitude snapshot. It is never published to sinks.
func (b *Bridge) LastAttitudeNed() (snap ImuSnapshot, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attitudeNed, b.hasAttitude
}

// Handle dispatches one decoded message through the pipeline.
func (b *Bridge) Handle(msg Message) {
	h, ok := b.handlers[msg.Kind()]
	if !ok {
		log.WithField("kind", msg.Kind()).Debug("no handler for message kind")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h(msg)
}

// Run drains msgs through Handle until ctx ends or msgs closes.
func (b *Bridge) Run(ctx context.Context, msgs <-chan Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			b.Handle(msg)
		}
	}
}

func (b *Bridge) handleConnection(ev ConnectionEvent) {
	b.state.reset()
	log.WithField("connected", ev.Connected).Debug("connection changed, source precedence reset")
}

// publishImuData builds the attitude snapshot pair. Both frames reuse the
// cached linear acceleration; only the ENU/baselink snapshot goes to the
// sinks, the NED/aircraft twin is stored for LastAttitudeNed.
func (b *Bridge) publishImuData(stamp time.Time, orientationEnu, orientationNed quat.Number, gyroEnu, gyroNed r3.Vec) {
	accelEnu, accelNed := b.cache.read()

	enu := ImuSnapshot{
		FrameID:                      b.frameID,
		Stamp:                        stamp,
		Orientation:                  orientationEnu,
		AngularVelocity:              gyroEnu,
		LinearAcceleration:           accelEnu,
		OrientationCovariance:        b.orientationCov,
		AngularVelocityCovariance:    b.angularVelocityCov,
		LinearAccelerationCovariance: b.linearAccelerationCov,
	}
	ned := ImuSnapshot{
		FrameID:                      FrameIDAircraft,
		Stamp:                        stamp,
		Orientation:                  orientationNed,
		AngularVelocity:              gyroNed,
		LinearAcceleration:           accelNed,
		OrientationCovariance:        b.orientationCov,
		AngularVelocityCovariance:    b.angularVelocityCov,
		LinearAccelerationCovariance: b.linearAccelerationCov,
	}

	b.attitudeEnu = enu
	b.attitudeNed = ned
	b.hasAttitude = true

	b.publishImu(&enu)
}

// publishImuDataRaw emits an orientation-less snapshot and records the
// acceleration pair for later attitude snapshots.
func (b *Bridge) publishImuDataRaw(stamp time.Time, gyro, accelEnu, accelNed r3.Vec) {
	b.cache.record(accelEnu, accelNed)

	snap := ImuSnapshot{
		FrameID:                      b.frameID,
		Stamp:                        stamp,
		AngularVelocity:              gyro,
		LinearAcceleration:           accelEnu,
		OrientationCovariance:        b.unkOrientationCov,
		AngularVelocityCovariance:    b.angularVelocityCov,
		LinearAccelerationCovariance: b.linearAccelerationCov,
	}
	b.publishImu(&snap)
}

func (b *Bridge) publishImu(snap *ImuSnapshot) {
	for _, s := range b.sinks {
		if err := s.PublishImu(snap); err != nil {
			log.WithField("err", err).Error("unable to publish IMU snapshot")
		}
	}
}

func (b *Bridge) publishMag(stamp time.Time, field r3.Vec) {
	snap := MagneticFieldSnapshot{
		FrameID:       b.frameID,
		Stamp:         stamp,
		MagneticField: field,
		Covariance:    b.magneticCov,
	}
	for _, s := range b.sinks {
		if err := s.PublishMagneticField(&snap); err != nil {
			log.WithField("err", err).Error("unable to publish magnetic field snapshot")
		}
	}
}

func (b *Bridge) publishTemperature(stamp time.Time, temp float64) {
	snap := TemperatureSnapshot{
		FrameID:     b.frameID,
		Stamp:       stamp,
		Temperature: temp,
	}
	for _, s := range b.sinks {
		if err := s.PublishTemperature(&snap); err != nil {
			log.WithField("err", err).Error("unable to publish temperature snapshot")
		}
	}
}

func (b *Bridge) publishFluidPressure(stamp time.Time, pressure float64) {
	snap := FluidPressureSnapshot{
		FrameID:  b.frameID,
		Stamp:    stamp,
		Pressure: pressure,
	}
	for _, s := range b.sinks {
		if err := s.PublishFluidPressure(&snap); err != nil {
			log.WithField("err", err).Error("unable to publish pressure snapshot")
		}
	}
}

// shouldWarnRawAccel rate limits the uncalibrated raw acceleration warning
// to one per interval.
func (b *Bridge) shouldWarnRawAccel(now time.Time) bool {
	if !b.lastRawAccelWarn.IsZero() && now.Sub(b.lastRawAccelWarn) < rawAccelWarnInterval {
		return false
	}
	b.lastRawAccelWarn = now
	return true
}
