package imubridge

import (
	"context"
)

// Callbacks bundles the delivery functions a Source invokes as decoded
// telemetry arrives. Nil entries mean the caller has no interest in that
// message kind and must be skipped by the source.
type Callbacks struct {
	Attitude           func(Attitude)
	AttitudeQuaternion func(AttitudeQuaternion)
	HighresImu         func(HighresImu)
	RawImu             func(RawImu)
	ScaledImu          func(ScaledImu)
	ScaledPressure     func(ScaledPressure)
	Connection         func(ConnectionEvent)
}

// Source is a flight-controller transport session delivering decoded
// telemetry. Start blocks until the session ends.
type Source interface {
	Close() error
	Start(context.Context, Callbacks) error
}

// Callbacks returns a bundle feeding every message kind into Handle.
func (b *Bridge) Callbacks() Callbacks {
	return Callbacks{
		Attitude:           func(m Attitude) { b.Handle(m) },
		AttitudeQuaternion: func(m AttitudeQuaternion) { b.Handle(m) },
		HighresImu:         func(m HighresImu) { b.Handle(m) },
		RawImu:             func(m RawImu) { b.Handle(m) },
		ScaledImu:          func(m ScaledImu) { b.Handle(m) },
		ScaledPressure:     func(m ScaledPressure) { b.Handle(m) },
		Connection:         func(ev ConnectionEvent) { b.Handle(ev) },
	}
}
