package imubridge

import (
	"context"
	"time"
)

// fixedClock stamps every snapshot with the same instant so tests can
// compare snapshots structurally.
type fixedClock struct {
	at time.Time
}

func (c fixedClock) FromBootMillis(uint32) time.Time { return c.at }
func (c fixedClock) FromBootMicros(uint64) time.Time { return c.at }

type captureSink struct {
	imu      []ImuSnapshot
	mag      []MagneticFieldSnapshot
	temp     []TemperatureSnapshot
	pressure []FluidPressureSnapshot

	err error
}

func (c *captureSink) PublishImu(snap *ImuSnapshot) error {
	c.imu = append(c.imu, *snap)
	return c.err
}

func (c *captureSink) PublishMagneticField(snap *MagneticFieldSnapshot) error {
	c.mag = append(c.mag, *snap)
	return c.err
}

func (c *captureSink) PublishTemperature(snap *TemperatureSnapshot) error {
	c.temp = append(c.temp, *snap)
	return c.err
}

func (c *captureSink) PublishFluidPressure(snap *FluidPressureSnapshot) error {
	c.pressure = append(c.pressure, *snap)
	return c.err
}

type sourceStub struct {
	startChan chan struct{}
	errChan   chan error
	callbacks Callbacks

	closeCount int
}

func createSourceStub() *sourceStub {
	return &sourceStub{
		startChan: make(chan struct{}),
		errChan:   make(chan error),
	}
}

func (s *sourceStub) Close() error {
	s.closeCount++
	return nil
}

func (s *sourceStub) Start(ctx context.Context, cb Callbacks) error {
	s.callbacks = cb
	s.startChan <- struct{}{}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-s.errChan:
		return err
	}
}
