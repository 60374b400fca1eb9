package imubridge

import (
	"time"
)

// SyncClock converts flight-controller boot timestamps to host time.
type SyncClock interface {
	FromBootMillis(ms uint32) time.Time
	FromBootMicros(us uint64) time.Time
}

// systemClock stamps snapshots with the host wall clock, the fallback when
// no controller time synchronization is available.
type systemClock struct{}

func (systemClock) FromBootMillis(uint32) time.Time { return time.Now() }
func (systemClock) FromBootMicros(uint64) time.Time { return time.Now() }
