package imubridge

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// accelCache keeps the last observed linear acceleration in both frames so
// orientation-only messages can fill their acceleration fields. No expiry;
// zero vectors until the first acceleration-bearing message.
type accelCache struct {
	enu r3.Vec
	ned r3.Vec
}

func (c *accelCache) record(enu, ned r3.Vec) {
	c.enu = enu
	c.ned = ned
}

func (c *accelCache) read() (enu, ned r3.Vec) {
	return c.enu, c.ned
}
