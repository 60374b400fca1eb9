package imubridge

// Conversion factors from source units to SI.
const (
	gaussToTesla     = 1.0e-4
	milliTToTesla    = 1000.0 // legacy IMU mag reports keep the milli-scale convention
	milliRSToRadSec  = 1.0e-3
	milliGToMS2      = 9.80665 / 1000.0
	millibarToPascal = 1.0e2
	centiToUnit      = 1.0 / 100.0
)
