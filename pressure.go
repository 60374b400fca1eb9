package imubridge

// Standalone barometer report, superseded by the high resolution IMU when
// that is present.
func (b *Bridge) handleScaledPressure(m ScaledPressure) {
	if ok, _ := b.state.admit(KindScaledPressure); !ok {
		return
	}
	stamp := b.clock.FromBootMillis(m.TimeBootMs)

	b.publishTemperature(stamp, float64(m.Temperature)*centiToUnit)
	b.publishFluidPressure(stamp, float64(m.PressAbs)*millibarToPascal)
}
