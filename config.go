package imubridge

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"io"
	"math"
	"os"
)

// Config is the calibration surface of the bridge: one standard deviation
// per published covariance plus the frame id of the ENU/baselink output.
// A zero standard deviation produces the unknown-covariance sentinel.
type Config struct {
	FrameID string `toml:"frame_id"`

	LinearAccelerationStdDev float64 `toml:"linear_acceleration_stdev"`
	AngularVelocityStdDev    float64 `toml:"angular_velocity_stdev"`
	OrientationStdDev        float64 `toml:"orientation_stdev"`
	MagneticStdDev           float64 `toml:"magnetic_stdev"`

	// Clock overrides the timestamp source; nil means host wall clock.
	Clock SyncClock `toml:"-"`
}

// DefaultConfig returns the stock calibration: accelerometer and gyro
// standard deviations from the MPU6000 datasheet, unit orientation stdev,
// and no magnetic field estimate.
func DefaultConfig() Config {
	return Config{
		FrameID:                  "base_link",
		LinearAccelerationStdDev: 0.0003,
		AngularVelocityStdDev:    0.02 * math.Pi / 180.0,
		OrientationStdDev:        1.0,
		MagneticStdDev:           0.0,
	}
}

// LoadConfig reads a TOML calibration file. Keys that are absent keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to open config file %s", path)
	}
	defer file.Close()
	return ConfigFromReader(file)
}

// ConfigFromReader decodes TOML calibration data over the defaults.
func ConfigFromReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to read config")
	}
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, errors.Wrap(err, "unable to decode bridge configuration")
	}
	if cfg.FrameID == "" {
		cfg.FrameID = "base_link"
	}
	return cfg, nil
}
