package imubridge

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestAdmitAttitudePrefersQuaternion(t *testing.T) {
	var s sourceState

	ok, first := s.admit(KindAttitude)
	assert.True(t, ok)
	assert.False(t, first)

	ok, first = s.admit(KindAttitudeQuaternion)
	assert.True(t, ok)
	assert.True(t, first)

	// Euler reports are ignored once a quaternion source has been seen
	ok, _ = s.admit(KindAttitude)
	assert.False(t, ok)

	ok, first = s.admit(KindAttitudeQuaternion)
	assert.True(t, ok)
	assert.False(t, first)
}

func TestAdmitHighresSupersedesOthers(t *testing.T) {
	var s sourceState

	ok, first := s.admit(KindHighresImu)
	assert.True(t, ok)
	assert.True(t, first)

	ok, _ = s.admit(KindRawImu)
	assert.False(t, ok)
	ok, _ = s.admit(KindScaledImu)
	assert.False(t, ok)
	ok, _ = s.admit(KindScaledPressure)
	assert.False(t, ok)

	// the high resolution source keeps flowing
	ok, first = s.admit(KindHighresImu)
	assert.True(t, ok)
	assert.False(t, first)
}

func TestAdmitScaledSupersedesRaw(t *testing.T) {
	var s sourceState

	ok, _ := s.admit(KindRawImu)
	assert.True(t, ok)
	ok, _ = s.admit(KindRawImu)
	assert.True(t, ok)

	ok, first := s.admit(KindScaledImu)
	assert.True(t, ok)
	assert.True(t, first)

	ok, _ = s.admit(KindRawImu)
	assert.False(t, ok)

	// a later high resolution report still wins
	ok, _ = s.admit(KindHighresImu)
	assert.True(t, ok)
	ok, _ = s.admit(KindScaledImu)
	assert.False(t, ok)
}

func TestAdmitPressureStandalone(t *testing.T) {
	var s sourceState

	ok, _ := s.admit(KindScaledPressure)
	assert.True(t, ok)
	ok, _ = s.admit(KindRawImu)
	assert.True(t, ok)
}

func TestAdmitReset(t *testing.T) {
	var s sourceState

	s.admit(KindAttitudeQuaternion)
	s.admit(KindHighresImu)

	ok, _ := s.admit(KindRawImu)
	assert.False(t, ok)
	ok, _ = s.admit(KindAttitude)
	assert.False(t, ok)

	s.reset()

	ok, _ = s.admit(KindRawImu)
	assert.True(t, ok)
	ok, _ = s.admit(KindAttitude)
	assert.True(t, ok)

	// detection logs fire again after a reset
	ok, first := s.admit(KindHighresImu)
	assert.True(t, ok)
	assert.True(t, first)
}
