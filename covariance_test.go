package imubridge

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCovarianceFromStdDev(t *testing.T) {
	cov := covarianceFromStdDev(2)
	assert.Equal(t, Covariance3{
		4, 0, 0,
		0, 4, 0,
		0, 0, 4,
	}, cov)

	cov = covarianceFromStdDev(0.5)
	assert.Equal(t, 0.25, cov[0])
	assert.Equal(t, 0.25, cov[4])
	assert.Equal(t, 0.25, cov[8])
}

func TestCovarianceUnknownSentinel(t *testing.T) {
	cov := covarianceFromStdDev(0)
	assert.Equal(t, Covariance3{-1}, cov)
}

func TestSnapshotHasOrientation(t *testing.T) {
	snap := ImuSnapshot{OrientationCovariance: covarianceFromStdDev(0)}
	assert.False(t, snap.HasOrientation())

	snap.OrientationCovariance = covarianceFromStdDev(1)
	assert.True(t, snap.HasOrientation())

	// a perfect estimate still counts as known
	snap.OrientationCovariance = Covariance3{}
	assert.True(t, snap.HasOrientation())
}
