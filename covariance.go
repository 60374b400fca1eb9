package imubridge

// Covariance3 is a row-major 3x3 covariance matrix.
type Covariance3 [9]float64

// covarianceFromStdDev builds a diagonal covariance from a standard
// deviation. A zero stdev yields the unknown sentinel: first element -1,
// the rest zero, meaning "no estimate available".
func covarianceFromStdDev(stdev float64) Covariance3 {
	var cov Covariance3
	if stdev == 0 {
		cov[0] = -1
		return cov
	}
	v := stdev * stdev
	cov[0], cov[4], cov[8] = v, v, v
	return cov
}
