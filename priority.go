package imubridge

// sourceState holds the per-connection source priority latches. A latch only
// flips false→true while a connection lasts; reset is the sole way back.
type sourceState struct {
	hasAttQuat    bool
	hasHighresImu bool
	hasScaledImu  bool
}

// admit decides whether a message of the given kind is currently
// authoritative and applies its latch side effect. first reports a
// false→true flip so the caller can log the detection once.
func (s *sourceState) admit(kind MessageKind) (ok, first bool) {
	switch kind {
	case KindAttitude:
		return !s.hasAttQuat, false
	case KindAttitudeQuaternion:
		first = !s.hasAttQuat
		s.hasAttQuat = true
		return true, first
	case KindHighresImu:
		first = !s.hasHighresImu
		s.hasHighresImu = true
		return true, first
	case KindRawImu:
		return !s.hasHighresImu && !s.hasScaledImu, false
	case KindScaledImu:
		if s.hasHighresImu {
			return false, false
		}
		first = !s.hasScaledImu
		s.hasScaledImu = true
		return true, first
	case KindScaledPressure:
		return !s.hasHighresImu, false
	}
	return false, false
}

func (s *sourceState) reset() {
	*s = sourceState{}
}
