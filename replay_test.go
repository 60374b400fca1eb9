package imubridge

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"testing"
)

func collectorCallbacks(msgs *[]Message) Callbacks {
	return Callbacks{
		Attitude:           func(m Attitude) { *msgs = append(*msgs, m) },
		AttitudeQuaternion: func(m AttitudeQuaternion) { *msgs = append(*msgs, m) },
		HighresImu:         func(m HighresImu) { *msgs = append(*msgs, m) },
		RawImu:             func(m RawImu) { *msgs = append(*msgs, m) },
		ScaledImu:          func(m ScaledImu) { *msgs = append(*msgs, m) },
		ScaledPressure:     func(m ScaledPressure) { *msgs = append(*msgs, m) },
		Connection:         func(ev ConnectionEvent) { *msgs = append(*msgs, ev) },
	}
}

func TestRecordReplayRoundTrip(t *testing.T) {
	sent := []Message{
		ConnectionEvent{Connected: true},
		Attitude{TimeBootMs: 1, Roll: 0.1, Pitch: -0.2, Yaw: 0.3, RollSpeed: 1, PitchSpeed: 2, YawSpeed: 3},
		AttitudeQuaternion{TimeBootMs: 2, Q1: 1, RollSpeed: 0.5},
		HighresImu{TimeUsec: 3, XAcc: 1, ZAcc: -9.80665, XMag: 0.21, AbsPressure: 1013.25, Temperature: 21.5, FieldsUpdated: 0x1fff},
		RawImu{TimeUsec: 4, XAcc: 100, YAcc: -200, ZAcc: 300, XGyro: 1000, XMag: 50},
		ScaledImu{TimeBootMs: 5, XAcc: 1000, YGyro: -2000, ZMag: 30},
		ScaledPressure{TimeBootMs: 6, PressAbs: 1013.25, PressDiff: -0.5, Temperature: 2150},
	}

	buf := &bytes.Buffer{}
	var forwarded []Message
	cb := NewRecorder(buf).Callbacks(collectorCallbacks(&forwarded))

	cb.Connection(sent[0].(ConnectionEvent))
	cb.Attitude(sent[1].(Attitude))
	cb.AttitudeQuaternion(sent[2].(AttitudeQuaternion))
	cb.HighresImu(sent[3].(HighresImu))
	cb.RawImu(sent[4].(RawImu))
	cb.ScaledImu(sent[5].(ScaledImu))
	cb.ScaledPressure(sent[6].(ScaledPressure))

	// recording must not swallow the live stream
	assert.Equal(t, sent, forwarded)

	var replayed []Message
	src := NewReplaySource(buf)
	assert.NoError(t, src.Start(context.Background(), collectorCallbacks(&replayed)))
	assert.Equal(t, sent, replayed)
}

func TestReplayEmptyRecording(t *testing.T) {
	src := NewReplaySource(&bytes.Buffer{})
	assert.NoError(t, src.Start(context.Background(), Callbacks{}))
}

func TestReplayTruncatedRecording(t *testing.T) {
	buf := &bytes.Buffer{}
	cb := NewRecorder(buf).Callbacks(Callbacks{})
	cb.Attitude(Attitude{Roll: 0.1})
	buf.Truncate(buf.Len() - 2)

	err := NewReplaySource(buf).Start(context.Background(), Callbacks{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "truncated attitude message")
}

func TestReplayUnknownKind(t *testing.T) {
	err := NewReplaySource(bytes.NewReader([]byte{0xff})).Start(context.Background(), Callbacks{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown recorded message kind")
}

func TestReplayCancel(t *testing.T) {
	buf := &bytes.Buffer{}
	cb := NewRecorder(buf).Callbacks(Callbacks{})
	cb.Attitude(Attitude{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewReplaySource(buf).Start(ctx, Callbacks{})
	assert.Equal(t, context.Canceled, err)
}
