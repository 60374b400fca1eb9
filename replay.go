package imubridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"sync"
)

// recordHeader precedes every message in a recording. The message kind tag
// doubles as the payload discriminator, so recordings break if kind values
// are renumbered.
type recordHeader struct {
	Kind uint8
}

// Recorder encodes telemetry messages to a stream so a session can be
// replayed later. Safe for concurrent callbacks.
type Recorder struct {
	mu sync.Mutex
	w  io.Writer
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Callbacks returns a bundle that records every message before handing it
// to next.
func (rec *Recorder) Callbacks(next Callbacks) Callbacks {
	return Callbacks{
		Attitude: func(m Attitude) {
			rec.record(m)
			if next.Attitude != nil {
				next.Attitude(m)
			}
		},
		AttitudeQuaternion: func(m AttitudeQuaternion) {
			rec.record(m)
			if next.AttitudeQuaternion != nil {
				next.AttitudeQuaternion(m)
			}
		},
		HighresImu: func(m HighresImu) {
			rec.record(m)
			if next.HighresImu != nil {
				next.HighresImu(m)
			}
		},
		RawImu: func(m RawImu) {
			rec.record(m)
			if next.RawImu != nil {
				next.RawImu(m)
			}
		},
		ScaledImu: func(m ScaledImu) {
			rec.record(m)
			if next.ScaledImu != nil {
				next.ScaledImu(m)
			}
		},
		ScaledPressure: func(m ScaledPressure) {
			rec.record(m)
			if next.ScaledPressure != nil {
				next.ScaledPressure(m)
			}
		},
		Connection: func(ev ConnectionEvent) {
			rec.record(ev)
			if next.Connection != nil {
				next.Connection(ev)
			}
		},
	}
}

func (rec *Recorder) record(msg Message) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	buf := bytes.NewBuffer([]byte{})
	hdr := recordHeader{Kind: uint8(msg.Kind())}
	if err := binary.Write(buf, binary.LittleEndian, &hdr); err != nil {
		log.WithField("err", err).Error("unable to encode recording header")
		return
	}
	if err := binary.Write(buf, binary.LittleEndian, msg); err != nil {
		log.WithField("err", err).WithField("kind", msg.Kind()).Error("unable to encode telemetry message")
		return
	}
	if _, err := rec.w.Write(buf.Bytes()); err != nil {
		log.WithField("err", err).Error("unable to record telemetry message")
	}
}

// ReplaySource feeds a recorded session back through the Source interface,
// as fast as the bridge accepts it. Start returns nil at the end of the
// recording.
type ReplaySource struct {
	r io.Reader
}

func NewReplaySource(r io.Reader) *ReplaySource {
	return &ReplaySource{r: r}
}

func (s *ReplaySource) Close() error {
	return nil
}

func (s *ReplaySource) Start(ctx context.Context, cb Callbacks) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		msg, err := readMessage(s.r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		deliver(cb, msg)
	}
}

func readMessage(r io.Reader) (Message, error) {
	hdr := recordHeader{}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, "unable to read recording header")
	}

	read := func(m Message) (Message, error) {
		if err := binary.Read(r, binary.LittleEndian, m); err != nil {
			return nil, errors.Wrapf(err, "truncated %v message", MessageKind(hdr.Kind))
		}
		return m, nil
	}

	switch MessageKind(hdr.Kind) {
	case KindAttitude:
		return read(&Attitude{})
	case KindAttitudeQuaternion:
		return read(&AttitudeQuaternion{})
	case KindHighresImu:
		return read(&HighresImu{})
	case KindRawImu:
		return read(&RawImu{})
	case KindScaledImu:
		return read(&ScaledImu{})
	case KindScaledPressure:
		return read(&ScaledPressure{})
	case KindConnection:
		return read(&ConnectionEvent{})
	}
	return nil, errors.Errorf("unknown recorded message kind %v", hdr.Kind)
}

func deliver(cb Callbacks, msg Message) {
	switch m := msg.(type) {
	case *Attitude:
		if cb.Attitude != nil {
			cb.Attitude(*m)
		}
	case *AttitudeQuaternion:
		if cb.AttitudeQuaternion != nil {
			cb.AttitudeQuaternion(*m)
		}
	case *HighresImu:
		if cb.HighresImu != nil {
			cb.HighresImu(*m)
		}
	case *RawImu:
		if cb.RawImu != nil {
			cb.RawImu(*m)
		}
	case *ScaledImu:
		if cb.ScaledImu != nil {
			cb.ScaledImu(*m)
		}
	case *ScaledPressure:
		if cb.ScaledPressure != nil {
			cb.ScaledPressure(*m)
		}
	case *ConnectionEvent:
		if cb.Connection != nil {
			cb.Connection(*m)
		}
	}
}
