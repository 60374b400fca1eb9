package imubridge

import (
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

var retrySleep = time.Second

type Retryable interface {
	Open() error
	Close() error
	Start(ctx context.Context) error
	Name() string
}

func retry(ctx context.Context, r Retryable) error {
	errStarting := errors.New("starting")
	err := errStarting
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			if err != errStarting {
				log.WithField("err", err).Errorf("%s: reconnecting due to error", r.Name())
				if err = r.Close(); err != nil {
					log.WithField("err", err).Warnf("%s: unable to close", r.Name())
				}
				time.Sleep(retrySleep)
			}
			err = r.Open()
			if err != nil {
				continue
			}
		}
		err = r.Start(ctx)
	}
}

// sourceRunner adapts a Source factory to the retry loop and reports
// session boundaries through the Connection callback, before any telemetry
// of the new session.
type sourceRunner struct {
	name    string
	connect func() (Source, error)
	cb      Callbacks

	src Source
}

func (s *sourceRunner) Name() string {
	return s.name
}

func (s *sourceRunner) Open() error {
	src, err := s.connect()
	if err != nil {
		return err
	}
	s.src = src
	if s.cb.Connection != nil {
		s.cb.Connection(ConnectionEvent{Connected: true})
	}
	return nil
}

func (s *sourceRunner) Close() error {
	if s.src == nil {
		return nil
	}
	if s.cb.Connection != nil {
		s.cb.Connection(ConnectionEvent{Connected: false})
	}
	err := s.src.Close()
	s.src = nil
	return err
}

func (s *sourceRunner) Start(ctx context.Context) error {
	return s.src.Start(ctx, s.cb)
}

// RunSource keeps a telemetry source running until ctx ends, reconnecting
// with a delay after failures.
func RunSource(ctx context.Context, name string, connect func() (Source, error), cb Callbacks) error {
	return retry(ctx, &sourceRunner{
		name:    name,
		connect: connect,
		cb:      cb,
	})
}
