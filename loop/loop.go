// Package loop drives an engine through the submit/commit/drain contract:
// react to Busy by committing and resubmitting, flush proactively at the end
// of work, and hand every resolved request to a completion callback.
package loop

import (
	"math"

	"go.uber.org/zap"

	"github.com/vecio/vecio"
)

// Option ...
type Option func(l *Loop)

// WithLogger sets the logger for debug traces.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

// OnComplete sets the callback receiving resolved requests, inline
// completions and drained batch events alike, in resolution order.
func OnComplete(fn func(*vecio.Request)) Option {
	return func(l *Loop) {
		l.onComplete = fn
	}
}

func New(eng vecio.Engine, opts ...Option) *Loop {
	l := &Loop{
		eng:        eng,
		log:        zap.NewNop(),
		onComplete: func(*vecio.Request) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Loop feeds one engine from a single calling context.
type Loop struct {
	eng        vecio.Engine
	log        *zap.Logger
	onComplete func(*vecio.Request)
}

// Submit hands one request to the engine, committing and retrying on Busy.
// A nil return means the request was either queued or completed without a
// commit error; completion outcomes are on the requests themselves.
func (l *Loop) Submit(req *vecio.Request) error {
	for {
		switch st := l.eng.Submit(req); st {
		case vecio.Queued:
			return nil
		case vecio.Completed:
			l.onComplete(req)
			return nil
		case vecio.Busy:
			l.log.Debug("busy, flushing", zap.Int64("offset", req.Off))
			if err := l.Flush(); err != nil {
				return err
			}
		}
	}
}

// Flush commits the pending batch and drains resolved events. The events are
// delivered even when the commit itself failed, so the callback always
// observes every request's outcome.
func (l *Loop) Flush() error {
	err := l.eng.Commit()
	for i, n := 0, l.eng.Events(1, math.MaxInt); i < n; i++ {
		l.onComplete(l.eng.Event(i))
	}
	return err
}
