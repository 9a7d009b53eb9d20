package vecio

import (
	"fmt"

	"go.uber.org/zap"
)

// Engine names accepted by New.
const (
	EngineSync  = "sync"
	EnginePsync = "psync"
	EngineVsync = "vsync"
)

// Engine accepts requests and resolves them. The immediate engines (sync,
// psync) resolve every request inline; the batching engine (vsync) defers
// resolution to Commit and exposes it through Events/Event.
//
// Engines are not safe for concurrent use. One caller submits, commits and
// drains; a Busy status obligates it to Commit and resubmit.
type Engine interface {
	Submit(*Request) SubmitStatus
	// Commit flushes the pending batch with one vectored transfer. A no-op
	// returning nil when nothing is queued.
	Commit() error
	// Events returns the number of requests resolved by the most recent
	// Commit and resets it, if min > 0. min == 0 always returns 0. max is
	// ignored: by the time Commit returns everything is already resolved.
	Events(min, max int) int
	// Event returns the i-th resolved request. The index must be within the
	// count returned by the preceding Events call.
	Event(i int) *Request
}

// New selects an engine variant by name.
func New(name string, cfg Config) (Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Sink == nil {
		cfg.Sink = LogSink(cfg.Logger)
	}
	switch name {
	case EngineSync:
		return newSyncEngine(cfg), nil
	case EnginePsync:
		return newPsyncEngine(cfg), nil
	case EngineVsync:
		if cfg.Depth <= 0 {
			return nil, ErrDepth
		}
		return newVsyncEngine(cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

type engineBase struct {
	log      *zap.Logger
	sink     ErrorSink
	metrics  *Metrics
	readOnly bool
}

func newBase(cfg Config) engineBase {
	return engineBase{
		log:      cfg.Logger,
		sink:     cfg.Sink,
		metrics:  cfg.Metrics,
		readOnly: cfg.ReadOnly,
	}
}

// rejectWrite resolves a write submitted to a read-only engine.
func (b *engineBase) rejectWrite(req *Request) bool {
	if !b.readOnly || req.Dir != DirWrite {
		return false
	}
	req.Err = ErrReadOnly
	b.observe(req)
	return true
}

// end maps a raw single-transfer result onto the request: full transfer is a
// success, a non-error short count becomes residual, a syscall error is
// recorded and reported.
func (b *engineBase) end(req *Request, n int, err error) {
	if err != nil {
		req.Err = err
		b.sink.ReportError("xfer", err)
	} else if req.Dir != DirSync && n != len(req.Buf) {
		req.Resid = len(req.Buf) - n
		req.Err = nil
	} else {
		req.Resid = 0
		req.Err = nil
	}
	b.observe(req)
}

func (b *engineBase) observe(req *Request) {
	if b.metrics != nil {
		b.metrics.observe(req)
	}
}
