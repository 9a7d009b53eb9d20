package vecio

import "go.uber.org/zap"

// vsyncEngine merges contiguous same-file, same-direction requests into one
// pending batch and flushes it with a single positioned vectored transfer.
//
// Request and iovec slots are allocated once at construction, sized by the
// configured depth, and reused across batches. An empty batch is represented
// by a zero queued count; the "last" fields are only meaningful while the
// batch is non-empty.
type vsyncEngine struct {
	engineBase

	reqs        []*Request // pending batch, arrival order
	iovs        [][]byte   // descriptor per queued request, same order
	queued      int
	queuedBytes int64

	// Mergeability state of the last appended request.
	lastOff  int64
	lastFile File
	lastDir  Dir

	// Requests resolved by the most recent commit, exposed via Events/Event.
	events  []*Request
	nevents int
}

func newVsyncEngine(cfg Config) *vsyncEngine {
	return &vsyncEngine{
		engineBase: newBase(cfg),
		reqs:       make([]*Request, cfg.Depth),
		iovs:       make([][]byte, cfg.Depth),
		events:     make([]*Request, cfg.Depth),
	}
}

// mergeable reports whether req extends the pending batch: same file, same
// direction, offset equal to the batch's end offset. An empty batch has
// nothing to merge into, and a sync barrier never merges.
func (e *vsyncEngine) mergeable(req *Request) bool {
	if e.queued == 0 || req.Dir == DirSync {
		return false
	}
	return req.Off == e.lastOff && req.File == e.lastFile && req.Dir == e.lastDir
}

func (e *vsyncEngine) append(req *Request) {
	i := e.queued
	e.reqs[i] = req
	e.iovs[i] = req.Buf
	e.lastOff = req.Off + int64(len(req.Buf))
	e.lastFile = req.File
	e.lastDir = req.Dir
	e.queuedBytes += int64(len(req.Buf))
	e.queued++
}

func (e *vsyncEngine) Submit(req *Request) SubmitStatus {
	if e.rejectWrite(req) {
		return Completed
	}
	if !e.mergeable(req) {
		// Anything already queued has to be flushed before this request
		// can start a new batch.
		if e.queued > 0 {
			e.log.Debug("queue: no append", zap.Int("queued", e.queued))
			return Busy
		}
		if req.Dir == DirSync {
			e.end(req, 0, req.File.Sync())
			return Completed
		}
		e.append(req)
		return Queued
	}
	if e.queued == len(e.reqs) {
		e.log.Debug("queue: max depth", zap.Int("queued", e.queued))
		return Busy
	}
	e.append(req)
	e.log.Debug("queue: append", zap.Int("queued", e.queued))
	return Queued
}

func (e *vsyncEngine) Commit() error {
	if e.queued == 0 {
		return nil
	}
	f := e.lastFile
	if err := f.Seek(e.reqs[0].Off); err != nil {
		e.sink.ReportError("lseek", err)
		// The transfer never ran; mark the whole batch aborted so every
		// request still surfaces with a definite outcome.
		for _, req := range e.reqs[:e.queued] {
			req.Err = err
			e.observe(req)
		}
		e.resolve()
		return err
	}
	var (
		n   int
		err error
	)
	if e.lastDir == DirRead {
		n, err = f.Readv(e.iovs[:e.queued])
	} else {
		n, err = f.Writev(e.iovs[:e.queued])
	}
	e.log.Debug("commit", zap.Int("queued", e.queued), zap.Int("bytes", n), zap.Error(err))
	return e.finish(n, err)
}

// finish attributes the aggregate transfer result across the batch in
// arrival order.
func (e *vsyncEngine) finish(n int, err error) error {
	if err != nil {
		for _, req := range e.reqs[:e.queued] {
			req.Err = err
			e.observe(req)
		}
		e.sink.ReportError("xfer vsync", err)
		e.resolve()
		return err
	}
	if int64(n) == e.queuedBytes {
		for _, req := range e.reqs[:e.queued] {
			req.Resid = 0
			req.Err = nil
			e.observe(req)
		}
		e.resolve()
		return nil
	}
	// Short transfer. Drain the byte pool front to back; requests past the
	// pool report their full length as residual.
	for _, req := range e.reqs[:e.queued] {
		got := n
		if got > len(req.Buf) {
			got = len(req.Buf)
		}
		req.Resid = len(req.Buf) - got
		req.Err = nil
		n -= got
		e.observe(req)
	}
	e.resolve()
	return nil
}

// resolve exposes the batch through the event surface and clears it. The
// resolved requests are copied out so that submissions racing ahead of the
// caller's drain cannot clobber undelivered completions.
func (e *vsyncEngine) resolve() {
	copy(e.events, e.reqs[:e.queued])
	e.nevents = e.queued
	if e.metrics != nil {
		e.metrics.observeBatch(e.queued)
	}
	e.queued = 0
	e.queuedBytes = 0
	e.lastOff = 0
	e.lastFile = nil
	e.lastDir = DirRead
}

func (e *vsyncEngine) Events(min, max int) int {
	if min == 0 {
		return 0
	}
	n := e.nevents
	e.nevents = 0
	return n
}

func (e *vsyncEngine) Event(i int) *Request {
	return e.events[i]
}
