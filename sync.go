package vecio

// Immediate single-request engines. Both resolve every submission inline and
// never defer work, so Commit is a success no-op and Events always reports
// zero.

// psyncEngine issues one positional transfer per request.
type psyncEngine struct {
	engineBase
}

func newPsyncEngine(cfg Config) *psyncEngine {
	return &psyncEngine{engineBase: newBase(cfg)}
}

func (e *psyncEngine) Submit(req *Request) SubmitStatus {
	if e.rejectWrite(req) {
		return Completed
	}
	var (
		n   int
		err error
	)
	switch req.Dir {
	case DirRead:
		n, err = req.File.Pread(req.Buf, req.Off)
	case DirWrite:
		n, err = req.File.Pwrite(req.Buf, req.Off)
	default:
		err = req.File.Sync()
	}
	e.end(req, n, err)
	return Completed
}

func (e *psyncEngine) Commit() error { return nil }

func (e *psyncEngine) Events(min, max int) int { return 0 }

func (e *psyncEngine) Event(i int) *Request { return nil }

// syncEngine issues stream-style transfers, seeking only when a request does
// not continue at the file's last completed position.
type syncEngine struct {
	engineBase

	lastPos map[File]int64
}

func newSyncEngine(cfg Config) *syncEngine {
	return &syncEngine{
		engineBase: newBase(cfg),
		lastPos:    make(map[File]int64),
	}
}

// prep positions the descriptor for req. The seek is elided when the request
// picks up exactly where the previous completion on that file ended.
func (e *syncEngine) prep(req *Request) error {
	if pos, ok := e.lastPos[req.File]; ok && pos == req.Off {
		return nil
	}
	if err := req.File.Seek(req.Off); err != nil {
		e.sink.ReportError("lseek", err)
		return err
	}
	return nil
}

func (e *syncEngine) Submit(req *Request) SubmitStatus {
	if e.rejectWrite(req) {
		return Completed
	}
	if req.Dir == DirSync {
		e.end(req, 0, req.File.Sync())
		return Completed
	}
	if err := e.prep(req); err != nil {
		req.Err = err
		e.observe(req)
		return Completed
	}
	var (
		n   int
		err error
	)
	if req.Dir == DirRead {
		n, err = req.File.Read(req.Buf)
	} else {
		n, err = req.File.Write(req.Buf)
	}
	if err == nil {
		e.lastPos[req.File] = req.Off + int64(n)
	}
	e.end(req, n, err)
	return Completed
}

func (e *syncEngine) Commit() error { return nil }

func (e *syncEngine) Events(min, max int) int { return 0 }

func (e *syncEngine) Event(i int) *Request { return nil }
