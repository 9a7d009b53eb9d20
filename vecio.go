// Package vecio implements synchronous I/O submission engines over a
// seekable file descriptor. The batching engine merges contiguous
// same-direction requests and flushes them with a single vectored transfer.
package vecio

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrUnknownEngine returned by New for an unrecognized engine name.
	ErrUnknownEngine = errors.New("unknown engine")
	// ErrDepth returned by New if the batching engine is configured
	// without a positive queue depth.
	ErrDepth = errors.New("depth must be positive")
	// ErrReadOnly set on a write request submitted to a read-only engine.
	ErrReadOnly = errors.New("write on read-only engine")
)

// Dir is the direction of a request.
type Dir uint8

const (
	DirRead Dir = iota
	DirWrite
	// DirSync is a durability barrier. It carries no buffer and is never
	// merged into a batch.
	DirSync
)

func (d Dir) String() string {
	switch d {
	case DirRead:
		return "read"
	case DirWrite:
		return "write"
	case DirSync:
		return "sync"
	}
	return "unknown"
}

// SubmitStatus is the outcome of Engine.Submit.
type SubmitStatus uint8

const (
	// Queued - request was merged into the pending batch and will be
	// resolved by a later Commit.
	Queued SubmitStatus = iota
	// Busy - the engine cannot take the request right now. The caller must
	// Commit, drain events and submit the same request again.
	Busy
	// Completed - request was resolved inline. Outcome is on the request.
	Completed
)

func (s SubmitStatus) String() string {
	switch s {
	case Queued:
		return "queued"
	case Busy:
		return "busy"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// File is the descriptor surface engines drive. fs.File implements it over
// real files; tests substitute fakes.
type File interface {
	Fd() uintptr
	// Seek positions the descriptor at an absolute offset.
	Seek(off int64) error
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Pread(b []byte, off int64) (int, error)
	Pwrite(b []byte, off int64) (int, error)
	// Readv and Writev transfer every buffer in order at the current
	// position with one syscall.
	Readv(bufs [][]byte) (int, error)
	Writev(bufs [][]byte) (int, error)
	Sync() error
}

// Request is one logical I/O operation. The caller owns the request and its
// buffer from submission until the resolving Commit returns; engines keep
// only a reference while the request is queued.
type Request struct {
	Dir  Dir
	File File
	// Off is the absolute byte offset. Ignored for DirSync.
	Off int64
	// Buf is the memory region to fill or drain. Nil for DirSync.
	Buf []byte

	// Resid is the number of requested bytes not transferred. Written at
	// resolution time.
	Resid int
	// Err is the transfer error, nil on success. Written at resolution time.
	Err error
}

// ErrorSink receives operation failures for reporting. It is notified on
// positioning and transfer failures, never on short transfers.
type ErrorSink interface {
	ReportError(op string, err error)
}

type logSink struct {
	log *zap.Logger
}

func (s logSink) ReportError(op string, err error) {
	s.log.Error("io failed", zap.String("op", op), zap.Error(err))
}

// LogSink returns an ErrorSink that writes through the logger.
func LogSink(log *zap.Logger) ErrorSink {
	return logSink{log: log}
}

// Config carries engine construction parameters.
type Config struct {
	// Depth is the maximum number of requests merged into one batch.
	// Required by the batching engine, ignored by the immediate ones.
	Depth int
	// ReadOnly rejects write submissions with ErrReadOnly.
	ReadOnly bool
	// Logger for debug traces. Defaults to a nop logger.
	Logger *zap.Logger
	// Sink for failure reports. Defaults to LogSink(Logger).
	Sink ErrorSink
	// Metrics, if set, observes completions across the engine's lifetime.
	Metrics *Metrics
}
