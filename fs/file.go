package fs

import (
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/vecio/vecio"
)

var _ vecio.File = (*File)(nil)

// File is a seekable descriptor backed by a regular file. It satisfies
// vecio.File, so it can be driven by any engine.
type File struct {
	f    *os.File
	fd   int
	name string
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Fd() uintptr {
	return uintptr(f.fd)
}

func (f *File) Close() error {
	return f.f.Close()
}

// Seek positions the descriptor at an absolute offset.
func (f *File) Seek(off int64) error {
	_, err := unix.Seek(f.fd, off, io.SeekStart)
	return err
}

func (f *File) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Read(f.fd, b)
}

func (f *File) Write(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Write(f.fd, b)
}

func (f *File) Pread(b []byte, off int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Pread(f.fd, b, off)
}

func (f *File) Pwrite(b []byte, off int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Pwrite(f.fd, b, off)
}

// Readv scatters one transfer at the current position across bufs in order.
func (f *File) Readv(bufs [][]byte) (int, error) {
	return unix.Readv(f.fd, bufs)
}

// Writev gathers bufs in order into one transfer at the current position.
func (f *File) Writev(bufs [][]byte) (int, error) {
	return unix.Writev(f.fd, bufs)
}

func (f *File) Sync() error {
	return unix.Fsync(f.fd)
}

func (f *File) Datasync() error {
	return unix.Fdatasync(f.fd)
}

func (f *File) Size() (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(f.fd, &st); err != nil {
		return 0, err
	}
	return st.Size, nil
}
