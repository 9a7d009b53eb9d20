// Package fs provides the file handle surface driven by the vecio engines.
package fs

import "os"

func Open(name string, flags int, mode os.FileMode) (*File, error) {
	f, err := os.OpenFile(name, flags, mode)
	if err != nil {
		return nil, err
	}
	return &File{f: f, fd: int(f.Fd()), name: name}, nil
}
