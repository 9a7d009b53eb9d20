// Package fixed provides a pre-sized buffer arena for request payloads. The
// whole region is allocated once at construction and handed out in
// equal-size slots, so steady-state submission does not allocate.
package fixed

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrExhausted returned by Get when every slot is taken.
var ErrExhausted = errors.New("no free buffers")

// New mmap's an anonymous region of size*bufsize bytes split into size slots.
func New(bufsize, size int) (*Pool, error) {
	mem, err := unix.Mmap(-1, 0, bufsize*size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	free := make([]int, size)
	for i := range free {
		free[i] = size - 1 - i
	}
	return &Pool{mem: mem, bufsize: bufsize, free: free}, nil
}

// Pool manages the slots. Buffers remain valid until Close, whether or not
// they are back in the pool, which is what lets a queued batch keep
// referencing them until its commit returns.
type Pool struct {
	mu      sync.Mutex
	mem     []byte
	bufsize int
	free    []int // LIFO of free slot indexes
}

// Get removes a slot from the pool. Returns ErrExhausted when none are left;
// the engine model is single-threaded, so blocking here could never be
// satisfied.
func (p *Pool) Get() (*Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		return nil, ErrExhausted
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	start := i * p.bufsize
	return &Buffer{
		B:         p.mem[start : start+p.bufsize : start+p.bufsize],
		poolIndex: i,
	}, nil
}

// Put returns the buffer's slot to the pool.
func (p *Pool) Put(b *Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, b.poolIndex)
}

// Close munmap's the region. Every buffer handed out becomes invalid; the
// caller must ensure no batch still references them.
func (p *Pool) Close() error {
	return unix.Munmap(p.mem)
}
