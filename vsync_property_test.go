package vecio

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Short-transfer distribution drains the byte pool strictly front to back:
// the transferred count is split across requests in arrival order, and a
// request only receives bytes once every request before it is full.
func TestPropertyShortTransferDistribution(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("residuals account for every transferred byte in order", prop.ForAll(
		func(lens []int, frac float64) bool {
			if len(lens) == 0 {
				return true
			}
			if len(lens) > 64 {
				lens = lens[:64]
			}
			total := 0
			for _, l := range lens {
				total += l
			}
			transferred := int(frac * float64(total))
			if transferred >= total {
				transferred = total - 1
			}

			e, _ := newTestVsync(t, len(lens))
			f := &fakeFile{n: transferred}

			reqs := make([]*Request, len(lens))
			off := int64(0)
			for i, l := range lens {
				reqs[i] = writeReq(f, off, l)
				if e.Submit(reqs[i]) != Queued {
					return false
				}
				off += int64(l)
			}
			if err := e.Commit(); err != nil {
				return false
			}
			if e.Events(1, len(lens)) != len(lens) {
				return false
			}

			moved := 0
			tail := false
			for i, req := range reqs {
				if req.Err != nil {
					return false
				}
				if req.Resid < 0 || req.Resid > lens[i] {
					return false
				}
				// Once a request is left short, everything behind it got nothing.
				if tail && req.Resid != lens[i] {
					return false
				}
				if req.Resid > 0 {
					tail = true
				}
				moved += lens[i] - req.Resid
			}
			return moved == transferred
		},
		gen.SliceOf(gen.IntRange(1, 4096)),
		gen.Float64Range(0, 1),
	))

	properties.Property("contiguous same-direction submissions within depth always queue", prop.ForAll(
		func(lens []int) bool {
			if len(lens) == 0 {
				return true
			}
			if len(lens) > 64 {
				lens = lens[:64]
			}
			e, _ := newTestVsync(t, len(lens))
			f := &fakeFile{full: true}

			off := int64(0)
			for _, l := range lens {
				if e.Submit(writeReq(f, off, l)) != Queued {
					return false
				}
				off += int64(l)
			}
			if err := e.Commit(); err != nil {
				return false
			}
			n := e.Events(1, len(lens))
			if n != len(lens) {
				return false
			}
			for i := 0; i < n; i++ {
				if req := e.Event(i); req.Err != nil || req.Resid != 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 4096)),
	))

	properties.TestingRun(t)
}
