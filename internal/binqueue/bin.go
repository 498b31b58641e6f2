// Package binqueue implements the process-wide bin queue: a
// double-buffered bank of FragmentBin records that the vertex stage
// reserves into and the fragment stage drains from. The vertex/fragment
// phase handoff itself is a Context-level concern (a worker-pool
// ExecuteAll barrier plus a mutex-guarded overflow flush), not something
// this package arbitrates.
package binqueue

import (
	"sync/atomic"

	"github.com/gogpu/swrast/geom"
)

// MaxVaryingVectors is SL_SHADER_MAX_VARYING_VECTORS.
const MaxVaryingVectors = 4

// DefaultCapacity is a representative SL_SHADER_MAX_BINNED_PRIMS.
const DefaultCapacity = 8192

// Bin is a FragmentBin: one primitive (1-3 vertices) ready to rasterize.
type Bin struct {
	// NumVerts is 1 (point), 2 (line), or 3 (triangle).
	NumVerts int
	// ScreenCoords holds post-viewport (x_screen, y_screen, z_ndc, w_clip)
	// per vertex.
	ScreenCoords [3]geom.Vec4
	// BarycentricCoords[0]=dλ/dx, [1]=dλ/dy, [2]=λ(0,0), one vec4 per
	// barycentric coordinate (only used for triangles).
	BarycentricCoords [3]geom.Vec4
	// Varyings is a flat per-vertex array of interpolated vectors.
	Varyings [3][MaxVaryingVectors]geom.Vec4
	// PrimIndex is the monotonically increasing submission sequence
	// number, used to order transparent primitives deterministically.
	PrimIndex uint64
	// Wireframe marks a TriangleWire-mode primitive.
	Wireframe bool
}

// bank holds one double-buffer slot: a dense bin array plus the count of
// bins written into it so far.
type bank struct {
	bins []Bin
	// numBinsUsed is the producer count of written bins in this bank.
	numBinsUsed atomic.Int64
}

func newBank(capacity int) *bank {
	return &bank{bins: make([]Bin, capacity)}
}

// Queue is the process-wide, double-buffered bin queue.
type Queue struct {
	banks     [2]*bank
	activeIdx atomic.Int32
	capacity  int
}

// New creates a Queue with the given per-bank capacity.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		banks:    [2]*bank{newBank(capacity), newBank(capacity)},
		capacity: capacity,
	}
}

// Capacity reports the per-bank bin capacity.
func (q *Queue) Capacity() int { return q.capacity }

// ErrOverflow signals that a draw's active bank has no room for another
// bin; callers must flush and retry.
var ErrOverflow = errOverflow{}

type errOverflow struct{}

func (errOverflow) Error() string { return "swrast: bin bank overflow" }

// Reserve atomically claims the next free slot in the active bank and
// writes b into it. Returns ErrOverflow if the bank is full.
func (q *Queue) Reserve(b Bin) error {
	ab := q.active()
	idx := ab.numBinsUsed.Add(1) - 1
	if int(idx) >= q.capacity {
		return ErrOverflow
	}
	ab.bins[idx] = b
	return nil
}

// active returns the bank currently accepting writes.
func (q *Queue) active() *bank {
	return q.banks[q.activeIdx.Load()]
}

// ActiveBins returns the bins written so far in the active bank.
func (q *Queue) ActiveBins() []Bin {
	ab := q.active()
	n := ab.numBinsUsed.Load()
	if int(n) > q.capacity {
		n = int64(q.capacity)
	}
	return ab.bins[:n]
}

// Flip swaps the active/next banks and resets the bank that becomes
// active, so producers start writing into an empty bank. The bank that
// was active before the flip keeps its bins until a later Flip activates
// (and so resets) it again.
func (q *Queue) Flip() {
	cur := q.activeIdx.Load()
	next := cur ^ 1
	q.banks[next].numBinsUsed.Store(0)
	q.activeIdx.Store(next)
}
