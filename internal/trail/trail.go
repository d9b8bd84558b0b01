// Package trail keeps fixed-capacity position histories per body for
// path rendering. Buffers are circular so memory never grows with run
// length, and reads are linearized oldest-to-newest so the drawn path
// is temporally continuous.
package trail

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
)

// Buffer is a circular buffer of the k most recent positions. It is
// allocated full, prefilled with the body's position at allocation
// time, so a fresh trail never draws a stray segment from the origin.
type Buffer struct {
	points []r3.Vec
	head   int // next write slot, also the oldest sample
}

// NewBuffer returns a capacity-k buffer prefilled with fill. k must be
// positive; the Set never allocates a zero-capacity buffer.
func NewBuffer(k int, fill r3.Vec) *Buffer {
	points := make([]r3.Vec, k)
	for i := range points {
		points[i] = fill
	}
	return &Buffer{points: points}
}

func (b *Buffer) Cap() int { return len(b.points) }

// Push records p, overwriting the oldest retained sample.
func (b *Buffer) Push(p r3.Vec) {
	b.points[b.head] = p
	b.head = (b.head + 1) % len(b.points)
}

// Points returns the retained samples ordered oldest to newest. The
// returned slice is freshly allocated each call.
func (b *Buffer) Points() []r3.Vec {
	out := make([]r3.Vec, 0, len(b.points))
	out = append(out, b.points[b.head:]...)
	out = append(out, b.points[:b.head]...)
	return out
}

// Set holds one Buffer per tracked body id. Bodies with a configured
// trail length of zero have no buffer at all.
type Set struct {
	buffers map[string]*Buffer
}

func NewSet() *Set {
	return &Set{buffers: make(map[string]*Buffer)}
}

// Reset drops all history and reallocates buffers from the bodies'
// TrailLen fields, prefilled with their current positions.
func (s *Set) Reset(bodies []body.Body) {
	s.buffers = make(map[string]*Buffer, len(bodies))
	for i := range bodies {
		if bodies[i].TrailLen > 0 {
			s.buffers[bodies[i].ID] = NewBuffer(bodies[i].TrailLen, bodies[i].Pos)
		}
	}
}

// Resize reallocates the buffer for id at capacity k, discarding its
// history and prefilling with cur. An unchanged capacity keeps the
// buffer as is. k <= 0 removes the buffer.
func (s *Set) Resize(id string, k int, cur r3.Vec) {
	if k <= 0 {
		delete(s.buffers, id)
		return
	}
	if b, ok := s.buffers[id]; ok && b.Cap() == k {
		return
	}
	s.buffers[id] = NewBuffer(k, cur)
}

// Record pushes the current position of every tracked body. Bodies
// without a buffer are skipped.
func (s *Set) Record(bodies []body.Body) {
	for i := range bodies {
		if b, ok := s.buffers[bodies[i].ID]; ok {
			b.Push(bodies[i].Pos)
		}
	}
}

// Points returns the linearized trail for id, or nil when the body is
// not tracked.
func (s *Set) Points(id string) []r3.Vec {
	b, ok := s.buffers[id]
	if !ok {
		return nil
	}
	return b.Points()
}

// Tracked reports whether id currently has a trail buffer.
func (s *Set) Tracked(id string) bool {
	_, ok := s.buffers[id]
	return ok
}
