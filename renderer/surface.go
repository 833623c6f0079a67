// Package renderer draws particle field frames onto a 2D surface.
package renderer

import "github.com/pthm-cable/particlefield/config"

// Surface is an addressable 2D raster target.
// Coordinates are surface-local pixels with the origin at the top-left.
type Surface interface {
	// Size returns the current drawable extent in pixels.
	Size() (w, h float64)
	// Clear erases the whole surface.
	Clear()
	// Line strokes a segment.
	Line(x1, y1, x2, y2, width float64, c config.RGB, alpha float64)
	// FillCircle fills a disc.
	FillCircle(x, y, radius float64, c config.RGB, alpha float64)
}

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpLine
	OpCircle
)

// Op is one recorded draw call.
type Op struct {
	Kind           OpKind
	X1, Y1, X2, Y2 float64 // circle center is (X1, Y1)
	Width, Radius  float64
	Color          config.RGB
	Alpha          float64
}

// Recorder is an off-screen Surface that remembers the draw calls of the
// most recent frame. Headless runs and tests draw into it.
type Recorder struct {
	W, H float64
	Ops  []Op

	Frames int // number of Clear calls seen
}

// NewRecorder creates a recorder with the given extent.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Resize changes the reported extent.
func (r *Recorder) Resize(w, h float64) {
	r.W, r.H = w, h
}

// Size implements Surface.
func (r *Recorder) Size() (float64, float64) {
	return r.W, r.H
}

// Clear implements Surface. It drops the previous frame's ops.
func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
	r.Frames++
}

// Line implements Surface.
func (r *Recorder) Line(x1, y1, x2, y2, width float64, c config.RGB, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c, Alpha: alpha})
}

// FillCircle implements Surface.
func (r *Recorder) FillCircle(x, y, radius float64, c config.RGB, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X1: x, Y1: y, Radius: radius, Color: c, Alpha: alpha})
}

// Count returns how many ops of the given kind the last frame drew.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
