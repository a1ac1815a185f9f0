// Package jungsung recognizes vowels from a single drag, dial-keypad style.
//
// A box (the origin volume) is centred on the first sample. Every time the
// path leaves or re-enters the box through its left or right face the
// horizontal count moves one step in that direction; the top and bottom
// faces do the same vertically. The final counts index a fixed 7x9 table:
// one exit to the right is ㅏ, out-and-back is ㅐ, and so on.
package jungsung

import "sonjit/internal/geom"

const (
	maxX = 4
	maxY = 3
)

// grid is indexed [3+ny][4+nx]; ny grows downwards. ㅢ appears in several
// diagonal cells because more than one path leads to it.
var grid = [2*maxY + 1][2*maxX + 1]rune{
	{0, 0, 0, 0, 'ㅛ', 0, 0, 0, 0},
	{0, 0, 'ㅢ', 'ㅢ', 'ㅚ', 0, 0, 0, 0},
	{0, 0, 'ㅢ', 'ㅣ', 'ㅗ', 'ㅘ', 'ㅙ', 0, 0},
	{'ㅖ', 'ㅕ', 'ㅔ', 'ㅓ', 0, 'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ'},
	{0, 0, 'ㅞ', 'ㅝ', 'ㅜ', 'ㅡ', 'ㅢ', 0, 0},
	{0, 0, 0, 0, 'ㅟ', 'ㅢ', 'ㅢ', 0, 0},
	{0, 0, 0, 0, 'ㅠ', 0, 0, 0, 0},
}

// Lookup returns the table cell for the given counts, clamping them first.
func Lookup(nx, ny int) rune {
	nx = clamp(nx, -maxX, maxX)
	ny = clamp(ny, -maxY, maxY)
	return grid[maxY+ny][maxX+nx]
}

type Options struct {
	PointThreshold int
	// Origin is the full extent of the origin box on each axis.
	Origin geom.Point3
}

func DefaultOptions() Options {
	return Options{
		PointThreshold: 4,
		Origin:         geom.Point3{X: 0.04, Y: 0.04, Z: 0.04},
	}
}

// Trace records the face crossings seen while walking a path.
type Trace struct {
	NX, NY int
	// DepthCrossings counts front/back crossings; the table ignores them.
	DepthCrossings int
}

type Recognizer struct {
	opts Options
}

func NewRecognizer(opts Options) *Recognizer {
	return &Recognizer{opts: opts}
}

func (r *Recognizer) Options() Options { return r.opts }

// Recognize returns the vowel for the drag, or zero when the path is too
// short or ends on an empty cell.
func (r *Recognizer) Recognize(points []geom.Point3) rune {
	tr, ok := r.Trace(points)
	if !ok {
		return 0
	}
	return Lookup(tr.NX, tr.NY)
}

// Trace walks the path and reports the clamped crossing counts. ok is false
// when the path has fewer samples than the threshold.
func (r *Recognizer) Trace(points []geom.Point3) (Trace, bool) {
	if len(points) == 0 || len(points) < r.opts.PointThreshold {
		return Trace{}, false
	}

	origin := points[0]
	left := origin.X - r.opts.Origin.X*0.5
	right := origin.X + r.opts.Origin.X*0.5
	bottom := origin.Y - r.opts.Origin.Y*0.5
	top := origin.Y + r.opts.Origin.Y*0.5
	front := origin.Z - r.opts.Origin.Z*0.5
	back := origin.Z + r.opts.Origin.Z*0.5

	var tr Trace
	prev := origin
	for _, p := range points {
		switch {
		case crosses(prev.X, p.X, left):
			tr.NX = clamp(tr.NX-1, -maxX, maxX)
		case crosses(prev.X, p.X, right):
			tr.NX = clamp(tr.NX+1, -maxX, maxX)
		}

		switch {
		case crosses(prev.Y, p.Y, bottom):
			tr.NY = clamp(tr.NY+1, -maxY, maxY)
		case crosses(prev.Y, p.Y, top):
			tr.NY = clamp(tr.NY-1, -maxY, maxY)
		}

		if crosses(prev.Z, p.Z, front) || crosses(prev.Z, p.Z, back) {
			tr.DepthCrossings++
		}
		prev = p
	}
	return tr, true
}

// crosses reports a strict crossing of the plane at edge in either
// direction. Touching the plane does not count.
func crosses(prev, cur, edge float64) bool {
	return (prev < edge && edge < cur) || (prev > edge && edge > cur)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
