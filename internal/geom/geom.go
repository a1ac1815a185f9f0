// Package geom holds the point types shared by the recognizers and a few
// helpers over point clouds.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a 2D sample tagged with the stroke it was drawn in.
type Point struct {
	X, Y   float64
	Stroke int
}

// Point3 is a raw sample in the capture surface's local frame.
type Point3 struct {
	X, Y, Z float64
}

// Stroke is one continuous contact, in time order.
type Stroke []Point3

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Lerp interpolates between a and b; the result keeps b's stroke id.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X:      a.X + t*(b.X-a.X),
		Y:      a.Y + t*(b.Y-a.Y),
		Stroke: b.Stroke,
	}
}

// PathLength walks the points in order, stroke breaks included.
func PathLength(pts []Point) float64 {
	var d float64
	for i := 1; i < len(pts); i++ {
		d += Dist(pts[i-1], pts[i])
	}
	return d
}

func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	xs, ys := split(pts)
	n := float64(len(pts))
	return Point{X: floats.Sum(xs) / n, Y: floats.Sum(ys) / n}
}

func Bounds(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	xs, ys := split(pts)
	return Box{
		MinX: floats.Min(xs),
		MinY: floats.Min(ys),
		MaxX: floats.Max(xs),
		MaxY: floats.Max(ys),
	}
}

// Flatten joins strokes into one point sequence, numbering strokes from 0.
// With flipY the Y axis is inverted.
func Flatten(strokes []Stroke, flipY bool) []Point {
	n := 0
	for _, s := range strokes {
		n += len(s)
	}
	out := make([]Point, 0, n)
	for id, s := range strokes {
		for _, p := range s {
			y := p.Y
			if flipY {
				y = -y
			}
			out = append(out, Point{X: p.X, Y: y, Stroke: id})
		}
	}
	return out
}

// Count returns the total number of samples across strokes.
func Count(strokes []Stroke) int {
	n := 0
	for _, s := range strokes {
		n += len(s)
	}
	return n
}

func split(pts []Point) ([]float64, []float64) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}
