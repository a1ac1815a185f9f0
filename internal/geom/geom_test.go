package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentroidAndBounds(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}}

	assert.Equal(t, Point{X: 2, Y: 1}, Centroid(pts))

	box := Bounds(pts)
	assert.Equal(t, 4.0, box.Width())
	assert.Equal(t, 2.0, box.Height())

	assert.Equal(t, Point{}, Centroid(nil))
	assert.Equal(t, Box{}, Bounds(nil))
}

func TestPathLengthIncludesStrokeBreaks(t *testing.T) {
	pts := []Point{{X: 0, Y: 0, Stroke: 0}, {X: 3, Y: 4, Stroke: 0}, {X: 3, Y: 10, Stroke: 1}}
	assert.Equal(t, 11.0, PathLength(pts))
}

func TestFlatten(t *testing.T) {
	strokes := []Stroke{
		{{X: 1, Y: 2, Z: 9}, {X: 2, Y: 3}},
		{{X: 5, Y: -1}},
	}

	got := Flatten(strokes, true)
	want := []Point{
		{X: 1, Y: -2, Stroke: 0},
		{X: 2, Y: -3, Stroke: 0},
		{X: 5, Y: 1, Stroke: 1},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, Count(strokes))
}

func TestLerpKeepsTargetStroke(t *testing.T) {
	p := Lerp(Point{X: 0, Y: 0, Stroke: 0}, Point{X: 2, Y: 4, Stroke: 1}, 0.5)
	assert.Equal(t, Point{X: 1, Y: 2, Stroke: 1}, p)
}
