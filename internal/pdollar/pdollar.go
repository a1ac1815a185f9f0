// Package pdollar implements a $P-style point-cloud gesture classifier.
//
// Gestures are resampled to a fixed number of points along their whole path
// (stroke breaks included), translated so the centroid sits at the origin and
// scaled to a reference box. Two clouds are compared by greedily pairing the
// closest remaining points until both are exhausted; the summed distance is
// turned into a similarity in (0, 1].
//
// The classifier keeps no state between calls and may be shared between
// goroutines.
package pdollar

import (
	"errors"
	"math"

	"sonjit/internal/geom"
)

var (
	ErrInvalidInput = errors.New("pdollar: candidate gesture has no points")
	ErrNoTemplates  = errors.New("pdollar: template set is empty")
)

// ScaleMode selects how a cloud is fitted to the reference box.
type ScaleMode int

const (
	// ScaleUniform divides both axes by the larger bounding-box side.
	ScaleUniform ScaleMode = iota
	// ScaleAxis fits each axis independently.
	ScaleAxis
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleUniform:
		return "uniform"
	case ScaleAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// ParseScaleMode accepts the names produced by String.
func ParseScaleMode(name string) (ScaleMode, bool) {
	switch name {
	case "", "uniform":
		return ScaleUniform, true
	case "axis":
		return ScaleAxis, true
	default:
		return ScaleUniform, false
	}
}

const (
	DefaultResolution = 32
	referenceSize     = 1.0
)

type Options struct {
	Resolution int
	Scale      ScaleMode
}

func DefaultOptions() Options {
	return Options{Resolution: DefaultResolution, Scale: ScaleUniform}
}

// Gesture is a named, ordered point sequence.
type Gesture struct {
	Name   string
	Points []geom.Point
}

// Template is a gesture together with its normalized cloud.
type Template struct {
	Gesture
	cloud []geom.Point
}

// Result is the outcome of one classification. Score is a similarity: 1 is
// a perfect match.
type Result struct {
	Label    string
	Score    float64
	Template int
}

type Classifier struct {
	opts Options
}

func New(opts Options) *Classifier {
	if opts.Resolution < 2 {
		opts.Resolution = DefaultResolution
	}
	return &Classifier{opts: opts}
}

func (c *Classifier) Options() Options { return c.opts }

// Compile normalizes g once so it can be matched repeatedly.
func (c *Classifier) Compile(g Gesture) Template {
	pts := make([]geom.Point, len(g.Points))
	copy(pts, g.Points)
	t := Template{Gesture: Gesture{Name: g.Name, Points: pts}}
	if len(pts) > 0 {
		t.cloud = c.Normalize(pts)
	}
	return t
}

// Classify returns the best-scoring template. Ties keep the template that
// comes first in the slice.
func (c *Classifier) Classify(candidate Gesture, templates []Template) (Result, error) {
	if len(candidate.Points) == 0 {
		return Result{}, ErrInvalidInput
	}
	if len(templates) == 0 {
		return Result{}, ErrNoTemplates
	}

	cloud := c.Normalize(candidate.Points)
	best := Result{Score: -1, Template: -1}
	for i := range templates {
		score := c.similarity(cloud, templates[i].cloud)
		if score > best.Score {
			best = Result{Label: templates[i].Name, Score: score, Template: i}
		}
	}
	return best, nil
}

// ClassifyGestures compiles the templates on the fly. Prefer Compile plus
// Classify when the same templates are used more than once.
func (c *Classifier) ClassifyGestures(candidate Gesture, templates []Gesture) (Result, error) {
	compiled := make([]Template, len(templates))
	for i, g := range templates {
		compiled[i] = c.Compile(g)
	}
	return c.Classify(candidate, compiled)
}

// Similarity compares two gestures directly.
func (c *Classifier) Similarity(a, b Gesture) float64 {
	if len(a.Points) == 0 || len(b.Points) == 0 {
		return 0
	}
	return c.similarity(c.Normalize(a.Points), c.Normalize(b.Points))
}

func (c *Classifier) similarity(a, b []geom.Point) float64 {
	d := GreedyDistance(a, b)
	if math.IsInf(d, 1) {
		return 0
	}
	n := float64(c.opts.Resolution)
	diagonal := math.Sqrt2 * referenceSize
	return 1 / (1 + d/(n*diagonal))
}

// Normalize resamples, centers and scales pts. The input is not modified.
func (c *Classifier) Normalize(pts []geom.Point) []geom.Point {
	out := Resample(pts, c.opts.Resolution)
	out = TranslateToOrigin(out)
	return ScaleTo(out, referenceSize, c.opts.Scale)
}

// Resample walks pts at uniform arc-length steps and returns exactly n
// points.
func Resample(pts []geom.Point, n int) []geom.Point {
	if len(pts) == 0 || n <= 0 {
		return nil
	}
	out := make([]geom.Point, 0, n)
	out = append(out, pts[0])
	if n == 1 {
		return out
	}

	interval := geom.PathLength(pts) / float64(n-1)
	if interval == 0 {
		for len(out) < n {
			out = append(out, pts[0])
		}
		return out
	}

	var acc float64
	prev := pts[0]
	for i := 1; i < len(pts) && len(out) < n; i++ {
		cur := pts[i]
		d := geom.Dist(prev, cur)
		for d > 0 && acc+d >= interval && len(out) < n {
			q := geom.Lerp(prev, cur, (interval-acc)/d)
			out = append(out, q)
			prev = q
			d = geom.Dist(q, cur)
			acc = 0
		}
		acc += d
		prev = cur
	}

	last := pts[len(pts)-1]
	for len(out) < n {
		out = append(out, last)
	}
	return out
}

func TranslateToOrigin(pts []geom.Point) []geom.Point {
	c := geom.Centroid(pts)
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: p.X - c.X, Y: p.Y - c.Y, Stroke: p.Stroke}
	}
	return out
}

// ScaleTo fits pts into a box of the given size. Axes with no extent are
// left as they are.
func ScaleTo(pts []geom.Point, size float64, mode ScaleMode) []geom.Point {
	box := geom.Bounds(pts)
	sx, sy := 1.0, 1.0
	switch mode {
	case ScaleAxis:
		if w := box.Width(); w > 0 {
			sx = size / w
		}
		if h := box.Height(); h > 0 {
			sy = size / h
		}
	default:
		if m := math.Max(box.Width(), box.Height()); m > 0 {
			sx = size / m
			sy = sx
		}
	}
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: p.X * sx, Y: p.Y * sy, Stroke: p.Stroke}
	}
	return out
}

// GreedyDistance pairs the closest unmatched points of a and b until every
// point is used and returns the summed pair distances. Clouds of different
// sizes (or empty ones) are infinitely far apart.
func GreedyDistance(a, b []geom.Point) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return math.Inf(1)
	}

	dist := make([]float64, n*n)
	for i := range a {
		for j := range b {
			dist[i*n+j] = geom.Dist(a[i], b[j])
		}
	}

	usedA := make([]bool, n)
	usedB := make([]bool, n)
	var total float64
	for k := 0; k < n; k++ {
		bi, bj := -1, -1
		closest := math.Inf(1)
		for i := 0; i < n; i++ {
			if usedA[i] {
				continue
			}
			row := dist[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				if !usedB[j] && row[j] < closest {
					closest = row[j]
					bi, bj = i, j
				}
			}
		}
		if bi < 0 {
			// only NaN distances left
			return math.Inf(1)
		}
		usedA[bi] = true
		usedB[bj] = true
		total += closest
	}
	return total
}
