// Package chosung recognizes initial consonants drawn as multi-stroke
// gestures.
//
// Every consonant label is classified on its own against its template
// bucket, and the buckets are then ranked by score. This differs from one
// flat classification over all templates: each letter always gets a score,
// so the candidate list has a fixed length.
package chosung

import (
	"runtime"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"sonjit/internal/geom"
	"sonjit/internal/pdollar"
)

type Options struct {
	// PointThreshold is the minimum number of samples across all strokes.
	// Shorter input is treated as an accidental flick and ignored.
	PointThreshold int
	// ScoreThreshold gates the best candidate.
	ScoreThreshold float64
	// TopK is the number of ranked candidates kept.
	TopK int
	// FlipY inverts the Y axis of the input before matching.
	FlipY bool
	// Workers bounds concurrent bucket classification; 0 means GOMAXPROCS.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		PointThreshold: 64,
		ScoreThreshold: 0.80,
		TopK:           4,
	}
}

type Candidate struct {
	Letter rune
	Score  float64
}

// Recognition is the outcome of one Recognize call. Letter is zero when the
// best candidate scored below the threshold. Ignored reports input that was
// too short to be considered at all.
type Recognition struct {
	Candidates []Candidate
	Letter     rune
	Ignored    bool
}

type Recognizer struct {
	classifier *pdollar.Classifier
	templates  *TemplateSet
	opts       Options
}

func NewRecognizer(c *pdollar.Classifier, templates *TemplateSet, opts Options) *Recognizer {
	if opts.TopK <= 0 {
		opts.TopK = 1
	}
	return &Recognizer{classifier: c, templates: templates, opts: opts}
}

func (r *Recognizer) Options() Options { return r.opts }

// Recognize classifies the strokes against every label bucket.
func (r *Recognizer) Recognize(strokes []geom.Stroke) (Recognition, error) {
	if len(strokes) == 0 || geom.Count(strokes) < r.opts.PointThreshold {
		return Recognition{Ignored: true}, nil
	}

	labels := r.templates.Labels()
	if len(labels) == 0 {
		return Recognition{}, pdollar.ErrNoTemplates
	}

	candidate := pdollar.Gesture{Points: geom.Flatten(strokes, r.opts.FlipY)}
	results := make([]Candidate, len(labels))

	var g errgroup.Group
	workers := r.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, label := range labels {
		i, label := i, label
		g.Go(func() error {
			res, err := r.classifier.Classify(candidate, r.templates.Templates(label))
			if err != nil {
				return err
			}
			results[i] = Candidate{Letter: label, Score: res.Score}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Recognition{}, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > r.opts.TopK {
		results = results[:r.opts.TopK]
	}

	rec := Recognition{Candidates: results}
	if results[0].Score >= r.opts.ScoreThreshold {
		rec.Letter = results[0].Letter
	}
	return rec, nil
}

// Label returns the consonant a template name stands for.
func Label(name string) rune {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
