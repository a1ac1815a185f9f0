package stroke

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sonjit/internal/geom"
)

// Recording is one captured letter. Samples are [x, y] or [x, y, z].
//
//	- label: ㄱ
//	  kind: gesture
//	  strokes:
//	    - [[0, 0, 0], [0.1, 0, 0], [0.1, -0.1, 0]]
type Recording struct {
	Label   string        `yaml:"label,omitempty"`
	Kind    string        `yaml:"kind"`
	Strokes [][][]float64 `yaml:"strokes,flow"`
}

func NewRecording(label string, kind Kind, strokes []geom.Stroke) Recording {
	rec := Recording{Label: label, Kind: kind.String()}
	for _, s := range strokes {
		samples := make([][]float64, len(s))
		for i, p := range s {
			samples[i] = []float64{p.X, p.Y, p.Z}
		}
		rec.Strokes = append(rec.Strokes, samples)
	}
	return rec
}

// Geom converts the samples, rejecting any that are not 2 or 3 numbers.
func (r Recording) Geom() ([]geom.Stroke, error) {
	out := make([]geom.Stroke, len(r.Strokes))
	for i, s := range r.Strokes {
		out[i] = make(geom.Stroke, len(s))
		for j, sample := range s {
			switch len(sample) {
			case 2:
				out[i][j] = geom.Point3{X: sample[0], Y: sample[1]}
			case 3:
				out[i][j] = geom.Point3{X: sample[0], Y: sample[1], Z: sample[2]}
			default:
				return nil, fmt.Errorf("stroke %d sample %d: want 2 or 3 values, got %d", i, j, len(sample))
			}
		}
	}
	return out, nil
}

func LoadRecordings(path string) ([]Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open recordings: %w", err)
	}
	var recs []Recording
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse recordings %s: %w", path, err)
	}
	for i, rec := range recs {
		if _, err := ParseKind(rec.Kind); err != nil {
			return nil, fmt.Errorf("recording %d: %w", i, err)
		}
		if _, err := rec.Geom(); err != nil {
			return nil, fmt.Errorf("recording %d: %w", i, err)
		}
	}
	return recs, nil
}

func SaveRecordings(path string, recs []Recording) error {
	data, err := yaml.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode recordings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write recordings: %w", err)
	}
	return nil
}

// Replay drives the capture with a recording, one pointer per stroke, and
// returns the events in order. A gesture recording is finished at the end
// so each one yields a separate letter.
func (c *Capture) Replay(rec Recording) ([]Event, error) {
	kind, err := ParseKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	strokes, err := rec.Geom()
	if err != nil {
		return nil, err
	}

	var events []Event
	for id, s := range strokes {
		events = append(events, c.Begin(id, kind)...)
		for _, p := range s {
			if ev, ok := c.Add(id, p); ok {
				events = append(events, ev)
			}
			if ev, ok := c.Frame(); ok {
				events = append(events, ev)
			}
		}
		if ev, ok := c.End(id); ok {
			events = append(events, ev)
		}
	}
	if kind == Gesture {
		events = append(events, c.Finish()...)
	}
	return events, nil
}
