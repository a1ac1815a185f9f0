package stroke

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonjit/internal/geom"
)

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestGestureUpdatesWaitForFrame(t *testing.T) {
	c := NewCapture()
	assert.Equal(t, []EventType{EventGestureBegin}, types(c.Begin(1, Gesture)))
	assert.Equal(t, StateGesture, c.State())

	_, ok := c.Add(1, geom.Point3{X: 0, Y: 0, Z: 0.3})
	assert.False(t, ok)
	c.Add(1, geom.Point3{X: 1, Y: 0})

	ev, ok := c.Frame()
	require.True(t, ok)
	assert.Equal(t, EventGesture, ev.Type)
	want := []geom.Stroke{{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	if diff := cmp.Diff(want, ev.Strokes); diff != "" {
		t.Fatalf("strokes mismatch (-want +got):\n%s", diff)
	}

	_, ok = c.Frame()
	assert.False(t, ok, "frame without new samples")
}

func TestDuplicateSamplesAreSkipped(t *testing.T) {
	c := NewCapture()
	c.Begin(7, Pinch)

	_, ok := c.Add(7, geom.Point3{X: 1, Y: 2, Z: 3})
	require.True(t, ok)
	_, ok = c.Add(7, geom.Point3{X: 1, Y: 2, Z: 3})
	assert.False(t, ok)

	ev, ok := c.Add(7, geom.Point3{X: 1, Y: 2, Z: 4})
	require.True(t, ok)
	assert.Equal(t, EventPinch, ev.Type)
	assert.Len(t, ev.Points, 2)
	assert.Equal(t, 4.0, ev.Points[1].Z, "pinch keeps depth")
}

func TestMultiStrokeGesture(t *testing.T) {
	c := NewCapture()
	c.Begin(1, Gesture)
	c.Add(1, geom.Point3{X: 0, Y: 0})
	c.End(1)
	c.Begin(2, Gesture)
	c.Add(2, geom.Point3{X: 5, Y: 5})

	assert.Len(t, c.Strokes(), 2)
	_, ok := c.Add(1, geom.Point3{X: 9, Y: 9})
	assert.False(t, ok, "ended pointer")
}

func TestPinchEndsGesture(t *testing.T) {
	c := NewCapture()
	c.Begin(1, Gesture)
	c.Add(1, geom.Point3{X: 1})

	events := c.Begin(2, Pinch)
	assert.Equal(t, []EventType{EventGestureEnd, EventPinchBegin}, types(events))
	assert.Equal(t, StatePinch, c.State())
	assert.Len(t, c.Strokes(), 1)
	assert.Empty(t, c.Strokes()[0])

	ev, ok := c.End(2)
	require.True(t, ok)
	assert.Equal(t, EventPinchEnd, ev.Type)

	events = c.Begin(3, Gesture)
	assert.Equal(t, []EventType{EventGestureBegin}, types(events))
	assert.Len(t, c.Strokes(), 1, "finished pinch is discarded")
}

func TestFinish(t *testing.T) {
	c := NewCapture()
	assert.Nil(t, c.Finish())

	c.Begin(1, Gesture)
	c.Add(1, geom.Point3{X: 1})
	events := c.Finish()
	assert.Equal(t, []EventType{EventGesture, EventGestureEnd}, types(events))
	assert.Equal(t, StateClean, c.State())
	assert.Empty(t, c.Strokes())
}

func TestStrokesAreCopies(t *testing.T) {
	c := NewCapture()
	c.Begin(1, Gesture)
	c.Add(1, geom.Point3{X: 1})

	s := c.Strokes()
	s[0][0].X = 42
	assert.Equal(t, 1.0, c.Strokes()[0][0].X)
}

func TestReplayAndRecordings(t *testing.T) {
	gesture := NewRecording("ㄴ", Gesture, []geom.Stroke{
		{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	})
	pinch := Recording{Kind: "pinch", Strokes: [][][]float64{{{0, 0, 0}, {0.05, 0}}}}

	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, SaveRecordings(path, []Recording{gesture, pinch}))
	recs, err := LoadRecordings(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "ㄴ", recs[0].Label)

	c := NewCapture()
	events, err := c.Replay(recs[0])
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventGestureBegin, EventGesture, EventGesture, EventGesture, EventGestureEnd}, types(events))
	assert.Len(t, events[3].Strokes[0], 3)

	events, err = c.Replay(recs[1])
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventPinchBegin, EventPinch, EventPinch, EventPinchEnd}, types(events))
	assert.Equal(t, geom.Point3{X: 0.05}, events[2].Points[1])
}

func TestRecordingValidation(t *testing.T) {
	_, err := Recording{Kind: "wave"}.Geom()
	assert.NoError(t, err, "kind is checked separately")

	_, err = NewCapture().Replay(Recording{Kind: "wave"})
	assert.Error(t, err)

	_, err = Recording{Strokes: [][][]float64{{{1}}}}.Geom()
	assert.Error(t, err)

	_, err = LoadRecordings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "gesture-begin", EventGestureBegin.String())
	assert.Equal(t, "pinch-end", EventPinchEnd.String())
	assert.Equal(t, "event(42)", EventType(42).String())
	assert.Equal(t, "event(-1)", EventType(-1).String())
}
