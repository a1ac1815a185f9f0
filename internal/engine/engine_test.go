package engine

import (
	"reflect"
	"testing"

	"sonjit/internal/chosung"
	"sonjit/internal/geom"
	"sonjit/internal/pdollar"
	"sonjit/internal/stroke"
	"sonjit/internal/textbuf"
)

type fakeCompleter struct {
	words    []string
	prefixes []string
}

func (f *fakeCompleter) Complete(prefix string, limit int) []string {
	f.prefixes = append(f.prefixes, prefix)
	if len(f.words) > limit {
		return f.words[:limit]
	}
	return f.words
}

func line(n int, corners ...geom.Point3) geom.Stroke {
	var out geom.Stroke
	for i := 1; i < len(corners); i++ {
		a, b := corners[i-1], corners[i]
		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			out = append(out, geom.Point3{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)})
		}
	}
	return append(out, corners[len(corners)-1])
}

var (
	giyeok = []geom.Stroke{line(20, geom.Point3{X: 0, Y: 1}, geom.Point3{X: 1, Y: 1}, geom.Point3{X: 1, Y: 0})}
	nieun  = []geom.Stroke{line(20, geom.Point3{X: 0, Y: 1}, geom.Point3{X: 0, Y: 0}, geom.Point3{X: 1, Y: 0})}

	pinchRight = []geom.Point3{{}, {X: 0.01}, {X: 0.03}, {X: 0.05}}
	pinchDown  = []geom.Point3{{}, {Y: -0.01}, {Y: -0.03}, {Y: -0.05}}
)

func newTestEngine(t *testing.T, opts Options) (*Engine, *textbuf.Buffer) {
	t.Helper()

	c := pdollar.New(pdollar.DefaultOptions())
	templates := chosung.NewTemplateSet(c, []pdollar.Gesture{
		{Name: "ㄱ", Points: geom.Flatten(giyeok, false)},
		{Name: "ㄴ", Points: geom.Flatten(nieun, false)},
	})
	cho := chosung.NewRecognizer(c, templates, chosung.Options{
		PointThreshold: 8,
		ScoreThreshold: 0.8,
		TopK:           2,
	})
	buf := textbuf.New(0)
	return New(cho, nil, buf, opts), buf
}

func typeAll(eng *Engine, letters string) {
	for _, r := range letters {
		eng.TypeJamo(r)
	}
}

func draw(t *testing.T, eng *Engine, strokes []geom.Stroke) Update {
	t.Helper()
	up, err := eng.Gesture(strokes)
	if err != nil {
		t.Fatalf("gesture: %v", err)
	}
	eng.GestureEnd()
	return up
}

func pinch(eng *Engine, points []geom.Point3) Update {
	up := eng.Pinch(points)
	eng.PinchEnd()
	return up
}

func TestEngineGestureAndPinchCompose(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	up := draw(t, eng, giyeok)
	if up.Preedit != "ㄱ" {
		t.Fatalf("expected preedit 'ㄱ', got %q", up.Preedit)
	}
	if len(up.Candidates) != 2 || up.Candidates[0].Letter != 'ㄱ' {
		t.Fatalf("expected ㄱ to lead two candidates, got %+v", up.Candidates)
	}
	if eng.Candidates() != nil {
		t.Fatalf("expected candidates cleared after gesture end, got %+v", eng.Candidates())
	}

	up = pinch(eng, pinchRight)
	if up.Preedit != "가" {
		t.Fatalf("expected preedit '가', got %q", up.Preedit)
	}

	draw(t, eng, nieun)
	if got := buf.String(); got != "간" {
		t.Fatalf("expected buffer to contain '간', got %q", got)
	}

	up = pinch(eng, pinchDown)
	if up.Commit != "가" {
		t.Fatalf("expected commit '가', got %q", up.Commit)
	}
	if up.Preedit != "누" {
		t.Fatalf("expected preedit '누', got %q", up.Preedit)
	}
	if got := buf.String(); got != "가누" {
		t.Fatalf("expected buffer to contain '가누', got %q", got)
	}
}

func TestEngineIgnoresShortGesture(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	up, err := eng.Gesture([]geom.Stroke{{{X: 0}, {X: 1}}})
	if err != nil {
		t.Fatalf("gesture: %v", err)
	}
	if up.Preedit != "" || up.Candidates != nil {
		t.Fatalf("expected nothing for a short gesture, got %+v", up)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty buffer, got %q", buf.String())
	}
}

func TestEngineGestureWithoutRecognizer(t *testing.T) {
	eng := New(nil, nil, textbuf.New(0), Options{})
	if _, err := eng.Gesture(giyeok); err != pdollar.ErrNoTemplates {
		t.Fatalf("expected ErrNoTemplates, got %v", err)
	}
}

func TestEngineShortPinchLeavesVowelUnset(t *testing.T) {
	eng, _ := newTestEngine(t, Options{})
	draw(t, eng, giyeok)

	up := eng.Pinch(pinchRight[:2])
	if up.Preedit != "ㄱ" {
		t.Fatalf("expected preedit 'ㄱ', got %q", up.Preedit)
	}
}

func TestEngineTypeJamoSplitsIllegalFinal(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	typeAll(eng, "ㄱㅏㅁ")
	up := eng.TypeJamo('ㄱ')

	if up.Commit != "감" {
		t.Fatalf("expected commit '감', got %q", up.Commit)
	}
	if up.Preedit != "ㄱ" {
		t.Fatalf("expected preedit 'ㄱ', got %q", up.Preedit)
	}
	if got := buf.String(); got != "감ㄱ" {
		t.Fatalf("expected buffer to contain '감ㄱ', got %q", got)
	}
}

func TestEngineTypeJamoMovesFinalToNextSyllable(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	typeAll(eng, "ㅂㅗㅈㅏ")

	if got := buf.String(); got != "보자" {
		t.Fatalf("expected buffer to contain '보자', got %q", got)
	}
	if got := eng.Preedit(); got != "자" {
		t.Fatalf("expected preedit '자', got %q", got)
	}
}

func TestEngineTypeJamoSplitsDoubleFinal(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	typeAll(eng, "ㄷㅏㄹㄱㅣ")

	if got := buf.String(); got != "달기" {
		t.Fatalf("expected buffer to contain '달기', got %q", got)
	}
}

func TestEngineBackspace(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	typeAll(eng, "ㅎㅏ")
	eng.Space()
	typeAll(eng, "ㄷㅏㄹㄱ")
	if got := buf.String(); got != "하 닭" {
		t.Fatalf("expected buffer to contain '하 닭', got %q", got)
	}

	want := []string{"하 달", "하 다", "하 ㄷ", "하 ", "하", ""}
	for _, w := range want {
		eng.Backspace()
		if got := buf.String(); got != w {
			t.Fatalf("expected buffer to contain %q, got %q", w, got)
		}
	}

	eng.Backspace()
	if got := buf.String(); got != "" {
		t.Fatalf("expected empty buffer, got %q", got)
	}
}

func TestEngineCommitAndAddString(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	typeAll(eng, "ㄴㅏ")
	up := eng.Commit()
	if up.Commit != "나" || up.Preedit != "" {
		t.Fatalf("expected commit '나' and no preedit, got %+v", up)
	}

	typeAll(eng, "ㅇㅛ")
	eng.AddString("!")
	if got := buf.String(); got != "나요!" {
		t.Fatalf("expected buffer to contain '나요!', got %q", got)
	}
	if eng.Preedit() != "" {
		t.Fatalf("expected cleared preedit, got %q", eng.Preedit())
	}
}

func TestEngineSuggestionsAndPick(t *testing.T) {
	comp := &fakeCompleter{words: []string{"한국", "하늘", "하루"}}
	eng, buf := newTestEngine(t, Options{Completer: comp, CompleteLimit: 2})

	typeAll(eng, "ㅎㅏ")
	if got, want := eng.Suggestions(), []string{"한국", "하늘"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected suggestions %v, got %v", want, got)
	}
	if last := comp.prefixes[len(comp.prefixes)-1]; last != "하" {
		t.Fatalf("expected lookup of '하', got %q", last)
	}

	if _, ok := eng.Pick(5); ok {
		t.Fatalf("expected out-of-range pick to fail")
	}
	if _, ok := eng.Pick(0); !ok {
		t.Fatalf("expected pick to succeed")
	}
	if got := buf.String(); got != "한국" {
		t.Fatalf("expected buffer to contain '한국', got %q", got)
	}
	if eng.Preedit() != "" {
		t.Fatalf("expected cleared preedit, got %q", eng.Preedit())
	}

	// The picked word is finished; the next letter starts a new syllable.
	eng.TypeJamo('ㅇ')
	if got := buf.String(); got != "한국ㅇ" {
		t.Fatalf("expected buffer to contain '한국ㅇ', got %q", got)
	}
}

func TestEngineSpaceClearsSuggestions(t *testing.T) {
	comp := &fakeCompleter{words: []string{"한국"}}
	eng, _ := newTestEngine(t, Options{Completer: comp})

	typeAll(eng, "ㅎㅏ")
	eng.Space()
	if got := eng.Suggestions(); got != nil {
		t.Fatalf("expected no suggestions after space, got %v", got)
	}
}

func TestEngineHandleCaptureEvents(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})
	capture := stroke.NewCapture()

	var events []stroke.Event
	rec := stroke.Recording{Kind: stroke.Gesture.String(), Strokes: toSamples(giyeok)}
	evs, err := capture.Replay(rec)
	if err != nil {
		t.Fatalf("replay gesture: %v", err)
	}
	events = append(events, evs...)
	rec = stroke.Recording{Kind: stroke.Pinch.String(), Strokes: [][][]float64{toSamples([]geom.Stroke{pinchRight})[0]}}
	evs, err = capture.Replay(rec)
	if err != nil {
		t.Fatalf("replay pinch: %v", err)
	}
	events = append(events, evs...)

	for _, ev := range events {
		if _, err := eng.Handle(ev); err != nil {
			t.Fatalf("handle %s: %v", ev.Type, err)
		}
	}
	if got := buf.String(); got != "가" {
		t.Fatalf("expected buffer to contain '가', got %q", got)
	}
}

func toSamples(strokes []geom.Stroke) [][][]float64 {
	out := make([][][]float64, len(strokes))
	for i, s := range strokes {
		for _, p := range s {
			out[i] = append(out[i], []float64{p.X, p.Y, p.Z})
		}
	}
	return out
}

func TestEngineGestureStartsSyllableForRejectedFinal(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	draw(t, eng, giyeok)
	pinch(eng, pinchRight)
	draw(t, eng, nieun)

	up, err := eng.Gesture(nieun)
	if err != nil {
		t.Fatalf("gesture: %v", err)
	}
	if up.Commit != "간" {
		t.Fatalf("expected commit '간', got %q", up.Commit)
	}
	if up.Preedit != "ㄴ" {
		t.Fatalf("expected preedit 'ㄴ', got %q", up.Preedit)
	}
	if up.Rejected {
		t.Fatalf("expected the consonant to be placed")
	}
	if got := buf.String(); got != "간ㄴ" {
		t.Fatalf("expected buffer to contain '간ㄴ', got %q", got)
	}
}

func TestEngineGestureReplacesLiveFinal(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	draw(t, eng, giyeok)
	pinch(eng, pinchRight)
	draw(t, eng, giyeok)

	// The same gesture first reads as ㄱ, stacking to ㄲ, then as ㄴ.
	if _, err := eng.Gesture(giyeok); err != nil {
		t.Fatalf("gesture: %v", err)
	}
	if got := eng.Preedit(); got != "갂" {
		t.Fatalf("expected preedit '갂', got %q", got)
	}
	up, err := eng.Gesture(nieun)
	if err != nil {
		t.Fatalf("gesture: %v", err)
	}
	if up.Commit != "각" {
		t.Fatalf("expected commit '각', got %q", up.Commit)
	}
	if got := buf.String(); got != "각ㄴ" {
		t.Fatalf("expected buffer to contain '각ㄴ', got %q", got)
	}
}

func TestEngineTypeJamoDoubleFinalLetter(t *testing.T) {
	eng, buf := newTestEngine(t, Options{})

	typeAll(eng, "ㄱㅏㄳㅣㄴ")

	if got := buf.String(); got != "각신" {
		t.Fatalf("expected buffer to contain '각신', got %q", got)
	}
}

func TestEngineClear(t *testing.T) {
	comp := &fakeCompleter{words: []string{"한국"}}
	eng, buf := newTestEngine(t, Options{Completer: comp})

	typeAll(eng, "ㅎㅏ")
	if len(eng.Suggestions()) == 0 {
		t.Fatalf("expected suggestions before clear")
	}

	if got := eng.Clear(); got != "하" {
		t.Fatalf("expected cleared text '하', got %q", got)
	}
	if buf.Len() != 0 || eng.Preedit() != "" {
		t.Fatalf("expected empty buffer and preedit, got %q / %q", buf.String(), eng.Preedit())
	}
	if eng.Suggestions() != nil {
		t.Fatalf("expected no suggestions after clear, got %v", eng.Suggestions())
	}

	eng.TypeJamo('ㄴ')
	if got := buf.String(); got != "ㄴ" {
		t.Fatalf("expected buffer to contain 'ㄴ', got %q", got)
	}
}
