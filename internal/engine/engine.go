// Package engine connects the recognizers, the composer and the text
// buffer. It is driven synchronously by one caller.
package engine

import (
	"log/slog"

	"sonjit/internal/chosung"
	"sonjit/internal/complete"
	"sonjit/internal/geom"
	"sonjit/internal/hangul"
	"sonjit/internal/jungsung"
	"sonjit/internal/logging"
	"sonjit/internal/pdollar"
	"sonjit/internal/stroke"
)

// Text is the field composed text is written into. *textbuf.Buffer
// satisfies it.
type Text interface {
	Preview(r rune)
	Commit(r rune)
	AddString(s string)
	DeleteBack() bool
	Word() string
	ReplaceWord(w string)
	String() string
	Clear() string
}

type Options struct {
	Completer     complete.Completer
	CompleteLimit int
	// Hooks observe the composer directly, for slot displays and the like.
	Hooks  hangul.Hooks
	Logger *slog.Logger
}

// Update describes the state after one call.
type Update struct {
	Commit      string
	Preedit     string
	Candidates  []chosung.Candidate
	Suggestions []string
	Rejected    bool
}

type Engine struct {
	chosung   *chosung.Recognizer
	jungsung  *jungsung.Recognizer
	composer  *hangul.Composer
	text      Text
	completer complete.Completer
	limit     int
	log       *slog.Logger

	candidates  []chosung.Candidate
	suggestions []string
}

// New builds an engine. cho may be nil for keyboard-only use; jung defaults
// to the standard grid.
func New(cho *chosung.Recognizer, jung *jungsung.Recognizer, text Text, opts Options) *Engine {
	if jung == nil {
		jung = jungsung.NewRecognizer(jungsung.DefaultOptions())
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.CompleteLimit <= 0 {
		opts.CompleteLimit = 5
	}
	return &Engine{
		chosung:   cho,
		jungsung:  jung,
		composer:  hangul.NewComposer(opts.Hooks),
		text:      text,
		completer: opts.Completer,
		limit:     opts.CompleteLimit,
		log:       opts.Logger,
	}
}

// Gesture recognises the consonant drawn so far and shows it live. A
// consonant that cannot extend the syllable starts a new one, as it does
// for TypeJamo; a final still being drawn is replaced instead of kept.
func (e *Engine) Gesture(strokes []geom.Stroke) (Update, error) {
	if e.chosung == nil {
		return Update{}, pdollar.ErrNoTemplates
	}
	rec, err := e.chosung.Recognize(strokes)
	if err != nil {
		return Update{}, err
	}
	if rec.Ignored {
		return e.current(), nil
	}

	e.candidates = rec.Candidates
	e.log.Debug("chosung recognized",
		"letter", string(rec.Candidates[0].Letter),
		"score", rec.Candidates[0].Score,
		"accepted", rec.Letter != 0)
	if rec.Letter == 0 {
		return e.current(), nil
	}
	return e.apply(e.feedConsonant(rec.Letter)), nil
}

// GestureEnd settles the consonant and hides the candidates.
func (e *Engine) GestureEnd() Update {
	e.FinishUpdate()
	return e.apply(e.composer.FinishConsonant())
}

// Pinch reads the vowel from the drag so far.
func (e *Engine) Pinch(points []geom.Point3) Update {
	v := e.jungsung.Recognize(points)
	if v == 0 {
		return e.current()
	}
	e.log.Debug("jungsung recognized", "letter", string(v), "points", len(points))
	return e.apply(e.composer.FeedVowel(v))
}

func (e *Engine) PinchEnd() Update {
	return e.apply(e.composer.FinishVowel())
}

// Backspace deletes one letter of the syllable in progress, or one
// character of committed text once the syllable is empty.
func (e *Engine) Backspace() Update {
	res := e.composer.DeleteOne()
	if res.DeleteBack {
		e.text.DeleteBack()
	}
	return e.apply(res)
}

func (e *Engine) Commit() Update {
	return e.apply(e.composer.Emit())
}

func (e *Engine) Space() Update {
	up := e.apply(e.composer.Emit())
	e.text.AddString(" ")
	e.refreshSuggestions()
	up.Suggestions = e.suggestions
	return up
}

// AddString commits the syllable in progress and inserts s.
func (e *Engine) AddString(s string) Update {
	up := e.apply(e.composer.Emit())
	e.text.AddString(s)
	e.refreshSuggestions()
	up.Suggestions = e.suggestions
	return up
}

// Pick replaces the word at the caret with suggestion i. It reports false
// when there is no such suggestion.
func (e *Engine) Pick(i int) (Update, bool) {
	if i < 0 || i >= len(e.suggestions) {
		return e.current(), false
	}
	word := e.suggestions[i]
	e.apply(e.composer.DropLetter())
	e.text.ReplaceWord(word)
	e.log.Debug("suggestion picked", "word", word)
	e.refreshSuggestions()
	return e.current(), true
}

// TypeJamo feeds one finished letter, as a key press does. A consonant
// that cannot extend the syllable starts a new one.
func (e *Engine) TypeJamo(r rune) Update {
	if hangul.IsVowel(r) {
		first := e.composer.FeedVowel(r)
		return e.merge(first, e.composer.FinishVowel())
	}
	if !hangul.IsConsonant(r) {
		return e.AddString(string(r))
	}

	return e.merge(e.feedConsonant(r), e.composer.FinishConsonant())
}

// feedConsonant places r. When r is rejected an unfinished final is taken
// back first; if r still does not fit, the syllable is committed and r
// starts the next one.
func (e *Engine) feedConsonant(r rune) hangul.Result {
	res := e.composer.FeedConsonant(r)
	if !res.Rejected {
		return res
	}

	b := e.composer.Buffer()
	liveFinal := (b.Jongsung2 != 0 && !b.JongsungDone2) ||
		(b.Jongsung2 == 0 && b.Jongsung1 != 0 && !b.JongsungDone1)
	if liveFinal {
		e.composer.DeleteOne()
		if res = e.composer.FeedConsonant(r); !res.Rejected {
			return res
		}
	}

	emitted := e.composer.Emit()
	again := e.composer.FeedConsonant(r)
	again.Commit = emitted.Commit + again.Commit
	return again
}

// Handle dispatches a capture event.
func (e *Engine) Handle(ev stroke.Event) (Update, error) {
	switch ev.Type {
	case stroke.EventGesture:
		return e.Gesture(ev.Strokes)
	case stroke.EventGestureEnd:
		return e.GestureEnd(), nil
	case stroke.EventPinch:
		return e.Pinch(ev.Points), nil
	case stroke.EventPinchEnd:
		return e.PinchEnd(), nil
	default:
		return e.current(), nil
	}
}

// Clear drops the syllable in progress, empties the text and forgets the
// candidates and suggestions. It returns the text that was cleared.
func (e *Engine) Clear() string {
	e.composer.DropLetter()
	e.candidates = nil
	e.suggestions = nil
	return e.text.Clear()
}

func (e *Engine) Text() string { return e.text.String() }

func (e *Engine) Preedit() string {
	if r := e.composer.Letter(); r != 0 {
		return string(r)
	}
	return ""
}

func (e *Engine) Buffer() hangul.SyllableBuffer { return e.composer.Buffer() }

func (e *Engine) Candidates() []chosung.Candidate { return e.candidates }

// FinishUpdate hides the candidate list until the next recognition.
func (e *Engine) FinishUpdate() { e.candidates = nil }

func (e *Engine) Suggestions() []string { return e.suggestions }

func (e *Engine) merge(first, second hangul.Result) Update {
	first.Commit += second.Commit
	first.Preedit = second.Preedit
	first.Rejected = first.Rejected || second.Rejected
	return e.apply(first)
}

func (e *Engine) apply(res hangul.Result) Update {
	for _, r := range res.Commit {
		e.text.Commit(r)
	}
	if res.Commit != "" {
		e.log.Debug("commit", "text", res.Commit)
	}
	e.text.Preview(e.composer.Letter())
	e.refreshSuggestions()

	up := e.current()
	up.Commit = res.Commit
	up.Rejected = res.Rejected
	return up
}

func (e *Engine) current() Update {
	return Update{
		Preedit:     e.Preedit(),
		Candidates:  e.candidates,
		Suggestions: e.suggestions,
	}
}

func (e *Engine) refreshSuggestions() {
	e.suggestions = nil
	if e.completer == nil {
		return
	}
	if word := e.text.Word(); word != "" {
		e.suggestions = e.completer.Complete(word, e.limit)
	}
}
