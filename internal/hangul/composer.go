// Package hangul assembles recognised letters into precomposed syllables.
//
// The composer keeps one syllable under construction. Each letter slot is
// fed, possibly several times while the input is still moving, and then
// finished. Feeding a finished slot commits the syllable and starts a new
// one. A vowel that arrives after a finished final consonant takes that
// consonant (or the second half of a double final) as its initial.
package hangul

// Slot names a letter position for slot observers.
type Slot int

const (
	SlotChosung Slot = iota
	SlotJungsung
	SlotJongsung
)

func (s Slot) String() string {
	switch s {
	case SlotChosung:
		return "chosung"
	case SlotJungsung:
		return "jungsung"
	case SlotJongsung:
		return "jongsung"
	default:
		return "unknown"
	}
}

// Hooks receive composer events. Any of them may be nil.
type Hooks struct {
	// Preview receives the live syllable after every change; zero and ""
	// when the buffer is empty.
	Preview func(letter rune, s string)
	// Slot receives the letter held by one slot, "" when cleared.
	Slot func(slot Slot, s string)
	// Emit receives each committed syllable.
	Emit func(letter rune, s string)
	// DeleteBack fires when a delete reaches an empty buffer.
	DeleteBack func()
}

// Result summarises one composer call.
type Result struct {
	Commit     string
	Preedit    string
	DeleteBack bool
	// Rejected is set when the input could not be placed, for example a
	// second final with no combined form.
	Rejected bool
}

// SyllableBuffer is the syllable under construction. Letters are
// compatibility jamo; zero means empty.
type SyllableBuffer struct {
	Chosung   rune
	Jungsung  rune
	Jongsung1 rune
	Jongsung2 rune

	ChosungDone   bool
	JungsungDone  bool
	JongsungDone1 bool
	JongsungDone2 bool
}

// Jongsung returns the combined final consonant.
func (b SyllableBuffer) Jongsung() rune {
	return Stack(b.Jongsung1, b.Jongsung2)
}

// JongsungDone is true once both final slots have been finished.
func (b SyllableBuffer) JongsungDone() bool {
	return b.JongsungDone1 && b.JongsungDone2
}

func (b SyllableBuffer) Empty() bool {
	return b.Chosung == 0 && b.Jungsung == 0 && b.Jongsung1 == 0 && b.Jongsung2 == 0
}

func (b SyllableBuffer) Letter() rune {
	return Compose(b.Chosung, b.Jungsung, b.Jongsung())
}

// Composer is not safe for concurrent use.
type Composer struct {
	buf    SyllableBuffer
	letter rune
	hooks  Hooks

	commit     []rune
	deleteBack bool
	rejected   bool
}

func NewComposer(hooks Hooks) *Composer {
	return &Composer{hooks: hooks}
}

// Buffer returns a copy of the current state.
func (c *Composer) Buffer() SyllableBuffer { return c.buf }

// Letter returns the live syllable, zero when empty.
func (c *Composer) Letter() rune { return c.letter }

// FeedConsonant places c in the next open consonant slot. After a finished
// initial and vowel it fills the first, then the second final; otherwise it
// replaces the initial, committing first if the initial was finished.
func (c *Composer) FeedConsonant(r rune) Result {
	if r == 0 {
		return c.result()
	}
	if c.buf.ChosungDone && c.buf.JungsungDone && !c.buf.JongsungDone() {
		if c.buf.JongsungDone1 {
			c.setJongsung2(r)
		} else {
			c.setJongsung1(r)
		}
		return c.result()
	}

	if AsChosung(r) == 0 {
		c.rejected = true
		return c.result()
	}
	if c.buf.ChosungDone {
		c.emit()
	}
	c.setChosung(r)
	return c.result()
}

// FinishConsonant marks the slot FeedConsonant would write as done.
func (c *Composer) FinishConsonant() Result {
	if c.buf.ChosungDone && c.buf.JungsungDone && !c.buf.JongsungDone() {
		if c.buf.JongsungDone1 {
			c.FinishJongsung2()
		} else {
			c.FinishJongsung1()
		}
	} else {
		c.FinishChosung()
	}
	return c.result()
}

// FeedVowel sets the vowel. If a final consonant is already finished the
// syllable is split: its last final moves to a new syllable that takes v.
// A double final entered as one letter that cannot start a syllable (ㄳ)
// is split in two and only its second half moves.
func (c *Composer) FeedVowel(v rune) Result {
	if v == 0 {
		return c.result()
	}
	if AsJungsung(v) == 0 {
		c.rejected = true
		return c.result()
	}

	if c.buf.JongsungDone1 {
		var next rune
		if c.buf.Jongsung2 != 0 {
			next = c.buf.Jongsung2
			c.buf.Jongsung2 = 0
		} else if first, second := Unstack(c.buf.Jongsung1); second != 0 && AsChosung(c.buf.Jongsung1) == 0 {
			next = second
			c.buf.Jongsung1 = first
		} else {
			next = c.buf.Jongsung1
			c.buf.Jongsung1 = 0
		}
		c.updateLetter()
		c.emit()

		c.setChosung(next)
		c.FinishChosung()
		c.setJungsung(v)
		return c.result()
	}

	if c.buf.JungsungDone {
		c.emit()
	}
	c.setJungsung(v)
	return c.result()
}

func (c *Composer) FinishVowel() Result {
	c.FinishJungsung()
	return c.result()
}

func (c *Composer) FinishChosung() {
	c.buf.ChosungDone = c.buf.Chosung != 0
}

func (c *Composer) FinishJungsung() {
	c.buf.JungsungDone = c.buf.Jungsung != 0
}

func (c *Composer) FinishJongsung1() {
	c.buf.JongsungDone1 = c.buf.Jongsung1 != 0
}

// FinishJongsung2 closes the second final even when it is empty, which
// settles the syllable on a single final.
func (c *Composer) FinishJongsung2() {
	c.buf.JongsungDone2 = c.buf.JongsungDone1
}

// DeleteOne removes the last letter in composition order. On an empty
// buffer it reports DeleteBack instead.
func (c *Composer) DeleteOne() Result {
	b := &c.buf
	switch {
	case b.Jongsung2 != 0:
		b.Jongsung2 = 0
		b.JongsungDone2 = false
		c.notifySlot(SlotJongsung, b.Jongsung())
	case b.Jongsung1 != 0:
		b.Jongsung1 = 0
		b.JongsungDone1 = false
		b.JongsungDone2 = false
		c.notifySlot(SlotJongsung, 0)
	case b.Jungsung != 0:
		b.Jungsung = 0
		b.JungsungDone = false
		c.notifySlot(SlotJungsung, 0)
	case b.Chosung != 0:
		b.Chosung = 0
		b.ChosungDone = false
		c.notifySlot(SlotChosung, 0)
	default:
		c.deleteBack = true
		if c.hooks.DeleteBack != nil {
			c.hooks.DeleteBack()
		}
		return c.result()
	}
	c.updateLetter()
	return c.result()
}

// Emit commits the live syllable, if any, and clears the buffer.
func (c *Composer) Emit() Result {
	c.emit()
	return c.result()
}

// DropLetter clears the buffer without committing.
func (c *Composer) DropLetter() Result {
	c.drop()
	return c.result()
}

func (c *Composer) emit() {
	if c.letter != 0 {
		c.commit = append(c.commit, c.letter)
		if c.hooks.Emit != nil {
			c.hooks.Emit(c.letter, string(c.letter))
		}
	}
	c.drop()
}

func (c *Composer) drop() {
	c.buf = SyllableBuffer{}
	c.letter = 0
	c.notifyPreview()
	c.notifySlot(SlotChosung, 0)
	c.notifySlot(SlotJungsung, 0)
	c.notifySlot(SlotJongsung, 0)
}

func (c *Composer) setChosung(r rune) {
	r = AsChosung(r)
	if r == 0 {
		c.rejected = true
		return
	}
	if c.buf.ChosungDone {
		c.emit()
	}
	c.buf.Chosung = r
	c.notifySlot(SlotChosung, r)
	c.updateLetter()
}

func (c *Composer) setJungsung(r rune) {
	r = AsJungsung(r)
	if r == 0 {
		c.rejected = true
		return
	}
	if c.buf.JungsungDone {
		c.emit()
	}
	c.buf.Jungsung = r
	c.notifySlot(SlotJungsung, r)
	c.updateLetter()
}

func (c *Composer) setJongsung1(r rune) {
	r = AsJongsung(r)
	if r == 0 || (c.buf.Jongsung2 != 0 && Stack(r, c.buf.Jongsung2) == 0) {
		c.rejected = true
		return
	}
	if c.buf.JongsungDone1 {
		c.emit()
	}
	c.buf.Jongsung1 = r
	c.notifySlot(SlotJongsung, c.buf.Jongsung())
	c.updateLetter()
}

// setJongsung2 keeps the previous state when the pair has no combined form.
func (c *Composer) setJongsung2(r rune) {
	r = AsJongsung(r)
	if r == 0 || Stack(c.buf.Jongsung1, r) == 0 {
		c.rejected = true
		return
	}
	if c.buf.JongsungDone2 {
		c.emit()
	}
	c.buf.Jongsung2 = r
	c.notifySlot(SlotJongsung, c.buf.Jongsung())
	c.updateLetter()
}

func (c *Composer) updateLetter() {
	c.letter = c.buf.Letter()
	c.notifyPreview()
}

func (c *Composer) notifyPreview() {
	if c.hooks.Preview == nil {
		return
	}
	if c.letter == 0 {
		c.hooks.Preview(0, "")
		return
	}
	c.hooks.Preview(c.letter, string(c.letter))
}

func (c *Composer) notifySlot(slot Slot, r rune) {
	if c.hooks.Slot == nil {
		return
	}
	if r == 0 {
		c.hooks.Slot(slot, "")
		return
	}
	c.hooks.Slot(slot, string(r))
}

func (c *Composer) result() Result {
	res := Result{
		Commit:     string(c.commit),
		DeleteBack: c.deleteBack,
		Rejected:   c.rejected,
	}
	if c.letter != 0 {
		res.Preedit = string(c.letter)
	}
	c.commit = c.commit[:0]
	c.deleteBack = false
	c.rejected = false
	return res
}
