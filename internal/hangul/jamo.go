package hangul

const (
	syllableBase = 0xAC00
	numJungsung  = 21
	numJongsung  = 27

	letterVowelFirst = 'ㅏ'
	letterVowelLast  = 'ㅣ'

	choFirst  = 0x1100
	jungFirst = 0x1161
	jongFirst = 0x11A8
)

var (
	choList  = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	jungList = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	jongList = []rune{'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
)

// jongStack lists every final consonant that can be built from two finals.
var jongStack = map[[2]rune]rune{
	{'ㄱ', 'ㄱ'}: 'ㄲ',
	{'ㄱ', 'ㅅ'}: 'ㄳ',
	{'ㄴ', 'ㅈ'}: 'ㄵ',
	{'ㄴ', 'ㅎ'}: 'ㄶ',
	{'ㄹ', 'ㄱ'}: 'ㄺ',
	{'ㄹ', 'ㅁ'}: 'ㄻ',
	{'ㄹ', 'ㅂ'}: 'ㄼ',
	{'ㄹ', 'ㅅ'}: 'ㄽ',
	{'ㄹ', 'ㅌ'}: 'ㄾ',
	{'ㄹ', 'ㅍ'}: 'ㄿ',
	{'ㄹ', 'ㅎ'}: 'ㅀ',
	{'ㅂ', 'ㅅ'}: 'ㅄ',
	{'ㅅ', 'ㅅ'}: 'ㅆ',
}

var (
	jongUnstack = invertPairs(jongStack)

	choIndex  = buildIndex(choList)
	jungIndex = buildIndex(jungList)
	jongIndex = buildIndex(jongList)
)

func invertPairs(src map[[2]rune]rune) map[rune][2]rune {
	dst := make(map[rune][2]rune, len(src))
	for pair, value := range src {
		dst[value] = pair
	}
	return dst
}

func buildIndex(list []rune) map[rune]int {
	idx := make(map[rune]int, len(list))
	for i, ch := range list {
		idx[ch] = i
	}
	return idx
}

// IsConsonant reports whether r is a consonant letter, in compatibility or
// conjoining form.
func IsConsonant(r rune) bool {
	return AsChosung(r) != 0 || AsJongsung(r) != 0
}

// IsVowel reports whether r is a vowel letter, in compatibility or
// conjoining form.
func IsVowel(r rune) bool {
	return AsJungsung(r) != 0
}

// AsChosung returns the compatibility letter for r when it can start a
// syllable, or zero. Conjoining initials (U+1100..U+1112) are accepted.
func AsChosung(r rune) rune {
	if r >= choFirst && r < choFirst+rune(len(choList)) {
		return choList[r-choFirst]
	}
	if _, ok := choIndex[r]; ok {
		return r
	}
	return 0
}

// AsJungsung returns the compatibility vowel for r, or zero. Conjoining
// medials (U+1161..U+1175) are accepted.
func AsJungsung(r rune) rune {
	if r >= jungFirst && r < jungFirst+numJungsung {
		return jungList[r-jungFirst]
	}
	if r >= letterVowelFirst && r <= letterVowelLast {
		return r
	}
	return 0
}

// AsJongsung returns the compatibility letter for r when it can close a
// syllable, or zero. ㄸ, ㅃ and ㅉ have no final form.
func AsJongsung(r rune) rune {
	if r >= jongFirst && r < jongFirst+numJongsung {
		return jongList[r-jongFirst]
	}
	if _, ok := jongIndex[r]; ok {
		return r
	}
	return 0
}

// Stack joins two finals into one. A lone first final is returned as is;
// combinations with no final form give zero.
func Stack(a, b rune) rune {
	if b == 0 {
		return a
	}
	return jongStack[[2]rune{a, b}]
}

// Unstack splits a final into its parts. Single finals give (j, 0).
func Unstack(j rune) (rune, rune) {
	if pair, ok := jongUnstack[j]; ok {
		return pair[0], pair[1]
	}
	return j, 0
}

// Compose builds the syllable for the given letters. Without an initial the
// lone vowel (or else the lone final) is returned; without a vowel the lone
// initial is returned. All three absent gives zero.
func Compose(cho, jung, jong rune) rune {
	ic, hasCho := choIndex[cho]
	ij, hasJung := jungIndex[jung]
	ik, hasJong := jongIndex[jong]

	switch {
	case !hasCho && hasJung:
		return jung
	case !hasCho && hasJong:
		return jong
	case !hasCho:
		return 0
	case !hasJung:
		return cho
	}

	tail := 0
	if hasJong {
		tail = ik + 1
	}
	return rune(syllableBase + (ic*numJungsung+ij)*(numJongsung+1) + tail)
}

// Decompose splits a precomposed syllable into compatibility letters. ok is
// false for anything outside the syllable block.
func Decompose(s rune) (cho, jung, jong rune, ok bool) {
	idx := int(s - syllableBase)
	if idx < 0 || idx >= len(choList)*numJungsung*(numJongsung+1) {
		return 0, 0, 0, false
	}
	tail := idx % (numJongsung + 1)
	idx /= numJongsung + 1
	cho = choList[idx/numJungsung]
	jung = jungList[idx%numJungsung]
	if tail > 0 {
		jong = jongList[tail-1]
	}
	return cho, jung, jong, true
}
