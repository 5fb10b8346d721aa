package align

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// runeCanon canonicalizes typographic variants before matching.
// Tokenized streams routinely carry straight quotes and hyphens where
// the raw verse text uses curly quotes or dashes.
var runeCanon = map[rune]rune{
	'‘': '\'', // left single quote
	'’': '\'', // right single quote
	'“': '"',  // left double quote
	'”': '"',  // right double quote
	'–': '-',  // en dash
	'—': '-',  // em dash
	'−': '-',  // minus sign
}

// stripRunes is the fixed punctuation set dropped during
// normalization. Hyphens are kept: hyphenated proper names
// ("Baal-zephon") must match as written.
var stripRunes = map[rune]bool{
	'.':      true,
	',':      true,
	';':      true,
	':':      true,
	'!':      true,
	'?':      true,
	'\'':     true,
	'"':      true,
	'(':      true,
	')':      true,
	'[':      true,
	']':      true,
	'¶': true, // pilcrow, present in some printed-text transcriptions
}

// indexedText is a normalized projection of a raw string together with
// byte maps back into it. For every byte i of norm, start[i] is the
// byte offset in the raw string of the rune that produced it and
// end[i] is the offset just past that rune. Both maps are
// non-decreasing, so a match [s, e) in norm projects to the raw range
// [start[s], end[e-1]).
type indexedText struct {
	norm  string
	start []int
	end   []int
}

// indexText builds the normalized projection of a raw verse text:
// runs of whitespace collapse to a single space, leading whitespace is
// skipped, the fixed punctuation set is dropped, typographic variants
// are canonicalized, and the remainder is Unicode case folded.
//
// Raw text is expected in NFC form; corpus readers guarantee this.
func indexText(raw string) *indexedText {
	var b strings.Builder
	b.Grow(len(raw))
	start := make([]int, 0, len(raw))
	end := make([]int, 0, len(raw))
	fold := cases.Fold()

	for i, r := range raw {
		size := utf8.RuneLen(r)
		if c, ok := runeCanon[r]; ok {
			r = c
		}
		if stripRunes[r] {
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() == 0 || b.String()[b.Len()-1] == ' ' {
				continue
			}
			b.WriteByte(' ')
			start = append(start, i)
			end = append(end, i+size)
			continue
		}
		folded := fold.String(string(r))
		for j := 0; j < len(folded); j++ {
			start = append(start, i)
			end = append(end, i+size)
		}
		b.WriteString(folded)
	}

	return &indexedText{norm: b.String(), start: start, end: end}
}

// NormalizeString applies the alignment normalization to a standalone
// string (token surface text or a gazetteer entry): NFC, whitespace
// collapse, punctuation strip, canonicalization, case fold. Leading
// and trailing whitespace is removed entirely.
func NormalizeString(s string) string {
	it := indexText(norm.NFC.String(s))
	return strings.TrimRight(it.norm, " ")
}

// NormalizeExact applies the same pipeline without case folding, for
// case-sensitive gazetteer matching.
func NormalizeExact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFC.String(s) {
		if c, ok := runeCanon[r]; ok {
			r = c
		}
		if stripRunes[r] {
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() == 0 || b.String()[b.Len()-1] == ' ' {
				continue
			}
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}
