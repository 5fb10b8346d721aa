// Package align maps annotated token streams onto the literal byte
// offsets of raw verse text using a greedy forward search.
//
// Token streams and raw text disagree on whitespace and punctuation
// (different quotation marks, dropped trailing punctuation, irregular
// spacing). Both sides are therefore normalized before matching, and
// matches are projected back to unnormalized offsets, so that reported
// spans always index the raw text exactly.
package align

import (
	"strings"

	"github.com/FocuswithJustin/Silversmith/core/ir"
	"github.com/FocuswithJustin/Silversmith/internal/logging"
)

// DefaultWindow is the default fallback window: the maximum number of
// normalized bytes scanned ahead of the cursor for one token. Tokens
// not found within the window are treated as unalignable rather than
// searching the rest of the verse. Tunable via Aligner.Window; there
// is no evidence the value should scale with verse length.
const DefaultWindow = 120

// TokenSpan is the aligner's verdict for one token: the unnormalized
// byte range in the raw text, or Aligned=false if the token could not
// be located within the fallback window.
type TokenSpan struct {
	Start   int
	End     int
	Aligned bool
}

// Aligner maps tokens to raw-text offsets. The zero value uses
// DefaultWindow. Aligners are stateless across calls and safe for
// concurrent use.
type Aligner struct {
	// Window bounds the forward search per token, in normalized bytes.
	Window int
}

// New returns an Aligner with the default fallback window.
func New() *Aligner {
	return &Aligner{Window: DefaultWindow}
}

// Align computes a TokenSpan for every token of the verse, in token
// order. Guarantees:
//
//   - aligned spans are strictly increasing and non-overlapping
//   - an unaligned token does not advance the search cursor, so a
//     single missing token cannot derail the rest of the verse
//
// Matching is case-insensitive and tolerant of whitespace and
// punctuation drift between the token stream and the raw text.
func (a *Aligner) Align(v *ir.Verse) []TokenSpan {
	window := a.Window
	if window <= 0 {
		window = DefaultWindow
	}

	it := indexText(v.Text)
	out := make([]TokenSpan, len(v.Tokens))
	cursor := 0

	for i, tok := range v.Tokens {
		q := NormalizeString(tok.Text)
		if q == "" {
			// Pure-punctuation token, nothing to anchor on.
			logging.AlignmentMiss(v.ID, i, tok.Text)
			continue
		}

		limit := cursor + window + len(q)
		if limit > len(it.norm) {
			limit = len(it.norm)
		}
		if cursor >= limit {
			logging.AlignmentMiss(v.ID, i, tok.Text)
			continue
		}

		idx := strings.Index(it.norm[cursor:limit], q)
		if idx < 0 {
			logging.AlignmentMiss(v.ID, i, tok.Text)
			continue
		}

		s := cursor + idx
		e := s + len(q)
		out[i] = TokenSpan{Start: it.start[s], End: it.end[e-1], Aligned: true}
		cursor = e
	}

	return out
}
