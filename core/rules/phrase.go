package rules

import (
	"strings"

	"github.com/FocuswithJustin/Silversmith/core/ir"
)

// PhraseMatch is an accepted multi-token phrase: the covered token
// index range (inclusive) and the category label. Phrase labels always
// override single-token label decisions for their covered tokens.
type PhraseMatch struct {
	First int
	Last  int
	Label string
}

// MatchPhrases scans the token sequence for phrase gazetteer matches.
// Resolution order: earliest starting position first; at each start,
// the longest window first; among phrase sets matching the same
// window, the priority-ranked first wins. An accepted phrase consumes
// its tokens, so later windows never overlap earlier matches.
func (r *Resolver) MatchPhrases(tokens []*ir.Token) []PhraseMatch {
	if r.maxPhraseLen < 2 || len(tokens) < 2 {
		return nil
	}

	var out []PhraseMatch
	i := 0
	for i < len(tokens) {
		match, n := r.phraseAt(tokens, i)
		if n == 0 {
			i++
			continue
		}
		out = append(out, PhraseMatch{First: i, Last: i + n - 1, Label: match})
		i += n
	}
	return out
}

// phraseAt attempts the longest possible phrase match starting at
// token index start. Returns the label and window length in tokens, or
// ("", 0) if nothing matches.
func (r *Resolver) phraseAt(tokens []*ir.Token, start int) (string, int) {
	maxLen := r.maxPhraseLen
	if rest := len(tokens) - start; rest < maxLen {
		maxLen = rest
	}

	for n := maxLen; n >= 2; n-- {
		for _, pc := range r.phrases {
			if pc.set.MaxTokens() < n {
				continue
			}
			joined := joinNormalized(pc.set, tokens[start:start+n])
			if joined == "" {
				continue
			}
			if pc.set.contains(joined) {
				return pc.name, n
			}
		}
	}
	return "", 0
}

// joinNormalized builds the candidate key for a token window under the
// phrase set's normalization. A window containing a token that
// normalizes to nothing cannot match a phrase entry.
func joinNormalized(set *PhraseSet, tokens []*ir.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		nt := set.normalizeToken(tok.Text)
		if nt == "" {
			return ""
		}
		parts = append(parts, nt)
	}
	return strings.Join(parts, " ")
}
