// Package spans combines phrase matches and token-level label
// decisions into a verse's final span set.
//
// Phrase spans are emitted first and consume their tokens; the
// remaining tokens are merged into maximal runs of adjacent, aligned,
// identically labeled tokens. The result is sorted by start offset and
// non-overlapping by construction.
package spans

import (
	"github.com/FocuswithJustin/Silversmith/core/align"
	"github.com/FocuswithJustin/Silversmith/core/ir"
	"github.com/FocuswithJustin/Silversmith/core/rules"
)

// Build produces the final span set for a verse. offsets and labels
// are parallel to v.Tokens: offsets holds the aligner's verdicts and
// labels the per-token resolution results ("" for unlabeled).
//
// A phrase is only emitted if every member token aligned; otherwise it
// is dropped and its aligned members fall back to token-level
// resolution. Unaligned and unlabeled tokens produce no spans and
// break merge runs.
func Build(v *ir.Verse, offsets []align.TokenSpan, labels []string, phrases []rules.PhraseMatch) []ir.Span {
	var out []ir.Span
	covered := make([]bool, len(v.Tokens))

	for _, m := range phrases {
		if !allAligned(offsets, m.First, m.Last) {
			continue
		}
		out = append(out, ir.Span{
			Start: offsets[m.First].Start,
			End:   offsets[m.Last].End,
			Label: m.Label,
			Provenance: &ir.Provenance{
				Rule:       ir.RulePhrase,
				FirstToken: m.First,
				LastToken:  m.Last,
			},
		})
		for i := m.First; i <= m.Last; i++ {
			covered[i] = true
		}
	}

	for i := 0; i < len(v.Tokens); {
		if covered[i] || !offsets[i].Aligned || labels[i] == "" {
			i++
			continue
		}

		// Extend the run over adjacent tokens with the same label.
		label := labels[i]
		j := i
		for j+1 < len(v.Tokens) &&
			!covered[j+1] &&
			offsets[j+1].Aligned &&
			labels[j+1] == label {
			j++
		}

		out = append(out, ir.Span{
			Start: offsets[i].Start,
			End:   offsets[j].End,
			Label: label,
			Provenance: &ir.Provenance{
				Rule:       ir.RuleToken,
				FirstToken: i,
				LastToken:  j,
			},
		})
		i = j + 1
	}

	ir.SortSpans(out)
	return out
}

// allAligned reports whether every token in the inclusive index range
// has an alignment.
func allAligned(offsets []align.TokenSpan, first, last int) bool {
	for i := first; i <= last; i++ {
		if !offsets[i].Aligned {
			return false
		}
	}
	return true
}
