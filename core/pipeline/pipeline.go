// Package pipeline runs the per-verse labeling sequence and fans it
// out across a worker pool for batch processing.
//
// Within a verse the stages run strictly in order: alignment, then
// per-token resolution and phrase detection, then span construction,
// then stats recording. Across verses there is no shared mutable
// state: the resolver, aligner configuration, and schema are loaded
// once and read-only, so verses are processed concurrently without
// locking.
package pipeline

import (
	"github.com/FocuswithJustin/Silversmith/core/align"
	"github.com/FocuswithJustin/Silversmith/core/ir"
	"github.com/FocuswithJustin/Silversmith/core/rules"
	"github.com/FocuswithJustin/Silversmith/core/spans"
	"github.com/FocuswithJustin/Silversmith/core/stats"
)

// Pipeline holds the shared read-only components of a batch run.
type Pipeline struct {
	Resolver *rules.Resolver
	Aligner  *align.Aligner
	Schema   ir.SchemaInfo
	Stats    *stats.Collector
}

// New assembles a pipeline. The schema's label vocabulary is derived
// from the resolver's configuration.
func New(resolver *rules.Resolver, aligner *align.Aligner, collector *stats.Collector) *Pipeline {
	return &Pipeline{
		Resolver: resolver,
		Aligner:  aligner,
		Schema:   ir.NewSchemaInfo(resolver.Labels()),
		Stats:    collector,
	}
}

// ProcessVerse runs the full per-verse sequence and returns the
// training-ready example. Deterministic: identical verse and
// configuration always produce an identical example.
func (p *Pipeline) ProcessVerse(v *ir.Verse) *ir.NERExample {
	offsets := p.Aligner.Align(v)

	labels := make([]string, len(v.Tokens))
	labeled := 0
	for i, tok := range v.Tokens {
		if label, ok := p.Resolver.ResolveToken(tok); ok {
			labels[i] = label
			labeled++
		}
	}

	phrases := p.Resolver.MatchPhrases(v.Tokens)
	final := spans.Build(v, offsets, labels, phrases)
	if final == nil {
		final = []ir.Span{}
	}

	if p.Stats != nil {
		vs := stats.VerseStats{
			VerseID:       v.ID,
			TokensTotal:   len(v.Tokens),
			TokensLabeled: labeled,
			Spans:         len(final),
		}
		for _, ts := range offsets {
			if ts.Aligned {
				vs.TokensAligned++
			}
		}
		for _, s := range final {
			vs.SpanLengths = append(vs.SpanLengths, s.Len())
		}
		p.Stats.Record(vs)
	}

	return &ir.NERExample{
		Text:  v.Text,
		Spans: final,
		Meta: map[string]string{
			"verse_id":       v.ID,
			"schema_version": p.Schema.Version,
		},
	}
}
