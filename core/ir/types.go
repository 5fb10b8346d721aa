package ir

import (
	"fmt"
	"sort"
)

// SchemaVersion is the current NER example schema version.
const SchemaVersion = "1.0.0"

// Token is one annotated token of a verse. Tokens are immutable once
// constructed; the aligner reports offsets separately rather than
// writing them back.
type Token struct {
	// Index is the ordinal position within the verse (0-indexed).
	Index int `json:"index"`

	// Text is the surface form as tokenized.
	Text string `json:"text"`

	// Lemma is the dictionary form (optional).
	Lemma string `json:"lemma,omitempty"`

	// Strongs is the Strong's lexicon number (e.g., "H430", optional).
	Strongs string `json:"strongs,omitempty"`

	// Morphology is the morphological code (optional).
	Morphology string `json:"morphology,omitempty"`
}

// Length returns the length of the surface form in bytes.
func (t *Token) Length() int {
	return len(t.Text)
}

// Verse is a single raw text with its ordered token sequence.
// Token order reflects first-to-last occurrence in the text.
type Verse struct {
	// ID is the opaque verse identifier (OSIS-style, e.g. "Gen.1.1").
	ID string `json:"id"`

	// Text is the authoritative raw string; all span offsets index it.
	Text string `json:"text"`

	// Tokens is the ordered annotated token sequence.
	Tokens []*Token `json:"tokens,omitempty"`
}

// RuleKind identifies which resolution rule produced a span.
type RuleKind string

// Rule kind constants.
const (
	RuleToken  RuleKind = "token"
	RulePhrase RuleKind = "phrase"
)

// validRuleKinds is the set of valid rule kinds.
var validRuleKinds = map[RuleKind]bool{
	RuleToken:  true,
	RulePhrase: true,
}

// IsValid returns true if the rule kind is valid.
func (k RuleKind) IsValid() bool {
	return validRuleKinds[k]
}

// Provenance records which tokens and which rule produced a span.
type Provenance struct {
	// Rule is the resolution rule kind (token or phrase).
	Rule RuleKind `json:"rule"`

	// FirstToken is the index of the first covered token.
	FirstToken int `json:"first_token"`

	// LastToken is the index of the last covered token (inclusive).
	LastToken int `json:"last_token"`
}

// Span is a labeled half-open byte range [Start, End) into a verse's
// raw text. Within one verse's final span set, spans are sorted by
// Start and pairwise non-overlapping.
type Span struct {
	// Start is the UTF-8 byte offset where the span starts.
	Start int `json:"start"`

	// End is the UTF-8 byte offset just past the span's last byte.
	End int `json:"end"`

	// Label is the entity category (e.g., "DEITY", "LOCATION").
	Label string `json:"label"`

	// Provenance records the producing rule and token range.
	Provenance *Provenance `json:"provenance,omitempty"`
}

// Len returns the span length in bytes.
func (s *Span) Len() int {
	return s.End - s.Start
}

// Surface returns the covered substring of the given raw text.
func (s *Span) Surface(text string) string {
	if s.Start < 0 || s.End > len(text) || s.Start > s.End {
		return ""
	}
	return text[s.Start:s.End]
}

// String returns a debug representation, e.g. DEITY[20:23].
func (s *Span) String() string {
	return fmt.Sprintf("%s[%d:%d]", s.Label, s.Start, s.End)
}

// SortSpans sorts spans in place by start offset, then end offset.
func SortSpans(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}

// NERExample is the training-ready unit handed to downstream
// consumers: a verse's raw text verbatim, its final span set, and
// free-form metadata.
type NERExample struct {
	// Text is the verse raw text, unmodified.
	Text string `json:"text"`

	// Spans is the final span set, sorted and non-overlapping.
	Spans []Span `json:"spans"`

	// Meta carries the verse identifier, schema version, and any
	// additional serializer metadata.
	Meta map[string]string `json:"meta,omitempty"`
}

// VerseID returns the verse identifier from the example metadata.
func (e *NERExample) VerseID() string {
	return e.Meta["verse_id"]
}

// SchemaInfo declares the label vocabulary and schema version emitted
// with a dataset so downstream consumers can validate compatibility.
type SchemaInfo struct {
	// Version is the schema version tag.
	Version string `json:"version"`

	// Labels is the label vocabulary, sorted.
	Labels []string `json:"labels"`
}

// NewSchemaInfo builds a SchemaInfo for the given labels at the
// current schema version. The label list is copied and sorted.
func NewSchemaInfo(labels []string) SchemaInfo {
	out := make([]string, len(labels))
	copy(out, labels)
	sort.Strings(out)
	return SchemaInfo{Version: SchemaVersion, Labels: out}
}

// HasLabel returns true if the label is part of the vocabulary.
func (si SchemaInfo) HasLabel(label string) bool {
	for _, l := range si.Labels {
		if l == label {
			return true
		}
	}
	return false
}
