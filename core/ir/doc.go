// Package ir provides the data model for silver-standard NER dataset
// construction from annotated scripture corpora.
//
// # Core Types
//
// The model is organized around the verse as the unit of work:
//
//   - Verse: raw text plus its ordered, linguistically annotated tokens
//   - Token: surface form with optional lemma, Strong's number, morphology
//   - Span: labeled half-open byte range into a verse's raw text
//   - NERExample: verse text, final span set, and metadata
//   - SchemaInfo: label vocabulary and schema version
//
// # Offsets
//
// All offsets are UTF-8 byte offsets into Verse.Text, which is the
// authoritative string. Tokens carry no offsets at construction; the
// aligner computes them against the raw text. Span ranges are half-open
// [Start, End) and satisfy Text[Start:End] == the covered surface text.
//
// # Immutability
//
// Verse and Token are constructed once by a corpus reader and are
// read-only afterwards. Every transformation produces new values; the
// final span set of a verse lives only in its NERExample.
//
// # References
//
// Verse IDs are OSIS-style references ("Gen.1.1") parsed by ParseRef.
// They are opaque to the labeling engine and used only for ordering and
// metadata.
package ir
