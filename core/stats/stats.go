// Package stats aggregates alignment and labeling quality counters
// per verse and across a batch. It is purely observational: nothing
// here affects labeling or alignment outcomes. Dataset-quality
// auditing depends on these counts, so recoverable conditions are
// always recorded, never silently dropped.
package stats

import (
	"sync"

	"github.com/FocuswithJustin/Silversmith/internal/logging"
)

// DefaultFlagThreshold is the default alignment failure rate above
// which a verse is flagged for manual review.
const DefaultFlagThreshold = 0.2

// VerseStats are the counters for a single processed verse.
type VerseStats struct {
	// VerseID identifies the verse.
	VerseID string `json:"verse_id"`

	// TokensTotal is the number of tokens attempted.
	TokensTotal int `json:"tokens_total"`

	// TokensAligned is the number of tokens successfully aligned.
	TokensAligned int `json:"tokens_aligned"`

	// TokensLabeled is the number of tokens that received a label.
	TokensLabeled int `json:"tokens_labeled"`

	// Spans is the number of spans emitted for the verse.
	Spans int `json:"spans"`

	// SpanLengths holds the byte length of each emitted span.
	SpanLengths []int `json:"span_lengths,omitempty"`
}

// Unaligned returns the number of tokens that failed alignment.
func (vs VerseStats) Unaligned() int {
	return vs.TokensTotal - vs.TokensAligned
}

// FailureRate returns the alignment failure rate, or 0 for an empty verse.
func (vs VerseStats) FailureRate() float64 {
	if vs.TokensTotal == 0 {
		return 0
	}
	return float64(vs.Unaligned()) / float64(vs.TokensTotal)
}

// Summary is the batch-level aggregation.
type Summary struct {
	Verses        int `json:"verses"`
	TokensTotal   int `json:"tokens_total"`
	TokensAligned int `json:"tokens_aligned"`
	TokensLabeled int `json:"tokens_labeled"`
	Spans         int `json:"spans"`

	// SpanLengthHist buckets emitted span byte lengths.
	SpanLengthHist map[string]int `json:"span_length_hist,omitempty"`

	// FlaggedVerses lists verses whose alignment failure rate exceeded
	// the collector's threshold; they warrant manual review.
	FlaggedVerses []string `json:"flagged_verses,omitempty"`
}

// AlignmentRate returns the batch alignment success rate.
func (s Summary) AlignmentRate() float64 {
	if s.TokensTotal == 0 {
		return 0
	}
	return float64(s.TokensAligned) / float64(s.TokensTotal)
}

// LabelRate returns the fraction of tokens that received a label.
func (s Summary) LabelRate() float64 {
	if s.TokensTotal == 0 {
		return 0
	}
	return float64(s.TokensLabeled) / float64(s.TokensTotal)
}

// lengthBucket maps a span byte length to its histogram bucket.
func lengthBucket(n int) string {
	switch {
	case n < 5:
		return "1-4"
	case n < 10:
		return "5-9"
	case n < 20:
		return "10-19"
	default:
		return "20+"
	}
}

// Collector aggregates VerseStats across a batch. Safe for concurrent
// use: worker goroutines record verses in any order.
type Collector struct {
	// FlagThreshold is the alignment failure rate above which a verse
	// is flagged for review.
	FlagThreshold float64

	mu      sync.Mutex
	summary Summary
}

// NewCollector returns a Collector with the given flag threshold.
// A negative threshold selects DefaultFlagThreshold.
func NewCollector(threshold float64) *Collector {
	if threshold < 0 {
		threshold = DefaultFlagThreshold
	}
	return &Collector{
		FlagThreshold: threshold,
		summary:       Summary{SpanLengthHist: make(map[string]int)},
	}
}

// Record folds one verse's counters into the batch summary.
func (c *Collector) Record(vs VerseStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary.Verses++
	c.summary.TokensTotal += vs.TokensTotal
	c.summary.TokensAligned += vs.TokensAligned
	c.summary.TokensLabeled += vs.TokensLabeled
	c.summary.Spans += vs.Spans
	for _, n := range vs.SpanLengths {
		c.summary.SpanLengthHist[lengthBucket(n)]++
	}

	if vs.TokensTotal > 0 && vs.FailureRate() > c.FlagThreshold {
		c.summary.FlaggedVerses = append(c.summary.FlaggedVerses, vs.VerseID)
		logging.VerseFlagged(vs.VerseID, vs.Unaligned(), vs.TokensTotal)
	}
}

// Summary returns a snapshot of the batch aggregation.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.summary
	out.SpanLengthHist = make(map[string]int, len(c.summary.SpanLengthHist))
	for k, v := range c.summary.SpanLengthHist {
		out.SpanLengthHist[k] = v
	}
	out.FlaggedVerses = append([]string(nil), c.summary.FlaggedVerses...)
	return out
}
