package rules

import (
	"bufio"
	"os"
	"strings"

	"github.com/FocuswithJustin/Silversmith/core/align"
	"github.com/FocuswithJustin/Silversmith/core/errors"
)

// Gazetteer is an in-memory set of entity surface forms, normalized
// according to its case rule at load time. Gazetteers are read-only
// after loading and safe for concurrent use.
type Gazetteer struct {
	entries       map[string]bool
	caseSensitive bool
}

// normalizeEntry applies the gazetteer's normalization to a candidate.
func (g *Gazetteer) normalizeEntry(s string) string {
	if g.caseSensitive {
		return align.NormalizeExact(s)
	}
	return align.NormalizeString(s)
}

// Contains reports whether the candidate is in the gazetteer, after
// normalization under the gazetteer's case rule.
func (g *Gazetteer) Contains(s string) bool {
	if g == nil || len(g.entries) == 0 {
		return false
	}
	return g.entries[g.normalizeEntry(s)]
}

// Len returns the number of loaded entries.
func (g *Gazetteer) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// LoadGazetteer loads a line-oriented gazetteer file: one entry per
// line, blank lines and '#' comments skipped. Lines that normalize to
// nothing are skipped. The returned error wraps the category context
// so callers can degrade gracefully.
func LoadGazetteer(path string, caseSensitive bool) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	g := &Gazetteer{
		entries:       make(map[string]bool),
		caseSensitive: caseSensitive,
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry := g.normalizeEntry(line)
		if entry == "" {
			continue
		}
		g.entries[entry] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	return g, nil
}

// PhraseSet is a gazetteer of multi-token phrases. Entries are stored
// as normalized, single-space-joined strings; MaxTokens is the length
// in tokens of the longest phrase, which bounds the matcher's windows.
type PhraseSet struct {
	gaz       *Gazetteer
	maxTokens int
}

// MaxTokens returns the token length of the longest phrase.
func (p *PhraseSet) MaxTokens() int {
	if p == nil {
		return 0
	}
	return p.maxTokens
}

// Len returns the number of loaded phrases.
func (p *PhraseSet) Len() int {
	if p == nil {
		return 0
	}
	return p.gaz.Len()
}

// contains reports whether the already-normalized joined candidate is
// in the set.
func (p *PhraseSet) contains(joined string) bool {
	return p.gaz.entries[joined]
}

// normalizeToken applies the set's normalization to one token.
func (p *PhraseSet) normalizeToken(s string) string {
	return p.gaz.normalizeEntry(s)
}

// LoadPhraseSet loads a phrase gazetteer. Entries with fewer than two
// tokens are skipped: single-token entries belong in a surface
// gazetteer, not a phrase one.
func LoadPhraseSet(path string, caseSensitive bool) (*PhraseSet, error) {
	raw, err := LoadGazetteer(path, caseSensitive)
	if err != nil {
		return nil, err
	}

	p := &PhraseSet{
		gaz: &Gazetteer{
			entries:       make(map[string]bool, len(raw.entries)),
			caseSensitive: caseSensitive,
		},
	}
	for entry := range raw.entries {
		n := len(strings.Fields(entry))
		if n < 2 {
			continue
		}
		p.gaz.entries[entry] = true
		if n > p.maxTokens {
			p.maxTokens = n
		}
	}

	return p, nil
}
