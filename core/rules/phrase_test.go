package rules

import (
	"testing"

	"github.com/FocuswithJustin/Silversmith/core/ir"
)

func phraseTokens(words ...string) []*ir.Token {
	out := make([]*ir.Token, len(words))
	for i, w := range words {
		out[i] = &ir.Token{Index: i, Text: w}
	}
	return out
}

func phraseResolver(t *testing.T, entries string) *Resolver {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "places.txt", entries)

	cfg := &Config{
		Priority: []string{"LOCATION"},
		Phrases: map[string]PhraseConfig{
			"LOCATION": {Gazetteer: "places.txt"},
		},
		baseDir: dir,
	}
	r, warnings := buildResolver(t, cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return r
}

func TestMatchPhrasesBasic(t *testing.T) {
	r := phraseResolver(t, "Mount Sinai\n")

	toks := phraseTokens("Moses", "went", "up", "to", "Mount", "Sinai")
	matches := r.MatchPhrases(toks)

	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	m := matches[0]
	if m.First != 4 || m.Last != 5 || m.Label != "LOCATION" {
		t.Errorf("match = %+v, want First=4 Last=5 LOCATION", m)
	}
}

func TestMatchPhrasesLongestWins(t *testing.T) {
	// A longer entity must not be pre-empted by a shorter prefix match.
	r := phraseResolver(t, "Red Sea\nRed Sea Crossing\n")

	toks := phraseTokens("the", "Red", "Sea", "Crossing", "site")
	matches := r.MatchPhrases(toks)

	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].First != 1 || matches[0].Last != 3 {
		t.Errorf("match = %+v, want the three-token phrase", matches[0])
	}
}

func TestMatchPhrasesEarliestStartWins(t *testing.T) {
	// Overlapping candidates at different offsets: earliest start is
	// accepted and its tokens are consumed.
	r := phraseResolver(t, "Mount Sinai\nSinai Desert\n")

	toks := phraseTokens("Mount", "Sinai", "Desert")
	matches := r.MatchPhrases(toks)

	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].First != 0 || matches[0].Last != 1 {
		t.Errorf("match = %+v, want Mount Sinai at [0,1]", matches[0])
	}
}

func TestMatchPhrasesMultiple(t *testing.T) {
	r := phraseResolver(t, "Mount Sinai\nRed Sea\n")

	toks := phraseTokens("from", "the", "Red", "Sea", "to", "Mount", "Sinai")
	matches := r.MatchPhrases(toks)

	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].First != 2 || matches[0].Last != 3 {
		t.Errorf("first match = %+v", matches[0])
	}
	if matches[1].First != 5 || matches[1].Last != 6 {
		t.Errorf("second match = %+v", matches[1])
	}
}

func TestMatchPhrasesCaseInsensitive(t *testing.T) {
	r := phraseResolver(t, "Mount Sinai\n")

	toks := phraseTokens("MOUNT", "sinai")
	matches := r.MatchPhrases(toks)

	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
}

func TestMatchPhrasesNoPhrases(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deity.txt", "God\n")
	cfg := &Config{
		Priority: []string{"DEITY"},
		Categories: map[string]CategoryConfig{
			"DEITY": {Strategies: []StrategyConfig{{Kind: KindSurface, Gazetteer: "deity.txt"}}},
		},
		baseDir: dir,
	}
	r, _ := buildResolver(t, cfg)

	if matches := r.MatchPhrases(phraseTokens("Mount", "Sinai")); matches != nil {
		t.Errorf("matches = %v, want nil without phrase config", matches)
	}
}

func TestMatchPhrasesShortInput(t *testing.T) {
	r := phraseResolver(t, "Mount Sinai\n")

	if matches := r.MatchPhrases(phraseTokens("Sinai")); matches != nil {
		t.Errorf("matches = %v, want nil for single token", matches)
	}
	if matches := r.MatchPhrases(nil); matches != nil {
		t.Errorf("matches = %v, want nil for empty input", matches)
	}
}

func TestMatchPhrasesPriorityBetweenSets(t *testing.T) {
	// Two phrase categories matching the same window resolve by
	// priority rank.
	dir := t.TempDir()
	writeFile(t, dir, "places.txt", "Mount Sinai\n")
	writeFile(t, dir, "shrines.txt", "Mount Sinai\n")

	cfg := &Config{
		Priority: []string{"SHRINE", "LOCATION"},
		Phrases: map[string]PhraseConfig{
			"LOCATION": {Gazetteer: "places.txt"},
			"SHRINE":   {Gazetteer: "shrines.txt"},
		},
		baseDir: dir,
	}
	r, _ := buildResolver(t, cfg)

	matches := r.MatchPhrases(phraseTokens("Mount", "Sinai"))
	if len(matches) != 1 || matches[0].Label != "SHRINE" {
		t.Errorf("matches = %v, want single SHRINE match", matches)
	}
}
