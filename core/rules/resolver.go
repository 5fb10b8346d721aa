package rules

import (
	"sort"

	"github.com/FocuswithJustin/Silversmith/core/ir"
	"github.com/FocuswithJustin/Silversmith/internal/logging"
)

// Warning reports a recoverable degradation during resolver
// construction, typically a gazetteer that could not be loaded.
type Warning struct {
	Category string
	Path     string
	Err      error
}

// strategy is one loaded match strategy: a closed tagged variant
// dispatched by kind.
type strategy struct {
	kind          StrategyKind
	caseSensitive bool
	gaz           *Gazetteer
}

// matches evaluates the strategy against a token.
func (s *strategy) matches(tok *ir.Token) bool {
	var value string
	switch s.kind {
	case KindSurface:
		value = tok.Text
	case KindStrongs:
		value = tok.Strongs
	case KindLemma:
		value = tok.Lemma
	default:
		return false
	}
	if value == "" {
		return false
	}
	return s.gaz.Contains(value)
}

// category is a loaded category with its priority rank. Lower rank
// wins. Categories absent from the priority list rank below every
// listed one but still beat "no label".
type category struct {
	name       string
	rank       int
	strategies []strategy
}

// phraseCategory is a loaded phrase gazetteer with its priority rank.
type phraseCategory struct {
	name string
	rank int
	set  *PhraseSet
}

// Resolver assigns labels to tokens and detects phrase matches. It is
// immutable after construction and safe for concurrent use across
// worker goroutines; gazetteers and configuration are loaded once and
// never mutated.
type Resolver struct {
	categories   []category
	phrases      []phraseCategory
	maxPhraseLen int
	labels       []string
}

// NewResolver loads all gazetteers declared by the configuration and
// builds a resolver. Individual gazetteer failures are non-fatal: the
// category contributes no matches and a Warning is returned. A missing
// priority list is a fatal configuration error.
func NewResolver(cfg *Config) (*Resolver, []Warning, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	rank := make(map[string]int, len(cfg.Priority))
	for i, name := range cfg.Priority {
		rank[name] = i
	}
	// Categories absent from the priority list rank after all listed
	// ones, ordered by name for determinism.
	rankOf := func(name string, tail int) int {
		if r, ok := rank[name]; ok {
			return r
		}
		return len(cfg.Priority) + tail
	}

	var warnings []Warning

	catNames := make([]string, 0, len(cfg.Categories))
	for name := range cfg.Categories {
		catNames = append(catNames, name)
	}
	sort.Strings(catNames)

	r := &Resolver{labels: cfg.Labels()}
	for tail, name := range catNames {
		cat := category{name: name, rank: rankOf(name, tail)}
		for _, sc := range cfg.Categories[name].Strategies {
			path := cfg.resolvePath(sc.Gazetteer)
			gaz, err := LoadGazetteer(path, sc.CaseSensitive)
			if err != nil {
				warnings = append(warnings, Warning{Category: name, Path: path, Err: err})
				logging.GazetteerWarning(name, path, err)
				continue
			}
			cat.strategies = append(cat.strategies, strategy{
				kind:          sc.Kind,
				caseSensitive: sc.CaseSensitive,
				gaz:           gaz,
			})
		}
		r.categories = append(r.categories, cat)
	}
	sort.SliceStable(r.categories, func(i, j int) bool {
		return r.categories[i].rank < r.categories[j].rank
	})

	phraseNames := make([]string, 0, len(cfg.Phrases))
	for name := range cfg.Phrases {
		phraseNames = append(phraseNames, name)
	}
	sort.Strings(phraseNames)

	for tail, name := range phraseNames {
		pc := cfg.Phrases[name]
		path := cfg.resolvePath(pc.Gazetteer)
		set, err := LoadPhraseSet(path, pc.CaseSensitive)
		if err != nil {
			warnings = append(warnings, Warning{Category: name, Path: path, Err: err})
			logging.GazetteerWarning(name, path, err)
			continue
		}
		r.phrases = append(r.phrases, phraseCategory{
			name: name,
			rank: rankOf(name, len(catNames)+tail),
			set:  set,
		})
		if set.MaxTokens() > r.maxPhraseLen {
			r.maxPhraseLen = set.MaxTokens()
		}
	}
	sort.SliceStable(r.phrases, func(i, j int) bool {
		return r.phrases[i].rank < r.phrases[j].rank
	})

	return r, warnings, nil
}

// Labels returns the sorted label vocabulary of the configuration.
func (r *Resolver) Labels() []string {
	return r.labels
}

// ResolveToken decides the label for a single token. Every configured
// strategy is evaluated; when strategies of more than one category are
// satisfied, the category ranked first by the priority list wins.
// Returns ok=false if no category matches.
func (r *Resolver) ResolveToken(tok *ir.Token) (string, bool) {
	for _, cat := range r.categories {
		for i := range cat.strategies {
			if cat.strategies[i].matches(tok) {
				return cat.name, true
			}
		}
	}
	return "", false
}
