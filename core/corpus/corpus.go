// Package corpus reads annotated verses from source Bible modules.
// Two source formats are supported: SQLite modules (the common
// interchange format for annotated corpora) and OSIS XML. Both yield
// the same ir.Verse stream: raw verse text in NFC plus the ordered
// token annotations the labeling pipeline consumes.
package corpus

import (
	"sort"

	"github.com/FocuswithJustin/Silversmith/core/ir"
)

// Source yields the verses of one corpus. Close releases the
// underlying file or database handle.
type Source interface {
	// ReadAll returns every verse in corpus order.
	ReadAll() ([]*ir.Verse, error)

	// Close releases the source.
	Close() error
}

// SortVerses orders verses canonically by parsed reference. Verses
// whose IDs do not parse as references keep their relative order and
// sort after those that do.
func SortVerses(verses []*ir.Verse) {
	type keyed struct {
		v   *ir.Verse
		ref *ir.Ref
	}
	ks := make([]keyed, len(verses))
	for i, v := range verses {
		ref, err := ir.ParseRef(v.ID)
		if err != nil {
			ref = nil
		}
		ks[i] = keyed{v: v, ref: ref}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i].ref, ks[j].ref
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.Before(b)
	})

	for i, k := range ks {
		verses[i] = k.v
	}
}
