package corpus

import (
	"database/sql"

	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/Silversmith/core/errors"
	"github.com/FocuswithJustin/Silversmith/core/ir"
	"github.com/FocuswithJustin/Silversmith/core/sqlite"
)

// SQLiteSource reads verses and token annotations from a SQLite
// module. Expected schema:
//
//	verses(id TEXT PRIMARY KEY, text TEXT NOT NULL)
//	tokens(verse_id TEXT, idx INTEGER, text TEXT,
//	       lemma TEXT, strongs TEXT, morph TEXT)
type SQLiteSource struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens a SQLite module read-only. The driver is selected
// at build time: modernc.org/sqlite by default, mattn/go-sqlite3 with
// the cgo_sqlite tag.
func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, errors.NewIO("open module", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewIO("open module", path, err)
	}
	return &SQLiteSource{path: path, db: db}, nil
}

// ReadAll loads every verse with its tokens, in canonical reference
// order. Verse text is normalized to NFC so byte offsets are stable
// across sources.
func (s *SQLiteSource) ReadAll() ([]*ir.Verse, error) {
	byID := make(map[string]*ir.Verse)
	var verses []*ir.Verse

	rows, err := s.db.Query(`SELECT id, text FROM verses`)
	if err != nil {
		return nil, errors.NewIO("query verses", s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, errors.NewIO("scan verse", s.path, err)
		}
		v := &ir.Verse{ID: id, Text: norm.NFC.String(text)}
		byID[id] = v
		verses = append(verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("iterate verses", s.path, err)
	}

	if err := s.loadTokens(byID); err != nil {
		return nil, err
	}

	SortVerses(verses)
	return verses, nil
}

// loadTokens attaches token rows to their verses, ordered by idx.
func (s *SQLiteSource) loadTokens(byID map[string]*ir.Verse) error {
	rows, err := s.db.Query(`
		SELECT verse_id, idx, text,
		       COALESCE(lemma, ''), COALESCE(strongs, ''), COALESCE(morph, '')
		FROM tokens ORDER BY verse_id, idx`)
	if err != nil {
		return errors.NewIO("query tokens", s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var verseID, text, lemma, strongs, morph string
		var idx int
		if err := rows.Scan(&verseID, &idx, &text, &lemma, &strongs, &morph); err != nil {
			return errors.NewIO("scan token", s.path, err)
		}

		v, ok := byID[verseID]
		if !ok {
			// Token for a verse not in the verses table: annotation
			// drift in the source module, skip it.
			continue
		}
		v.Tokens = append(v.Tokens, &ir.Token{
			Index:      idx,
			Text:       norm.NFC.String(text),
			Lemma:      lemma,
			Strongs:    strongs,
			Morphology: morph,
		})
	}
	return rows.Err()
}

// Close closes the database handle.
func (s *SQLiteSource) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.NewIO("close module", s.path, err)
	}
	return nil
}
