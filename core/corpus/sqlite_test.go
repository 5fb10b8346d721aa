package corpus

import (
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/Silversmith/core/sqlite"
)

func createModule(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kjv.sqlite")

	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("opening module for setup: %v", err)
	}
	defer db.Close()

	ddl := []string{
		`CREATE TABLE verses (id TEXT PRIMARY KEY, text TEXT NOT NULL)`,
		`CREATE TABLE tokens (verse_id TEXT, idx INTEGER, text TEXT, lemma TEXT, strongs TEXT, morph TEXT)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup DDL failed: %v", err)
		}
	}

	// Inserted out of canonical order on purpose
	inserts := []struct {
		stmt string
		args []any
	}{
		{`INSERT INTO verses VALUES (?, ?)`, []any{"Gen.1.2", "And the earth was without form."}},
		{`INSERT INTO verses VALUES (?, ?)`, []any{"Gen.1.1", "In the beginning God created the heaven and the earth."}},
		{`INSERT INTO tokens VALUES (?, ?, ?, ?, ?, ?)`, []any{"Gen.1.1", 0, "In", nil, nil, nil}},
		{`INSERT INTO tokens VALUES (?, ?, ?, ?, ?, ?)`, []any{"Gen.1.1", 1, "the", nil, nil, nil}},
		{`INSERT INTO tokens VALUES (?, ?, ?, ?, ?, ?)`, []any{"Gen.1.1", 2, "beginning", "reshit", "H7225", "HNcfsa"}},
		{`INSERT INTO tokens VALUES (?, ?, ?, ?, ?, ?)`, []any{"Gen.1.2", 0, "And", nil, nil, nil}},
	}
	for _, ins := range inserts {
		if _, err := db.Exec(ins.stmt, ins.args...); err != nil {
			t.Fatalf("setup insert failed: %v", err)
		}
	}
	return path
}

func TestSQLiteSourceReadAll(t *testing.T) {
	src, err := OpenSQLite(createModule(t))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer src.Close()

	verses, err := src.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(verses) != 2 {
		t.Fatalf("verses = %d, want 2", len(verses))
	}

	// Canonical order despite insertion order
	if verses[0].ID != "Gen.1.1" || verses[1].ID != "Gen.1.2" {
		t.Errorf("order = %q, %q", verses[0].ID, verses[1].ID)
	}

	v := verses[0]
	if len(v.Tokens) != 3 {
		t.Fatalf("tokens = %d, want 3", len(v.Tokens))
	}
	tok := v.Tokens[2]
	if tok.Text != "beginning" || tok.Lemma != "reshit" || tok.Strongs != "H7225" || tok.Morphology != "HNcfsa" {
		t.Errorf("annotated token = %+v", tok)
	}
	for i, tok := range v.Tokens {
		if tok.Index != i {
			t.Errorf("token %d has index %d", i, tok.Index)
		}
	}
}

func TestOpenSQLiteMissing(t *testing.T) {
	// Read-only open of a nonexistent path must not create a database
	path := filepath.Join(t.TempDir(), "absent.sqlite")
	src, err := OpenSQLite(path)
	if err == nil {
		src.Close()
		t.Error("OpenSQLite should fail for a missing module")
	}
}
