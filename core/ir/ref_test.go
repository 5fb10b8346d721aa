package ir

import (
	"encoding/json"
	"testing"
)

func TestRefJSON(t *testing.T) {
	ref := &Ref{
		Book:     "Gen",
		Chapter:  1,
		Verse:    1,
		VerseEnd: 3,
		SubVerse: "a",
		OSISID:   "Gen.1.1a-3",
	}

	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded Ref
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if decoded.Book != ref.Book {
		t.Errorf("Book = %q, want %q", decoded.Book, ref.Book)
	}
	if decoded.Chapter != ref.Chapter {
		t.Errorf("Chapter = %d, want %d", decoded.Chapter, ref.Chapter)
	}
	if decoded.Verse != ref.Verse {
		t.Errorf("Verse = %d, want %d", decoded.Verse, ref.Verse)
	}
	if decoded.VerseEnd != ref.VerseEnd {
		t.Errorf("VerseEnd = %d, want %d", decoded.VerseEnd, ref.VerseEnd)
	}
	if decoded.SubVerse != ref.SubVerse {
		t.Errorf("SubVerse = %q, want %q", decoded.SubVerse, ref.SubVerse)
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		input    string
		expected *Ref
		wantErr  bool
	}{
		{
			input:    "Gen",
			expected: &Ref{Book: "Gen"},
		},
		{
			input:    "Gen.1",
			expected: &Ref{Book: "Gen", Chapter: 1},
		},
		{
			input:    "Gen.1.1",
			expected: &Ref{Book: "Gen", Chapter: 1, Verse: 1},
		},
		{
			input:    "Gen.1.1a",
			expected: &Ref{Book: "Gen", Chapter: 1, Verse: 1, SubVerse: "a"},
		},
		{
			input:    "Gen.1.1-3",
			expected: &Ref{Book: "Gen", Chapter: 1, Verse: 1, VerseEnd: 3},
		},
		{
			input:    "1John.3.16",
			expected: &Ref{Book: "1John", Chapter: 3, Verse: 16},
		},
		{
			input:   "",
			wantErr: true,
		},
		{
			input:   "...",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := ParseRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRef(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) failed: %v", tt.input, err)
			}
			if ref.Book != tt.expected.Book {
				t.Errorf("Book = %q, want %q", ref.Book, tt.expected.Book)
			}
			if ref.Chapter != tt.expected.Chapter {
				t.Errorf("Chapter = %d, want %d", ref.Chapter, tt.expected.Chapter)
			}
			if ref.Verse != tt.expected.Verse {
				t.Errorf("Verse = %d, want %d", ref.Verse, tt.expected.Verse)
			}
			if ref.VerseEnd != tt.expected.VerseEnd {
				t.Errorf("VerseEnd = %d, want %d", ref.VerseEnd, tt.expected.VerseEnd)
			}
			if ref.SubVerse != tt.expected.SubVerse {
				t.Errorf("SubVerse = %q, want %q", ref.SubVerse, tt.expected.SubVerse)
			}
		})
	}
}

func TestRefString(t *testing.T) {
	ref := &Ref{Book: "Exod", Chapter: 19, Verse: 20}
	if got := ref.String(); got != "Exod.19.20" {
		t.Errorf("String() = %q, want %q", got, "Exod.19.20")
	}

	// OSISID takes precedence when set
	ref = &Ref{Book: "Gen", Chapter: 1, Verse: 1, OSISID: "Gen.1.1"}
	if got := ref.String(); got != "Gen.1.1" {
		t.Errorf("String() = %q, want %q", got, "Gen.1.1")
	}
}

func TestRefBefore(t *testing.T) {
	a, _ := ParseRef("Gen.1.1")
	b, _ := ParseRef("Gen.1.2")
	c, _ := ParseRef("Gen.2.1")

	if !a.Before(b) {
		t.Error("Gen.1.1 should come before Gen.1.2")
	}
	if !b.Before(c) {
		t.Error("Gen.1.2 should come before Gen.2.1")
	}
	if b.Before(a) {
		t.Error("Gen.1.2 should not come before Gen.1.1")
	}
}

func TestRefContains(t *testing.T) {
	book, _ := ParseRef("Gen")
	chapter, _ := ParseRef("Gen.1")
	verse, _ := ParseRef("Gen.1.1")
	rng, _ := ParseRef("Gen.1.1-3")
	other, _ := ParseRef("Exod.1.1")

	if !book.Contains(verse) {
		t.Error("book ref should contain its verses")
	}
	if !chapter.Contains(verse) {
		t.Error("chapter ref should contain its verses")
	}
	if book.Contains(other) {
		t.Error("Gen should not contain Exod verses")
	}

	inRange, _ := ParseRef("Gen.1.2")
	outRange, _ := ParseRef("Gen.1.4")
	if !rng.Contains(inRange) {
		t.Error("range Gen.1.1-3 should contain Gen.1.2")
	}
	if rng.Contains(outRange) {
		t.Error("range Gen.1.1-3 should not contain Gen.1.4")
	}
}
