package ir

import (
	"errors"
	"testing"
)

func TestHashBytes(t *testing.T) {
	data := []byte("In the beginning God created the heaven and the earth.")
	hash := HashBytes(data)

	// Should be 64 hex characters (SHA-256)
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}

	// Same input should produce same hash
	hash2 := HashBytes(data)
	if hash != hash2 {
		t.Errorf("same data produced different hashes: %q vs %q", hash, hash2)
	}

	// Different input should produce different hash
	hash3 := HashBytes([]byte("Different content"))
	if hash == hash3 {
		t.Error("different data produced same hash")
	}
}

func TestHashString(t *testing.T) {
	text := "In the beginning God created the heaven and the earth."
	hash := HashString(text)

	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}

	if hash != HashBytes([]byte(text)) {
		t.Error("HashString and HashBytes differ")
	}
}

func TestHashVerse(t *testing.T) {
	v := testVerse()
	if HashVerse(v) != HashString(v.Text) {
		t.Error("HashVerse should hash the raw text")
	}
}

func TestHashExample(t *testing.T) {
	ex := &NERExample{
		Text:  "In the beginning God created the heaven and the earth.",
		Spans: []Span{{Start: 17, End: 20, Label: "DEITY"}},
		Meta:  map[string]string{"verse_id": "Gen.1.1"},
	}

	h1, err := HashExample(ex)
	if err != nil {
		t.Fatalf("HashExample failed: %v", err)
	}
	h2, err := HashExample(ex)
	if err != nil {
		t.Fatalf("HashExample failed: %v", err)
	}
	if h1 != h2 {
		t.Error("identical example produced different hashes")
	}

	ex.Spans[0].Label = "PERSON"
	h3, err := HashExample(ex)
	if err != nil {
		t.Fatalf("HashExample failed: %v", err)
	}
	if h1 == h3 {
		t.Error("modified example produced same hash")
	}
}

func TestHashExampleMarshalError(t *testing.T) {
	// Simulate a marshal failure via the injectable function
	orig := jsonMarshal
	defer func() { jsonMarshal = orig }()

	wantErr := errors.New("marshal failure")
	jsonMarshal = func(v interface{}) ([]byte, error) {
		return nil, wantErr
	}

	_, err := HashExample(&NERExample{Text: "x"})
	if !errors.Is(err, wantErr) {
		t.Errorf("HashExample error = %v, want %v", err, wantErr)
	}
}
