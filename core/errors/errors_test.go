package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "gazetteer", ID: "deity.txt"},
			wantMsg:  "gazetteer not found: deity.txt",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "corpus"},
			wantMsg:  "corpus not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "rules.yaml", Err: underlyingErr}
		if got := err.Error(); got != "file not found: rules.yaml" {
			t.Errorf("Error() = %q", got)
		}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ConfigError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     &ConfigError{Field: "priority", Message: "priority list is required"},
			wantMsg: "invalid configuration for priority: priority list is required",
		},
		{
			name:    "without field",
			err:     &ConfigError{Message: "empty document"},
			wantMsg: "invalid configuration: empty document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidConfig) {
				t.Error("ConfigError should unwrap to ErrInvalidConfig")
			}
		})
	}
}

func TestGazetteerError(t *testing.T) {
	underlying := fmt.Errorf("no such file")
	err := NewGazetteer("DEITY", "/data/deity.txt", underlying)

	wantMsg := "gazetteer for DEITY unavailable (/data/deity.txt): no such file"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, underlying) {
		t.Error("GazetteerError should unwrap to underlying error")
	}

	bare := &GazetteerError{Category: "DEITY", Err: underlying}
	if got := bare.Error(); got != "gazetteer for DEITY unavailable: no such file" {
		t.Errorf("Error() = %q", got)
	}

	noWrapped := &GazetteerError{Category: "DEITY", Path: "x"}
	if !errors.Is(noWrapped, ErrGazetteer) {
		t.Error("GazetteerError without cause should unwrap to ErrGazetteer")
	}
}

func TestAlignError(t *testing.T) {
	err := NewAlign("Gen.1.1", 3, "Elohim")

	wantMsg := `token 3 ("Elohim") unaligned in Gen.1.1`
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, ErrUnaligned) {
		t.Error("AlignError should unwrap to ErrUnaligned")
	}
}

func TestIOError(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := NewIO("read", "/data/corpus.db", underlying)

	wantMsg := "failed to read /data/corpus.db: permission denied"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, underlying) {
		t.Error("IOError should unwrap to underlying error")
	}

	noPath := &IOError{Operation: "flush", Err: underlying}
	if got := noPath.Error(); got != "failed to flush: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("YAML", "rules.yaml", "unexpected mapping key")

	wantMsg := "failed to parse YAML at rules.yaml: unexpected mapping key"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("ParseError should unwrap to ErrInvalidConfig")
	}

	noPath := &ParseError{Format: "OSIS", Message: "missing osisID"}
	if got := noPath.Error(); got != "failed to parse OSIS: missing osisID" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("corpus format", "only sqlite and osis are supported")

	wantMsg := "unsupported corpus format: only sqlite and osis are supported"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("UnsupportedError should unwrap to ErrUnsupported")
	}

	noReason := &UnsupportedError{Feature: "tsv"}
	if got := noReason.Error(); got != "unsupported tsv" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := fmt.Errorf("base")
	wrapped := Wrap(base, "loading rules")
	if wrapped.Error() != "loading rules: base" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := fmt.Errorf("base")
	wrapped := Wrapf(base, "verse %s", "Gen.1.1")
	if wrapped.Error() != "verse Gen.1.1: base" {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
}

func TestIsAs(t *testing.T) {
	err := NewConfig("priority", "missing")

	if !Is(err, ErrInvalidConfig) {
		t.Error("Is should match ErrInvalidConfig")
	}

	var ce *ConfigError
	if !As(err, &ce) {
		t.Error("As should extract ConfigError")
	}
	if ce.Field != "priority" {
		t.Errorf("Field = %q, want %q", ce.Field, "priority")
	}
}
