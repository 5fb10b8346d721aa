package ir

import (
	"fmt"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// newValidationError creates a new ValidationError.
func newValidationError(path, message string) error {
	return &ValidationError{Path: path, Message: message}
}

// ValidateVerse validates a Verse and returns all validation errors.
func ValidateVerse(v *Verse) []error {
	var errs []error

	if v.ID == "" {
		errs = append(errs, newValidationError("verse", "ID is required"))
	}

	if v.Text == "" {
		errs = append(errs, newValidationError("verse.text", "Text is required"))
	}

	for i, tok := range v.Tokens {
		tokPath := fmt.Sprintf("verse.tokens[%d]", i)
		if tok == nil {
			errs = append(errs, newValidationError(tokPath, "token is nil"))
			continue
		}
		if tok.Index != i {
			errs = append(errs, newValidationError(tokPath,
				fmt.Sprintf("Index = %d, want %d", tok.Index, i)))
		}
		if tok.Text == "" {
			errs = append(errs, newValidationError(tokPath, "Text is required"))
		}
	}

	return errs
}

// ValidateSpans validates a final span set against its raw text:
// in-bounds ranges, sorted by start offset, pairwise non-overlapping.
func ValidateSpans(text string, spans []Span) []error {
	var errs []error

	for i, s := range spans {
		sPath := fmt.Sprintf("spans[%d]", i)

		if s.Start < 0 {
			errs = append(errs, newValidationError(sPath, "Start cannot be negative"))
		}
		if s.End > len(text) {
			errs = append(errs, newValidationError(sPath,
				fmt.Sprintf("End %d exceeds text length %d", s.End, len(text))))
		}
		if s.End <= s.Start {
			errs = append(errs, newValidationError(sPath,
				"End must be greater than Start"))
		}
		if s.Label == "" {
			errs = append(errs, newValidationError(sPath, "Label is required"))
		}
		if s.Provenance != nil && !s.Provenance.Rule.IsValid() {
			errs = append(errs, newValidationError(sPath,
				fmt.Sprintf("invalid RuleKind: %q", s.Provenance.Rule)))
		}

		if i > 0 {
			prev := spans[i-1]
			if s.Start < prev.Start {
				errs = append(errs, newValidationError(sPath,
					"spans are not sorted by start offset"))
			}
			if s.Start < prev.End {
				errs = append(errs, newValidationError(sPath,
					fmt.Sprintf("span overlaps previous span %s", prev.String())))
			}
		}
	}

	return errs
}

// ValidateExample validates an NERExample and returns all validation
// errors, including span set validity against the example text.
func ValidateExample(e *NERExample) []error {
	var errs []error

	if e.Text == "" {
		errs = append(errs, newValidationError("example.text", "Text is required"))
	}
	if e.VerseID() == "" {
		errs = append(errs, newValidationError("example.meta",
			"verse_id metadata is required"))
	}

	errs = append(errs, ValidateSpans(e.Text, e.Spans)...)

	return errs
}

// ValidateSchema validates a SchemaInfo and returns all validation errors.
func ValidateSchema(si SchemaInfo) []error {
	var errs []error

	if si.Version == "" {
		errs = append(errs, newValidationError("schema", "Version is required"))
	}
	if len(si.Labels) == 0 {
		errs = append(errs, newValidationError("schema.labels",
			"at least one label is required"))
	}
	seen := make(map[string]bool, len(si.Labels))
	for i, l := range si.Labels {
		lPath := fmt.Sprintf("schema.labels[%d]", i)
		if l == "" {
			errs = append(errs, newValidationError(lPath, "label cannot be empty"))
		}
		if seen[l] {
			errs = append(errs, newValidationError(lPath,
				fmt.Sprintf("duplicate label %q", l)))
		}
		seen[l] = true
	}

	return errs
}
