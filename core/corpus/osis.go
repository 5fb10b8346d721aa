package corpus

import (
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/Silversmith/core/errors"
	"github.com/FocuswithJustin/Silversmith/core/ir"
)

// Precompiled selectors for the OSIS elements the reader consumes.
// OSIS marks verses either as container elements or as milestone
// pairs; only container verses carry text content, so the selector
// requires an osisID and at least some content.
var (
	verseSelector = xpath.MustCompile(`//verse[@osisID]`)
	tokenSelector = xpath.MustCompile(`.//w`)
)

// OSISSource reads verses from an OSIS XML document. Word-level
// annotations come from <w> elements: lemma attributes of the form
// "strong:H7225" populate the Strong's number, morph attributes the
// morphology code.
type OSISSource struct {
	path string
	doc  *xmlquery.Node
}

// OpenOSIS parses an OSIS file. The whole document is held in memory;
// OSIS corpora are book-sized, not archive-sized.
func OpenOSIS(path string) (*OSISSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("OSIS file", path)
		}
		return nil, errors.NewIO("open OSIS file", path, err)
	}
	defer f.Close()

	return parseOSIS(path, f)
}

func parseOSIS(path string, r io.Reader) (*OSISSource, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("osis", path, err.Error())
	}
	return &OSISSource{path: path, doc: doc}, nil
}

// ReadAll extracts every container verse, in canonical reference
// order. Verse text is the element's inner text normalized to NFC
// with surrounding whitespace trimmed.
func (s *OSISSource) ReadAll() ([]*ir.Verse, error) {
	var verses []*ir.Verse

	for _, node := range xmlquery.QuerySelectorAll(s.doc, verseSelector) {
		id := node.SelectAttr("osisID")
		text := strings.TrimSpace(norm.NFC.String(node.InnerText()))
		if text == "" {
			// Milestone verse marker, no content of its own
			continue
		}

		v := &ir.Verse{ID: id, Text: text}
		for i, w := range xmlquery.QuerySelectorAll(node, tokenSelector) {
			v.Tokens = append(v.Tokens, osisToken(i, w))
		}
		verses = append(verses, v)
	}

	SortVerses(verses)
	return verses, nil
}

// osisToken converts one <w> element to an annotated token.
func osisToken(idx int, w *xmlquery.Node) *ir.Token {
	tok := &ir.Token{
		Index:      idx,
		Text:       norm.NFC.String(strings.TrimSpace(w.InnerText())),
		Morphology: w.SelectAttr("morph"),
	}

	// The lemma attribute multiplexes lexicon references, e.g.
	// "strong:H7225" or "lemma.TR:λογος strong:G3056".
	for _, part := range strings.Fields(w.SelectAttr("lemma")) {
		switch {
		case strings.HasPrefix(part, "strong:"):
			tok.Strongs = strings.TrimPrefix(part, "strong:")
		case strings.HasPrefix(part, "lemma."):
			if _, val, ok := strings.Cut(part, ":"); ok {
				tok.Lemma = val
			}
		default:
			if tok.Lemma == "" && !strings.Contains(part, ":") {
				tok.Lemma = part
			}
		}
	}
	return tok
}

// Close releases the parsed document.
func (s *OSISSource) Close() error {
	s.doc = nil
	return nil
}
