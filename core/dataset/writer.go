// Package dataset writes silver-standard NER examples to JSONL files
// and records each batch in a manifest. One example per line, UTF-8,
// stable key order within an example. Files ending in .xz are
// compressed with XZ/LZMA2; everything else is written plain.
package dataset

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Silversmith/core/errors"
	"github.com/FocuswithJustin/Silversmith/core/ir"
)

// Writer streams NER examples to a JSONL file, hashing the encoded
// bytes as they pass through. Not safe for concurrent use; batch
// workers hand finished examples to a single writing goroutine.
type Writer struct {
	path    string
	file    *os.File
	xzw     *xz.Writer
	out     io.Writer
	hasher  *blake3.Hasher
	encoder *json.Encoder
	count   int
}

// NewWriter opens path for writing. A .xz suffix selects XZ
// compression; the hash always covers the uncompressed JSONL stream,
// so plain and compressed datasets with the same content share a
// content hash.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewIO("create dataset", path, err)
	}

	w := &Writer{
		path:   path,
		file:   f,
		hasher: blake3.New(),
	}

	var sink io.Writer = f
	if strings.HasSuffix(path, ".xz") {
		xzw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			os.Remove(path)
			return nil, errors.NewIO("create xz writer", path, err)
		}
		w.xzw = xzw
		sink = xzw
	}

	w.out = io.MultiWriter(sink, w.hasher)
	w.encoder = json.NewEncoder(w.out)
	return w, nil
}

// Write appends one example as a single JSON line.
func (w *Writer) Write(ex *ir.NERExample) error {
	if errs := ir.ValidateExample(ex); len(errs) > 0 {
		return errors.Wrapf(errs[0], "example %s", ex.VerseID())
	}
	if err := w.encoder.Encode(ex); err != nil {
		return errors.NewIO("write example", w.path, err)
	}
	w.count++
	return nil
}

// Count returns the number of examples written so far.
func (w *Writer) Count() int {
	return w.count
}

// ContentHash returns the BLAKE3 hex digest of the uncompressed JSONL
// stream written so far.
func (w *Writer) ContentHash() string {
	sum := w.hasher.Sum(nil)
	return hex.EncodeToString(sum)
}

// Close flushes compression and closes the file.
func (w *Writer) Close() error {
	if w.xzw != nil {
		if err := w.xzw.Close(); err != nil {
			w.file.Close()
			return errors.NewIO("close xz writer", w.path, err)
		}
	}
	if err := w.file.Close(); err != nil {
		return errors.NewIO("close dataset", w.path, err)
	}
	return nil
}

// Reader streams examples back out of a JSONL dataset, transparently
// decompressing .xz files.
type Reader struct {
	path    string
	file    *os.File
	decoder *json.Decoder
}

// NewReader opens a dataset written by Writer.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("dataset", path)
		}
		return nil, errors.NewIO("open dataset", path, err)
	}

	var src io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewParse("xz", path, err.Error())
		}
		src = xzr
	}

	return &Reader{
		path:    path,
		file:    f,
		decoder: json.NewDecoder(src),
	}, nil
}

// Read returns the next example, or io.EOF after the last one.
func (r *Reader) Read() (*ir.NERExample, error) {
	var ex ir.NERExample
	if err := r.decoder.Decode(&ex); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.NewParse("jsonl", r.path, err.Error())
	}
	return &ex, nil
}

// ReadAll drains the remaining examples.
func (r *Reader) ReadAll() ([]*ir.NERExample, error) {
	var out []*ir.NERExample
	for {
		ex, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if err := r.file.Close(); err != nil {
		return errors.NewIO("close dataset", r.path, err)
	}
	return nil
}
