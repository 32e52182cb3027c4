package score

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/songtab/internal/record"
)

// Format identifies the encoding of a document file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// DetectFormat picks a Format from the file extension.
// Unknown extensions are read as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cue":
		return FormatCUE
	default:
		return FormatJSON
	}
}

// Load reads the document at path and flattens it.
func Load(path string, opts ...Option) (*Song, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// Open builds a Song from a file when path is non-empty, otherwise from doc.
// A path always takes precedence over an in-memory document.
func Open(path string, doc record.Object, opts ...Option) (*Song, error) {
	if path != "" {
		return Load(path, opts...)
	}
	return New(doc, opts...)
}

// ReadDocument opens, parses, and closes the file at path.
// Any failure is returned as a *LoadError.
func ReadDocument(path string) (record.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := DecodeDocument(f, DetectFormat(path), path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return doc, nil
}

// DecodeDocument parses a document of the given format from r.
// filename is only used in CUE error positions.
func DecodeDocument(r io.Reader, format Format, filename string) (record.Object, error) {
	var (
		v   record.Value
		err error
	)
	switch format {
	case FormatJSON:
		v, err = record.DecodeJSON(r)
	case FormatYAML:
		v, err = decodeYAML(r)
	case FormatCUE:
		v, err = decodeCUE(r, filename)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	doc, ok := v.(record.Object)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotDocument, record.TypeName(v))
	}
	return doc, nil
}

// decodeYAML reads exactly one YAML document, mirroring the JSON decoder's
// rejection of trailing data.
func decodeYAML(r io.Reader) (record.Value, error) {
	dec := yaml.NewDecoder(r)
	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected second document")
	}
	return record.FromAny(raw)
}

// decodeCUE evaluates a CUE file and exports it as concrete JSON.
func decodeCUE(r io.Reader, filename string) (record.Value, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, err
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, err
	}

	data, err := value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return record.ParseJSON(data)
}
