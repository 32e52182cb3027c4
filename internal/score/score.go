package score

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/roach88/songtab/internal/record"
	"github.com/roach88/songtab/internal/table"
)

// UnknownName is the song name used when the document has no name.
const UnknownName = "unknown"

// Document keys.
const (
	keyName          = "name"
	keySections      = "sections"
	keyMeasures      = "measures"
	keyNumber        = "number"
	keyTimeSignature = "timeSignature"
	keyMelody        = "melody"
	keyNotes         = "notes"
	keyHarmony       = "harmony"

	// FieldSection and FieldMeasure are the keys added to every flattened event.
	FieldSection = "section"
	FieldMeasure = "measure"
)

// Grouping holds the events encountered under one section name.
type Grouping struct {
	Notes   []record.Object `json:"notes"`
	Harmony []record.Object `json:"harmony"`
}

// Option configures construction of a Song.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for the per-section trace.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Song is a flattened score document.
type Song struct {
	name          string
	timeSignature record.Value // nil until a measure declares one
	notes         []record.Object
	harmony       []record.Object
	sectionNames  []string
	groupings     map[string]*Grouping

	notesTable   *table.Table
	harmonyTable *table.Table
}

// New flattens an in-memory document. doc is not modified.
// A missing "sections" key, or a required key missing below it, fails
// construction with a *SchemaError; no partial Song is returned.
func New(doc record.Object, opts ...Option) (*Song, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Song{
		name:      UnknownName,
		groupings: make(map[string]*Grouping),
	}
	if err := s.flatten(doc, o.logger); err != nil {
		return nil, err
	}

	s.notesTable = table.Build(s.notes, table.ChordDefaults)
	s.harmonyTable = table.Build(s.harmony, table.ChordDefaults)
	return s, nil
}

func (s *Song) flatten(doc record.Object, logger *slog.Logger) error {
	if v, ok := doc[keyName]; ok && !record.IsNull(v) {
		name, ok := v.(record.String)
		if !ok {
			return invalid("", keyName, v)
		}
		s.name = string(name)
	}

	sections, err := requireArray(doc, "", keySections)
	if err != nil {
		return err
	}

	for i, sv := range sections {
		path := fmt.Sprintf("sections[%d]", i)
		section, ok := sv.(record.Object)
		if !ok {
			return &SchemaError{Path: "", Field: path, Err: ErrInvalidField, Got: record.TypeName(sv)}
		}
		if err := s.flattenSection(section, path, logger); err != nil {
			return err
		}
	}
	return nil
}

func (s *Song) flattenSection(section record.Object, path string, logger *slog.Logger) error {
	nv, ok := section[keyName]
	if !ok {
		return &SchemaError{Path: path, Field: keyName, Err: ErrMissingField}
	}
	name, ok := nv.(record.String)
	if !ok {
		return invalid(path, keyName, nv)
	}
	sectionName := string(name)

	measures, err := requireArray(section, path, keyMeasures)
	if err != nil {
		return err
	}

	s.sectionNames = append(s.sectionNames, sectionName)
	group, ok := s.groupings[sectionName]
	if !ok {
		group = &Grouping{}
		s.groupings[sectionName] = group
	}
	logger.Info("flattening section", "section", sectionName, "measures", len(measures))

	for j, mv := range measures {
		mpath := fmt.Sprintf("%s.measures[%d]", path, j)
		measure, ok := mv.(record.Object)
		if !ok {
			return &SchemaError{Path: path, Field: fmt.Sprintf("measures[%d]", j), Err: ErrInvalidField, Got: record.TypeName(mv)}
		}
		if err := s.flattenMeasure(measure, mpath, sectionName, group); err != nil {
			return err
		}
	}
	return nil
}

func (s *Song) flattenMeasure(measure record.Object, path, sectionName string, group *Grouping) error {
	number, ok := measure[keyNumber]
	if !ok {
		return &SchemaError{Path: path, Field: keyNumber, Err: ErrMissingField}
	}

	if ts, ok := measure[keyTimeSignature]; ok {
		s.timeSignature = record.CloneValue(ts)
	}

	if mv, ok := measure[keyMelody]; ok {
		melody, ok := mv.(record.Object)
		if !ok {
			return invalid(path, keyMelody, mv)
		}
		notes, err := requireArray(melody, path+"."+keyMelody, keyNotes)
		if err != nil {
			return err
		}
		for k, nv := range notes {
			note, ok := nv.(record.Object)
			if !ok {
				return invalid(path+".melody", fmt.Sprintf("notes[%d]", k), nv)
			}
			ev := annotate(note, sectionName, number)
			s.notes = append(s.notes, ev)
			group.Notes = append(group.Notes, ev.Clone())
		}
	}

	if hv, ok := measure[keyHarmony]; ok {
		harmony, ok := hv.(record.Array)
		if !ok {
			return invalid(path, keyHarmony, hv)
		}
		for k, ev := range harmony {
			h, ok := ev.(record.Object)
			if !ok {
				return invalid(path, fmt.Sprintf("harmony[%d]", k), ev)
			}
			ann := annotate(h, sectionName, number)
			s.harmony = append(s.harmony, ann)
			group.Harmony = append(group.Harmony, ann.Clone())
		}
	}
	return nil
}

// annotate returns a copy of ev carrying its section name and measure number.
func annotate(ev record.Object, section string, measure record.Value) record.Object {
	out := ev.Clone()
	if out == nil {
		out = make(record.Object, 2)
	}
	out[FieldSection] = record.String(section)
	out[FieldMeasure] = record.CloneValue(measure)
	return out
}

func requireArray(obj record.Object, path, field string) (record.Array, error) {
	v, ok := obj[field]
	if !ok {
		return nil, &SchemaError{Path: path, Field: field, Err: ErrMissingField}
	}
	arr, ok := v.(record.Array)
	if !ok {
		return nil, invalid(path, field, v)
	}
	return arr, nil
}

func invalid(path, field string, got record.Value) *SchemaError {
	return &SchemaError{Path: path, Field: field, Err: ErrInvalidField, Got: record.TypeName(got)}
}

// Name returns the document name, or UnknownName.
func (s *Song) Name() string {
	return s.name
}

// TimeSignature returns the time signature of the last measure, in document
// order across all sections, that declared one.
func (s *Song) TimeSignature() (record.Value, bool) {
	if s.timeSignature == nil {
		return nil, false
	}
	return record.CloneValue(s.timeSignature), true
}

// Notes returns every note in document order.
func (s *Song) Notes() []record.Object {
	return cloneAll(s.notes)
}

// Harmony returns every harmony event in document order.
func (s *Song) Harmony() []record.Object {
	return cloneAll(s.harmony)
}

// SectionNames returns section names in document order, one entry per
// section, duplicates included.
func (s *Song) SectionNames() []string {
	out := make([]string, len(s.sectionNames))
	copy(out, s.sectionNames)
	return out
}

// Section returns the grouping for a section name. Sections that share a
// name share one grouping, in document order.
func (s *Song) Section(name string) (Grouping, bool) {
	g, ok := s.groupings[name]
	if !ok {
		return Grouping{}, false
	}
	return Grouping{Notes: cloneAll(g.Notes), Harmony: cloneAll(g.Harmony)}, true
}

// Groupings returns every section grouping keyed by section name.
func (s *Song) Groupings() map[string]Grouping {
	out := make(map[string]Grouping, len(s.groupings))
	for name := range s.groupings {
		out[name], _ = s.Section(name)
	}
	return out
}

// NotesTable returns the materialized notes table.
func (s *Song) NotesTable() *table.Table {
	return s.notesTable
}

// HarmonyTable returns the materialized harmony table.
func (s *Song) HarmonyTable() *table.Table {
	return s.harmonyTable
}

// All iterates over the flat note sequence in document order. Each call
// starts again from the first note. Harmony events are not included.
func (s *Song) All() iter.Seq[record.Object] {
	return func(yield func(record.Object) bool) {
		for _, n := range s.notes {
			if !yield(n.Clone()) {
				return
			}
		}
	}
}

func cloneAll(recs []record.Object) []record.Object {
	out := make([]record.Object, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}
