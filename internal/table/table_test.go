package table

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/songtab/internal/record"
)

func sampleNotes() []record.Object {
	return []record.Object{
		{"pitch": record.String("C4"), "section": record.String("Verse"), "measure": record.Int(1)},
		{"pitch": record.String("E4"), "chord": record.String("Cmaj"), "section": record.String("Verse"), "measure": record.Int(1)},
		{"pitch": record.String("G4"), "duration": record.Float(0.5), "section": record.String("Chorus"), "measure": record.Int(2)},
	}
}

func TestBuildUnionOfColumns(t *testing.T) {
	tbl := Build(sampleNotes(), nil)

	assert.Equal(t, []string{"chord", "duration", "measure", "pitch", "section"}, tbl.Columns())
	assert.Equal(t, 3, tbl.Len())
}

func TestBuildChordDefault(t *testing.T) {
	tbl := Build(sampleNotes(), ChordDefaults)

	chords, ok := tbl.Column("chord")
	require.True(t, ok)
	assert.Equal(t, []record.Value{record.String("0"), record.String("Cmaj"), record.String("0")}, chords)

	// Columns without a default are null-filled.
	durations, ok := tbl.Column("duration")
	require.True(t, ok)
	assert.Equal(t, []record.Value{record.Null{}, record.Null{}, record.Float(0.5)}, durations)
}

func TestBuildDefaultReplacesExplicitNull(t *testing.T) {
	tbl := Build([]record.Object{{"chord": record.Null{}}}, ChordDefaults)

	assert.Equal(t, record.Object{"chord": record.String("0")}, tbl.Row(0))
}

func TestBuildDefaultOnlyForExistingColumns(t *testing.T) {
	tbl := Build([]record.Object{{"pitch": record.String("A4")}}, ChordDefaults)

	_, ok := tbl.Column("chord")
	assert.False(t, ok)
	assert.Equal(t, []string{"pitch"}, tbl.Columns())
}

func TestBuildEmpty(t *testing.T) {
	tbl := Build(nil, ChordDefaults)

	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Columns())

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	assert.Empty(t, buf.String())

	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestBuildDoesNotAliasRecords(t *testing.T) {
	recs := sampleNotes()
	tbl := Build(recs, ChordDefaults)

	recs[0]["pitch"] = record.String("B4")
	row := tbl.Row(0)
	row["pitch"] = record.String("D4")

	assert.Equal(t, record.String("C4"), tbl.Row(0)["pitch"])
}

func TestNestedCellsAreCopied(t *testing.T) {
	recs := []record.Object{
		{"pitch": record.String("C4"), "tie": record.Object{"start": record.Bool(true)}},
	}
	tbl := Build(recs, nil)

	recs[0]["tie"].(record.Object)["start"] = record.Bool(false)
	tbl.Row(0)["tie"].(record.Object)["start"] = record.Bool(false)
	tbl.Rows()[0][1].(record.Object)["start"] = record.Bool(false)
	col, ok := tbl.Column("tie")
	require.True(t, ok)
	col[0].(record.Object)["start"] = record.Bool(false)

	assert.Equal(t, record.Object{"start": record.Bool(true)}, tbl.Row(0)["tie"])
}

func TestRowIncludesEveryColumn(t *testing.T) {
	tbl := Build(sampleNotes(), ChordDefaults)

	row := tbl.Row(2)
	assert.Len(t, row, 5)
	assert.Equal(t, record.String("0"), row["chord"])
	assert.Equal(t, record.Float(0.5), row["duration"])
	assert.Equal(t, record.Int(2), row["measure"])
}

func TestColumnUnknown(t *testing.T) {
	_, ok := Build(sampleNotes(), nil).Column("velocity")
	assert.False(t, ok)
}

func TestWriteCSV(t *testing.T) {
	tbl := Build(sampleNotes(), ChordDefaults)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	want := "chord,duration,measure,pitch,section\n" +
		"0,,1,C4,Verse\n" +
		"Cmaj,,1,E4,Verse\n" +
		"0,0.5,2,G4,Chorus\n"
	assert.Equal(t, want, buf.String())
}

func TestMarshalJSONRows(t *testing.T) {
	tbl := Build(sampleNotes()[:1], ChordDefaults)

	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"measure":1,"pitch":"C4","section":"Verse"}]`, string(b))
}

func TestMarshalCanonicalGolden(t *testing.T) {
	tbl := Build(sampleNotes(), ChordDefaults)

	b, err := tbl.MarshalCanonical()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "notes_table", b)
}
