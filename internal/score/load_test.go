package score

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/songtab/internal/record"
)

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"song.json":     FormatJSON,
		"song.YAML":     FormatYAML,
		"song.yml":      FormatYAML,
		"song.cue":      FormatCUE,
		"song":          FormatJSON,
		"dir.v2/song.x": FormatJSON,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestLoadFormatsAgree(t *testing.T) {
	want, err := New(exampleDoc(), quiet())
	require.NoError(t, err)

	for _, name := range []string{"example.json", "example.yaml", "example.cue"} {
		t.Run(name, func(t *testing.T) {
			song, err := Load(filepath.Join("testdata", name), quiet())
			require.NoError(t, err)

			assert.Equal(t, want.Notes(), song.Notes())
			assert.Equal(t, want.Harmony(), song.Harmony())
			assert.Equal(t, want.SectionNames(), song.SectionNames())

			ts, ok := song.TimeSignature()
			require.True(t, ok)
			assert.Equal(t, record.String("4/4"), ts)
		})
	}
}

func TestLoadBalladGolden(t *testing.T) {
	song, err := Load(filepath.Join("testdata", "ballad.json"), quiet())
	require.NoError(t, err)

	assert.Equal(t, "Ballad", song.Name())
	assert.Equal(t, []string{"Intro", "Verse", "Verse"}, song.SectionNames())

	ts, ok := song.TimeSignature()
	require.True(t, ok)
	assert.Equal(t, record.String("4/4"), ts)

	verse, ok := song.Section("Verse")
	require.True(t, ok)
	assert.Len(t, verse.Notes, 3)
	assert.Len(t, verse.Harmony, 2)

	notes, err := song.NotesTable().MarshalCanonical()
	require.NoError(t, err)
	harmony, err := song.HarmonyTable().MarshalCanonical()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "ballad_notes", notes)
	g.Assert(t, "ballad_harmony", harmony)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), quiet())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "malformed.json"), quiet())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "parse json")
}

func TestLoadNonConcreteCUE(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "incomplete.cue"), quiet())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "parse cue")
}

func TestLoadRootNotObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, 2, 3]`), 0644))

	_, err := Load(path, quiet())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDocument)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(path, quiet())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestLoadMultiDocumentYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.yaml")
	src := "name: First\nsections: []\n---\nname: Second\nsections: []\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	_, err := Load(path, quiet())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "unexpected second document")
}

func TestLoadTrailingJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sections": []} {"sections": []}`), 0644))

	_, err := Load(path, quiet())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "unexpected data after top-level JSON value")
}

func TestLoadMissingSectionsIsSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nosections.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Lonely\n"), 0644))

	_, err := Load(path, quiet())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)

	var loadErr *LoadError
	assert.False(t, errors.As(err, &loadErr))
}

func TestOpenPathTakesPrecedence(t *testing.T) {
	doc := record.Object{"name": record.String("InMemory"), "sections": record.Array{}}

	song, err := Open(filepath.Join("testdata", "ballad.json"), doc, quiet())
	require.NoError(t, err)
	assert.Equal(t, "Ballad", song.Name())

	song, err = Open("", doc, quiet())
	require.NoError(t, err)
	assert.Equal(t, "InMemory", song.Name())
}

func TestDecodeDocumentUnsupportedFormat(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader("{}"), Format("toml"), "x.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "toml"`)
}
