package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/songtab/internal/record"
)

func TestWriteSong_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	song := createTestSong(t)

	id, err := s.WriteSong(ctx, song, "test.json")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	row, err := s.ReadSong(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Test Song", row.Name)
	assert.Equal(t, record.String("4/4"), row.TimeSignature)
	assert.Equal(t, []string{"Verse", "Chorus"}, row.SectionNames)
	assert.Equal(t, "test.json", row.Source)
	assert.Equal(t, int64(1), row.Seq)

	notes, err := s.ReadEvents(ctx, id, KindNote, "")
	require.NoError(t, err)
	assert.Equal(t, song.NotesTable().Records(), notes)

	harmony, err := s.ReadEvents(ctx, id, KindHarmony, "")
	require.NoError(t, err)
	assert.Equal(t, song.HarmonyTable().Records(), harmony)
}

func TestWriteSong_StoresFilledChord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.WriteSong(ctx, createTestSong(t), "")
	require.NoError(t, err)

	rows, err := s.db.QueryContext(ctx, `SELECT chord FROM events WHERE song_id = ? AND kind = 'note' ORDER BY seq`, id)
	require.NoError(t, err)
	defer rows.Close()

	var chords []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		chords = append(chords, c)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"0", "C"}, chords)
}

func TestReadEvents_FilterBySection(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.WriteSong(ctx, createTestSong(t), "")
	require.NoError(t, err)

	verse, err := s.ReadEvents(ctx, id, KindNote, "Verse")
	require.NoError(t, err)
	assert.Len(t, verse, 2)

	chorus, err := s.ReadEvents(ctx, id, KindNote, "Chorus")
	require.NoError(t, err)
	assert.Empty(t, chorus)
	assert.NotNil(t, chorus)
}

func TestListSongs_InsertionOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ListSongs(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	first, err := s.WriteSong(ctx, createTestSong(t), "a.json")
	require.NoError(t, err)
	second, err := s.WriteSong(ctx, createTestSong(t), "b.json")
	require.NoError(t, err)

	songs, err := s.ListSongs(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, first, songs[0].ID)
	assert.Equal(t, second, songs[1].ID)
	assert.Equal(t, int64(2), songs[1].Seq)
}

func TestReadSong_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSong(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSongNotFound)
}
