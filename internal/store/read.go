package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/songtab/internal/record"
)

// ErrSongNotFound is returned when no song has the requested ID.
var ErrSongNotFound = errors.New("song not found")

// SongRow is a stored song header.
type SongRow struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	TimeSignature record.Value `json:"time_signature,omitempty"`
	SectionNames  []string     `json:"section_names"`
	Source        string       `json:"source"`
	Seq           int64        `json:"seq"`
}

// ListSongs returns every stored song in insertion order.
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListSongs(ctx context.Context) ([]SongRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, time_signature, section_names, source, seq
		FROM songs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	songs := []SongRow{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// ReadSong returns the header of one stored song.
func (s *Store) ReadSong(ctx context.Context, id string) (SongRow, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, time_signature, section_names, source, seq
		FROM songs
		WHERE id = ?
	`, id)

	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SongRow{}, fmt.Errorf("%w: %s", ErrSongNotFound, id)
	}
	return song, err
}

// ReadEvents returns the stored table rows of one kind for a song, in
// document order. section filters by section name when non-empty.
func (s *Store) ReadEvents(ctx context.Context, songID string, kind Kind, section string) ([]record.Object, error) {
	query := `
		SELECT fields
		FROM events
		WHERE song_id = ? AND kind = ?`
	args := []any{songID, string(kind)}
	if section != "" {
		query += ` AND section = ?`
		args = append(args, section)
	}
	query += ` ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []record.Object{}
	for rows.Next() {
		var fields string
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		obj, err := unmarshalObject(fields)
		if err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(sc scanner) (SongRow, error) {
	var (
		song  SongRow
		ts    sql.NullString
		names string
	)
	if err := sc.Scan(&song.ID, &song.Name, &ts, &names, &song.Source, &song.Seq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SongRow{}, err
		}
		return SongRow{}, fmt.Errorf("scan song: %w", err)
	}

	v, err := unmarshalNullable(ts)
	if err != nil {
		return SongRow{}, fmt.Errorf("decode time signature: %w", err)
	}
	song.TimeSignature = v

	song.SectionNames, err = unmarshalNames(names)
	if err != nil {
		return SongRow{}, fmt.Errorf("decode section names: %w", err)
	}
	return song, nil
}
