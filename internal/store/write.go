package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/songtab/internal/record"
	"github.com/roach88/songtab/internal/score"
	"github.com/roach88/songtab/internal/table"
)

// Kind distinguishes note rows from harmony rows in the events table.
type Kind string

const (
	KindNote    Kind = "note"
	KindHarmony Kind = "harmony"
)

// WriteSong stores a song and its materialized tables in one transaction
// and returns the generated song ID. source is informational (usually the
// file path the song was loaded from).
func (s *Store) WriteSong(ctx context.Context, song *score.Song, source string) (string, error) {
	id := uuid.NewString()

	var ts sql.NullString
	if v, ok := song.TimeSignature(); ok {
		data, err := marshalValue(v)
		if err != nil {
			return "", fmt.Errorf("write song: time signature: %w", err)
		}
		ts = sql.NullString{String: data, Valid: true}
	}

	names, err := marshalNames(song.SectionNames())
	if err != nil {
		return "", fmt.Errorf("write song: section names: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("write song: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO songs (id, name, time_signature, section_names, source, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM songs))
	`, id, song.Name(), ts, names, source)
	if err != nil {
		return "", fmt.Errorf("write song: %w", err)
	}

	if err := writeEvents(ctx, tx, id, KindNote, song.NotesTable()); err != nil {
		return "", fmt.Errorf("write song: %w", err)
	}
	if err := writeEvents(ctx, tx, id, KindHarmony, song.HarmonyTable()); err != nil {
		return "", fmt.Errorf("write song: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("write song: commit: %w", err)
	}
	return id, nil
}

func writeEvents(ctx context.Context, tx *sql.Tx, songID string, kind Kind, tbl *table.Table) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (song_id, kind, seq, section, measure, chord, fields)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare %s events: %w", kind, err)
	}
	defer stmt.Close()

	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)

		fields, err := marshalValue(row)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", kind, i, err)
		}
		measure, err := marshalValue(row[score.FieldMeasure])
		if err != nil {
			return fmt.Errorf("%s[%d]: measure: %w", kind, i, err)
		}

		var chord sql.NullString
		if v, ok := row["chord"]; ok && !record.IsNull(v) {
			chord = sql.NullString{String: record.Format(v), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, songID, string(kind), i, record.Format(row[score.FieldSection]), measure, chord, fields); err != nil {
			return fmt.Errorf("%s[%d]: %w", kind, i, err)
		}
	}
	return nil
}
