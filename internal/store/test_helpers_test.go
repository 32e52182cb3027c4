package store

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/roach88/songtab/internal/record"
	"github.com/roach88/songtab/internal/score"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// pragma reads a single pragma value from the store's connection.
func pragma(t *testing.T, s *Store, name string) string {
	t.Helper()
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		t.Fatalf("read pragma %s: %v", name, err)
	}
	return value
}

// createTestSong builds a two-section song:
// Verse (measure 1: C4, E4 with chord C) and Chorus (measure 2, 4/4, harmony G7).
func createTestSong(t *testing.T) *score.Song {
	t.Helper()
	doc := record.Object{
		"name": record.String("Test Song"),
		"sections": record.Array{
			record.Object{
				"name": record.String("Verse"),
				"measures": record.Array{record.Object{
					"number": record.Int(1),
					"melody": record.Object{"notes": record.Array{
						record.Object{"pitch": record.String("C4")},
						record.Object{"pitch": record.String("E4"), "chord": record.String("C")},
					}},
				}},
			},
			record.Object{
				"name": record.String("Chorus"),
				"measures": record.Array{record.Object{
					"number":        record.Int(2),
					"timeSignature": record.String("4/4"),
					"harmony":       record.Array{record.Object{"chord": record.String("G7")}},
				}},
			},
		},
	}

	song, err := score.New(doc, score.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("score.New() failed: %v", err)
	}
	return song
}
