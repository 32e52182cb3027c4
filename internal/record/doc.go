// Package record provides the open, schema-less record model used for note
// and harmony events.
//
// A score document carries arbitrary per-event fields (pitch, duration,
// chord, lyrics, ...). Rather than fixing a struct, every event is an Object:
// a map from string keys to a sealed Value union. This package imports
// nothing internal so every other package can depend on it.
//
// Key properties:
//   - Integers stay Int, other numbers become Float
//   - JSON null becomes Null, never a Go nil
//   - MarshalCanonical output is deterministic (sorted keys, NFC strings)
package record
