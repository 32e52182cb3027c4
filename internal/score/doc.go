// Package score flattens a nested score document into note and harmony tables.
//
// A document has the shape
//
//	{name, sections: [{name, measures: [{number, timeSignature?, melody?: {notes}, harmony?}]}]}
//
// and a Song is built from it in one synchronous pass. Every note and harmony
// event is copied, annotated with its section name and measure number, and
// appended to a flat document-order sequence and to its section's grouping.
// The source document is never modified.
//
// A built Song is read-only. It is safe to share between goroutines.
package score
