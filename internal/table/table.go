// Package table materializes flat event records into a column-oriented table.
//
// Every distinct key found in any record becomes a column. Cells a record
// does not fill are null unless the column has a default in the Defaults
// policy.
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/roach88/songtab/internal/record"
)

// Defaults maps a column name to the value used for missing or null cells.
type Defaults map[string]record.Value

// ChordDefaults fills missing chords with the literal string "0".
var ChordDefaults = Defaults{"chord": record.String("0")}

// Table is an immutable, rectangular view over a sequence of records.
type Table struct {
	columns []string
	rows    [][]record.Value
}

// Build materializes records into a table.
// Columns are ordered by record key order. Defaults only apply to columns
// that at least one record mentions.
func Build(records []record.Object, defaults Defaults) *Table {
	seen := make(map[string]struct{})
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	slices.SortFunc(columns, record.CompareKeys)

	rows := make([][]record.Value, len(records))
	for i, rec := range records {
		row := make([]record.Value, len(columns))
		for j, col := range columns {
			v, ok := rec[col]
			if !ok || record.IsNull(v) {
				v = record.Null{}
				if def, hasDefault := defaults[col]; hasDefault {
					v = def
				}
			}
			row[j] = record.CloneValue(v)
		}
		rows[i] = row
	}

	return &Table{columns: columns, rows: rows}
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the cell values row by row, in column order.
func (t *Table) Rows() [][]record.Value {
	out := make([][]record.Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = cloneRow(row)
	}
	return out
}

func cloneRow(row []record.Value) []record.Value {
	out := make([]record.Value, len(row))
	for i, v := range row {
		out[i] = record.CloneValue(v)
	}
	return out
}

// Row returns row i as an object keyed by column name.
// Filled defaults and nulls are included, so every row has every column.
func (t *Table) Row(i int) record.Object {
	obj := make(record.Object, len(t.columns))
	for j, col := range t.columns {
		obj[col] = record.CloneValue(t.rows[i][j])
	}
	return obj
}

// Records returns every row as an object.
func (t *Table) Records() []record.Object {
	out := make([]record.Object, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Column returns the values of the named column, top to bottom.
func (t *Table) Column(name string) ([]record.Value, bool) {
	idx := slices.Index(t.columns, name)
	if idx < 0 {
		return nil, false
	}
	out := make([]record.Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = record.CloneValue(row[idx])
	}
	return out, true
}

// Strings returns the header and the rows rendered with record.Format.
func (t *Table) Strings() (header []string, rows [][]string) {
	header = t.Columns()
	rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = record.Format(v)
		}
		rows[i] = cells
	}
	return header, rows
}

// WriteCSV writes a header line followed by one line per row.
// An empty table writes nothing.
func (t *Table) WriteCSV(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}
	header, rows := t.Strings()

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// MarshalCanonical renders the table as {"columns":[...],"rows":[[...],...]}
// using record.MarshalCanonical.
func (t *Table) MarshalCanonical() ([]byte, error) {
	cols := make(record.Array, len(t.columns))
	for i, c := range t.columns {
		cols[i] = record.String(c)
	}
	rows := make(record.Array, len(t.rows))
	for i, row := range t.rows {
		rows[i] = record.Array(slices.Clone(row))
	}
	return record.MarshalCanonical(record.Object{"columns": cols, "rows": rows})
}

// MarshalJSON renders the table as an array of row objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Records())
}
