// Package schema defines the ordered column layout of the account table
// and the codec between rendered rows and named wire records.
package schema

import "fmt"

// Columns is an ordered list of field names. Order is significant: it
// defines both the on-screen column order and the key order expected by
// the budgeting service. Names must be unique.
type Columns []string

// AccountColumns is the fixed schema of the account table.
var AccountColumns = Columns{
	"AccountName",
	"Balance",
	"Type",
	"PayoffDay",
	"PayoffSource",
	"CreditLimit",
}

// Record maps each column name to its string value for one row.
type Record map[string]string

// MismatchError reports a row whose cell count disagrees with the schema.
// This indicates corrupted table state, not bad user input, so it is
// surfaced as a hard error rather than a validation result.
type MismatchError struct {
	Cells   int
	Columns int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("schema: row has %d cells, schema has %d columns", e.Cells, e.Columns)
}

// Validate reports whether the column set is well formed (non-empty,
// unique names).
func (c Columns) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("schema: no columns defined")
	}
	seen := make(map[string]struct{}, len(c))
	for _, name := range c {
		if name == "" {
			return fmt.Errorf("schema: empty column name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("schema: duplicate column %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Index returns the position of the named column, or -1.
func (c Columns) Index(name string) int {
	for i, n := range c {
		if n == name {
			return i
		}
	}
	return -1
}

// Decode maps the cell at position i to the column at position i. The
// decode side is strict: it feeds network payloads, so a shape mismatch
// must be caught here rather than rejected by the service.
func Decode(cells []string, cols Columns) (Record, error) {
	if len(cells) != len(cols) {
		return nil, &MismatchError{Cells: len(cells), Columns: len(cols)}
	}
	rec := make(Record, len(cols))
	for i, name := range cols {
		rec[name] = cells[i]
	}
	return rec, nil
}

// Encode reads fields from the record in column order. A field absent
// from the record encodes as an empty cell; the permissive side exists
// so partially populated service responses still render.
func Encode(rec Record, cols Columns) []string {
	cells := make([]string, len(cols))
	for i, name := range cols {
		cells[i] = rec[name]
	}
	return cells
}
