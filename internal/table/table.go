// Package table models the editable account table as an explicit state
// machine. Rendering layers project this state; they never own rows.
package table

import (
	"errors"
	"fmt"

	"budgetdeck/internal/schema"

	"github.com/google/uuid"
)

// RowState is the lifecycle state of one table row.
type RowState int

const (
	// Display is a committed row rendered read-only.
	Display RowState = iota
	// Editing is a committed row whose cells are being revised.
	Editing
	// Draft is a newly added row that has never been committed.
	Draft
)

func (s RowState) String() string {
	switch s {
	case Display:
		return "display"
	case Editing:
		return "editing"
	case Draft:
		return "draft"
	default:
		return fmt.Sprintf("rowstate(%d)", int(s))
	}
}

var (
	// ErrDraftPending means a draft row already exists; the table allows
	// one uncommitted add at a time.
	ErrDraftPending = errors.New("table: a draft row is already pending")
	// ErrRowNotFound means the row ID is stale (the row was deleted).
	ErrRowNotFound = errors.New("table: row not found")
)

// Row is a snapshot of one table row handed to renderers. Cells holds
// the committed values; DraftCells holds the in-progress values for
// rows in Editing or Draft state.
type Row struct {
	ID         string
	State      RowState
	Cells      []string
	DraftCells []string
	Invalid    []bool
}

// CommitResult reports the outcome of a commit attempt. A rejected
// commit is not an error: the row keeps its editable state and Invalid
// marks exactly the offending cells.
type CommitResult struct {
	Committed bool
	Invalid   []bool
}

type row struct {
	id      string
	state   RowState
	cells   []string
	draft   []string
	invalid []bool
}

// Table is the in-memory account table. It exclusively owns its rows;
// all mutation goes through the transition methods.
type Table struct {
	cols schema.Columns
	rows []*row
}

// New creates an empty table over the given columns.
func New(cols schema.Columns) (*Table, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	return &Table{cols: cols}, nil
}

// Columns returns the table's column layout.
func (t *Table) Columns() schema.Columns {
	return t.cols
}

// Load replaces all rows with Display rows built from the given
// records, preserving record order. Used when the authoritative account
// list arrives from the service.
func (t *Table) Load(records []schema.Record) {
	rows := make([]*row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, &row{
			id:    uuid.NewString(),
			state: Display,
			cells: schema.Encode(rec, t.cols),
		})
	}
	t.rows = rows
}

// AddDraft appends a new draft row with all cells empty and returns its
// ID. Only one draft may be pending at a time.
func (t *Table) AddDraft() (string, error) {
	for _, r := range t.rows {
		if r.state == Draft {
			return "", ErrDraftPending
		}
	}
	r := &row{
		id:    uuid.NewString(),
		state: Draft,
		cells: make([]string, len(t.cols)),
		draft: make([]string, len(t.cols)),
	}
	t.rows = append(t.rows, r)
	return r.id, nil
}

// BeginEdit moves a Display row to Editing, seeding the draft cells
// with the current committed values.
func (t *Table) BeginEdit(id string) error {
	r := t.find(id)
	if r == nil {
		return ErrRowNotFound
	}
	if r.state != Display {
		return nil
	}
	r.state = Editing
	r.draft = append([]string(nil), r.cells...)
	r.invalid = nil
	return nil
}

// SetDraftCell updates one in-progress cell value on an Editing or
// Draft row. Out-of-range and stale IDs are rejected.
func (t *Table) SetDraftCell(id string, col int, value string) error {
	r := t.find(id)
	if r == nil {
		return ErrRowNotFound
	}
	if r.state == Display {
		return fmt.Errorf("table: row %s is not editable", id)
	}
	if col < 0 || col >= len(t.cols) {
		return fmt.Errorf("table: column %d out of range", col)
	}
	r.draft[col] = value
	return nil
}

// Commit validates the given values and, if every cell is non-empty,
// transitions the row to Display. A rejected commit leaves the row in
// its current editable state with the empty cells marked invalid;
// validation failures never surface as errors. The returned error is
// reserved for stale IDs and shape mismatches.
func (t *Table) Commit(id string, values []string) (CommitResult, error) {
	r := t.find(id)
	if r == nil {
		return CommitResult{}, ErrRowNotFound
	}
	if len(values) != len(t.cols) {
		return CommitResult{}, &schema.MismatchError{Cells: len(values), Columns: len(t.cols)}
	}

	invalid := make([]bool, len(values))
	rejected := false
	for i, v := range values {
		if v == "" {
			invalid[i] = true
			rejected = true
		}
	}
	if rejected {
		r.invalid = invalid
		return CommitResult{Committed: false, Invalid: invalid}, nil
	}

	r.cells = append([]string(nil), values...)
	r.draft = nil
	r.invalid = nil
	r.state = Display
	return CommitResult{Committed: true}, nil
}

// Cancel reverses BeginEdit or AddDraft without persisting changes: an
// Editing row returns to Display with its committed values intact, a
// Draft row is removed. Calling it again, or on a Display row, is a
// no-op so toggling UI controls can call it blindly.
func (t *Table) Cancel(id string) {
	for i, r := range t.rows {
		if r.id != id {
			continue
		}
		switch r.state {
		case Editing:
			r.state = Display
			r.draft = nil
			r.invalid = nil
		case Draft:
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
		}
		return
	}
}

// Delete removes the row unconditionally. Deleting a draft re-enables
// AddDraft. A stale ID is a no-op.
func (t *Table) Delete(id string) {
	for i, r := range t.rows {
		if r.id == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return
		}
	}
}

// HasDraft reports whether an uncommitted draft row exists, i.e.
// whether the add control should be disabled.
func (t *Table) HasDraft() bool {
	for _, r := range t.rows {
		if r.state == Draft {
			return true
		}
	}
	return false
}

// Len returns the number of rows in any state.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a snapshot of all rows in display order. The snapshot
// copies cell slices so callers cannot mutate table state.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, Row{
			ID:         r.id,
			State:      r.state,
			Cells:      append([]string(nil), r.cells...),
			DraftCells: append([]string(nil), r.draft...),
			Invalid:    append([]bool(nil), r.invalid...),
		})
	}
	return out
}

// Serialize produces the ordered records for all Display rows via the
// codec. Rows still in Editing or Draft state are excluded: uncommitted
// values never reach the outbound sync payload.
func (t *Table) Serialize() ([]schema.Record, error) {
	records := make([]schema.Record, 0, len(t.rows))
	for _, r := range t.rows {
		if r.state != Display {
			continue
		}
		rec, err := schema.Decode(r.cells, t.cols)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (t *Table) find(id string) *row {
	for _, r := range t.rows {
		if r.id == id {
			return r
		}
	}
	return nil
}
