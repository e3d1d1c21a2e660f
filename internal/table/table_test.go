package table

import (
	"errors"
	"reflect"
	"testing"

	"budgetdeck/internal/schema"
)

func newTestTable(t *testing.T, cols ...string) *Table {
	t.Helper()
	if len(cols) == 0 {
		cols = []string{"AccountName", "Balance"}
	}
	tbl, err := New(schema.Columns(cols))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestCommitThenSerialize(t *testing.T) {
	tbl := newTestTable(t)

	id, err := tbl.AddDraft()
	if err != nil {
		t.Fatalf("AddDraft: %v", err)
	}

	res, err := tbl.Commit(id, []string{"Checking", "100"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !res.Committed {
		t.Fatalf("commit rejected, invalid = %v", res.Invalid)
	}

	records, err := tbl.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := []schema.Record{{"AccountName": "Checking", "Balance": "100"}}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("records = %v, want %v", records, want)
	}
}

func TestAddDraftRefusedWhilePending(t *testing.T) {
	tbl := newTestTable(t)

	if _, err := tbl.AddDraft(); err != nil {
		t.Fatalf("first AddDraft: %v", err)
	}
	if _, err := tbl.AddDraft(); !errors.Is(err, ErrDraftPending) {
		t.Fatalf("second AddDraft error = %v, want ErrDraftPending", err)
	}
}

func TestAddDraftReenabledAfterCommitCancelDelete(t *testing.T) {
	tbl := newTestTable(t)

	// Commit re-enables.
	id, _ := tbl.AddDraft()
	if _, err := tbl.Commit(id, []string{"A", "1"}); err != nil {
		t.Fatal(err)
	}
	id2, err := tbl.AddDraft()
	if err != nil {
		t.Fatalf("AddDraft after commit: %v", err)
	}

	// Cancel re-enables.
	tbl.Cancel(id2)
	id3, err := tbl.AddDraft()
	if err != nil {
		t.Fatalf("AddDraft after cancel: %v", err)
	}

	// Delete re-enables.
	tbl.Delete(id3)
	if _, err := tbl.AddDraft(); err != nil {
		t.Fatalf("AddDraft after delete: %v", err)
	}
}

func TestCommitRejectsEmptyCells(t *testing.T) {
	tbl := newTestTable(t, "AccountName", "Balance", "Type")
	id, _ := tbl.AddDraft()

	res, err := tbl.Commit(id, []string{"Checking", "", "CHECKING"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Committed {
		t.Fatal("commit should have been rejected")
	}
	if !reflect.DeepEqual(res.Invalid, []bool{false, true, false}) {
		t.Fatalf("invalid = %v, want only the empty cell marked", res.Invalid)
	}

	// The row stays a draft and serialization excludes it.
	rows := tbl.Rows()
	if len(rows) != 1 || rows[0].State != Draft {
		t.Fatalf("row state = %v, want Draft", rows[0].State)
	}
	records, err := tbl.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("serialize included uncommitted row: %v", records)
	}
}

func TestCommitShapeMismatch(t *testing.T) {
	tbl := newTestTable(t)
	id, _ := tbl.AddDraft()

	_, err := tbl.Commit(id, []string{"only one"})
	var me *schema.MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("error = %v, want *schema.MismatchError", err)
	}
}

func TestBeginEditAndCancelIdempotent(t *testing.T) {
	tbl := newTestTable(t)
	id, _ := tbl.AddDraft()
	if _, err := tbl.Commit(id, []string{"Checking", "100"}); err != nil {
		t.Fatal(err)
	}

	if err := tbl.BeginEdit(id); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := tbl.SetDraftCell(id, 1, "250"); err != nil {
		t.Fatalf("SetDraftCell: %v", err)
	}

	tbl.Cancel(id)
	tbl.Cancel(id) // second cancel must change nothing

	rows := tbl.Rows()
	if rows[0].State != Display {
		t.Fatalf("state = %v, want Display", rows[0].State)
	}
	if rows[0].Cells[1] != "100" {
		t.Fatalf("balance = %q, want the pre-edit value 100", rows[0].Cells[1])
	}
}

func TestCancelRemovesDraftRow(t *testing.T) {
	tbl := newTestTable(t)
	id, _ := tbl.AddDraft()

	tbl.Cancel(id)
	if tbl.Len() != 0 {
		t.Fatalf("len = %d, want 0", tbl.Len())
	}
	tbl.Cancel(id) // stale ID is a no-op
}

func TestBeginEditStaleID(t *testing.T) {
	tbl := newTestTable(t)
	id, _ := tbl.AddDraft()
	if _, err := tbl.Commit(id, []string{"A", "1"}); err != nil {
		t.Fatal(err)
	}
	tbl.Delete(id)

	if err := tbl.BeginEdit(id); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("error = %v, want ErrRowNotFound", err)
	}
}

func TestSerializeExcludesEditingRows(t *testing.T) {
	tbl := newTestTable(t)
	tbl.Load([]schema.Record{
		{"AccountName": "Checking", "Balance": "100"},
		{"AccountName": "Savings", "Balance": "900"},
	})

	rows := tbl.Rows()
	if err := tbl.BeginEdit(rows[0].ID); err != nil {
		t.Fatal(err)
	}

	records, err := tbl.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (editing row excluded)", len(records))
	}
	if records[0]["AccountName"] != "Savings" {
		t.Fatalf("record = %v, want Savings row", records[0])
	}
}

func TestLoadPreservesOrderAndAssignsIDs(t *testing.T) {
	tbl := newTestTable(t)
	tbl.Load([]schema.Record{
		{"AccountName": "A", "Balance": "1"},
		{"AccountName": "B", "Balance": "2"},
	})

	rows := tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].Cells[0] != "A" || rows[1].Cells[0] != "B" {
		t.Fatalf("order not preserved: %v", rows)
	}
	if rows[0].ID == "" || rows[0].ID == rows[1].ID {
		t.Fatal("rows must get distinct non-empty IDs")
	}
}

func TestRowIdentitySurvivesDeletion(t *testing.T) {
	tbl := newTestTable(t)
	tbl.Load([]schema.Record{
		{"AccountName": "A", "Balance": "1"},
		{"AccountName": "B", "Balance": "2"},
		{"AccountName": "C", "Balance": "3"},
	})

	rows := tbl.Rows()
	tbl.Delete(rows[0].ID)

	// The handle to C is positional-independent and still valid.
	if err := tbl.BeginEdit(rows[2].ID); err != nil {
		t.Fatalf("BeginEdit after delete: %v", err)
	}
}

func TestRowsSnapshotIsDetached(t *testing.T) {
	tbl := newTestTable(t)
	tbl.Load([]schema.Record{{"AccountName": "A", "Balance": "1"}})

	rows := tbl.Rows()
	rows[0].Cells[0] = "mutated"

	if got := tbl.Rows()[0].Cells[0]; got != "A" {
		t.Fatalf("table state mutated through snapshot: %q", got)
	}
}
