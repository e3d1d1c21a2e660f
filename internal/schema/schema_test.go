package schema

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cols := Columns{"AccountName", "Balance"}
	rec := Record{"AccountName": "Checking", "Balance": "100"}

	cells := Encode(rec, cols)
	got, err := Decode(cells, cols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("round trip = %v, want %v", got, rec)
	}
}

func TestDecodeStrictOnShape(t *testing.T) {
	cols := Columns{"AccountName", "Balance", "Type"}

	_, err := Decode([]string{"Checking", "100"}, cols)
	if err == nil {
		t.Fatal("expected error for short row")
	}
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("error type = %T, want *MismatchError", err)
	}
	if me.Cells != 2 || me.Columns != 3 {
		t.Fatalf("mismatch = %d/%d, want 2/3", me.Cells, me.Columns)
	}
}

func TestEncodePermissiveOnMissingFields(t *testing.T) {
	cols := Columns{"AccountName", "Balance", "Type"}
	cells := Encode(Record{"AccountName": "Savings"}, cols)

	want := []string{"Savings", "", ""}
	if !reflect.DeepEqual(cells, want) {
		t.Fatalf("cells = %v, want %v", cells, want)
	}
}

func TestDecodePreservesPositionalMapping(t *testing.T) {
	rec, err := Decode([]string{"Checking", "100.50", "CHECKING", "", "", ""}, AccountColumns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["AccountName"] != "Checking" {
		t.Errorf("AccountName = %q, want Checking", rec["AccountName"])
	}
	if rec["Balance"] != "100.50" {
		t.Errorf("Balance = %q, want 100.50", rec["Balance"])
	}
	if rec["Type"] != "CHECKING" {
		t.Errorf("Type = %q, want CHECKING", rec["Type"])
	}
}

func TestColumnsValidate(t *testing.T) {
	tests := []struct {
		name    string
		cols    Columns
		wantErr bool
	}{
		{"account schema", AccountColumns, false},
		{"empty", Columns{}, true},
		{"blank name", Columns{"A", ""}, true},
		{"duplicate", Columns{"A", "B", "A"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cols.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestColumnsIndex(t *testing.T) {
	if got := AccountColumns.Index("Balance"); got != 1 {
		t.Errorf("Index(Balance) = %d, want 1", got)
	}
	if got := AccountColumns.Index("Nope"); got != -1 {
		t.Errorf("Index(Nope) = %d, want -1", got)
	}
}
