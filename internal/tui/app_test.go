package tui

import (
	"context"
	"strings"
	"testing"

	"budgetdeck/internal/budgetapi"
	"budgetdeck/internal/schema"
	"budgetdeck/internal/session"
	"budgetdeck/internal/table"
)

func testApp(t *testing.T) App {
	t.Helper()

	sess := session.New(budgetapi.StaticToken("tok"), nil)
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	tbl, err := table.New(schema.AccountColumns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tbl.Load([]schema.Record{
		{"AccountName": "Checking", "Balance": "100", "Type": "Depository"},
		{"AccountName": "Visa", "Balance": "-250", "Type": "Credit"},
	})

	a := App{sess: sess, accounts: tbl, acctLoaded: true, fcLoaded: true}
	return a
}

func TestSecondAddIsRefused(t *testing.T) {
	a := testApp(t)

	m, _, handled := a.updateAccountsKeys("a")
	if !handled {
		t.Fatal("key a should be handled")
	}
	a = m.(App)
	if !a.acct.editing() {
		t.Fatal("add should enter edit mode")
	}
	if a.accounts.Len() != 3 {
		t.Fatalf("Len = %d, want draft appended", a.accounts.Len())
	}

	// Leave edit mode without resolving the draft, then try to add again.
	a.acct = accountsState{cursor: a.acct.cursor}
	m, _, _ = a.updateAccountsKeys("a")
	a = m.(App)
	if a.flash == "" {
		t.Error("second add should flash a pending-draft notice")
	}
	if a.accounts.Len() != 3 {
		t.Errorf("Len = %d, second draft must not be created", a.accounts.Len())
	}
}

func TestDeleteRow(t *testing.T) {
	a := testApp(t)

	a.acct.cursor = 1
	m, _, _ := a.updateAccountsKeys("d")
	a = m.(App)

	if a.accounts.Len() != 1 {
		t.Fatalf("Len = %d after delete", a.accounts.Len())
	}
	if a.acct.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to remaining rows", a.acct.cursor)
	}
}

func TestSaveWhilePushing(t *testing.T) {
	a := testApp(t)

	m, cmd, _ := a.updateAccountsKeys("s")
	a = m.(App)
	if cmd == nil {
		t.Fatal("save should produce a push command")
	}
	if !a.sess.Pushing() {
		t.Fatal("push flag should be held")
	}

	m, cmd, _ = a.updateAccountsKeys("s")
	a = m.(App)
	if cmd != nil {
		t.Error("second save should not start another push")
	}
	if !strings.Contains(a.flash, "in flight") {
		t.Errorf("flash = %q", a.flash)
	}
}

func TestStatusRightPrefersFlash(t *testing.T) {
	a := testApp(t)
	a.provenance = "fetched 12:00:00"

	if got := a.statusRight(); got != "fetched 12:00:00" {
		t.Errorf("statusRight = %q", got)
	}

	a.flash = "save failed: boom"
	if got := a.statusRight(); got != "save failed: boom" {
		t.Errorf("statusRight = %q, want flash to win", got)
	}
}
