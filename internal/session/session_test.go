package session

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nkrishang/invoicepad/internal/draft"
	"github.com/nkrishang/invoicepad/internal/models"
	"github.com/nkrishang/invoicepad/internal/notify"
)

func setupStore(t *testing.T) *draft.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&draft.Record{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return draft.NewStore(db)
}

func TestMutateAutosavesAfterQuietWindow(t *testing.T) {
	store := setupStore(t)
	s := NewWithDebounce(store, notify.NewCenter(), 10*time.Millisecond)
	defer s.Close()

	if err := s.Mutate(func(inv *models.Invoice) error {
		inv.InvoiceNumber = "INV-3"
		return nil
	}); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	time.Sleep(60 * time.Millisecond)
	if got := store.Load(); got.InvoiceNumber != "INV-3" {
		t.Errorf("persisted InvoiceNumber = %q, want INV-3", got.InvoiceNumber)
	}
}

func TestMutateErrorSkipsAutosave(t *testing.T) {
	store := setupStore(t)
	s := NewWithDebounce(store, notify.NewCenter(), 10*time.Millisecond)
	defer s.Close()

	err := s.Mutate(func(inv *models.Invoice) error {
		return inv.UpdateField("nonsense", []byte(`1`))
	})
	if err == nil {
		t.Fatal("expected error from unknown field")
	}
	time.Sleep(60 * time.Millisecond)
	if got := store.Load(); got.InvoiceNumber != "" {
		t.Errorf("rejected mutation was persisted: %+v", got)
	}
}

func TestSnapshotDoesNotAliasItems(t *testing.T) {
	s := NewWithDebounce(setupStore(t), notify.NewCenter(), time.Hour)
	defer s.Close()

	snap := s.Snapshot()
	if len(snap.Items) == 0 {
		t.Fatal("expected starter item")
	}
	snap.Items[0].Description = "tampered"
	if got := s.Snapshot().Items[0].Description; got == "tampered" {
		t.Error("snapshot shares the live items slice")
	}
}

func TestExportFlagIsExclusive(t *testing.T) {
	s := NewWithDebounce(setupStore(t), notify.NewCenter(), time.Hour)
	defer s.Close()

	if !s.BeginExport() {
		t.Fatal("first BeginExport should succeed")
	}
	if s.BeginExport() {
		t.Error("second BeginExport should be rejected while busy")
	}
	s.EndExport()
	if !s.BeginExport() {
		t.Error("BeginExport should succeed again after EndExport")
	}
	s.EndExport()
}

func TestCloseFlushesPendingAutosave(t *testing.T) {
	store := setupStore(t)
	s := NewWithDebounce(store, notify.NewCenter(), time.Hour)

	if err := s.Mutate(func(inv *models.Invoice) error {
		inv.InvoiceNumber = "INV-8"
		return nil
	}); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	// The hour-long window has not elapsed; Close must write anyway.
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := store.Load(); got.InvoiceNumber != "INV-8" {
		t.Errorf("InvoiceNumber = %q after close, want INV-8", got.InvoiceNumber)
	}
}
