package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/relay-go/internal/domain"
)

func tempFileStore(t *testing.T) *FileStore {
	t.Helper()
	return &FileStore{path: filepath.Join(t.TempDir(), "invocations.jsonl")}
}

func sampleRecord(id, actionID string, ts time.Time) domain.InvocationRecord {
	return domain.InvocationRecord{
		ID:        id,
		Timestamp: ts,
		ActionID:  actionID,
		Executed:  true,
		ExitCode:  0,
	}
}

func TestFileStoreSaveAndRecords(t *testing.T) {
	store := tempFileStore(t)
	now := time.Now()

	if err := store.Save(sampleRecord("a", "health/check", now)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(sampleRecord("b", "reports/disk-usage", now.Add(time.Second))); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// newest first
	if records[0].ID != "b" || records[1].ID != "a" {
		t.Errorf("order = %s, %s; want b, a", records[0].ID, records[1].ID)
	}
}

func TestFileStoreSearchAndLimit(t *testing.T) {
	store := tempFileStore(t)
	now := time.Now()
	for i, action := range []string{"health/check", "reports/disk-usage", "reports/summary"} {
		rec := sampleRecord(string(rune('a'+i)), action, now.Add(time.Duration(i)*time.Second))
		if err := store.Save(rec); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.Records(0, "reports")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("search matched %d records, want 2", len(records))
	}

	records, err = store.Records(1, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("limit ignored, got %d records", len(records))
	}
}

func TestFileStoreClear(t *testing.T) {
	store := tempFileStore(t)
	if err := store.Save(sampleRecord("a", "health/check", time.Now())); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on empty store error = %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after clear, want 0", len(records))
	}
}

func TestFileStoreExportJSON(t *testing.T) {
	store := tempFileStore(t)
	if err := store.Save(sampleRecord("a", "health/check", time.Now())); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "export.jsonl")
	if err := store.ExportJSON(dest); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	exported := &FileStore{path: dest}
	records, err := exported.Records(0, "")
	if err != nil {
		t.Fatalf("Records() on export error = %v", err)
	}
	if len(records) != 1 || records[0].ID != "a" {
		t.Errorf("export content = %+v", records)
	}
}
