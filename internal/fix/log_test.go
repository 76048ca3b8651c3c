package fix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogStoreAppendAndList(t *testing.T) {
	store := NewLogStore(filepath.Join(t.TempDir(), "logs"))
	rec := Record{
		Timestamp: time.Now(),
		IssueID:   "abc",
		Title:     "SQL Injection Vulnerability",
		Severity:  "high",
		FilePath:  "/tmp/app.py",
		Before:    "bad",
		After:     "good",
		Patch:     "--- app.py",
	}
	if err := store.Append(rec); err != nil {
		t.Fatal(err)
	}
	records := store.List()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].IssueID != "abc" || records[0].After != "good" {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestCleanupRemovesOldEntries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	store := NewLogStore(dir)

	old := Record{Timestamp: time.Now().Add(-1 * time.Hour), IssueID: "old", FilePath: "a.py"}
	recent := Record{Timestamp: time.Now(), IssueID: "recent", FilePath: "b.py"}
	if err := store.Append(old); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(recent); err != nil {
		t.Fatal(err)
	}

	// age the first entry past the retention window
	entries, _ := os.ReadDir(dir)
	aged := time.Now().AddDate(0, 0, -20)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_a.py.json") {
			if err := os.Chtimes(filepath.Join(dir, e.Name()), aged, aged); err != nil {
				t.Fatal(err)
			}
		}
	}

	store.Cleanup(14)
	records := store.List()
	if len(records) != 1 {
		t.Fatalf("expected 1 record after cleanup, got %d", len(records))
	}
	if records[0].IssueID != "recent" {
		t.Errorf("wrong record survived: %+v", records[0])
	}
}

func TestCleanupZeroRetentionIsNoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	store := NewLogStore(dir)
	if err := store.Append(Record{Timestamp: time.Now(), IssueID: "keep", FilePath: "a.py"}); err != nil {
		t.Fatal(err)
	}
	store.Cleanup(0)
	if len(store.List()) != 1 {
		t.Error("zero retention must not delete anything")
	}
}
