package fix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

func newTestApplier(t *testing.T) (*Applier, string, string) {
	t.Helper()
	backupDir := filepath.Join(t.TempDir(), "backups")
	logDir := filepath.Join(t.TempDir(), "logs")
	return NewApplier(backupDir, NewLogStore(logDir)), backupDir, logDir
}

func writeTarget(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func issueWithFix(path, before, after string) model.Issue {
	return model.Issue{
		ID:       "issue-1",
		Title:    "Hardcoded Secret Detected",
		Severity: model.SeverityCritical,
		FilePath: path,
		Fix:      &model.Fix{Before: before, After: after},
	}
}

func TestApplyReplacesFirstOccurrenceOnly(t *testing.T) {
	applier, backupDir, _ := newTestApplier(t)
	path := writeTarget(t, "secret = \"a\"\nother = 1\nsecret = \"a\"\n")

	res := applier.Apply(issueWithFix(path, `secret = "a"`, `secret = os.getenv("SECRET", "")`))
	if !res.Applied {
		t.Fatalf("apply failed: %s", res.Reason)
	}
	if res.Patch == "" {
		t.Error("expected a patch preview")
	}

	got, _ := os.ReadFile(path)
	want := "secret = os.getenv(\"SECRET\", \"\")\nother = 1\nsecret = \"a\"\n"
	if string(got) != want {
		t.Errorf("file content = %q, want first occurrence only replaced: %q", got, want)
	}

	backups, err := os.ReadDir(backupDir)
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d (err %v)", len(backups), err)
	}
	backup, _ := os.ReadFile(filepath.Join(backupDir, backups[0].Name()))
	if !strings.Contains(string(backup), "secret = \"a\"\nother = 1\n") {
		t.Error("backup does not hold the pre-fix content")
	}
}

func TestApplyBeforeNotFound(t *testing.T) {
	applier, backupDir, _ := newTestApplier(t)
	original := "x = 1\n"
	path := writeTarget(t, original)

	res := applier.Apply(issueWithFix(path, "y = 2", "y = 3"))
	if res.Applied {
		t.Fatal("apply must fail when before snippet is absent")
	}
	if res.Reason != ReasonNotApplicable {
		t.Errorf("reason = %q, want %q", res.Reason, ReasonNotApplicable)
	}
	got, _ := os.ReadFile(path)
	if string(got) != original {
		t.Error("file must be left unchanged on failure")
	}
	if _, err := os.ReadDir(backupDir); !os.IsNotExist(err) {
		t.Error("no backup should be written for a non-applicable fix")
	}
}

func TestApplyPreconditions(t *testing.T) {
	applier, _, _ := newTestApplier(t)
	path := writeTarget(t, "x = 1\n")

	tests := []struct {
		name   string
		issue  model.Issue
		reason string
	}{
		{"no_fix", model.Issue{FilePath: path}, ReasonNoFix},
		{"no_path", model.Issue{Fix: &model.Fix{Before: "a", After: "b"}}, ReasonNoFix},
		{"empty_before", issueWithFix(path, "", "b"), ReasonInvalidFix},
		{"empty_after", issueWithFix(path, "a", ""), ReasonInvalidFix},
		{"missing_file", issueWithFix(filepath.Join(t.TempDir(), "gone.py"), "a", "b"), ReasonFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := applier.Apply(tt.issue)
			if res.Applied {
				t.Fatal("apply must fail")
			}
			if res.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", res.Reason, tt.reason)
			}
		})
	}
}

func TestApplyWritesLogRecord(t *testing.T) {
	applier, _, logDir := newTestApplier(t)
	path := writeTarget(t, "password = \"hunter2\"\n")

	res := applier.Apply(issueWithFix(path, `password = "hunter2"`, `password = os.getenv("PASSWORD", "")`))
	if !res.Applied {
		t.Fatalf("apply failed: %s", res.Reason)
	}
	records := NewLogStore(logDir).List()
	if len(records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(records))
	}
	rec := records[0]
	if rec.IssueID != "issue-1" || rec.Before != `password = "hunter2"` {
		t.Errorf("unexpected log record %+v", rec)
	}
}

func TestUndoRestoresNewestBackup(t *testing.T) {
	applier, _, _ := newTestApplier(t)
	original := "value = \"one\"\n"
	path := writeTarget(t, original)

	if res := applier.Apply(issueWithFix(path, `value = "one"`, `value = "two"`)); !res.Applied {
		t.Fatalf("apply failed: %s", res.Reason)
	}
	res := applier.Undo(path)
	if !res.Applied {
		t.Fatalf("undo failed: %s", res.Reason)
	}
	got, _ := os.ReadFile(path)
	if string(got) != original {
		t.Errorf("undo restored %q, want %q", got, original)
	}
}

func TestUndoWithoutBackups(t *testing.T) {
	applier, _, _ := newTestApplier(t)
	res := applier.Undo(filepath.Join(t.TempDir(), "never-fixed.py"))
	if res.Applied {
		t.Fatal("undo must fail when no backup exists")
	}
}
