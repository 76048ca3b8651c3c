package fix

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/eshaanmathakari/Datenschutz/internal/logging"
	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

// Failure reasons returned to callers. The applier never panics or returns a
// raw error for an expected failure; everything comes back as a FixResult.
const (
	ReasonNoFix         = "no fix provided"
	ReasonInvalidFix    = "invalid fix structure"
	ReasonFileNotFound  = "file not found"
	ReasonNotApplicable = "before snippet not found in file (file may have changed since analysis)"
)

const backupTimeFormat = "2006-01-02_15-04-05"

// Applier performs first-occurrence textual fixes against the live filesystem,
// writing a timestamped backup before every mutation and a structured log
// record after it.
type Applier struct {
	backupDir string
	log       *LogStore
}

func NewApplier(backupDir string, log *LogStore) *Applier {
	if backupDir == "" {
		backupDir = "fix_backups"
	}
	return &Applier{backupDir: backupDir, log: log}
}

// Apply replaces the first occurrence of the issue's fix.before with
// fix.after in the referenced file. First occurrence only: a global replace
// could edit sites the analysis never looked at.
func (a *Applier) Apply(issue model.Issue) model.FixResult {
	if issue.Fix == nil || issue.FilePath == "" {
		return model.FixResult{Reason: ReasonNoFix}
	}
	before, after := issue.Fix.Before, issue.Fix.After
	if before == "" || after == "" {
		return model.FixResult{Reason: ReasonInvalidFix}
	}
	if _, err := os.Stat(issue.FilePath); err != nil {
		return model.FixResult{Reason: ReasonFileNotFound}
	}

	content, err := os.ReadFile(issue.FilePath)
	if err != nil {
		return model.FixResult{Reason: fmt.Sprintf("read failed: %v", err)}
	}
	text := string(content)
	if !strings.Contains(text, before) {
		return model.FixResult{Reason: ReasonNotApplicable}
	}

	backupPath, err := a.writeBackup(issue.FilePath, content)
	if err != nil {
		return model.FixResult{Reason: fmt.Sprintf("backup failed: %v", err)}
	}

	updated := strings.Replace(text, before, after, 1)
	if err := os.WriteFile(issue.FilePath, []byte(updated), 0o644); err != nil {
		return model.FixResult{Reason: fmt.Sprintf("write failed: %v", err)}
	}

	patch := renderPatch(issue.FilePath, before, after)
	if a.log != nil {
		if err := a.log.Append(Record{
			Timestamp:         time.Now(),
			IssueID:           issue.ID,
			Title:             issue.Title,
			Severity:          string(issue.Severity),
			VulnerabilityType: issue.VulnerabilityType,
			FilePath:          issue.FilePath,
			Before:            before,
			After:             after,
			Patch:             patch,
		}); err != nil {
			logging.Logger.Warnw("fix applied but log record failed", "file", issue.FilePath, "err", err)
		}
	}
	logging.Logger.Infow("fix applied",
		"file", issue.FilePath, "issue", issue.ID, "backup", backupPath)

	return model.FixResult{Applied: true, Patch: patch}
}

// Undo restores the most recent backup for filePath, chosen by lexicographic
// order of the timestamped backup names.
func (a *Applier) Undo(filePath string) model.FixResult {
	base := filepath.Base(filePath)
	entries, err := os.ReadDir(a.backupDir)
	if err != nil {
		return model.FixResult{Reason: "no backups found"}
	}
	var candidates []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), "_"+base+".bak") {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return model.FixResult{Reason: "no backups found"}
	}
	sort.Strings(candidates)
	newest := candidates[len(candidates)-1]

	content, err := os.ReadFile(filepath.Join(a.backupDir, newest))
	if err != nil {
		return model.FixResult{Reason: fmt.Sprintf("backup read failed: %v", err)}
	}
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return model.FixResult{Reason: fmt.Sprintf("restore failed: %v", err)}
	}
	logging.Logger.Infow("backup restored", "file", filePath, "backup", newest)
	return model.FixResult{Applied: true, Patch: "restored from " + newest}
}

func (a *Applier) writeBackup(filePath string, content []byte) (string, error) {
	if err := os.MkdirAll(a.backupDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.bak", time.Now().Format(backupTimeFormat), filepath.Base(filePath))
	path := filepath.Join(a.backupDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// renderPatch produces a human-readable diff-style preview of the edit.
func renderPatch(filePath, before, after string) string {
	base := filepath.Base(filePath)
	return fmt.Sprintf("--- %s (before)\n+++ %s (after)\n@@\n%s\n@@\n%s\n",
		base, base, indent(before), indent(after))
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
