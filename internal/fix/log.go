package fix

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eshaanmathakari/Datenschutz/internal/logging"
)

// Record is one structured fix-log entry, written as its own JSON file so
// entries can be aged out individually.
type Record struct {
	Timestamp         time.Time `json:"timestamp"`
	IssueID           string    `json:"issue_id"`
	Title             string    `json:"title"`
	Severity          string    `json:"severity"`
	VulnerabilityType string    `json:"vulnerability_type,omitempty"`
	FilePath          string    `json:"file_path"`
	Before            string    `json:"before"`
	After             string    `json:"after"`
	Patch             string    `json:"patch"`
}

type LogStore struct {
	dir string
}

func NewLogStore(dir string) *LogStore {
	if dir == "" {
		dir = "fix_logs"
	}
	return &LogStore{dir: dir}
}

func (s *LogStore) Dir() string { return s.dir }

func (s *LogStore) Append(rec Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s.json",
		rec.Timestamp.Format(backupTimeFormat), filepath.Base(rec.FilePath))
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

// List returns all log records, newest last. Unreadable entries are skipped.
func (s *LogStore) List() []Record {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var out []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(b, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Cleanup deletes log entries older than retentionDays. Best-effort
// housekeeping: failures are logged and never returned.
func (s *LogStore) Cleanup(retentionDays int) {
	sweepOld(s.dir, retentionDays)
}

// CleanupBackups applies the same retention policy to a backup directory.
func CleanupBackups(dir string, retentionDays int) {
	sweepOld(dir, retentionDays)
}

func sweepOld(dir string, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				logging.Logger.Debugw("retention sweep failed to remove entry", "entry", e.Name(), "err", err)
			}
		}
	}
}
