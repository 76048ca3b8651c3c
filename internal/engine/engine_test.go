package engine

import (
	"context"
	"testing"

	"github.com/eshaanmathakari/Datenschutz/internal/config"
	"github.com/eshaanmathakari/Datenschutz/internal/llm"
	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

const safeSource = "def add(a, b):\n    return a + b\n"

const vulnerableSource = `query = f"SELECT * FROM users WHERE id = {user_id}"
digest = hashlib.md5(payload)
os.system("ping " + host + " " + flags)
`

func newTestEngine(cfg config.Config) *Engine {
	analyzer := llm.NewAnalyzer(llm.NoneBackend{}, "medium", 0.2, 1200, false)
	return New(cfg, analyzer)
}

func defaultOptions() model.ScanOptions {
	return model.ScanOptions{
		IncludeExts:       []string{".py"},
		MaxFileMB:         1.5,
		ChunkMaxLines:     400,
		ChunkOverlapLines: 40,
	}
}

func TestScanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "safe.py", safeSource)
	writeFile(t, dir, "vulnerable.py", vulnerableSource)

	eng := newTestEngine(config.Default())
	result, err := eng.Scan(context.Background(), model.ScanRequest{Path: dir, Options: defaultOptions()})
	if err != nil {
		t.Fatal(err)
	}

	if result.Summary.NumFiles != 2 {
		t.Errorf("num_files = %d, want 2", result.Summary.NumFiles)
	}
	if result.Summary.NumIssues != 3 {
		for _, issue := range result.Issues {
			t.Logf("issue: %s %s line %d", issue.VulnerabilityType, issue.Severity, issue.Line)
		}
		t.Fatalf("num_issues = %d, want 3", result.Summary.NumIssues)
	}
	if result.Summary.NumIssues != len(result.Issues) {
		t.Errorf("summary count %d does not match issue list %d", result.Summary.NumIssues, len(result.Issues))
	}

	total := 0
	for _, n := range result.Summary.BySeverity {
		total += n
	}
	if total != result.Summary.NumIssues {
		t.Errorf("by_severity sums to %d, want %d", total, result.Summary.NumIssues)
	}

	wantByType := map[string]struct {
		severity model.Severity
		cwe      string
		line     int
	}{
		"sql_injection":     {model.SeverityHigh, "CWE-89", 1},
		"weak_crypto":       {model.SeverityHigh, "CWE-327", 2},
		"command_injection": {model.SeverityCritical, "CWE-78", 3},
	}
	for _, issue := range result.Issues {
		want, ok := wantByType[issue.VulnerabilityType]
		if !ok {
			t.Errorf("unexpected issue type %q", issue.VulnerabilityType)
			continue
		}
		if issue.Severity != want.severity {
			t.Errorf("%s severity = %s, want %s", issue.VulnerabilityType, issue.Severity, want.severity)
		}
		if issue.CWE != want.cwe {
			t.Errorf("%s cwe = %s, want %s", issue.VulnerabilityType, issue.CWE, want.cwe)
		}
		if issue.Line != want.line {
			t.Errorf("%s line = %d, want %d", issue.VulnerabilityType, issue.Line, want.line)
		}
		if issue.ID == "" {
			t.Errorf("%s has no id", issue.VulnerabilityType)
		}
	}
}

func TestScanPreservesOverlapDuplicates(t *testing.T) {
	dir := t.TempDir()
	// six lines; line 3 sits in the overlap of both windows (1-4 and 3-6)
	writeFile(t, dir, "dup.py", "a = 1\nb = 2\ndigest = hashlib.md5(payload)\nc = 3\nd = 4\ne = 5\n")

	opts := defaultOptions()
	opts.ChunkMaxLines = 4
	opts.ChunkOverlapLines = 2

	eng := newTestEngine(config.Default())
	result, err := eng.Scan(context.Background(), model.ScanRequest{Path: dir, Options: opts})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected the overlap duplicate to be preserved (2 issues), got %d", len(result.Issues))
	}
	for _, issue := range result.Issues {
		if issue.VulnerabilityType != "weak_crypto" || issue.Line != 3 {
			t.Errorf("unexpected issue %s at line %d", issue.VulnerabilityType, issue.Line)
		}
	}
}

func TestScanSingleFilePath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "only.py", vulnerableSource)

	eng := newTestEngine(config.Default())
	result, err := eng.Scan(context.Background(), model.ScanRequest{Path: path, Options: defaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary.NumFiles != 1 {
		t.Errorf("num_files = %d, want 1", result.Summary.NumFiles)
	}
	if result.Summary.NumIssues != 3 {
		t.Errorf("num_issues = %d, want 3", result.Summary.NumIssues)
	}
}

func TestScanCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vulnerable.py", vulnerableSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := newTestEngine(config.Default())
	result, err := eng.Scan(ctx, model.ScanRequest{Path: dir, Options: defaultOptions()})
	if err != nil {
		t.Fatalf("cancelled scan must still return a result, got error %v", err)
	}
	if result.Summary.NumFiles != 0 || result.Summary.NumIssues != 0 {
		t.Errorf("cancelled scan processed files=%d issues=%d, want 0/0",
			result.Summary.NumFiles, result.Summary.NumIssues)
	}
}

func TestScanConfigIgnoreRules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vulnerable.py", vulnerableSource)

	cfg := config.Default()
	cfg.Ignore = []config.IgnoreRule{{Type: "weak_crypto", Reason: "accepted risk"}}

	eng := newTestEngine(cfg)
	result, err := eng.Scan(context.Background(), model.ScanRequest{Path: dir, Options: defaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	for _, issue := range result.Issues {
		if issue.VulnerabilityType == "weak_crypto" {
			t.Error("ignored vulnerability type still reported")
		}
	}
	if len(result.Issues) != 2 {
		t.Errorf("expected 2 issues after ignore, got %d", len(result.Issues))
	}
}

func TestScanInlineSuppression(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "suppressed.py", "# datenschutz:ignore weak_crypto\ndigest = hashlib.md5(payload)\n")

	eng := newTestEngine(config.Default())
	result, err := eng.Scan(context.Background(), model.ScanRequest{Path: dir, Options: defaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected inline suppression to drop the issue, got %d issues", len(result.Issues))
	}
}

func TestBaselineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vulnerable.py", vulnerableSource)

	eng := newTestEngine(config.Default())
	result, err := eng.Scan(context.Background(), model.ScanRequest{Path: dir, Options: defaultOptions()})
	if err != nil {
		t.Fatal(err)
	}

	baselinePath := writeFile(t, dir, "baseline.json", "")
	if err := WriteBaseline(baselinePath, result.Issues); err != nil {
		t.Fatal(err)
	}
	known, err := LoadBaseline(baselinePath)
	if err != nil {
		t.Fatal(err)
	}
	remaining := FilterByBaseline(result.Issues, known)
	if len(remaining) != 0 {
		t.Errorf("expected baseline to suppress all issues, %d remain", len(remaining))
	}
}
