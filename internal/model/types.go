package model

import (
	"strings"
	"time"
)

type Language string

const (
	LangPython     Language = "Python"
	LangJavaScript Language = "JavaScript"
	LangTypeScript Language = "TypeScript"
	LangSolidity   Language = "Solidity"
	LangGo         Language = "Go"
	LangUnknown    Language = "Unknown"
)

// LanguageForPath maps a file extension to the label used in model prompts.
func LanguageForPath(path string) Language {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".py"):
		return LangPython
	case strings.HasSuffix(lower, ".js"), strings.HasSuffix(lower, ".jsx"):
		return LangJavaScript
	case strings.HasSuffix(lower, ".ts"), strings.HasSuffix(lower, ".tsx"):
		return LangTypeScript
	case strings.HasSuffix(lower, ".sol"):
		return LangSolidity
	case strings.HasSuffix(lower, ".go"):
		return LangGo
	}
	return LangUnknown
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity normalizes a severity string; anything unrecognized becomes medium.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(s)) {
	case SeverityLow:
		return SeverityLow
	case SeverityHigh:
		return SeverityHigh
	case SeverityCritical:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3, SeverityCritical: 4}
	return order[a] >= order[b]
}

// Fix is an exact before/after text pair describing a single-site source edit.
type Fix struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type ComplianceImpact struct {
	Framework   string `json:"framework"`
	Description string `json:"description"`
}

// Issue is one reported vulnerability with location, severity, and remediation metadata.
// If Fix is non-nil, Before is expected to occur verbatim in the file at apply time.
type Issue struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Severity          Severity           `json:"severity"`
	FilePath          string             `json:"file_path"`
	Line              int                `json:"line,omitempty"`
	Column            int                `json:"column,omitempty"`
	Suggestion        string             `json:"suggestion"`
	Fix               *Fix               `json:"fix,omitempty"`
	VulnerabilityType string             `json:"vulnerability_type,omitempty"`
	CWE               string             `json:"cwe,omitempty"`
	OWASP             string             `json:"owasp,omitempty"`
	RiskScore         float64            `json:"risk_score,omitempty"`
	Compliance        []ComplianceImpact `json:"compliance,omitempty"`
	Fingerprint       string             `json:"fingerprint,omitempty"`
}

// Chunk is a contiguous line window of one file. Line numbers embedded in the
// numbered text are globally correct, not chunk-relative.
type Chunk struct {
	FilePath  string
	Index     int
	StartLine int // 1-based file line of the window's first line
	Raw       string
	Numbered  string
	Language  Language
}

type Summary struct {
	NumFiles     int              `json:"num_files"`
	NumIssues    int              `json:"num_issues"`
	ScanDuration time.Duration    `json:"scan_duration"`
	BySeverity   map[Severity]int `json:"by_severity"`
}

// ScanResult is immutable after construction; persistence is an external concern.
type ScanResult struct {
	Summary Summary `json:"summary"`
	Issues  []Issue `json:"issues"`
}

// ScanOptions are per-scan settings supplied by the caller.
type ScanOptions struct {
	IncludeExts       []string
	MaxFileMB         float64
	ChunkMaxLines     int
	ChunkOverlapLines int
	Reasoning         string
	Temperature       float64
	MaxNewTokens      int
	Backend           string
}

type ScanRequest struct {
	Path    string
	Options ScanOptions
}

// FixResult reports the outcome of a fix application; failures carry a reason,
// never an uncaught error.
type FixResult struct {
	Applied bool   `json:"applied"`
	Patch   string `json:"patch,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
