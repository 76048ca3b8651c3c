package engine

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/eshaanmathakari/Datenschutz/internal/config"
	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

// applyIgnores filters issues based on config ignore rules and inline suppression markers
func applyIgnores(issues []model.Issue, cfg config.Config) []model.Issue {
	var out []model.Issue
	for _, issue := range issues {
		if isIgnored(issue, cfg) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

func isIgnored(issue model.Issue, cfg config.Config) bool {
	for _, ig := range cfg.Ignore {
		if ig.Type != "" && !strings.EqualFold(ig.Type, issue.VulnerabilityType) {
			continue
		}
		if ig.Path != "" {
			if !strings.HasPrefix(filepath.ToSlash(issue.FilePath), filepath.ToSlash(ig.Path)) {
				continue
			}
		}
		return true
	}
	// inline suppression
	if issue.VulnerabilityType != "" && hasInlineSuppression(issue.FilePath, issue.VulnerabilityType, issue.Line) {
		return true
	}
	return false
}

// hasInlineSuppression looks around the issue location for a suppression comment
// Format: # datenschutz:ignore <vulnerability_type>
func hasInlineSuppression(filePath, vulnType string, line int) bool {
	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer f.Close()
	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if len(lines) == 0 {
		return false
	}
	from := line - 1 - 5
	if from < 0 {
		from = 0
	}
	to := line - 1 + 1
	if to >= len(lines) {
		to = len(lines) - 1
	}
	needle := "datenschutz:ignore " + vulnType
	for i := from; i <= to; i++ {
		if strings.Contains(lines[i], needle) {
			return true
		}
	}
	return false
}
