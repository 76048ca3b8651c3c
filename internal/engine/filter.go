package engine

import (
	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

// filterBySeverity removes issues below the configured severity threshold
func filterBySeverity(issues []model.Issue, threshold model.Severity) []model.Issue {
	var out []model.Issue
	for _, issue := range issues {
		if model.SeverityGTE(issue.Severity, threshold) {
			out = append(out, issue)
		}
	}
	return out
}
