package engine

import (
	"encoding/json"
	"os"
	"time"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

type baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

// LoadBaseline reads a baseline file written by WriteBaseline. It also
// accepts a bare JSON array of fingerprints.
func LoadBaseline(path string) (map[string]bool, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fp []string
	if err := json.Unmarshal(data, &fp); err == nil {
		m := make(map[string]bool, len(fp))
		for _, f := range fp {
			m[f] = true
		}
		return m, nil
	}
	var b baseline
	_ = json.Unmarshal(data, &b)
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b.Fingerprints, nil
}

// FilterByBaseline drops issues whose fingerprint is already in the baseline.
func FilterByBaseline(issues []model.Issue, known map[string]bool) []model.Issue {
	if len(known) == 0 {
		return issues
	}
	var out []model.Issue
	for _, issue := range issues {
		if issue.Fingerprint != "" && known[issue.Fingerprint] {
			continue
		}
		out = append(out, issue)
	}
	return out
}

func WriteBaseline(path string, issues []model.Issue) error {
	if path == "" {
		return nil
	}
	b := baseline{GeneratedAt: time.Now(), Fingerprints: map[string]bool{}}
	for _, issue := range issues {
		if issue.Fingerprint != "" {
			b.Fingerprints[issue.Fingerprint] = true
		}
	}
	data, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, data, 0o644)
}
