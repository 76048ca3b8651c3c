package report

import (
	"encoding/json"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}
type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}
type sarifArt struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func ToSARIF(issues []model.Issue) ([]byte, error) {
	var results []sarifResult
	for _, issue := range issues {
		level := "note"
		switch issue.Severity {
		case model.SeverityLow:
			level = "note"
		case model.SeverityMedium:
			level = "warning"
		case model.SeverityHigh, model.SeverityCritical:
			level = "error"
		}
		ruleID := issue.VulnerabilityType
		if ruleID == "" {
			ruleID = "model_finding"
		}
		text := issue.Title
		if issue.CWE != "" {
			text += " (" + issue.CWE + ")"
		}
		r := sarifResult{
			RuleID:  ruleID,
			Level:   level,
			Message: sarifMessage{Text: text},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: issue.FilePath},
				Region:           sarifRegion{StartLine: issue.Line},
			}}},
		}
		if issue.Fingerprint != "" {
			r.PartialFingerprints = map[string]string{"datenschutz/v1": issue.Fingerprint}
		}
		results = append(results, r)
	}
	s := sarif{Version: "2.1.0", Runs: []sarifRun{{Tool: sarifTool{Driver: sarifDriver{Name: "datenschutz"}}, Results: results}}}
	return json.MarshalIndent(s, "", "  ")
}
