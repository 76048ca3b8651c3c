package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/eshaanmathakari/Datenschutz/internal/cache"
	"github.com/eshaanmathakari/Datenschutz/internal/logging"
	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

const defaultCallTimeout = 30 * time.Second

// Analyzer runs the model pass over chunks. Every failure mode (backend
// error, timeout, malformed output) collapses to zero issues for the chunk;
// nothing here ever propagates an error into scan orchestration.
type Analyzer struct {
	backend      Backend
	reasoning    string
	temperature  float64
	maxNewTokens int
	timeout      time.Duration
	useCache     bool
}

func NewAnalyzer(backend Backend, reasoning string, temperature float64, maxNewTokens int, useCache bool) *Analyzer {
	if reasoning == "" {
		reasoning = "medium"
	}
	if maxNewTokens <= 0 {
		maxNewTokens = 1200
	}
	return &Analyzer{
		backend:      backend,
		reasoning:    reasoning,
		temperature:  temperature,
		maxNewTokens: maxNewTokens,
		timeout:      defaultCallTimeout,
		useCache:     useCache,
	}
}

// BackendName reports which backend the analyzer ended up with, for display.
func (a *Analyzer) BackendName() string { return a.backend.Name() }

// AnalyzeChunk sends one numbered chunk to the backend and parses the
// response. The chunk's own file path always overrides whatever path the
// model put in its output.
func (a *Analyzer) AnalyzeChunk(ctx context.Context, chunk model.Chunk) []model.Issue {
	prompt := RenderPrompt(chunk.Language, chunk.FilePath, chunk.Numbered, a.reasoning)

	raw, ok := a.cachedResponse(prompt)
	if !ok {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		var err error
		raw, err = a.backend.Generate(callCtx, prompt, a.maxNewTokens, a.temperature)
		if err != nil {
			logging.Logger.Debugw("model call failed, treating chunk as clean",
				"backend", a.backend.Name(), "file", chunk.FilePath, "chunk", chunk.Index, "err", err)
			return nil
		}
		a.storeResponse(prompt, raw)
	}

	issues := ParseIssues(raw)
	for i := range issues {
		issues[i].FilePath = chunk.FilePath
	}
	return issues
}

func (a *Analyzer) cachedResponse(prompt string) (string, bool) {
	if !a.useCache {
		return "", false
	}
	b, ok := cache.Load(cache.Key(a.backend.Name(), prompt))
	if !ok {
		return "", false
	}
	return string(b), true
}

func (a *Analyzer) storeResponse(prompt, raw string) {
	if !a.useCache {
		return
	}
	if err := cache.Store(cache.Key(a.backend.Name(), prompt), []byte(raw)); err != nil {
		logging.Logger.Debugw("failed to cache model response", "err", err)
	}
}

type rawIssue struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Severity          string     `json:"severity"`
	FilePath          string     `json:"file_path"`
	Line              *float64   `json:"line"`
	Suggestion        string     `json:"suggestion"`
	Fix               *model.Fix `json:"fix"`
	VulnerabilityType string     `json:"vulnerability_type"`
}

// ParseIssues extracts the first embedded JSON object from model output and
// normalizes its issues array. Malformed output yields an empty slice.
func ParseIssues(output string) []model.Issue {
	var payload struct {
		Issues []rawIssue `json:"issues"`
	}
	if err := json.Unmarshal([]byte(extractJSON(output)), &payload); err != nil {
		logging.Logger.Debugw("unparseable model output", "err", err)
		return nil
	}
	var out []model.Issue
	for _, it := range payload.Issues {
		issue := model.Issue{
			Title:             it.Title,
			Description:       it.Description,
			Severity:          model.ParseSeverity(it.Severity),
			FilePath:          it.FilePath,
			Suggestion:        it.Suggestion,
			VulnerabilityType: it.VulnerabilityType,
		}
		if issue.Title == "" {
			issue.Title = "Issue"
		}
		if it.Line != nil {
			issue.Line = int(*it.Line)
		}
		if it.Fix != nil && it.Fix.Before != "" && it.Fix.After != "" {
			issue.Fix = it.Fix
		}
		out = append(out, issue)
	}
	return out
}

// extractJSON finds the first top-level JSON object embedded anywhere in text.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return "{}"
}
