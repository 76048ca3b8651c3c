package rules

import (
	"strings"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
	"github.com/eshaanmathakari/Datenschutz/internal/util"
)

// Engine matches the rule catalogue against chunk text. It is stateless apart
// from the compiled catalogue and safe to reuse across scans.
type Engine struct {
	catalogue []Rule
}

func NewEngine() *Engine {
	return &Engine{catalogue: Catalogue()}
}

func (e *Engine) Rules() []Rule { return e.catalogue }

// MatchChunk runs every catalogue pattern against the chunk's raw text and
// synthesizes one issue per match. Matches on comment or docstring lines are
// dropped; overlapping matches from different categories are all kept, with
// precision deferred to the model pass.
func (e *Engine) MatchChunk(chunk model.Chunk) []model.Issue {
	var issues []model.Issue
	content := chunk.Raw
	for _, rule := range e.catalogue {
		for _, pattern := range rule.Patterns {
			for _, loc := range pattern.FindAllStringIndex(content, -1) {
				localLine := util.LineAt(content, loc[0])
				lineText := util.LineContent(content, localLine)
				if lineText == "" {
					lineText = content[loc[0]:loc[1]]
				}
				if isCommentLine(lineText) {
					continue
				}
				fileLine := chunk.StartLine + localLine - 1
				issue := model.Issue{
					Title:             rule.Title,
					Description:       rule.Describe(lineText),
					Severity:          rule.Severity,
					FilePath:          chunk.FilePath,
					Line:              fileLine,
					Suggestion:        rule.Suggestion,
					VulnerabilityType: rule.Type,
					Fingerprint:       util.Fingerprint(rule.Type, chunk.FilePath, fileLine, rule.Title),
				}
				if rule.SynthesizeFix != nil {
					issue.Fix = rule.SynthesizeFix(lineText)
				}
				issues = append(issues, Enhance(issue))
			}
		}
	}
	return issues
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, `"""`) ||
		strings.HasPrefix(trimmed, "'''")
}
