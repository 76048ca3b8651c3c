package llm

import (
	"fmt"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

const baseInstruction = "You are an expert software security and bug-finding AI. " +
	"Analyze the provided code for memory/resource leaks, logical errors, runtime errors, security vulnerabilities, and bad practices. " +
	"Respond in strict JSON with an array under key 'issues'. Each issue is an object with keys: " +
	"'title' (string), 'description' (string), 'severity' ('low'|'medium'|'high'|'critical'), 'file_path' (string), 'line' (int or null), " +
	"'suggestion' (string), and 'fix' (object or null). If a fix is possible, set 'fix' with keys: 'before' (string), 'after' (string) representing the exact before/after snippet to replace."

// RenderPrompt builds the fixed analysis prompt for one chunk. The chunk text
// carries its own global line numbers so the model can report absolute lines.
func RenderPrompt(language model.Language, filePath, codeChunk, reasoning string) string {
	return fmt.Sprintf(
		"Instructions:\n%s\n\n"+
			"Language: %s\n"+
			"File: %s\n"+
			"ReasoningEffort: %s\n"+
			"Code (with line numbers):\n"+
			"```\n%s\n```\n"+
			"Output JSON only with keys {\"issues\": [...]} and no extra text.",
		baseInstruction, language, filePath, reasoning, codeChunk,
	)
}
