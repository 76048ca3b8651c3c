package engine

import (
	"fmt"
	"strings"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

// NumberLines prefixes every line with a fixed-width 1-based line number so
// chunk windows keep globally correct line references.
func NumberLines(text string) string {
	lines := splitLines(text)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%05d: %s", i+1, line)
	}
	return b.String()
}

// ChunkFile splits content into overlapping line windows of at most maxLines
// lines, each subsequent window starting overlapLines before the end of the
// prior one. The final window ends exactly at end-of-file. A file with at most
// maxLines lines yields exactly one chunk.
//
// Precondition: 0 <= overlapLines < maxLines.
func ChunkFile(filePath, content string, maxLines, overlapLines int) []model.Chunk {
	if overlapLines >= maxLines {
		panic("chunk overlap must be smaller than chunk size")
	}
	lines := splitLines(content)
	numbered := splitLines(NumberLines(content))
	lang := model.LanguageForPath(filePath)

	var chunks []model.Chunk
	n := len(lines)
	start := 0
	for start < n {
		end := start + maxLines
		if end > n {
			end = n
		}
		chunks = append(chunks, model.Chunk{
			FilePath:  filePath,
			Index:     len(chunks),
			StartLine: start + 1,
			Raw:       strings.Join(lines[start:end], "\n"),
			Numbered:  strings.Join(numbered[start:end], "\n"),
			Language:  lang,
		})
		if end == n {
			break
		}
		start = end - overlapLines
	}
	return chunks
}

// splitLines mirrors Python's splitlines for the common case: no trailing
// phantom line for content ending in a newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
