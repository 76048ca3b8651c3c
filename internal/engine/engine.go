package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/eshaanmathakari/Datenschutz/internal/config"
	"github.com/eshaanmathakari/Datenschutz/internal/llm"
	"github.com/eshaanmathakari/Datenschutz/internal/logging"
	"github.com/eshaanmathakari/Datenschutz/internal/model"
	"github.com/eshaanmathakari/Datenschutz/internal/rules"
)

// Progress carries caller-visible hooks fired as the scan advances. Nil
// fields are skipped.
type Progress struct {
	OnFile  func(path string, index, total int)
	OnChunk func(path string, chunkIndex int)
}

// Engine orchestrates the scan pipeline: selector, chunker, rule engine and
// model analyzer, then the issue aggregation. One Engine per scan invocation;
// accumulator state is never shared between concurrent scans.
type Engine struct {
	rules    *rules.Engine
	analyzer *llm.Analyzer
	cfg      config.Config
	progress Progress
}

func New(cfg config.Config, analyzer *llm.Analyzer) *Engine {
	return &Engine{
		rules:    rules.NewEngine(),
		analyzer: analyzer,
		cfg:      cfg,
	}
}

func (e *Engine) SetProgress(p Progress) { e.progress = p }

// Scan walks the request path, chunks every selected file, and merges
// rule-based and model-based findings per chunk into one ordered list.
//
// A scan always completes and returns a result: unreadable files are skipped,
// model failures degrade to zero findings. Cancellation is cooperative; no
// new file or chunk is started after ctx is done, and whatever accumulated so
// far is returned.
//
// Findings duplicated by the chunk overlap region are preserved as-is; the
// aggregator performs no cross-chunk deduplication.
func (e *Engine) Scan(ctx context.Context, req model.ScanRequest) (*model.ScanResult, error) {
	start := time.Now()
	opts := req.Options

	files := e.selectFiles(req.Path, opts)
	var issues []model.Issue
	numFiles := 0

scan:
	for i, file := range files {
		if ctx.Err() != nil {
			logging.Logger.Infow("scan cancelled", "processed_files", numFiles)
			break
		}
		if e.progress.OnFile != nil {
			e.progress.OnFile(file, i, len(files))
		}
		content, err := os.ReadFile(file)
		if err != nil {
			continue // discovery errors never fail a scan
		}
		numFiles++
		chunks := ChunkFile(file, string(content), opts.ChunkMaxLines, opts.ChunkOverlapLines)
		for _, chunk := range chunks {
			if ctx.Err() != nil {
				break scan
			}
			if e.progress.OnChunk != nil {
				e.progress.OnChunk(file, chunk.Index)
			}
			// rule findings first, then the model pass
			issues = append(issues, e.rules.MatchChunk(chunk)...)
			for _, mi := range e.analyzer.AnalyzeChunk(ctx, chunk) {
				issues = append(issues, rules.Enhance(mi))
			}
		}
	}

	issues = applyIgnores(issues, e.cfg)
	issues = filterBySeverity(issues, model.ParseSeverity(e.cfg.SeverityThreshold))
	for i := range issues {
		issues[i].ID = uuid.NewString()
	}

	result := &model.ScanResult{
		Summary: summarize(numFiles, issues, time.Since(start)),
		Issues:  issues,
	}
	return result, nil
}

// selectFiles resolves the request path to the candidate file list. A path
// pointing at a regular file scans just that file.
func (e *Engine) selectFiles(path string, opts model.ScanOptions) []string {
	sizeLimit := int64(opts.MaxFileMB * 1024 * 1024)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		if info.Size() > sizeLimit {
			return nil
		}
		return []string{normalizePath(path)}
	}
	files := discoverFiles(path, opts.IncludeExts, sizeLimit)
	for i := range files {
		files[i] = normalizePath(files[i])
	}
	return files
}

// summarize folds the issue list into the scan summary. num_files counts
// files that were actually read; unknown severities count as medium.
func summarize(numFiles int, issues []model.Issue, elapsed time.Duration) model.Summary {
	bySeverity := map[model.Severity]int{
		model.SeverityLow:      0,
		model.SeverityMedium:   0,
		model.SeverityHigh:     0,
		model.SeverityCritical: 0,
	}
	for _, issue := range issues {
		bySeverity[model.ParseSeverity(string(issue.Severity))]++
	}
	return model.Summary{
		NumFiles:     numFiles,
		NumIssues:    len(issues),
		ScanDuration: elapsed,
		BySeverity:   bySeverity,
	}
}

// normalizePath keeps reported paths slash-separated for stable output.
func normalizePath(p string) string { return filepath.ToSlash(p) }
