package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eshaanmathakari/Datenschutz/internal/config"
	"github.com/eshaanmathakari/Datenschutz/internal/engine"
	"github.com/eshaanmathakari/Datenschutz/internal/fix"
	"github.com/eshaanmathakari/Datenschutz/internal/llm"
	"github.com/eshaanmathakari/Datenschutz/internal/logging"
	"github.com/eshaanmathakari/Datenschutz/internal/model"
	"github.com/eshaanmathakari/Datenschutz/internal/report"
	"github.com/eshaanmathakari/Datenschutz/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newScanCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newInitCmd())

	// Environment variable support (DATENSCHUTZ_BACKEND, etc.)
	viper.SetEnvPrefix("DATENSCHUTZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func newScanCmd() *cobra.Command {
	var (
		format        string
		outputFile    string
		sarifOut      string
		includeExts   []string
		maxFileMB     float64
		chunkLines    int
		chunkOverlap  int
		backend       string
		reasoning     string
		temperature   float64
		maxTokens     int
		failOn        string
		baselinePath  string
		writeBaseline string
		useTUI        bool
		noCache       bool
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a source tree for vulnerabilities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			logging.InitLogger(viper.GetBool("debug"))

			cfg, cfgPath, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config %s: %w", cfgPath, err)
			}
			flags := cmd.Flags()
			if flags.Changed("include-ext") {
				cfg.IncludeExts = includeExts
			}
			if flags.Changed("max-file-mb") {
				cfg.MaxFileMB = maxFileMB
			}
			if flags.Changed("chunk-lines") {
				cfg.ChunkMaxLines = chunkLines
			}
			if flags.Changed("chunk-overlap") {
				cfg.ChunkOverlapLines = chunkOverlap
			}
			if flags.Changed("reasoning") {
				cfg.Reasoning = reasoning
			}
			if flags.Changed("temperature") {
				cfg.Temperature = temperature
			}
			if flags.Changed("max-tokens") {
				cfg.MaxNewTokens = maxTokens
			}
			if flags.Changed("no-cache") && noCache {
				cfg.CacheResponses = false
			}
			if flags.Changed("backend") {
				cfg.Model.Backend = backend
			} else if env := viper.GetString("backend"); env != "" {
				cfg.Model.Backend = env
			}
			if cfg.ChunkOverlapLines >= cfg.ChunkMaxLines {
				return fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", cfg.ChunkOverlapLines, cfg.ChunkMaxLines)
			}

			// best-effort housekeeping before the scan
			fix.NewLogStore(cfg.FixLogDir).Cleanup(cfg.LogRetentionDays)
			fix.CleanupBackups(cfg.BackupDir, cfg.LogRetentionDays)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			analyzer := llm.NewAnalyzer(llm.NewBackend(cfg.Model), cfg.Reasoning, cfg.Temperature, cfg.MaxNewTokens, cfg.CacheResponses)
			eng := engine.New(cfg, analyzer)

			var spin *spinner.Spinner
			if format == "table" && !useTUI {
				spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
				spin.Suffix = " scanning..."
				spin.Start()
				eng.SetProgress(engine.Progress{
					OnFile: func(p string, index, total int) {
						spin.Suffix = fmt.Sprintf(" scanning %s (%d/%d)", filepath.Base(p), index+1, total)
					},
				})
			}

			result, err := eng.Scan(ctx, model.ScanRequest{
				Path: path,
				Options: model.ScanOptions{
					IncludeExts:       cfg.IncludeExts,
					MaxFileMB:         cfg.MaxFileMB,
					ChunkMaxLines:     cfg.ChunkMaxLines,
					ChunkOverlapLines: cfg.ChunkOverlapLines,
					Reasoning:         cfg.Reasoning,
					Temperature:       cfg.Temperature,
					MaxNewTokens:      cfg.MaxNewTokens,
					Backend:           cfg.Model.Backend,
				},
			})
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			if baselinePath != "" {
				known, err := engine.LoadBaseline(baselinePath)
				if err != nil {
					return fmt.Errorf("load baseline: %w", err)
				}
				result = &model.ScanResult{
					Summary: result.Summary,
					Issues:  engine.FilterByBaseline(result.Issues, known),
				}
			}

			if useTUI {
				return tui.Run(result.Issues)
			}
			switch format {
			case "json":
				data, _ := json.MarshalIndent(result, "", "  ")
				if outputFile != "" {
					if err := os.WriteFile(outputFile, data, 0o644); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
				}
			case "sarif":
				data, _ := report.ToSARIF(result.Issues)
				if sarifOut != "" {
					if err := os.WriteFile(sarifOut, data, 0o644); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
				}
			default:
				printTable(cmd, result, analyzer.BackendName())
				if outputFile != "" {
					data, _ := json.MarshalIndent(result, "", "  ")
					if err := os.WriteFile(outputFile, data, 0o644); err != nil {
						return err
					}
				}
			}

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, result.Issues); err != nil {
					return err
				}
			}
			if failOn != "" {
				threshold := model.ParseSeverity(failOn)
				for _, issue := range result.Issues {
					if model.SeverityGTE(issue.Severity, threshold) {
						return fmt.Errorf("fail-on threshold met: %s", issue.Severity)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write JSON result to file")
	cmd.Flags().StringVar(&sarifOut, "sarif-out", "", "Write SARIF report to file (with --format sarif)")
	cmd.Flags().StringSliceVar(&includeExts, "include-ext", nil, "File extensions to scan (dot-prefixed)")
	cmd.Flags().Float64Var(&maxFileMB, "max-file-mb", 1.5, "Skip files larger than this many megabytes")
	cmd.Flags().IntVar(&chunkLines, "chunk-lines", 400, "Maximum lines per chunk")
	cmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", 40, "Overlapping lines between adjacent chunks")
	cmd.Flags().StringVar(&backend, "backend", "", "Model backend: none|llama|openai")
	cmd.Flags().StringVar(&reasoning, "reasoning", "medium", "Model reasoning effort: low|medium|high")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.2, "Model sampling temperature")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 1200, "Maximum tokens per model response")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Fail if an issue of this severity or higher is found")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Suppress issues whose fingerprints are in this baseline file")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with issue fingerprints")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not cache model responses")
	_ = viper.BindPFlag("backend", cmd.Flags().Lookup("backend"))
	return cmd
}

func printTable(cmd *cobra.Command, result *model.ScanResult, backendName string) {
	out := cmd.OutOrStdout()
	s := result.Summary
	fmt.Fprintf(out, "Scanned %d files in %s (backend: %s)\n", s.NumFiles, s.ScanDuration.Round(time.Millisecond), backendName)
	fmt.Fprintf(out, "Issues: %d (critical=%d high=%d medium=%d low=%d)\n\n",
		s.NumIssues,
		s.BySeverity[model.SeverityCritical],
		s.BySeverity[model.SeverityHigh],
		s.BySeverity[model.SeverityMedium],
		s.BySeverity[model.SeverityLow])
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "- [%s] %s  %s:%d\n  %s\n",
			severityLabel(issue.Severity), issue.Title, issue.FilePath, issue.Line, issue.Suggestion)
		if issue.CWE != "" {
			fmt.Fprintf(out, "  %s | %s | risk %.1f | id %s\n", issue.CWE, issue.OWASP, issue.RiskScore, issue.ID)
		} else {
			fmt.Fprintf(out, "  id %s\n", issue.ID)
		}
	}
}

func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint("CRITICAL")
	case model.SeverityHigh:
		return color.New(color.FgRed).Sprint("HIGH")
	case model.SeverityMedium:
		return color.New(color.FgYellow).Sprint("MEDIUM")
	default:
		return color.New(color.FgCyan).Sprint("LOW")
	}
}

// resultFromFile loads a previously written scan result so fix commands can
// resolve issue ids; the scanner itself keeps no store.
func resultFromFile(path string) (*model.ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var result model.ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &result, nil
}
