package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type IgnoreRule struct {
	Type   string `json:"type"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ModelConfig selects and parameterizes the detection backend.
// Backend is one of "none", "llama", "openai"; misconfigured backends
// downgrade to "none" at construction time rather than failing the scan.
type ModelConfig struct {
	Backend     string `json:"backend"`
	Endpoint    string `json:"endpoint"`
	Model       string `json:"model"`
	APIKeyEnv   string `json:"apiKeyEnv"`
	TimeoutSecs int    `json:"timeoutSecs"`
}

type Config struct {
	IncludeExts       []string     `json:"includeExts"`
	MaxFileMB         float64      `json:"maxFileMb"`
	ChunkMaxLines     int          `json:"chunkMaxLines"`
	ChunkOverlapLines int          `json:"chunkOverlapLines"`
	Reasoning         string       `json:"reasoning"`
	Temperature       float64      `json:"temperature"`
	MaxNewTokens      int          `json:"maxNewTokens"`
	SeverityThreshold string       `json:"severityThreshold"`
	LogRetentionDays  int          `json:"logRetentionDays"`
	FixLogDir         string       `json:"fixLogDir"`
	BackupDir         string       `json:"backupDir"`
	CacheResponses    bool         `json:"cacheResponses"`
	Model             ModelConfig  `json:"model"`
	Ignore            []IgnoreRule `json:"ignore"`
}

func Default() Config {
	return Config{
		IncludeExts:       []string{".py", ".js", ".jsx", ".ts", ".tsx", ".sol"},
		MaxFileMB:         1.5,
		ChunkMaxLines:     400,
		ChunkOverlapLines: 40,
		Reasoning:         "medium",
		Temperature:       0.2,
		MaxNewTokens:      1200,
		SeverityThreshold: "low",
		LogRetentionDays:  14,
		FixLogDir:         "fix_logs",
		BackupDir:         "fix_backups",
		CacheResponses:    true,
		Model:             ModelConfig{Backend: "none", APIKeyEnv: "DATENSCHUTZ_API_KEY", TimeoutSecs: 30},
	}
}

// Load searches upwards from startDir for a .datenschutz.json and merges it
// over the defaults. Returns the config, the path it was loaded from ("" when
// only defaults apply), and any read error.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ".datenschutz.json")
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			_ = json.Unmarshal(b, &cfg)
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return cfg, "", nil
}
