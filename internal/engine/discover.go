package engine

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Directories that never contain scannable first-party source.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	".idea":        {},
	".vscode":      {},
	"node_modules": {},
	"vendor":       {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	"dist":         {},
	"build":        {},
	"target":       {},
}

// discoverFiles enumerates candidate files under root in traversal order.
// Inclusion requires a matching extension and size at most sizeLimit bytes.
// Unreadable entries are skipped silently so a scan never fails on discovery.
func discoverFiles(root string, includeExts []string, sizeLimit int64) []string {
	allowed := make(map[string]struct{}, len(includeExts))
	for _, ext := range includeExts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := allowed[ext]; !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > sizeLimit {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out
}
