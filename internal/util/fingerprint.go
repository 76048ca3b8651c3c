package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash for an issue key
func Fingerprint(vulnType, file string, line int, title string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%s", vulnType, file, line, title)
	return hex.EncodeToString(h.Sum(nil))
}
