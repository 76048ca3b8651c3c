package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

// Vulnerability type tags. These double as taxonomy keys.
const (
	TypeSQLInjection            = "sql_injection"
	TypeHardcodedSecrets        = "hardcoded_secrets"
	TypeCommandInjection        = "command_injection"
	TypePathTraversal           = "path_traversal"
	TypeWeakCrypto              = "weak_crypto"
	TypeInsecureRandom          = "insecure_random"
	TypeXSS                     = "xss"
	TypeBufferOverflow          = "buffer_overflow"
	TypeInsecureDeserialization = "insecure_deserialization"
	TypeInsufficientLogging     = "insufficient_logging"
	TypeSSRF                    = "ssrf"
)

// Rule is one catalogue entry: a vulnerability category with its signature
// patterns and remediation metadata. The catalogue is data, not code, so it
// stays table-testable and extensible.
type Rule struct {
	Type        string
	Title       string
	Severity    model.Severity
	Description string // format template taking the matched line
	Suggestion  string
	Patterns    []*regexp.Regexp
	// SynthesizeFix optionally proposes an exact before/after edit for the
	// matched line; nil when no safe textual rewrite exists.
	SynthesizeFix func(line string) *model.Fix
}

func (r Rule) Describe(line string) string {
	return fmt.Sprintf(r.Description, line)
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?im)`+p))
	}
	return out
}

// Catalogue returns the built-in rule set in a fixed order.
func Catalogue() []Rule {
	return []Rule{
		{
			Type:        TypeSQLInjection,
			Title:       "SQL Injection Vulnerability",
			Severity:    model.SeverityHigh,
			Description: "Direct SQL query construction with user input detected: %s",
			Suggestion:  "Use parameterized queries or ORM to prevent SQL injection",
			Patterns: compile(
				`f"SELECT.*\{.*\}.*FROM`,
				`f"INSERT.*\{.*\}.*INTO`,
				`f"UPDATE.*\{.*\}.*SET`,
				`f"DELETE.*\{.*\}.*FROM`,
				`execute.*f".*\{.*\}`,
				`cursor\.execute.*f".*\{.*\}`,
				`\.execute\(.*\+.*\+`,
				`f".*SELECT.*\{.*\}`,
				`f".*INSERT.*\{.*\}`,
				`f".*UPDATE.*\{.*\}`,
				`f".*DELETE.*\{.*\}`,
			),
			SynthesizeFix: fixSQLInjection,
		},
		{
			Type:        TypeHardcodedSecrets,
			Title:       "Hardcoded Secret Detected",
			Severity:    model.SeverityCritical,
			Description: "Hardcoded secret found in code: %s",
			Suggestion:  "Use environment variables or secure secret management",
			Patterns: compile(
				`password\s*=\s*["'][^"']+["']`,
				`api_key\s*=\s*["'][^"']+["']`,
				`secret\s*=\s*["'][^"']+["']`,
				`token\s*=\s*["'][^"']+["']`,
				`key\s*=\s*["'][^"']+["']`,
				`sk-[a-zA-Z0-9]{48}`,
				`AKIA[0-9A-Z]{16}`,
				`ghp_[a-zA-Z0-9]{36}`,
				`gho_[a-zA-Z0-9]{36}`,
				`ghu_[a-zA-Z0-9]{36}`,
				`ghs_[a-zA-Z0-9]{36}`,
				`ghr_[a-zA-Z0-9]{36}`,
			),
			SynthesizeFix: fixHardcodedSecret,
		},
		{
			Type:        TypeCommandInjection,
			Title:       "Command Injection Vulnerability",
			Severity:    model.SeverityCritical,
			Description: "Command execution with user input detected: %s",
			Suggestion:  "Avoid command execution with user input, use safer alternatives",
			Patterns: compile(
				`os\.system\(.*\+.*\+`,
				`subprocess\.run\(.*\+.*\+`,
				`subprocess\.call\(.*\+.*\+`,
				`subprocess\.Popen\(.*\+.*\+`,
				`eval\(.*\+.*\+`,
				`exec\(.*\+.*\+`,
			),
		},
		{
			Type:        TypePathTraversal,
			Title:       "Path Traversal Vulnerability",
			Severity:    model.SeverityHigh,
			Description: "Potential path traversal vulnerability: %s",
			Suggestion:  "Validate and sanitize file paths, use path.join()",
			Patterns: compile(
				`\.\./\.\./`,
				`\.\.\\\.\.\\`,
				`open\(.*\+.*\.\.`,
				`file\(.*\+.*\.\.`,
			),
		},
		{
			Type:        TypeWeakCrypto,
			Title:       "Weak Cryptographic Algorithm",
			Severity:    model.SeverityHigh,
			Description: "Weak cryptographic algorithm usage: %s",
			Suggestion:  "Use strong cryptographic algorithms (SHA-256, AES-256)",
			Patterns: compile(
				`hashlib\.md5\(`,
				`hashlib\.sha1\(`,
				`import\s+md5`,
				`import\s+sha`,
				`cryptography\.hazmat\.primitives\.hashes\.MD5`,
				`cryptography\.hazmat\.primitives\.hashes\.SHA1`,
			),
		},
		{
			Type:        TypeInsecureRandom,
			Title:       "Insecure Random Number Generation",
			Severity:    model.SeverityMedium,
			Description: "Insecure random number generation: %s",
			Suggestion:  "Use cryptographically secure random generators (secrets module)",
			Patterns: compile(
				`random\.random\(\)`,
				`random\.randint\(0,\s*100\)`,
				`random\.choice\(.*\)`,
				`random\.uniform\(.*\)`,
			),
			SynthesizeFix: fixInsecureRandom,
		},
		{
			Type:        TypeXSS,
			Title:       "Cross-Site Scripting (XSS) Vulnerability",
			Severity:    model.SeverityMedium,
			Description: "Potential XSS vulnerability: %s",
			Suggestion:  "Sanitize user input and use proper output encoding",
			Patterns: compile(
				`innerHTML\s*=\s*.*\+.*`,
				`document\.write\(.*\+.*\)`,
				`\.html\(.*\+.*\)`,
				`\.append\(.*\+.*\)`,
			),
		},
		{
			Type:        TypeBufferOverflow,
			Title:       "Buffer Overflow Vulnerability",
			Severity:    model.SeverityCritical,
			Description: "Buffer overflow vulnerability: %s",
			Suggestion:  "Use bounds checking and safe string functions",
			Patterns: compile(
				`memcpy\(.*,\s*.*,\s*strlen\(.*\)\)`,
				`strcpy\(.*,\s*.*\)`,
				`strcat\(.*,\s*.*\)`,
			),
		},
		{
			Type:        TypeInsecureDeserialization,
			Title:       "Insecure Deserialization",
			Severity:    model.SeverityCritical,
			Description: "Insecure deserialization of untrusted data: %s",
			Suggestion:  "Avoid deserializing untrusted data, use JSON schema validation",
			Patterns: compile(
				`pickle\.loads\(.*\)`,
				`pickle\.load\(.*\)`,
				`yaml\.load\(.*\)`,
			),
		},
		{
			Type:        TypeInsufficientLogging,
			Title:       "Insufficient Logging",
			Severity:    model.SeverityLow,
			Description: "Insufficient logging for security events: %s",
			Suggestion:  "Implement comprehensive security event logging",
			Patterns: compile(
				`#\s*TODO.*log`,
				`#\s*FIXME.*log`,
				`pass\s*#.*log`,
			),
		},
		{
			Type:        TypeSSRF,
			Title:       "Server-Side Request Forgery (SSRF)",
			Severity:    model.SeverityHigh,
			Description: "Server-side request forgery vulnerability: %s",
			Suggestion:  "Validate and restrict URLs, use allowlist approach",
			Patterns: compile(
				`requests\.get\(.*\+.*\)`,
				`urllib\.request\.urlopen\(.*\+.*\)`,
				`httpx\.get\(.*\+.*\)`,
			),
		},
	}
}

func fixSQLInjection(line string) *model.Fix {
	if !strings.Contains(line, `f"`) || !strings.Contains(line, "SELECT") {
		return nil
	}
	after := strings.ReplaceAll(line, `f"`, `"`)
	after = strings.ReplaceAll(after, "{", "?")
	after = strings.ReplaceAll(after, "}", "")
	return &model.Fix{Before: line, After: after}
}

func fixHardcodedSecret(line string) *model.Fix {
	if !strings.Contains(line, "password") || !strings.Contains(line, "=") {
		return nil
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return nil
	}
	name := strings.TrimSpace(parts[0])
	after := fmt.Sprintf("%s = os.getenv(%q, \"\")", name, strings.ToUpper(name))
	return &model.Fix{Before: line, After: after}
}

func fixInsecureRandom(line string) *model.Fix {
	if !strings.Contains(line, "random.random()") {
		return nil
	}
	return &model.Fix{Before: line, After: strings.ReplaceAll(line, "random.random()", "secrets.token_hex(16)")}
}
