package rules

import (
	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

// Taxonomy maps a vulnerability type to CWE/OWASP classification, a numeric
// risk score, and the compliance frameworks its presence affects.
type Taxonomy struct {
	CWE        string
	OWASP      string
	RiskScore  float64
	Compliance []model.ComplianceImpact
}

var taxonomies = map[string]Taxonomy{
	TypeSQLInjection: {
		CWE:       "CWE-89",
		OWASP:     "A03:2021 - Injection",
		RiskScore: 8.5,
		Compliance: []model.ComplianceImpact{
			{Framework: "PCI-DSS", Description: "Requirement 6.5.1 - injection flaws in payment-handling code"},
			{Framework: "SOC2", Description: "CC6.1 - logical access controls over data stores"},
		},
	},
	TypeHardcodedSecrets: {
		CWE:       "CWE-798",
		OWASP:     "A07:2021 - Identification and Authentication Failures",
		RiskScore: 9.1,
		Compliance: []model.ComplianceImpact{
			{Framework: "PCI-DSS", Description: "Requirement 8.2 - credentials must not be stored in cleartext"},
			{Framework: "GDPR", Description: "Article 32 - insufficient protection of access credentials"},
		},
	},
	TypeCommandInjection: {
		CWE:       "CWE-78",
		OWASP:     "A03:2021 - Injection",
		RiskScore: 9.4,
		Compliance: []model.ComplianceImpact{
			{Framework: "SOC2", Description: "CC6.8 - prevention of unauthorized code execution"},
		},
	},
	TypePathTraversal: {
		CWE:       "CWE-22",
		OWASP:     "A01:2021 - Broken Access Control",
		RiskScore: 7.8,
		Compliance: []model.ComplianceImpact{
			{Framework: "SOC2", Description: "CC6.1 - restriction of access to system files"},
		},
	},
	TypeWeakCrypto: {
		CWE:       "CWE-327",
		OWASP:     "A02:2021 - Cryptographic Failures",
		RiskScore: 7.2,
		Compliance: []model.ComplianceImpact{
			{Framework: "PCI-DSS", Description: "Requirement 4.1 - strong cryptography for sensitive data"},
			{Framework: "GDPR", Description: "Article 32 - state-of-the-art encryption of personal data"},
		},
	},
	TypeInsecureRandom: {
		CWE:       "CWE-338",
		OWASP:     "A02:2021 - Cryptographic Failures",
		RiskScore: 5.9,
		Compliance: []model.ComplianceImpact{
			{Framework: "PCI-DSS", Description: "Requirement 3.6 - cryptographic key generation"},
		},
	},
	TypeXSS: {
		CWE:       "CWE-79",
		OWASP:     "A03:2021 - Injection",
		RiskScore: 6.1,
		Compliance: []model.ComplianceImpact{
			{Framework: "PCI-DSS", Description: "Requirement 6.5.7 - cross-site scripting"},
		},
	},
	TypeBufferOverflow: {
		CWE:       "CWE-120",
		OWASP:     "A06:2021 - Vulnerable and Outdated Components",
		RiskScore: 9.0,
		Compliance: []model.ComplianceImpact{
			{Framework: "SOC2", Description: "CC7.1 - detection of memory-safety defects"},
		},
	},
	TypeInsecureDeserialization: {
		CWE:       "CWE-502",
		OWASP:     "A08:2021 - Software and Data Integrity Failures",
		RiskScore: 8.8,
		Compliance: []model.ComplianceImpact{
			{Framework: "SOC2", Description: "CC8.1 - integrity of processed data"},
		},
	},
	TypeInsufficientLogging: {
		CWE:       "CWE-778",
		OWASP:     "A09:2021 - Security Logging and Monitoring Failures",
		RiskScore: 3.5,
		Compliance: []model.ComplianceImpact{
			{Framework: "SOC2", Description: "CC7.2 - monitoring of security events"},
			{Framework: "GDPR", Description: "Article 33 - breach detection and notification readiness"},
		},
	},
	TypeSSRF: {
		CWE:       "CWE-918",
		OWASP:     "A10:2021 - Server-Side Request Forgery (SSRF)",
		RiskScore: 7.5,
		Compliance: []model.ComplianceImpact{
			{Framework: "SOC2", Description: "CC6.6 - protection of internal network boundaries"},
		},
	},
}

// Lookup returns the taxonomy for a vulnerability type, if known.
func Lookup(vulnType string) (Taxonomy, bool) {
	t, ok := taxonomies[vulnType]
	return t, ok
}

// Enhance attaches CWE/OWASP/risk/compliance metadata to an issue based on its
// vulnerability type. Issues with unknown types pass through unchanged.
func Enhance(issue model.Issue) model.Issue {
	t, ok := taxonomies[issue.VulnerabilityType]
	if !ok {
		return issue
	}
	issue.CWE = t.CWE
	issue.OWASP = t.OWASP
	issue.RiskScore = t.RiskScore
	issue.Compliance = t.Compliance
	return issue
}
