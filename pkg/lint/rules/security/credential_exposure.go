package security

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(CredentialExposure)
}

// CredentialExposure flags secrets written into instruction files.
var CredentialExposure = lint.RuleDef{
	ID:          "credential-exposure",
	Name:        "security.credential_exposure",
	Group:       "security",
	Description: "Hardcoded credential or token",
	Severity:    lint.SeverityError,
	Kind:        lint.KindPerFile,
	CheckFile:   checkCredentialExposure,
	Rationale: `Instruction files are committed and pasted into prompts. Every
line is scanned, code blocks included. Obvious placeholders (your-api-key,
changeme, EXAMPLE, xxx) are ignored.`,
	BadExample:  "export API_KEY=\"sk-live-4f9a8b7c6d5e4f3a2b1c0d9e\"",
	GoodExample: "export API_KEY=\"$STRIPE_API_KEY\"",
	Fix:         "Remove the credential and reference an environment variable instead.",
}

// maxDisplay is the number of runes of a match quoted in the message.
const maxDisplay = 30

var (
	credentialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:password|secret|token|api[_-]?key)\s*[:=]\s*["'][^"']{8,}["']`),
		regexp.MustCompile(`\b(?:sk|pk)[-_](?:live|test)[-_][A-Za-z0-9]{20,}`),
		regexp.MustCompile(`\bAKIA[A-Z0-9]{16}\b`),
		regexp.MustCompile(`\bghp_[A-Za-z0-9]{36}\b`),
		regexp.MustCompile(`\bxox[bpas]-[A-Za-z0-9\-]{10,}`),
		regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]{20,}\.[A-Za-z0-9_\-]{20,}`),
		regexp.MustCompile(`Bearer\s+[A-Za-z0-9_\-.]{20,}`),
	}

	placeholderValue = regexp.MustCompile(`(?i)(?:your[_-]|placeholder|changeme|change[_-]me|EXAMPLE|xxx|\.\.\.)`)
)

func checkCredentialExposure(ctx *lint.FileContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for i, text := range ctx.Doc.Lines {
		for _, re := range credentialPatterns {
			m := re.FindString(text)
			if m == "" || placeholderValue.MatchString(m) {
				continue
			}
			diags = append(diags, ctx.Diag(i+1, lint.SeverityError,
				fmt.Sprintf("Possible hardcoded credential: %q", truncate(m, maxDisplay))))
			break
		}
	}
	return diags
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
