package report

import (
	"fmt"
	"strings"

	"github.com/Sena-ops/cguard/internal/model"
	"github.com/Sena-ops/cguard/internal/scoring"
)

// RecommendationsFor devolve as recomendações numeradas. As linhas 1 e 2 só
// aparecem com violações critical ou major. Lista vazia não gera nada.
func RecommendationsFor(violations []model.Violation) []string {
	if len(violations) == 0 {
		return nil
	}
	counts := scoring.CountBySeverity(violations)
	var out []string
	if counts[model.SevCritical] > 0 {
		out = append(out, "1. Address critical violations first (goto, dynamic memory, recursion)")
	}
	if counts[model.SevMajor] > 0 {
		out = append(out, "2. Fix major violations (unbounded loops, excessive parameters)")
	}
	return append(out,
		"3. Review and fix moderate and minor violations",
		"4. Consider using static analysis tools for ongoing compliance",
	)
}

// IntrinsicText gera o relatório de conformidade em texto.
func IntrinsicText(res scoring.Result) string {
	var b []string
	b = append(b,
		rule("=", 60),
		"NASA C CODE COMPLIANCE REPORT",
		rule("=", 60),
		"",
		fmt.Sprintf("Overall Compliance Score: %d/100", res.Score),
		fmt.Sprintf("Compliance Level: %s", res.Level.Title()),
		fmt.Sprintf("Total Violations: %d", len(res.Violations)),
		"",
	)

	if len(res.Violations) == 0 {
		b = append(b, "No rule violations detected!", "")
		return strings.Join(b, "\n")
	}

	counts := scoring.CountBySeverity(res.Violations)
	b = append(b, "VIOLATIONS BY SEVERITY:", rule("-", 25))
	for _, sev := range model.Severities {
		if n := counts[sev]; n > 0 {
			b = append(b, fmt.Sprintf("%s: %d", sev.Title(), n))
		}
	}
	b = append(b, "")

	b = append(b, "DETAILED VIOLATIONS:", rule("-", 25))
	for i, v := range res.Violations {
		b = append(b,
			fmt.Sprintf("%d. %s (Line %d)", i+1, v.RuleName, v.LineNumber),
			fmt.Sprintf("   Severity: %s", v.Severity.Title()),
			fmt.Sprintf("   Description: %s", v.Description),
			fmt.Sprintf("   Suggestion: %s", v.Suggestion),
		)
		if v.CodeSnippet != "" {
			b = append(b, fmt.Sprintf("   Code: %s", v.CodeSnippet))
		}
		b = append(b, "")
	}

	b = append(b, "RECOMMENDATIONS:", rule("-", 20))
	b = append(b, RecommendationsFor(res.Violations)...)
	return strings.Join(b, "\n")
}

type violationJSON struct {
	RuleID      string `json:"rule_id"`
	RuleName    string `json:"rule_name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	LineNumber  int    `json:"line_number"`
	Suggestion  string `json:"suggestion"`
	CodeSnippet string `json:"code_snippet"`
}

// IntrinsicDocument é a forma JSON do relatório de conformidade.
type IntrinsicDocument struct {
	ComplianceScore int             `json:"compliance_score"`
	ComplianceLevel string          `json:"compliance_level"`
	TotalViolations int             `json:"total_violations"`
	Violations      []violationJSON `json:"violations"`
}

func NewIntrinsicDocument(res scoring.Result) IntrinsicDocument {
	doc := IntrinsicDocument{
		ComplianceScore: res.Score,
		ComplianceLevel: string(res.Level),
		TotalViolations: len(res.Violations),
		Violations:      make([]violationJSON, 0, len(res.Violations)),
	}
	for _, v := range res.Violations {
		doc.Violations = append(doc.Violations, violationJSON{
			RuleID:      v.RuleID,
			RuleName:    v.RuleName,
			Description: v.Description,
			Severity:    string(v.Severity),
			LineNumber:  v.LineNumber,
			Suggestion:  v.Suggestion,
			CodeSnippet: v.CodeSnippet,
		})
	}
	return doc
}

func IntrinsicJSON(res scoring.Result) ([]byte, error) {
	return marshal(NewIntrinsicDocument(res))
}
