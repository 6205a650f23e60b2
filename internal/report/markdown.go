package report

import (
	"fmt"
	"strings"

	"github.com/Sena-ops/cguard/internal/aggregate"
	"github.com/Sena-ops/cguard/internal/model"
	"github.com/Sena-ops/cguard/internal/scoring"
)

// IntrinsicMarkdown gera o relatório de conformidade para comentários de PR.
func IntrinsicMarkdown(res scoring.Result) string {
	var b strings.Builder
	b.WriteString("## 📋 NASA C Code Compliance Report\n\n")
	b.WriteString(fmt.Sprintf("**Score:** %d/100 · **Level:** %s · **Violations:** %d\n\n",
		res.Score, res.Level.Title(), len(res.Violations)))

	if len(res.Violations) == 0 {
		b.WriteString("No rule violations detected!\n")
		return b.String()
	}

	counts := scoring.CountBySeverity(res.Violations)
	b.WriteString("| Severity | Count |\n|---|---|\n")
	for _, sev := range model.Severities {
		if n := counts[sev]; n > 0 {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", sev.Title(), n))
		}
	}
	b.WriteString("\n### Violations\n\n")
	b.WriteString("| # | Rule | Line | Severity | Description | Suggestion |\n|---|---|---|---|---|---|\n")
	for i, v := range res.Violations {
		b.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %s | %s |\n",
			i+1, cell(v.RuleName), v.LineNumber, v.Severity.Title(), cell(v.Description), cell(v.Suggestion)))
	}

	b.WriteString("\n### Recommendations\n\n")
	for _, r := range RecommendationsFor(res.Violations) {
		b.WriteString(r + "\n")
	}
	return b.String()
}

// AggregateMarkdown gera o relatório das ferramentas externas.
func AggregateMarkdown(res aggregate.Result) string {
	var b strings.Builder
	b.WriteString("## 🔎 Static Analysis Compliance Report\n\n")
	b.WriteString(fmt.Sprintf("**File:** `%s` · **Total Violations Found:** %d\n\n", res.FilePath, res.Total()))

	b.WriteString("### By tool\n\n")
	for _, run := range res.Runs {
		if run.Available {
			b.WriteString(fmt.Sprintf("- %s: %d violation(s)\n", run.Tool, len(run.Results)))
		} else {
			b.WriteString(fmt.Sprintf("- %s: unavailable\n", run.Tool))
		}
	}

	if res.Total() == 0 {
		b.WriteString("\nNo violations detected!\n")
		return b.String()
	}

	counts := res.ByCategory()
	b.WriteString("\n### By category\n\n")
	for _, cat := range res.Categories() {
		b.WriteString(fmt.Sprintf("- %s: %d\n", cat, counts[cat]))
	}

	b.WriteString("\n### Findings\n\n| Tool | Line | Category | Severity | Confidence | Message |\n|---|---|---|---|---|---|\n")
	for _, r := range res.All() {
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %.2f | %s |\n",
			r.ToolName, r.LineNumber, r.Category, cell(r.Severity), r.Confidence, cell(r.Message)))
	}
	return b.String()
}

// cell escapa pipes e quebras de linha para caber numa célula.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}
