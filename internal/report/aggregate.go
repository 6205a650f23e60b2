package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sena-ops/cguard/internal/aggregate"
)

// AggregateText gera o relatório das ferramentas externas. Ferramentas
// indisponíveis aparecem com contagem zero e a marca (unavailable).
func AggregateText(res aggregate.Result) string {
	var b []string
	b = append(b,
		rule("=", 60),
		"STATIC ANALYSIS COMPLIANCE REPORT",
		rule("=", 60),
		"",
		fmt.Sprintf("Total Violations Found: %d", res.Total()),
		"",
		"VIOLATIONS BY TOOL:",
		rule("-", 25),
	)
	for _, run := range res.Runs {
		if run.Available {
			b = append(b, fmt.Sprintf("%s: %d violations", run.Tool, len(run.Results)))
		} else {
			b = append(b, fmt.Sprintf("%s: 0 violations (unavailable)", run.Tool))
		}
	}
	b = append(b, "")

	counts := res.ByCategory()
	b = append(b, "VIOLATIONS BY CATEGORY:", rule("-", 25))
	for _, cat := range res.Categories() {
		b = append(b, fmt.Sprintf("%s: %d violations", cat, counts[cat]))
	}
	b = append(b, "")

	if res.Total() == 0 {
		b = append(b, "No violations detected!", "")
		return strings.Join(b, "\n")
	}

	b = append(b, "DETAILED VIOLATIONS:", rule("-", 25))
	for _, run := range res.Runs {
		if len(run.Results) == 0 {
			continue
		}
		b = append(b, fmt.Sprintf("\n%s VIOLATIONS:", strings.ToUpper(run.Tool)))
		for i, r := range run.Results {
			b = append(b,
				fmt.Sprintf("  %d. Line %d: %s", i+1, r.LineNumber, r.Message),
				fmt.Sprintf("     Category: %s", r.Category),
				fmt.Sprintf("     Severity: %s", r.Severity),
				fmt.Sprintf("     Confidence: %.2f", r.Confidence),
				"",
			)
		}
	}
	return strings.Join(b, "\n")
}

type findingJSON struct {
	LineNumber int     `json:"line_number"`
	Severity   string  `json:"severity"`
	Message    string  `json:"message"`
	RuleID     string  `json:"rule_id"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// AggregateDocument é a exportação JSON de uma execução. Só ferramentas
// disponíveis entram em tools_used e results_by_tool.
type AggregateDocument struct {
	FilePath          string                   `json:"file_path"`
	AnalysisTimestamp string                   `json:"analysis_timestamp"`
	ToolsUsed         []string                 `json:"tools_used"`
	TotalViolations   int                      `json:"total_violations"`
	ResultsByTool     map[string][]findingJSON `json:"results_by_tool"`
}

func NewAggregateDocument(res aggregate.Result) AggregateDocument {
	doc := AggregateDocument{
		FilePath:          res.FilePath,
		AnalysisTimestamp: res.Timestamp.UTC().Format(time.RFC3339),
		ToolsUsed:         res.ToolsUsed(),
		TotalViolations:   res.Total(),
		ResultsByTool:     map[string][]findingJSON{},
	}
	for _, run := range res.Runs {
		if !run.Available {
			continue
		}
		list := make([]findingJSON, 0, len(run.Results))
		for _, r := range run.Results {
			list = append(list, findingJSON{
				LineNumber: r.LineNumber,
				Severity:   r.Severity,
				Message:    r.Message,
				RuleID:     r.RuleID,
				Category:   r.Category,
				Confidence: r.Confidence,
			})
		}
		doc.ResultsByTool[run.Tool] = list
	}
	return doc
}

func AggregateJSON(res aggregate.Result) ([]byte, error) {
	return marshal(NewAggregateDocument(res))
}
