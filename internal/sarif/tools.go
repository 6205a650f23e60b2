package sarif

import (
	"strconv"
	"strings"

	"github.com/Sena-ops/cguard/internal/aggregate"
)

// FromAggregate gera uma run por ferramenta disponível, preservando a
// severidade nativa e a confiança em properties.
func FromAggregate(res aggregate.Result) *Log {
	var runs []Run
	for _, run := range res.Runs {
		if !run.Available {
			continue
		}
		results := make([]Result, 0, len(run.Results))
		for _, r := range run.Results {
			file := r.FilePath
			if file == "" {
				file = res.FilePath
			}
			results = append(results, Result{
				RuleID:    r.RuleID,
				Level:     mapToolSeverity(r.Severity),
				Message:   Message{Text: strings.TrimSpace(r.Message)},
				Locations: location(file, r.LineNumber),
				Properties: map[string]any{
					"category":   r.Category,
					"confidence": r.Confidence,
					"severity":   r.Severity,
				},
			})
		}
		runs = append(runs, Run{
			Tool:    Tool{Driver: Driver{Name: run.Tool}},
			Results: results,
		})
	}
	if runs == nil {
		runs = []Run{}
	}
	return newLog(runs...)
}

// mapToolSeverity traduz o vocabulário nativo (cppcheck, clang-tidy,
// splint, flawfinder) para os níveis SARIF.
func mapToolSeverity(sev string) string {
	s := strings.ToLower(strings.TrimSpace(sev))
	if lvl, ok := strings.CutPrefix(s, "risk_level_"); ok {
		n, _ := strconv.Atoi(lvl)
		switch {
		case n >= 4:
			return "error"
		case n >= 2:
			return "warning"
		default:
			return "note"
		}
	}
	switch s {
	case "error", "fatal", "critical", "high":
		return "error"
	case "warning", "portability", "performance", "medium":
		return "warning"
	default:
		return "note"
	}
}
