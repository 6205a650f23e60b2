package adapters

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Sena-ops/cguard/internal/model"
)

const flawfinderConfidence = 0.75

var flawfinderRiskRe = regexp.MustCompile(`Risk level (\d+):\s*([^<]+)`)

var flawfinderKeywords = []keywordRule{
	{"buffer overflow", "style_bounds_checking"},
	{"format string", "style_security"},
	{"race condition", "style_concurrency"},
	{"command injection", "style_security"},
}

// Flawfinder lê o relatório HTML. O formato raramente traz a linha,
// então LineNumber fica 0.
type Flawfinder struct {
	tool
}

func (f *Flawfinder) Category(description string) string {
	return matchKeywords(description, flawfinderKeywords, "style_security")
}

func (f *Flawfinder) Parse(raw []byte, filePath string) []model.StaticAnalysisResult {
	text := string(raw)
	out := []model.StaticAnalysisResult{}
	for _, m := range flawfinderRiskRe.FindAllStringSubmatch(text, -1) {
		level := m[1]
		if n, err := strconv.Atoi(level); err == nil {
			level = strconv.Itoa(n)
		}
		out = append(out, model.StaticAnalysisResult{
			ToolName:   "flawfinder",
			FilePath:   filePath,
			LineNumber: 0,
			Severity:   fmt.Sprintf("risk_level_%s", level),
			Message:    m[2],
			RuleID:     "flawfinder",
			Category:   f.Category(m[2]),
			Confidence: flawfinderConfidence,
		})
	}
	return out
}
