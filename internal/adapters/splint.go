package adapters

import (
	"regexp"
	"strconv"

	"github.com/Sena-ops/cguard/internal/model"
)

const splintConfidence = 0.8

// file:line: message
var splintLineRe = regexp.MustCompile(`([^:]+):(\d+):\s*(.+)`)

// ordem importa: a primeira palavra-chave encontrada vence
var splintKeywords = []keywordRule{
	{"uninitialized", "rule_6"},
	{"null pointer", "rule_5"},
	{"memory leak", "rule_3"},
	{"array bounds", "style_bounds_checking"},
	{"unused", "style_unused_code"},
	{"type", "style_types"},
}

// Splint lê a saída textual, um achado por linha.
type Splint struct {
	tool
}

func (s *Splint) Category(message string) string {
	return matchKeywords(message, splintKeywords, StyleGeneral)
}

func (s *Splint) Parse(raw []byte, filePath string) []model.StaticAnalysisResult {
	text := string(raw)
	out := []model.StaticAnalysisResult{}
	for _, m := range splintLineRe.FindAllStringSubmatch(text, -1) {
		line, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, model.StaticAnalysisResult{
			ToolName:   "splint",
			FilePath:   filePath,
			LineNumber: line,
			Severity:   "warning",
			Message:    m[3],
			RuleID:     "splint",
			Category:   s.Category(m[3]),
			Confidence: splintConfidence,
		})
	}
	return out
}
