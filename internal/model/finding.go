package model

import "strings"

type Severity string

const (
	SevMinor    Severity = "minor"
	SevModerate Severity = "moderate"
	SevMajor    Severity = "major"
	SevCritical Severity = "critical"
)

// Severities lista as severidades da menos para a mais grave.
var Severities = []Severity{SevMinor, SevModerate, SevMajor, SevCritical}

// Rank devolve a posição ordinal (0 = minor). Valores desconhecidos = -1.
func (s Severity) Rank() int {
	switch s {
	case SevMinor:
		return 0
	case SevModerate:
		return 1
	case SevMajor:
		return 2
	case SevCritical:
		return 3
	default:
		return -1
	}
}

// Title devolve "Minor", "Moderate", ...
func (s Severity) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

type ComplianceLevel string

const (
	FullyCompliant ComplianceLevel = "fully_compliant"
	MinorIssues    ComplianceLevel = "minor_issues"
	ModerateIssues ComplianceLevel = "moderate_issues"
	MajorIssues    ComplianceLevel = "major_issues"
	NonCompliant   ComplianceLevel = "non_compliant"
)

// Title converte "minor_issues" em "Minor Issues".
func (l ComplianceLevel) Title() string {
	words := strings.Split(string(l), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// SourceIntrinsic marca violações produzidas pelo motor de regras interno.
const SourceIntrinsic = "intrinsic"

type Violation struct {
	RuleID      string   // "rule_1" ... "rule_10" | "style_*"
	RuleName    string   // nome legível da regra
	Description string   // descrição curta
	Severity    Severity // severidade normalizada
	LineNumber  int      // 1-based
	Suggestion  string   // como corrigir
	CodeSnippet string   // linha com espaços removidos
	Source      string   // "intrinsic" | nome da ferramenta
	Confidence  float64  // 1.0 para o motor interno
}

// StaticAnalysisResult é um achado normalizado vindo de uma ferramenta externa.
type StaticAnalysisResult struct {
	ToolName   string  // "cppcheck" | "clang-tidy" | "splint" | "flawfinder"
	FilePath   string  // caminho analisado
	LineNumber int     // 1-based, 0 = desconhecida
	Severity   string  // severidade nativa da ferramenta
	Message    string  // mensagem nativa
	RuleID     string  // id nativo da regra
	Category   string  // categoria unificada (rule_N | style_*)
	Confidence float64 // constante por ferramenta
}
