package features

import (
	"regexp"
	"strings"

	"github.com/Sena-ops/cguard/internal/parser"
)

// Vector é o conjunto de features de um arquivo.
type Vector struct {
	CodeLength       int `json:"code_length"`
	FunctionCount    int `json:"function_count"`
	LineCount        int `json:"line_count"`
	ComplexityScore  int `json:"complexity_score"`
	NestingDepth     int `json:"nesting_depth"`
	VariableCount    int `json:"variable_count"`
	PointerCount     int `json:"pointer_count"`
	LoopCount        int `json:"loop_count"`
	ConditionalCount int `json:"conditional_count"`
	ViolationCount   int `json:"violation_count"`
}

var (
	functionRe    = regexp.MustCompile(`\w+\s+\w+\s*\([^)]*\)\s*\{`)
	variableRe    = regexp.MustCompile(`\b(int|char|float|double|long|short|unsigned|signed)\s+\w+`)
	pointerRe     = regexp.MustCompile(`\*+\w+|\w+\s*\*+\s*\w+`)
	loopRe        = regexp.MustCompile(`\b(for|while|do)\b`)
	conditionalRe = regexp.MustCompile(`\b(if|else|switch|case)\b`)
)

// contados como substrings: "if" dentro de "elif" também conta
var decisionTokens = []string{"if", "else", "while", "for", "case", "catch", "&&", "||"}

// Complexity é 1 mais o número de ocorrências de tokens de decisão.
func Complexity(code string) int {
	complexity := 1
	for _, tok := range decisionTokens {
		complexity += strings.Count(code, tok)
	}
	return complexity
}

func countMatches(re *regexp.Regexp, code string) int {
	return len(re.FindAllStringIndex(code, -1))
}

// Extract calcula o vetor. violationCount vem de quem chama, normalmente o
// tamanho da lista de violações internas.
func Extract(code string, violationCount int) Vector {
	return Vector{
		CodeLength:       len(code),
		FunctionCount:    countMatches(functionRe, code),
		LineCount:        len(strings.Split(code, "\n")),
		ComplexityScore:  Complexity(code),
		NestingDepth:     parser.NestingDepth(code),
		VariableCount:    countMatches(variableRe, code),
		PointerCount:     countMatches(pointerRe, code),
		LoopCount:        countMatches(loopRe, code),
		ConditionalCount: countMatches(conditionalRe, code),
		ViolationCount:   violationCount,
	}
}
