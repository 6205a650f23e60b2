package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sena-ops/cguard/internal/model"
)

const (
	maxFunctionLines   = 50
	headerCommentReach = 3
	errorHandlingReach = 20
)

var (
	shortNameRe     = regexp.MustCompile(`\b(int|char|float|double)\s+([a-z]{1,2})\b`)
	headerSigRe     = regexp.MustCompile(`^\w+\s+\w+\s*\([^)]*\)\s*\{?`)
	voidSignatureRe = regexp.MustCompile(`^void\s+\w+\s*\([^)]*\)\s*\{?`)
	plainIntRe      = regexp.MustCompile(`\bint\s+\w+`)
)

func checkNaming(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		m := shortNameRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, Naming.violation(i+1, strings.TrimSpace(line),
			fmt.Sprintf("Variable name '%s' is too short", m[2]),
			"Use descriptive variable names"))
	}
	return out
}

func checkFunctionLength(in *input) []model.Violation {
	var out []model.Violation
	for _, fn := range in.funcs {
		if fn.Closed && fn.LineCount > maxFunctionLines {
			out = append(out, FunctionLength.violation(fn.StartLine, in.src.Snippet(fn.StartLine),
				fmt.Sprintf("Function is %d lines long (exceeds %d line limit)", fn.LineCount, maxFunctionLines),
				"Break function into smaller functions"))
		}
	}
	return out
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*")
}

func checkHeaderComment(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		if !headerSigRe.MatchString(line) {
			continue
		}
		n := i + 1
		documented := false
		for j := max(1, n-headerCommentReach); j < n; j++ {
			if isCommentLine(in.src.Line(j)) {
				documented = true
				break
			}
		}
		if !documented {
			out = append(out, HeaderComment.violation(n, strings.TrimSpace(line),
				"Function without header comment detected",
				"Add function header comment explaining purpose and parameters"))
		}
	}
	return out
}

func checkErrorHandling(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		if !voidSignatureRe.MatchString(line) {
			continue
		}
		n := i + 1
		handled := false
		for j := n + 1; j <= min(n+errorHandlingReach, in.src.Len()); j++ {
			body := in.src.Line(j)
			if strings.Contains(strings.ToLower(body), "error") || strings.Contains(body, "return") {
				handled = true
				break
			}
		}
		if !handled {
			out = append(out, ErrorHandling.violation(n, strings.TrimSpace(line),
				"Void function without apparent error handling",
				"Consider returning error codes or implementing error handling"))
		}
	}
	return out
}

func checkTypeSafety(in *input) []model.Violation {
	var out []model.Violation
	fixedWidth := false
	for i, line := range in.src.Lines {
		if strings.Contains(line, "stdint.h") {
			fixedWidth = true
		}
		if !fixedWidth && plainIntRe.MatchString(line) {
			out = append(out, TypeSafety.violation(i+1, strings.TrimSpace(line),
				"Use of implicit integer type 'int'",
				"Use explicit integer types from stdint.h"))
		}
	}
	return out
}
