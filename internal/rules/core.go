package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sena-ops/cguard/internal/model"
	"github.com/Sena-ops/cguard/internal/parser"
)

var (
	callWithBodyRe = regexp.MustCompile(`(\w+)\s*\([^)]*\)\s*\{`)
	whileStartRe   = regexp.MustCompile(`^\s*while\s*\(`)
	signatureRe    = regexp.MustCompile(`\w+\s+\w+\s*\(([^)]*)\)\s*\{?`)
	declarationRe  = regexp.MustCompile(`^\s*(int|char|float|double|long|short|unsigned|signed)\s+\w+`)
	conditionRe    = regexp.MustCompile(`(while|if)\s*\(([^)]*=\s*[^)]*)\)`)
)

var (
	boundMarkers    = []string{"MAX_", "count", "size", "length"}
	infiniteMarkers = []string{"true", "1", "!0"}
	allocators      = []string{"malloc", "calloc", "realloc", "free"}
)

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func checkFlowControl(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		n := i + 1
		comment := parser.IsLineComment(line)
		snippet := strings.TrimSpace(line)

		if strings.Contains(line, "goto") && !comment {
			out = append(out, FlowControl.violation(n, snippet,
				"Use of goto statement detected",
				"Replace goto with structured control flow"))
		}
		if (strings.Contains(line, "setjmp") || strings.Contains(line, "longjmp")) && !comment {
			out = append(out, FlowControl.violation(n, snippet,
				"Use of setjmp/longjmp detected",
				"Use structured error handling instead"))
		}

		m := callWithBodyRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		call := m[1] + "("
		// chamadas fora do corpo da própria função não contam
		end := in.src.BodyEnd(n, in.mode)
		for j := n + 1; j <= end; j++ {
			body := in.src.Line(j)
			if strings.Contains(body, call) && !parser.IsLineComment(body) {
				out = append(out, FlowControl.violation(n, snippet,
					"Recursive function call detected",
					"Use iterative approach instead of recursion"))
				break
			}
		}
	}
	return out
}

func checkLoopBounds(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		snippet := strings.TrimSpace(line)
		if whileStartRe.MatchString(line) && !containsAny(line, boundMarkers) {
			out = append(out, LoopBounds.violation(i+1, snippet,
				"Loop without clear upper bound detected",
				"Add compile-time determinable upper bound"))
		}
		if strings.Contains(line, "while") && containsAny(line, infiniteMarkers) {
			out = append(out, LoopBounds.violation(i+1, snippet,
				"Potential infinite loop detected",
				"Add explicit loop counter and bounds checking"))
		}
	}
	return out
}

func checkDynamicMemory(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		if containsAny(line, allocators) && !parser.IsLineComment(line) {
			out = append(out, DynamicMem.violation(i+1, strings.TrimSpace(line),
				"Dynamic memory allocation detected",
				"Use static allocation or stack-based allocation"))
		}
	}
	return out
}

// countParams conta os parâmetros não vazios separados por vírgula.
func countParams(params string) int {
	count := 0
	for _, p := range strings.Split(params, ",") {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

func checkParameterCount(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		m := signatureRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if count := countParams(m[1]); count > 2 {
			out = append(out, ParamCount.violation(i+1, strings.TrimSpace(line),
				fmt.Sprintf("Function with %d parameters detected", count),
				"Use structure to group related parameters"))
		}
	}
	return out
}

func checkPointerIndirection(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		if strings.Contains(line, "***") {
			out = append(out, PointerDeref.violation(i+1, strings.TrimSpace(line),
				"More than 2 levels of pointer indirection detected",
				"Limit pointer indirection to 2 levels maximum"))
		}
	}
	return out
}

func checkDeclarationPlacement(in *input) []model.Violation {
	var out []model.Violation
	for _, fn := range in.funcs {
		for n := fn.StartLine + 1; n <= fn.EndLine; n++ {
			if n > fn.StartLine+2 && declarationRe.MatchString(in.src.Line(n)) {
				out = append(out, DeclPlacement.violation(n, in.src.Snippet(n),
					"Variable declaration may not be at scope beginning",
					"Move all variable declarations to beginning of scope"))
			}
		}
	}
	return out
}

func checkSingleReturn(in *input) []model.Violation {
	var out []model.Violation
	for _, fn := range in.funcs {
		if fn.Closed && fn.ReturnCount > 1 {
			out = append(out, SingleReturn.violation(fn.StartLine, in.src.Snippet(fn.StartLine),
				fmt.Sprintf("Function with %d return statements detected", fn.ReturnCount),
				"Use single return point with result variable"))
		}
	}
	return out
}

func checkPreprocessor(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "#include") {
			out = append(out, Preprocessor.violation(i+1, trimmed,
				"Preprocessor directive other than #include detected",
				"Use const declarations instead of #define"))
		}
	}
	return out
}

// hasBareAssignment procura um "=" que não faz parte de ==, !=, <= ou >=.
func hasBareAssignment(cond string) bool {
	for i := 0; i < len(cond); i++ {
		if cond[i] != '=' {
			continue
		}
		if i+1 < len(cond) && cond[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.ContainsRune("=!<>", rune(cond[i-1])) {
			continue
		}
		return true
	}
	return false
}

func checkAssignmentInCondition(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		for _, m := range conditionRe.FindAllStringSubmatch(line, -1) {
			if hasBareAssignment(m[2]) {
				out = append(out, AssignInCond.violation(i+1, strings.TrimSpace(line),
					"Assignment in conditional expression detected",
					"Separate assignment from condition checking"))
				break
			}
		}
	}
	return out
}

func checkMultipleAssignment(in *input) []model.Violation {
	var out []model.Violation
	for i, line := range in.src.Lines {
		if strings.Count(line, "=") > 1 && !strings.Contains(line, "==") {
			out = append(out, MultiAssign.violation(i+1, strings.TrimSpace(line),
				"Multiple assignments in single statement detected",
				"Use separate assignment statements"))
		}
	}
	return out
}
