package rules

import (
	"github.com/Sena-ops/cguard/internal/model"
	"github.com/Sena-ops/cguard/internal/parser"
)

// Rule é uma entrada do catálogo.
type Rule struct {
	ID       string
	Name     string
	Severity model.Severity
	check    func(in *input) []model.Violation
}

// input é o que cada detector recebe; montado uma vez por análise.
type input struct {
	src   *parser.Source
	mode  parser.BoundaryMode
	funcs []parser.FunctionRecord
}

func (r Rule) violation(line int, snippet, description, suggestion string) model.Violation {
	return model.Violation{
		RuleID:      r.ID,
		RuleName:    r.Name,
		Description: description,
		Severity:    r.Severity,
		LineNumber:  line,
		Suggestion:  suggestion,
		CodeSnippet: snippet,
		Source:      model.SourceIntrinsic,
		Confidence:  1.0,
	}
}

var (
	FlowControl   = Rule{ID: "rule_1", Name: "Avoid Complex Flow Control", Severity: model.SevCritical}
	LoopBounds    = Rule{ID: "rule_2", Name: "Fixed Loop Bounds", Severity: model.SevMajor}
	DynamicMem    = Rule{ID: "rule_3", Name: "No Dynamic Memory", Severity: model.SevCritical}
	ParamCount    = Rule{ID: "rule_4", Name: "Function Parameters", Severity: model.SevMajor}
	PointerDeref  = Rule{ID: "rule_5", Name: "Pointer Dereferencing", Severity: model.SevMajor}
	DeclPlacement = Rule{ID: "rule_6", Name: "Variable Declarations", Severity: model.SevMinor}
	SingleReturn  = Rule{ID: "rule_7", Name: "Single Return Point", Severity: model.SevModerate}
	Preprocessor  = Rule{ID: "rule_8", Name: "Preprocessor Usage", Severity: model.SevMinor}
	AssignInCond  = Rule{ID: "rule_9", Name: "Assignment in Expressions", Severity: model.SevModerate}
	MultiAssign   = Rule{ID: "rule_10", Name: "Multiple Assignments", Severity: model.SevMinor}

	Naming         = Rule{ID: "style_naming", Name: "Naming Conventions", Severity: model.SevMinor}
	FunctionLength = Rule{ID: "style_function_length", Name: "Function Length", Severity: model.SevModerate}
	HeaderComment  = Rule{ID: "style_comments", Name: "Comment Coverage", Severity: model.SevMinor}
	ErrorHandling  = Rule{ID: "style_error_handling", Name: "Error Handling", Severity: model.SevMinor}
	TypeSafety     = Rule{ID: "style_type_safety", Name: "Type Safety", Severity: model.SevMinor}
)

func init() {
	FlowControl.check = checkFlowControl
	LoopBounds.check = checkLoopBounds
	DynamicMem.check = checkDynamicMemory
	ParamCount.check = checkParameterCount
	PointerDeref.check = checkPointerIndirection
	DeclPlacement.check = checkDeclarationPlacement
	SingleReturn.check = checkSingleReturn
	Preprocessor.check = checkPreprocessor
	AssignInCond.check = checkAssignmentInCondition
	MultiAssign.check = checkMultipleAssignment

	Naming.check = checkNaming
	FunctionLength.check = checkFunctionLength
	HeaderComment.check = checkHeaderComment
	ErrorHandling.check = checkErrorHandling
	TypeSafety.check = checkTypeSafety
}

// Catalogue devolve as regras na ordem de execução.
func Catalogue() []Rule {
	return []Rule{
		FlowControl, LoopBounds, DynamicMem, ParamCount, PointerDeref,
		DeclPlacement, SingleReturn, Preprocessor, AssignInCond, MultiAssign,
		Naming, FunctionLength, HeaderComment, ErrorHandling, TypeSafety,
	}
}
