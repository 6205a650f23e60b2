package adapters

import (
	"bytes"
	"encoding/json"

	"github.com/Sena-ops/cguard/internal/model"
)

const clangTidyConfidence = 0.85

// Formato esperado: lista de objetos, cada um com "diagnostics" opcional.
type clangTidyJSON []struct {
	Diagnostics []struct {
		CheckName string  `json:"check_name"`
		Line      int     `json:"line"`
		Level     *string `json:"level"`
		Message   string  `json:"message"`
	} `json:"diagnostics"`
}

var clangTidyCategories = map[string]string{
	"bugprone-assignment-in-if-condition":            "rule_9",
	"bugprone-branch-clone":                          "style_logic",
	"bugprone-dangling-handle":                       "rule_5",
	"bugprone-dynamic-static-initializers":           "rule_3",
	"bugprone-exception-escape":                      "rule_1",
	"bugprone-fold-init-type":                        "style_types",
	"bugprone-forward-declaration-namespace":         "style_includes",
	"bugprone-forwarding-reference-overload":         "style_functions",
	"bugprone-inaccurate-erase":                      "style_containers",
	"bugprone-infinite-loop":                         "rule_2",
	"bugprone-integer-division":                      "style_arithmetic",
	"bugprone-lambda-function-name":                  "style_functions",
	"bugprone-macro-parentheses":                     "rule_8",
	"bugprone-macro-repeated-side-effects":           "rule_8",
	"bugprone-misplaced-operator-new":                "rule_3",
	"bugprone-misplaced-pointer-arithmetic-in-alloc": "rule_3",
	"bugprone-misplaced-widening-cast":               "style_types",
	"bugprone-move-forwarding-reference":             "style_functions",
	"bugprone-multiple-statement-macro":              "rule_8",
	"bugprone-no-escape":                             "style_security",
	"bugprone-not-null-terminated-result":            "style_strings",
	"bugprone-parent-virtual-call":                   "style_inheritance",
	"bugprone-posix-return":                          "style_functions",
	"bugprone-reserved-identifier":                   "style_naming",
	"bugprone-sizeof-container":                      "style_containers",
	"bugprone-sizeof-expression":                     "style_types",
	"bugprone-spuriously-missing-initialization":     "rule_6",
	"bugprone-string-constructor":                    "style_strings",
	"bugprone-string-integer-assignment":             "style_types",
	"bugprone-string-literal-with-embedded-nul":      "style_strings",
	"bugprone-suspicious-enum-usage":                 "style_enums",
	"bugprone-suspicious-missing-comma":              "style_syntax",
	"bugprone-suspicious-semicolon":                  "style_syntax",
	"bugprone-suspicious-string-compare":             "style_strings",
	"bugprone-swapped-arguments":                     "style_functions",
	"bugprone-terminating-continue":                  "rule_1",
	"bugprone-throw-keyword-missing":                 "style_exceptions",
	"bugprone-too-small-loop-variable":               "style_types",
	"bugprone-undefined-behavior":                    "style_undefined",
	"bugprone-undelegated-constructor":               "style_classes",
	"bugprone-unhandled-self-move":                   "style_moves",
	"bugprone-unused-raii":                           "style_resources",
	"bugprone-unused-return-value":                   "style_functions",
	"bugprone-use-after-move":                        "style_moves",
	"bugprone-virtual-near-miss":                     "style_inheritance",
}

// ClangTidy lê a lista de diagnósticos em JSON.
type ClangTidy struct {
	tool
}

func (c *ClangTidy) Category(checkName string) string {
	return lookup(clangTidyCategories, checkName)
}

// Parse percorre os arrays "diagnostics". JSON inválido gera aviso e lista vazia.
func (c *ClangTidy) Parse(raw []byte, filePath string) []model.StaticAnalysisResult {
	out := []model.StaticAnalysisResult{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out
	}

	var doc clangTidyJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.opts.Logger.Warnw("Falha ao interpretar JSON do clang-tidy", "file", filePath, "erro", err)
		return out
	}

	for _, entry := range doc {
		for _, d := range entry.Diagnostics {
			level := "warning"
			if d.Level != nil {
				level = *d.Level
			}
			out = append(out, model.StaticAnalysisResult{
				ToolName:   "clang-tidy",
				FilePath:   filePath,
				LineNumber: d.Line,
				Severity:   level,
				Message:    d.Message,
				RuleID:     d.CheckName,
				Category:   c.Category(d.CheckName),
				Confidence: clangTidyConfidence,
			})
		}
	}
	return out
}
