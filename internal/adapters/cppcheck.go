package adapters

import (
	"regexp"
	"strconv"

	"github.com/Sena-ops/cguard/internal/model"
)

const cppcheckConfidence = 0.9

var (
	cppcheckErrorRe    = regexp.MustCompile(`<error id="([^"]+)" severity="([^"]+)" msg="([^"]+)" verbose="[^"]*" cwe="[^"]*">`)
	cppcheckLocationRe = regexp.MustCompile(`<location file="[^"]*" line="(\d+)" column="[^"]*"`)
)

var cppcheckCategories = map[string]string{
	"unusedFunction":        "style_unused_code",
	"missingInclude":        "style_includes",
	"unusedVariable":        "style_unused_code",
	"unreadVariable":        "style_unused_code",
	"unassignedVariable":    "rule_6",
	"nullPointer":           "rule_5",
	"arrayIndexOutOfBounds": "style_bounds_checking",
	"memoryLeak":            "rule_3",
	"resourceLeak":          "rule_3",
	"useInitializationList": "rule_6",
	"variableScope":         "rule_6",
	"redundantAssignment":   "rule_10",
	"redundantCondition":    "style_logic",
	"redundantPointerOp":    "rule_5",
	"stlSize":               "style_containers",
	"stlBoundaries":         "style_bounds_checking",
	"stlStrFind":            "style_strings",
	"stlStrVar":             "style_strings",
	"stlStrConcat":          "style_strings",
	"stlStrSize":            "style_strings",
}

// Cppcheck lê o XML v2 do cppcheck por casamento de atributos.
type Cppcheck struct {
	tool
}

func (c *Cppcheck) Category(ruleID string) string {
	return lookup(cppcheckCategories, ruleID)
}

// Parse extrai (id, severity, msg) de cada <error> e usa o primeiro
// <location> que aparece depois dele. Sem location, a linha é 0.
func (c *Cppcheck) Parse(raw []byte, filePath string) []model.StaticAnalysisResult {
	text := string(raw)
	out := []model.StaticAnalysisResult{}
	for _, m := range cppcheckErrorRe.FindAllStringSubmatchIndex(text, -1) {
		ruleID := text[m[2]:m[3]]
		line := 0
		if loc := cppcheckLocationRe.FindStringSubmatch(text[m[0]:]); loc != nil {
			line, _ = strconv.Atoi(loc[1])
		}
		out = append(out, model.StaticAnalysisResult{
			ToolName:   "cppcheck",
			FilePath:   filePath,
			LineNumber: line,
			Severity:   text[m[4]:m[5]],
			Message:    text[m[6]:m[7]],
			RuleID:     ruleID,
			Category:   c.Category(ruleID),
			Confidence: cppcheckConfidence,
		})
	}
	return out
}
