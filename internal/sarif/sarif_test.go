package sarif

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sena-ops/cguard/internal/aggregate"
	"github.com/Sena-ops/cguard/internal/model"
)

func TestFromViolations(t *testing.T) {
	vs := []model.Violation{
		{RuleID: "rule_3", RuleName: "No Dynamic Memory", Severity: model.SevCritical, LineNumber: 4, Description: "Dynamic memory allocation detected", Suggestion: "Use static allocation"},
		{RuleID: "rule_3", RuleName: "No Dynamic Memory", Severity: model.SevCritical, LineNumber: 9},
		{RuleID: "rule_8", RuleName: "Preprocessor Usage", Severity: model.SevMinor, LineNumber: 0},
	}
	log := FromViolations("./src/main.c", vs, "1.0.0")

	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	assert.Equal(t, "cguard", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 2)
	assert.True(t, strings.HasPrefix(run.AutomationDetails.ID, "cguard/cguard/"))

	require.Len(t, run.Results, 3)
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, "Dynamic memory allocation detected. Use static allocation", run.Results[0].Message.Text)
	assert.Equal(t, "src/main.c", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "note", run.Results[2].Level)
	assert.Equal(t, 1, run.Results[2].Locations[0].PhysicalLocation.Region.StartLine)
}

func TestAutomationIDsAreUnique(t *testing.T) {
	a := FromViolations("a.c", nil, "")
	b := FromViolations("a.c", nil, "")
	assert.NotEqual(t, a.Runs[0].AutomationDetails.ID, b.Runs[0].AutomationDetails.ID)
}

func TestFromAggregate(t *testing.T) {
	res := aggregate.Result{
		FilePath: "../x.c",
		Runs: []aggregate.ToolRun{
			{Tool: "cppcheck", Available: true, Results: []model.StaticAnalysisResult{
				{ToolName: "cppcheck", LineNumber: 2, Severity: "error", Message: " leak ", RuleID: "memoryLeak", Category: "rule_3", Confidence: 0.9},
			}},
			{Tool: "splint"},
			{Tool: "flawfinder", Available: true, Results: []model.StaticAnalysisResult{
				{ToolName: "flawfinder", Severity: "risk_level_2", RuleID: "flawfinder", Category: "style_security", Confidence: 0.75},
			}},
		},
	}
	log := FromAggregate(res)

	require.Len(t, log.Runs, 2)
	assert.Equal(t, "cppcheck", log.Runs[0].Tool.Driver.Name)
	r := log.Runs[0].Results[0]
	assert.Equal(t, "error", r.Level)
	assert.Equal(t, "leak", r.Message.Text)
	assert.Equal(t, "x.c", r.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "rule_3", r.Properties["category"])

	assert.Equal(t, "warning", log.Runs[1].Results[0].Level)
}

func TestFromAggregate_NoTools(t *testing.T) {
	data, err := Marshal(FromAggregate(aggregate.Result{}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"runs": []`)
}

func TestMapToolSeverity(t *testing.T) {
	cases := map[string]string{
		"error":        "error",
		"warning":      "warning",
		"style":        "note",
		"risk_level_5": "error",
		"risk_level_3": "warning",
		"risk_level_1": "note",
		"":             "note",
	}
	for in, want := range cases {
		assert.Equal(t, want, mapToolSeverity(in), in)
	}
}

func TestMarshal_EmptyRun(t *testing.T) {
	data, err := Marshal(FromViolations("a.c", nil, "1"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"version\": \"2.1.0\"")

	var log Log
	require.NoError(t, json.Unmarshal(data, &log))
	assert.Equal(t, Version, log.Version)
	assert.Empty(t, log.Runs[0].Results)
}
