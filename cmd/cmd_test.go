package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sena-ops/cguard/internal/scanner"
)

const dirty = `#include <stdlib.h>
void leak(void) {
    char *p = malloc(10);
    goto out;
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeC(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// fakeTools simula cppcheck e splint instalados; os demais não existem.
func fakeTools(t *testing.T) {
	t.Helper()
	prev := newRunner
	t.Cleanup(func() { newRunner = prev })
	newRunner = func() scanner.Runner {
		return scanner.RunnerFunc(func(ctx context.Context, name string, args ...string) (scanner.Result, error) {
			switch name {
			case "cppcheck":
				if args[0] == "--version" {
					return scanner.Result{Stdout: []byte("Cppcheck 2.13")}, nil
				}
				xml := `<error id="memoryLeak" severity="error" msg="Memory leak: p" verbose="Memory leak: p" cwe="401">` +
					`<location file="x.c" line="4" column="1"/></error>`
				return scanner.Result{Stderr: []byte(xml), ExitCode: 1}, nil
			case "splint":
				if args[0] == "--version" {
					return scanner.Result{}, nil
				}
				return scanner.Result{Stdout: []byte("x.c:3: Possible null pointer dereference\n"), ExitCode: 1}, nil
			default:
				return scanner.Result{}, errors.New("executable file not found in $PATH")
			}
		})
	}
}

func TestCheck_Usage(t *testing.T) {
	_, err := run(t, "check")
	assert.ErrorIs(t, err, ErrUsage)

	_, err = run(t, "check", "--code-string", "")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestCheck_MissingFile(t *testing.T) {
	_, err := run(t, "check", "--code-file", filepath.Join(t.TempDir(), "none.c"))
	assert.Error(t, err)
}

func TestCheck_TextFromString(t *testing.T) {
	out, err := run(t, "check", "--code-string", "/* nothing */")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall Compliance Score: 100/100")
	assert.Contains(t, out, "No rule violations detected!")
}

func TestCheck_JSON(t *testing.T) {
	path := writeC(t, "dirty.c", dirty)
	out, err := run(t, "check", "--code-file", path, "--json")
	require.NoError(t, err)

	var doc struct {
		Score      int    `json:"compliance_score"`
		Level      string `json:"compliance_level"`
		Total      int    `json:"total_violations"`
		Violations []struct {
			RuleID string `json:"rule_id"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Less(t, doc.Score, 100)
	assert.Equal(t, len(doc.Violations), doc.Total)

	ids := map[string]bool{}
	for _, v := range doc.Violations {
		ids[v.RuleID] = true
	}
	assert.True(t, ids["rule_1"])
	assert.True(t, ids["rule_3"])
}

func TestCheck_OutputFile(t *testing.T) {
	path := writeC(t, "a.c", dirty)
	dest := filepath.Join(t.TempDir(), "report.txt")

	out, err := run(t, "check", "--code-file", path, "--output-file", dest)
	require.NoError(t, err)
	assert.Equal(t, "Report saved to "+dest+"\n", out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "NASA C CODE COMPLIANCE REPORT")
}

func TestCheck_Glob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "a.c"), []byte(dirty), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "sub", "b.c"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "notes.txt"), []byte("x"), 0o644))

	out, err := run(t, "check", "--glob", filepath.Join(dir, "src", "**", "*.c"), "--format", "json")
	require.NoError(t, err)

	var docs []struct {
		FilePath string `json:"file_path"`
		Score    int    `json:"compliance_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	scores := map[string]int{}
	for _, d := range docs {
		scores[filepath.Base(d.FilePath)] = d.Score
	}
	assert.Equal(t, 100, scores["b.c"])
	assert.Less(t, scores["a.c"], 100)
}

func TestCheck_SarifAndMetrics(t *testing.T) {
	path := writeC(t, "a.c", dirty)
	prom := filepath.Join(t.TempDir(), "cguard.prom")

	out, err := run(t, "check", "--code-file", path, "--format", "sarif", "--metrics-file", prom)
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "2.1.0"`)
	assert.Contains(t, out, `"ruleId": "rule_3"`)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cguard_compliance_score")
}

func TestCheck_BadFormat(t *testing.T) {
	_, err := run(t, "check", "--code-string", "int x;", "--format", "xml")
	assert.Error(t, err)
}

func TestCheck_WatchNeedsFile(t *testing.T) {
	_, err := run(t, "check", "--code-string", "int x;", "--watch")
	assert.Error(t, err)
}

func TestCheck_BadConfig(t *testing.T) {
	cfg := writeC(t, "cfg.yaml", "tools: [")
	_, err := run(t, "--config", cfg, "check", "--code-string", "int x;")
	assert.Error(t, err)
}

func TestAggregate_Text(t *testing.T) {
	fakeTools(t)
	path := writeC(t, "x.c", dirty)

	out, err := run(t, "aggregate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Violations Found: 2")
	assert.Contains(t, out, "cppcheck: 1 violations")
	assert.Contains(t, out, "clang_tidy: 0 violations (unavailable)")
	assert.Contains(t, out, "splint: 1 violations")
	assert.Contains(t, out, "rule_3: 1 violations")
	assert.Contains(t, out, "rule_5: 1 violations")
}

func TestAggregate_JSON(t *testing.T) {
	fakeTools(t)
	path := writeC(t, "x.c", dirty)

	out, err := run(t, "aggregate", "--file", path, "--json")
	require.NoError(t, err)

	var doc struct {
		FilePath  string                       `json:"file_path"`
		ToolsUsed []string                     `json:"tools_used"`
		Total     int                          `json:"total_violations"`
		ByTool    map[string][]json.RawMessage `json:"results_by_tool"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, path, doc.FilePath)
	assert.Equal(t, []string{"cppcheck", "splint"}, doc.ToolsUsed)
	assert.Equal(t, 2, doc.Total)
	assert.Len(t, doc.ByTool["cppcheck"], 1)
}

func TestAggregate_WithIntrinsic(t *testing.T) {
	fakeTools(t)
	path := writeC(t, "x.c", dirty)

	out, err := run(t, "aggregate", "--file", path, "--intrinsic", "--json")
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "static_analysis")
	assert.Contains(t, doc, "compliance")
}

func TestAggregate_DisabledTool(t *testing.T) {
	fakeTools(t)
	path := writeC(t, "x.c", dirty)
	cfg := writeC(t, "cguard.yaml", "tools:\n  splint:\n    enabled: false\n")

	out, err := run(t, "--config", cfg, "aggregate", "--file", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "splint")
	assert.Contains(t, out, "Total Violations Found: 1")
}

func TestAggregate_OutputFile(t *testing.T) {
	fakeTools(t)
	path := writeC(t, "x.c", dirty)

	for _, flag := range []string{"--output", "--output-file"} {
		dest := filepath.Join(t.TempDir(), "aggregate.txt")
		out, err := run(t, "aggregate", "--file", path, flag, dest)
		require.NoError(t, err, flag)
		assert.Empty(t, out, flag)

		data, err := os.ReadFile(dest)
		require.NoError(t, err, flag)
		assert.Contains(t, string(data), "Total Violations Found: 2", flag)
	}
}

func TestAggregate_MissingFile(t *testing.T) {
	fakeTools(t)
	_, err := run(t, "aggregate", "--file", filepath.Join(t.TempDir(), "none.c"))
	assert.Error(t, err)

	_, err = run(t, "aggregate")
	assert.Error(t, err)
}

func TestTools(t *testing.T) {
	fakeTools(t)
	cfg := writeC(t, "cguard.yaml", "tools:\n  flawfinder:\n    enabled: false\n")

	out, err := run(t, "--config", cfg, "tools")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^cppcheck\s+available$`, lines[0])
	assert.Regexp(t, `^clang_tidy\s+unavailable$`, lines[1])
	assert.Regexp(t, `^splint\s+available$`, lines[2])
	assert.Regexp(t, `^flawfinder\s+disabled$`, lines[3])
}

func TestFeatures(t *testing.T) {
	out, err := run(t, "features", "--code-string", "int main() {\n    return 0;\n}")
	require.NoError(t, err)

	var v map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 1, v["function_count"])
	assert.Equal(t, 3, v["line_count"])
	assert.Equal(t, 1, v["nesting_depth"])

	_, err = run(t, "features")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cguard "+Version+"\n", out)
}
