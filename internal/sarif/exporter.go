package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Sena-ops/cguard/internal/model"
)

const (
	Version = "2.1.0"
	// schema RTM reconhecido por GitHub/VSCode
	Schema = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool              Tool              `json:"tool"`
	AutomationDetails AutomationDetails `json:"automationDetails"`
	Results           []Result          `json:"results"`
}

type AutomationDetails struct {
	ID string `json:"id"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Rules   []Rule `json:"rules,omitempty"`
}

type Rule struct {
	ID               string  `json:"id"`
	Name             string  `json:"name,omitempty"`
	ShortDescription Message `json:"shortDescription"`
}

type Result struct {
	RuleID     string         `json:"ruleId"`
	Message    Message        `json:"message"`
	Level      string         `json:"level"` // error, warning, note
	Locations  []Location     `json:"locations"`
	Properties map[string]any `json:"properties,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	StartLine int `json:"startLine"`
}

// FromViolations gera um log com uma única run do motor interno.
func FromViolations(filePath string, violations []model.Violation, toolVersion string) *Log {
	results := make([]Result, 0, len(violations))
	seen := map[string]bool{}
	var rules []Rule
	for _, v := range violations {
		if !seen[v.RuleID] {
			seen[v.RuleID] = true
			rules = append(rules, Rule{
				ID:               v.RuleID,
				Name:             v.RuleName,
				ShortDescription: Message{Text: v.RuleName},
			})
		}
		text := strings.TrimSpace(v.Description)
		if v.Suggestion != "" {
			text += ". " + v.Suggestion
		}
		results = append(results, Result{
			RuleID:    v.RuleID,
			Level:     sevToLevel(v.Severity),
			Message:   Message{Text: text},
			Locations: location(filePath, v.LineNumber),
			Properties: map[string]any{
				"severity": string(v.Severity),
			},
		})
	}

	return newLog(Run{
		Tool: Tool{
			Driver: Driver{
				Name:    "cguard",
				Version: toolVersion,
				Rules:   rules,
			},
		},
		Results: results,
	})
}

// Marshal serializa o log indentado.
func Marshal(log *Log) ([]byte, error) {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sarif: %w", err)
	}
	return data, nil
}

// newLog envolve as runs e dá a cada uma um id de automação único.
func newLog(runs ...Run) *Log {
	for i := range runs {
		runs[i].AutomationDetails = AutomationDetails{
			ID: fmt.Sprintf("cguard/%s/%s", runs[i].Tool.Driver.Name, uuid.NewString()),
		}
	}
	return &Log{
		Version: Version,
		Schema:  Schema,
		Runs:    runs,
	}
}

func location(filePath string, line int) []Location {
	uri := toURI(filePath)
	if strings.TrimSpace(uri) == "" {
		uri = "UNKNOWN"
	}
	if line <= 0 {
		line = 1
	}
	return []Location{
		{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: uri},
				Region:           Region{StartLine: line},
			},
		},
	}
}

func sevToLevel(s model.Severity) string {
	switch s {
	case model.SevCritical, model.SevMajor:
		return "error"
	case model.SevModerate:
		return "warning"
	default:
		return "note"
	}
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
