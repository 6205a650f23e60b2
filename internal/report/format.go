package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
	SARIF    Format = "sarif"
)

// ParseFormat aceita "text", "json", "markdown"/"md" e "sarif", sem diferenciar maiúsculas.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "markdown", "md":
		return Markdown, nil
	case "sarif":
		return SARIF, nil
	default:
		return "", fmt.Errorf("formato '%s' não suportado (use text, json, markdown ou sarif)", s)
	}
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

func rule(ch string, n int) string { return strings.Repeat(ch, n) }
