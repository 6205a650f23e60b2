package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sena-ops/cguard/internal/parser"
	"github.com/Sena-ops/cguard/internal/scanner"
)

// DefaultPath é lido quando --config não é informado. Se não existir, valem os defaults.
const DefaultPath = "cguard.yaml"

// Config reúne as configurações do cguard.
type Config struct {
	ProbeTimeout         time.Duration         `yaml:"probe_timeout"`
	RunTimeout           time.Duration         `yaml:"run_timeout"`
	Concurrent           bool                  `yaml:"concurrent"`
	StrictFunctionBounds bool                  `yaml:"strict_function_bounds"` // fim de função pela profundidade de chaves
	Tools                map[string]ToolConfig `yaml:"tools"`                  // chave = nome do adapter, ex: "clang_tidy"
}

// ToolConfig sobrescreve um adapter.
type ToolConfig struct {
	Enabled   *bool    `yaml:"enabled"`    // nil = habilitado
	Binary    string   `yaml:"binary"`     // caminho do executável
	ExtraArgs []string `yaml:"extra_args"` // inseridos antes do arquivo
}

func (t ToolConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// Defaults devolve a Config com os valores embutidos.
func Defaults() Config {
	return Config{
		ProbeTimeout: 5 * time.Second,
		RunTimeout:   60 * time.Second,
		Concurrent:   true,
		Tools:        map[string]ToolConfig{},
	}
}

// Load lê o arquivo YAML (ou JSON) em path. Campos ausentes mantêm o default.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("ler arquivo de configuração: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("interpretar arquivo de configuração: %w", err)
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]ToolConfig{}
	}
	if cfg.ProbeTimeout <= 0 || cfg.RunTimeout <= 0 {
		return cfg, fmt.Errorf("timeouts devem ser positivos (probe_timeout=%s, run_timeout=%s)", cfg.ProbeTimeout, cfg.RunTimeout)
	}
	for name := range cfg.Tools {
		if _, err := scanner.Lookup(name); err != nil {
			return cfg, fmt.Errorf("seção tools: %w (suportados: %s)", err, strings.Join(scanner.Names(), ", "))
		}
	}
	return cfg, nil
}

// Resolve carrega path quando informado. Sem path, tenta DefaultPath e
// volta aos defaults se ele não existir.
func Resolve(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// BoundaryMode traduz strict_function_bounds para o modo do parser.
func (c Config) BoundaryMode() parser.BoundaryMode {
	if c.StrictFunctionBounds {
		return parser.Strict
	}
	return parser.Heuristic
}

// Specs devolve as Specs habilitadas, com binário e argumentos sobrescritos,
// na ordem informada.
func (c Config) Specs(order []string) []scanner.Spec {
	out := make([]scanner.Spec, 0, len(order))
	for _, name := range order {
		spec, err := scanner.Lookup(name)
		if err != nil {
			continue
		}
		tc := c.Tools[name]
		if !tc.IsEnabled() {
			continue
		}
		if tc.Binary != "" {
			spec.Binary = tc.Binary
		}
		spec.Args = append(spec.Args, tc.ExtraArgs...)
		out = append(out, spec)
	}
	return out
}
