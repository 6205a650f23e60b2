package rules

import (
	"github.com/Sena-ops/cguard/internal/model"
	"github.com/Sena-ops/cguard/internal/parser"
)

// Engine executa o catálogo de regras sobre um arquivo.
type Engine struct {
	mode  parser.BoundaryMode
	rules []Rule
}

// Option configura um Engine.
type Option func(*Engine)

// WithBoundaryMode escolhe a detecção de fim de função usada pelas regras
// por função. O padrão é Heuristic.
func WithBoundaryMode(mode parser.BoundaryMode) Option {
	return func(e *Engine) { e.mode = mode }
}

// WithRules substitui o catálogo, mantendo a ordem dada.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// NewEngine monta um Engine com o catálogo completo.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{mode: parser.Heuristic, rules: Catalogue()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules devolve uma cópia do catálogo, na ordem de execução.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Check roda cada regra em ordem e concatena as violações.
// O mesmo texto sempre gera a mesma lista.
func (e *Engine) Check(src *parser.Source) []model.Violation {
	in := &input{src: src, mode: e.mode, funcs: src.Functions(e.mode)}
	out := []model.Violation{}
	for _, r := range e.rules {
		out = append(out, r.check(in)...)
	}
	return out
}

// CheckText é um atalho para Check(parser.NewSource(code)).
func (e *Engine) CheckText(code string) []model.Violation {
	return e.Check(parser.NewSource(code))
}
