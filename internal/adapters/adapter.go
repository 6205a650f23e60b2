package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Sena-ops/cguard/internal/model"
	"github.com/Sena-ops/cguard/internal/scanner"
)

// StyleGeneral é a categoria usada quando o id ou mensagem não está mapeado.
const StyleGeneral = "style_general"

// Adapter é implementado por cada ferramenta externa. Falhas nunca viram erro:
// Probe devolve false, Invoke devolve saída vazia e Parse devolve lista vazia.
type Adapter interface {
	// chave usada nos relatórios, ex: "clang_tidy"
	Name() string
	Probe(ctx context.Context) bool
	Invoke(ctx context.Context, filePath string) []byte
	Parse(raw []byte, filePath string) []model.StaticAnalysisResult
	// id nativo ou mensagem -> categoria unificada
	Category(native string) string
}

// Order é a ordem fixa dos adapters nos relatórios.
var Order = []string{"cppcheck", "clang_tidy", "splint", "flawfinder"}

// Options são compartilhadas por todos os adapters.
type Options struct {
	Runner       scanner.Runner
	ProbeTimeout time.Duration
	RunTimeout   time.Duration
	Logger       *zap.SugaredLogger
}

func (o Options) withDefaults() Options {
	if o.Runner == nil {
		o.Runner = scanner.ExecRunner{}
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = 5 * time.Second
	}
	if o.RunTimeout <= 0 {
		o.RunTimeout = 60 * time.Second
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	return o
}

// tool implementa Probe e Invoke sobre uma scanner.Spec.
type tool struct {
	spec scanner.Spec
	opts Options
}

func newTool(spec scanner.Spec, opts Options) tool {
	return tool{spec: spec, opts: opts.withDefaults()}
}

func (t tool) Name() string { return t.spec.Name }

func (t tool) Probe(ctx context.Context) bool {
	return scanner.Probe(ctx, t.opts.Runner, t.spec, t.opts.ProbeTimeout, t.opts.Logger)
}

func (t tool) Invoke(ctx context.Context, filePath string) []byte {
	return scanner.Execute(ctx, t.opts.Runner, t.spec, filePath, t.opts.RunTimeout, t.opts.Logger)
}

// New monta o adapter correspondente a spec.Name.
func New(spec scanner.Spec, opts Options) (Adapter, error) {
	base := newTool(spec, opts)
	switch spec.Name {
	case "cppcheck":
		return &Cppcheck{tool: base}, nil
	case "clang_tidy":
		return &ClangTidy{tool: base}, nil
	case "splint":
		return &Splint{tool: base}, nil
	case "flawfinder":
		return &Flawfinder{tool: base}, nil
	default:
		return nil, fmt.Errorf("adapter '%s' não suportado", spec.Name)
	}
}

// keywordRule associa uma substring (minúscula) da mensagem a uma categoria.
type keywordRule struct {
	keyword  string
	category string
}

func matchKeywords(text string, rules []keywordRule, fallback string) string {
	for _, r := range rules {
		if containsFold(text, r.keyword) {
			return r.category
		}
	}
	return fallback
}

func lookup(table map[string]string, id string) string {
	if c, ok := table[id]; ok {
		return c
	}
	return StyleGeneral
}

func containsFold(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), keyword)
}
