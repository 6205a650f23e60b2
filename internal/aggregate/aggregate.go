package aggregate

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sena-ops/cguard/internal/adapters"
	"github.com/Sena-ops/cguard/internal/model"
)

// ToolRun é o resultado de um adapter.
type ToolRun struct {
	Tool      string
	Available bool
	Results   []model.StaticAnalysisResult
}

// Result guarda o resultado de cada adapter na ordem dos adapters. Achados de
// ferramentas diferentes nunca são deduplicados.
type Result struct {
	FilePath  string
	Timestamp time.Time
	Runs      []ToolRun
}

// ToolsUsed lista as ferramentas disponíveis, na ordem dos adapters.
func (r Result) ToolsUsed() []string {
	out := []string{}
	for _, run := range r.Runs {
		if run.Available {
			out = append(out, run.Tool)
		}
	}
	return out
}

func (r Result) Total() int {
	n := 0
	for _, run := range r.Runs {
		n += len(run.Results)
	}
	return n
}

// ByTool conta achados por ferramenta disponível. Sem achados, o valor é 0.
func (r Result) ByTool() map[string]int {
	out := map[string]int{}
	for _, run := range r.Runs {
		if run.Available {
			out[run.Tool] = len(run.Results)
		}
	}
	return out
}

func (r Result) ByCategory() map[string]int {
	out := map[string]int{}
	for _, run := range r.Runs {
		for _, res := range run.Results {
			out[res.Category]++
		}
	}
	return out
}

// Categories devolve as chaves de ByCategory ordenadas.
func (r Result) Categories() []string {
	counts := r.ByCategory()
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All achata os achados na ordem dos adapters.
func (r Result) All() []model.StaticAnalysisResult {
	out := make([]model.StaticAnalysisResult, 0, r.Total())
	for _, run := range r.Runs {
		out = append(out, run.Results...)
	}
	return out
}

// Aggregator prova e executa uma lista fixa de adapters.
type Aggregator struct {
	adapters   []adapters.Adapter
	concurrent bool
	log        *zap.SugaredLogger
	now        func() time.Time
}

type Option func(*Aggregator)

// WithConcurrency executa os adapters em goroutines paralelas.
func WithConcurrency(on bool) Option {
	return func(a *Aggregator) { a.concurrent = on }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// WithClock fixa a fonte do timestamp (usado nos testes).
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func New(list []adapters.Adapter, opts ...Option) *Aggregator {
	a := &Aggregator{
		adapters: list,
		log:      zap.NewNop().Sugar(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Availability prova todos os adapters.
func (a *Aggregator) Availability(ctx context.Context) map[string]bool {
	runs := a.each(ctx, func(ctx context.Context, ad adapters.Adapter) ToolRun {
		return ToolRun{Tool: ad.Name(), Available: ad.Probe(ctx)}
	})
	out := make(map[string]bool, len(runs))
	for _, r := range runs {
		out[r.Tool] = r.Available
	}
	return out
}

// Run prova cada adapter e, se disponível, executa e interpreta a saída para
// filePath. Adapters indisponíveis são pulados sem executar a ferramenta.
func (a *Aggregator) Run(ctx context.Context, filePath string) Result {
	runs := a.each(ctx, func(ctx context.Context, ad adapters.Adapter) ToolRun {
		run := ToolRun{Tool: ad.Name(), Results: []model.StaticAnalysisResult{}}
		if !ad.Probe(ctx) {
			a.log.Infow("Ferramenta indisponível, ignorando", "tool", ad.Name())
			return run
		}
		run.Available = true

		raw := ad.Invoke(ctx, filePath)
		if len(raw) == 0 {
			return run
		}
		if parsed := ad.Parse(raw, filePath); parsed != nil {
			run.Results = parsed
		}
		a.log.Debugw("Ferramenta concluída", "tool", ad.Name(), "file", filePath, "achados", len(run.Results))
		return run
	})

	return Result{
		FilePath:  filePath,
		Timestamp: a.now().UTC(),
		Runs:      runs,
	}
}

// each aplica fn a cada adapter e grava por índice, então a ordem da saída
// não depende do escalonamento.
func (a *Aggregator) each(ctx context.Context, fn func(context.Context, adapters.Adapter) ToolRun) []ToolRun {
	out := make([]ToolRun, len(a.adapters))
	if !a.concurrent {
		for i, ad := range a.adapters {
			out[i] = fn(ctx, ad)
		}
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, ad := range a.adapters {
		g.Go(func() error {
			out[i] = fn(gctx, ad)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
