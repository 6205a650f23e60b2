package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/cguard/internal/adapters"
	"github.com/Sena-ops/cguard/internal/aggregate"
	"github.com/Sena-ops/cguard/internal/metrics"
	"github.com/Sena-ops/cguard/internal/parser"
	"github.com/Sena-ops/cguard/internal/report"
	"github.com/Sena-ops/cguard/internal/rules"
	"github.com/Sena-ops/cguard/internal/sarif"
	"github.com/Sena-ops/cguard/internal/scoring"
)

type aggregateOptions struct {
	outputFlags
	file      string
	intrinsic bool
}

func newAggregateCmd(a *app) *cobra.Command {
	o := &aggregateOptions{}
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Executa cppcheck, clang-tidy, splint e flawfinder e consolida os achados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAggregate(cmd, o)
		},
	}
	o.register(cmd)
	cmd.Flags().StringVar(&o.outputFile, "output", "", "Arquivo de saída do relatório (alias de --output-file)")
	cmd.Flags().StringVar(&o.file, "file", "", "Arquivo C a analisar")
	cmd.Flags().BoolVar(&o.intrinsic, "intrinsic", false, "Inclui também o relatório das regras internas")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// buildAdapters monta os adaptadores habilitados na configuração.
func (a *app) buildAdapters() []adapters.Adapter {
	opts := adapters.Options{
		Runner:       newRunner(),
		ProbeTimeout: a.cfg.ProbeTimeout,
		RunTimeout:   a.cfg.RunTimeout,
		Logger:       a.logger,
	}
	var out []adapters.Adapter
	for _, spec := range a.cfg.Specs(adapters.Order) {
		ad, err := adapters.New(spec, opts)
		if err != nil {
			a.logger.Warnw("Adapter ignorado", "tool", spec.Name, "erro", err)
			continue
		}
		out = append(out, ad)
	}
	return out
}

func (a *app) aggregator() *aggregate.Aggregator {
	return aggregate.New(a.buildAdapters(),
		aggregate.WithConcurrency(a.cfg.Concurrent),
		aggregate.WithLogger(a.logger))
}

func (a *app) runAggregate(cmd *cobra.Command, o *aggregateOptions) error {
	format, err := o.resolveFormat()
	if err != nil {
		return err
	}
	if _, err := os.Stat(o.file); err != nil {
		return fmt.Errorf("arquivo %s: %w", o.file, err)
	}

	res := a.aggregator().Run(cmdContext(cmd), o.file)
	a.logger.Infow("Análise concluída", "file", o.file, "ferramentas", res.ToolsUsed(), "achados", res.Total())

	var intrinsic *scoring.Result
	if o.intrinsic {
		src, err := parser.ReadSource(o.file)
		if err != nil {
			return err
		}
		r := scoring.Evaluate(rules.NewEngine(rules.WithBoundaryMode(a.cfg.BoundaryMode())).Check(src))
		intrinsic = &r
	}

	data, err := renderAggregate(format, o.file, res, intrinsic)
	if err != nil {
		return err
	}
	if err := o.emit(cmd, format, data); err != nil {
		return err
	}

	if o.metricsFile == "" {
		return nil
	}
	rec := metrics.New()
	rec.ObserveAggregate(res)
	if intrinsic != nil {
		rec.ObserveCheck(o.file, *intrinsic)
	}
	return rec.WriteFile(o.metricsFile)
}

// combinedDocument mantém os dois relatórios separados, cada um com seu formato.
type combinedDocument struct {
	StaticAnalysis report.AggregateDocument `json:"static_analysis"`
	Compliance     report.IntrinsicDocument `json:"compliance"`
}

func renderAggregate(format report.Format, file string, res aggregate.Result, intrinsic *scoring.Result) ([]byte, error) {
	switch format {
	case report.JSON:
		if intrinsic == nil {
			return report.AggregateJSON(res)
		}
		return marshalJSON(combinedDocument{
			StaticAnalysis: report.NewAggregateDocument(res),
			Compliance:     report.NewIntrinsicDocument(*intrinsic),
		})
	case report.SARIF:
		log := sarif.FromAggregate(res)
		if intrinsic != nil {
			log.Runs = append(sarif.FromViolations(file, intrinsic.Violations, Version).Runs, log.Runs...)
		}
		return sarif.Marshal(log)
	case report.Markdown:
		out := report.AggregateMarkdown(res)
		if intrinsic != nil {
			out = report.IntrinsicMarkdown(*intrinsic) + "\n" + out
		}
		return []byte(out), nil
	default:
		parts := []string{report.AggregateText(res)}
		if intrinsic != nil {
			parts = append([]string{report.IntrinsicText(*intrinsic)}, parts...)
		}
		return []byte(strings.Join(parts, "\n\n")), nil
	}
}
