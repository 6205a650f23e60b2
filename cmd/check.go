package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/Sena-ops/cguard/internal/metrics"
	"github.com/Sena-ops/cguard/internal/parser"
	"github.com/Sena-ops/cguard/internal/report"
	"github.com/Sena-ops/cguard/internal/rules"
	"github.com/Sena-ops/cguard/internal/sarif"
	"github.com/Sena-ops/cguard/internal/scoring"
	"github.com/Sena-ops/cguard/internal/watch"
)

// inlineTarget nomeia o código vindo de --code-string nos relatórios.
const inlineTarget = "<inline>"

type checkOptions struct {
	outputFlags
	codeFile   string
	codeString string
	glob       string
	watch      bool
}

// checked é o resultado de uma verificação com o arquivo de origem.
type checked struct {
	target string
	result scoring.Result
}

func newCheckCmd(a *app) *cobra.Command {
	o := &checkOptions{outputFlags: outputFlags{announce: true}}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verifica código C contra as regras Power of 10 e gera o score de conformidade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, o)
		},
	}
	o.register(cmd)
	cmd.Flags().StringVar(&o.codeFile, "code-file", "", "Caminho do arquivo C")
	cmd.Flags().StringVar(&o.codeString, "code-string", "", "Código C como string")
	cmd.Flags().StringVar(&o.glob, "glob", "", "Verifica todos os arquivos do padrão (ex: 'src/**/*.c')")
	cmd.Flags().BoolVar(&o.watch, "watch", false, "Refaz a verificação a cada escrita em --code-file")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, o *checkOptions) error {
	if o.codeFile == "" && o.codeString == "" && o.glob == "" {
		return ErrUsage
	}
	if o.watch && o.codeFile == "" {
		return fmt.Errorf("--watch exige --code-file")
	}
	format, err := o.resolveFormat()
	if err != nil {
		return err
	}

	run := func() error {
		results, err := a.checkTargets(o)
		if err != nil {
			return err
		}
		data, err := renderChecks(format, results)
		if err != nil {
			return err
		}
		if err := o.emit(cmd, format, data); err != nil {
			return err
		}
		return a.writeCheckMetrics(o.metricsFile, results)
	}

	if err := run(); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()
	return watch.File(ctx, o.codeFile, watch.DefaultDebounce, a.logger, func() {
		if err := run(); err != nil {
			a.logger.Errorw("Erro ao verificar", "file", o.codeFile, "erro", err)
		}
	})
}

// checkTargets resolve as entradas (arquivo, string ou glob) e verifica cada uma.
func (a *app) checkTargets(o *checkOptions) ([]checked, error) {
	engine := rules.NewEngine(rules.WithBoundaryMode(a.cfg.BoundaryMode()))

	var out []checked
	if o.codeString != "" && o.codeFile == "" && o.glob == "" {
		src := parser.NewSource(o.codeString)
		return append(out, checked{target: inlineTarget, result: scoring.Evaluate(engine.Check(src))}), nil
	}

	var paths []string
	if o.codeFile != "" {
		paths = append(paths, o.codeFile)
	}
	if o.glob != "" {
		matches, err := doublestar.FilepathGlob(o.glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("padrão --glob inválido '%s': %w", o.glob, err)
		}
		if len(matches) == 0 {
			a.logger.Warnw("Nenhum arquivo corresponde ao padrão", "glob", o.glob)
		}
		paths = append(paths, matches...)
	}

	for _, p := range paths {
		src, err := parser.ReadSource(p)
		if err != nil {
			return nil, err
		}
		res := scoring.Evaluate(engine.Check(src))
		a.logger.Debugw("Arquivo verificado", "file", p, "score", res.Score, "violacoes", len(res.Violations))
		out = append(out, checked{target: p, result: res})
	}
	return out, nil
}

// fileDocument acrescenta o caminho ao documento JSON quando há vários arquivos.
type fileDocument struct {
	FilePath string `json:"file_path"`
	report.IntrinsicDocument
}

func renderChecks(format report.Format, results []checked) ([]byte, error) {
	if len(results) == 1 {
		return renderCheck(format, results[0])
	}

	switch format {
	case report.JSON:
		docs := make([]fileDocument, 0, len(results))
		for _, c := range results {
			docs = append(docs, fileDocument{FilePath: c.target, IntrinsicDocument: report.NewIntrinsicDocument(c.result)})
		}
		return marshalJSON(docs)
	case report.SARIF:
		log := &sarif.Log{Version: sarif.Version, Schema: sarif.Schema, Runs: []sarif.Run{}}
		for _, c := range results {
			log.Runs = append(log.Runs, sarif.FromViolations(c.target, c.result.Violations, Version).Runs...)
		}
		return sarif.Marshal(log)
	default:
		parts := make([]string, 0, len(results))
		for _, c := range results {
			data, err := renderCheck(format, c)
			if err != nil {
				return nil, err
			}
			parts = append(parts, fmt.Sprintf("==> %s <==\n%s", c.target, data))
		}
		return []byte(strings.Join(parts, "\n\n")), nil
	}
}

func renderCheck(format report.Format, c checked) ([]byte, error) {
	switch format {
	case report.JSON:
		return report.IntrinsicJSON(c.result)
	case report.Markdown:
		return []byte(report.IntrinsicMarkdown(c.result)), nil
	case report.SARIF:
		return sarif.Marshal(sarif.FromViolations(c.target, c.result.Violations, Version))
	default:
		return []byte(report.IntrinsicText(c.result)), nil
	}
}

func (a *app) writeCheckMetrics(path string, results []checked) error {
	if path == "" {
		return nil
	}
	rec := metrics.New()
	for _, c := range results {
		rec.ObserveCheck(c.target, c.result)
	}
	return rec.WriteFile(path)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
