package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sena-ops/cguard/internal/config"
	"github.com/Sena-ops/cguard/internal/logging"
	"github.com/Sena-ops/cguard/internal/scanner"
)

// ErrUsage é devolvido quando nem --code-file nem --code-string foram informados.
var ErrUsage = errors.New("Must provide either --code-file or --code-string")

// Version é sobrescrito via -ldflags no build de release.
var Version = "0.1.0"

// newRunner é trocado nos testes para não executar binários reais.
var newRunner = func() scanner.Runner { return scanner.ExecRunner{} }

// app carrega o estado compartilhado entre os subcomandos.
type app struct {
	debug      bool
	configPath string

	cfg    config.Config
	logger *zap.SugaredLogger
}

func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Defaults(), logger: logging.Logger}

	root := &cobra.Command{
		Use:           "cguard",
		Short:         "cguard - Verificador de conformidade Power of 10 para código C",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.InitLogger(a.debug)
			if err != nil {
				return err
			}
			a.logger = log

			cfg, err := config.Resolve(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debugw("Configuração carregada", "config", a.configPath, "concurrent", cfg.Concurrent, "modo", cfg.BoundaryMode().String())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Habilita logs em nível debug")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Arquivo de configuração das ferramentas (padrão: "+config.DefaultPath+" se existir)")

	root.AddCommand(
		newCheckCmd(a),
		newAggregateCmd(a),
		newFeaturesCmd(a),
		newToolsCmd(a),
		newVersionCmd(),
	)
	return root
}

func Execute() {
	cobra.CheckErr(NewRootCmd().Execute())
}
