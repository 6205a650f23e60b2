package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/cguard/internal/features"
	"github.com/Sena-ops/cguard/internal/parser"
	"github.com/Sena-ops/cguard/internal/rules"
)

func newFeaturesCmd(a *app) *cobra.Command {
	var codeFile, codeString string
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Imprime o vetor de features do código em JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src *parser.Source
			switch {
			case codeFile != "":
				s, err := parser.ReadSource(codeFile)
				if err != nil {
					return err
				}
				src = s
			case codeString != "":
				src = parser.NewSource(codeString)
			default:
				return ErrUsage
			}

			violations := rules.NewEngine(rules.WithBoundaryMode(a.cfg.BoundaryMode())).Check(src)
			data, err := marshalJSON(features.Extract(src.Text, len(violations)))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&codeFile, "code-file", "", "Caminho do arquivo C")
	cmd.Flags().StringVar(&codeString, "code-string", "", "Código C como string")
	return cmd
}
