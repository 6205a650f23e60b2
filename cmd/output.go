package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/cguard/internal/report"
)

// outputFlags são comuns a check e aggregate.
type outputFlags struct {
	outputFile  string
	jsonOut     bool
	format      string
	metricsFile string
	// announce imprime "Report saved to" após gravar texto em arquivo.
	announce bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outputFile, "output-file", "o", "", "Arquivo de saída do relatório")
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "Saída em JSON (atalho para --format json)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Formato da saída (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "Grava métricas Prometheus (textfile) neste caminho")
}

func (o *outputFlags) resolveFormat() (report.Format, error) {
	if o.jsonOut {
		return report.JSON, nil
	}
	return report.ParseFormat(o.format)
}

// emit grava o relatório em --output-file ou imprime em stdout.
func (o *outputFlags) emit(cmd *cobra.Command, format report.Format, data []byte) error {
	if o.outputFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(o.outputFile, data, 0o644); err != nil {
		return fmt.Errorf("salvar relatório: %w", err)
	}
	if o.announce && format == report.Text {
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", o.outputFile)
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}
