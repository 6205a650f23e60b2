package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/cguard/internal/adapters"
)

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Lista as ferramentas externas e se estão disponíveis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := map[string]bool{}
			for _, spec := range a.cfg.Specs(adapters.Order) {
				enabled[spec.Name] = true
			}
			avail := a.aggregator().Availability(cmdContext(cmd))

			out := cmd.OutOrStdout()
			for _, name := range adapters.Order {
				status := "unavailable"
				switch {
				case !enabled[name]:
					status = "disabled"
				case avail[name]:
					status = "available"
				}
				fmt.Fprintf(out, "%-12s %s\n", name, status)
			}
			return nil
		},
	}
}
