package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshaanmathakari/Datenschutz/internal/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "rules", Short: "Inspect the rule catalogue"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in vulnerability categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range rules.Catalogue() {
				cwe := "-"
				if t, ok := rules.Lookup(r.Type); ok {
					cwe = t.CWE
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t(%d patterns)\n",
					r.Type, r.Severity, cwe, r.Title, len(r.Patterns))
			}
			return nil
		},
	})
	return cmd
}
